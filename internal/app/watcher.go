package app

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

// datasetMsg carries a reloaded dataset into the event loop.
type datasetMsg struct {
	items []masonry.Item
	err   error
}

// DatasetWatcher reloads the dataset file when it changes on disk.
type DatasetWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
}

// NewDatasetWatcher watches path. The parent directory is watched so that
// editors which save by renaming are picked up too.
func NewDatasetWatcher(path string) (*DatasetWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &DatasetWatcher{
		watcher:     watcher,
		path:        abs,
		debounceDur: 100 * time.Millisecond,
	}, nil
}

// Wait returns a command that blocks until the dataset changes and then
// delivers the reloaded items. Issue it again after every message.
func (w *DatasetWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				// Debounce: let the writer finish, then drop the burst.
				time.Sleep(w.debounceDur)
				w.drain()

				return w.reload()

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// Close stops watching.
func (w *DatasetWatcher) Close() error {
	return w.watcher.Close()
}

func (w *DatasetWatcher) drain() {
	for {
		select {
		case <-w.watcher.Events:
		default:
			return
		}
	}
}

func (w *DatasetWatcher) reload() datasetMsg {
	recs, err := dataset.Load(w.path)
	if err != nil {
		return datasetMsg{err: err}
	}
	items, err := dataset.Items(recs)
	return datasetMsg{items: items, err: err}
}
