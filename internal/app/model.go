// Package app is the interactive mosaic viewer.
//
// [Model] is a bubbletea model that owns every piece of viewer state and is
// the only place that state changes. Timers and the dataset watcher run on
// their own goroutines and reach the model only through messages.
package app

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/mosaic/internal/config"
	"github.com/matzehuels/mosaic/pkg/breakpoint"
	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/lightbox"
	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/motion"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/shuffle"
	"github.com/matzehuels/mosaic/pkg/transition"
)

// Rows taken by the status line and the help footer.
const (
	headerRows = 1
	footerRows = 1
)

// Options configures a Model.
type Options struct {
	// Items is the canonical item list, in dataset order.
	Items  []masonry.Item
	Config *config.Config
	Logger *log.Logger

	// DataPath is watched for changes when Watch is set.
	DataPath string
	Watch    bool

	// Clock drives the shuffle scheduler. Defaults to the real clock.
	Clock clockwork.Clock
	// Cache memoises layout passes. Defaults to an in-memory LRU.
	Cache cache.Cache
}

type (
	shuffleMsg shuffle.Tick
	frameMsg   struct{}
)

// Model is the viewer state.
type Model struct {
	ctx    context.Context
	cfg    *config.Config
	logger *log.Logger

	canonical []masonry.Item
	resolver  *breakpoint.Resolver
	memo      *masonry.Memo
	shuffler  *shuffle.Shuffler
	ticks     chan shuffle.Tick
	ctrl      *transition.Controller
	anim      *motion.Animator
	viewer    *lightbox.Viewer
	watcher   *DatasetWatcher
	help      help.Model

	width, height int
	scroll        int
	result        masonry.Result
	hovered       string
	animating     bool
	relayoutDue   bool

	pressed bool
	pressX  int
	err     error
}

// New builds a model. The shuffle scheduler does not run until Init.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	m := &Model{
		ctx:       log.WithContext(context.Background(), logger),
		cfg:       cfg,
		logger:    logger,
		canonical: opts.Items,
		resolver:  breakpoint.NewResolver(rules, cfg.Layout.DefaultColumns),
		memo: masonry.NewMemo(
			masonry.WithCache(opts.Cache),
			masonry.WithScale(cfg.Layout.DisplayScale),
		),
		ticks: make(chan shuffle.Tick, 1),
		ctrl:  transition.NewController(cfg.Transition()),
		anim:  motion.New(cfg.Transition()),
		help:  help.New(),
	}

	sched := shuffle.NewScheduler(cfg.Shuffle.Interval, m.deliverTick, shuffle.WithClock(clock))
	m.shuffler = shuffle.NewShuffler(shuffle.NewOrder(opts.Items, cfg.Shuffle.Seed), sched)
	m.viewer = lightbox.New(dataset.IDs(opts.Items),
		lightbox.WithSwipeThreshold(cfg.Lightbox.SwipeThreshold),
		lightbox.WithOpenChange(m.onOpenChange),
		lightbox.WithContext(m.ctx),
	)

	if opts.Watch && opts.DataPath != "" {
		w, err := NewDatasetWatcher(opts.DataPath)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("watch %s: %w", opts.DataPath, err)
		}
		m.watcher = w
	}
	return m, nil
}

// deliverTick runs on the clock's goroutine. A full channel already holds a
// pending tick, and the newer one would be stale anyway.
func (m *Model) deliverTick(t shuffle.Tick) {
	select {
	case m.ticks <- t:
	default:
	}
}

func (m *Model) waitTick() tea.Cmd {
	ch := m.ticks
	return func() tea.Msg { return shuffleMsg(<-ch) }
}

func (m *Model) frame() tea.Cmd {
	return tea.Tick(motion.FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// onOpenChange pauses shuffling while the lightbox is open. Closing it
// shuffles once right away and restarts the interval.
func (m *Model) onOpenChange(open bool) {
	if !m.cfg.Shuffle.Enabled {
		return
	}
	if open {
		m.shuffler.Pause(m.ctx)
		return
	}
	m.shuffler.Resume(m.ctx)
	m.relayoutDue = true
}

// Init starts the scheduler and the dataset watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitTick()}
	if m.cfg.Shuffle.Enabled {
		m.shuffler.Start(m.ctx)
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Wait())
	}
	return tea.Batch(cmds...)
}

// Close stops the scheduler and the watcher and releases the layout cache.
// It is safe to call more than once.
func (m *Model) Close() {
	m.shuffler.Close()
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	m.memo.Close()
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		prev := m.resolver.Value()
		cols, changed := m.resolver.Update(m.viewportPx())
		if changed {
			observability.Layout().OnColumnsChanged(m.ctx, prev, cols, m.viewportPx())
		}
		m.relayoutDue = true

	case shuffleMsg:
		if m.shuffler.Handle(m.ctx, shuffle.Tick(msg)) {
			m.relayoutDue = true
		}
		cmds = append(cmds, m.waitTick())

	case frameMsg:
		m.anim.Step(motion.FrameInterval)
		if m.anim.Settled() {
			m.animating = false
		} else {
			cmds = append(cmds, m.frame())
		}

	case datasetMsg:
		m.applyDataset(msg)
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.Wait())
		}

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if m.relayoutDue {
		m.relayoutDue = false
		m.relayout()
	}
	if cmd := m.animate(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}

	if m.viewer.IsOpen() {
		switch {
		case key.Matches(msg, keys.Next):
			m.viewer.HandleKey("right")
		case key.Matches(msg, keys.Prev):
			m.viewer.HandleKey("left")
		case key.Matches(msg, keys.Close):
			m.viewer.HandleKey("esc")
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Open):
		id := m.hovered
		if id == "" && len(m.canonical) > 0 {
			id = m.canonical[0].ID
		}
		m.viewer.Select(id)
	case key.Matches(msg, keys.Shuffle):
		if m.cfg.Shuffle.Enabled {
			m.shuffler.Resume(m.ctx)
		} else {
			m.shuffler.Order().Shuffle()
		}
		m.relayoutDue = true
	case key.Matches(msg, keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, keys.Down):
		m.scrollBy(1)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.viewer.IsOpen() {
		m.handleLightboxMouse(msg)
		return
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(3)
	case msg.Action == tea.MouseActionMotion:
		m.setHovered(m.tileAt(msg.X, msg.Y))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if id := m.tileAt(msg.X, msg.Y); id != "" {
			m.viewer.Select(id)
		}
	}
}

// handleLightboxMouse maps a left-button drag onto the swipe gesture. A press
// and release without a swipe is a click on a nav control, the image or the
// backdrop.
func (m *Model) handleLightboxMouse(msg tea.MouseMsg) {
	x := float64(msg.X) * m.cfg.Layout.CellWidthPx

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.pressed, m.pressX = true, msg.X
		m.viewer.TouchStart(x)
	case tea.MouseActionMotion:
		if m.pressed {
			m.viewer.TouchMove(x)
		}
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		moved := msg.X != m.pressX
		m.viewer.TouchEnd()
		if moved {
			return
		}
		switch nav := m.navAt(msg.X, msg.Y); {
		case nav < 0:
			m.viewer.Prev()
		case nav > 0:
			m.viewer.Next()
		case m.inLightbox(msg.X, msg.Y):
			m.viewer.ClickImage()
		default:
			m.viewer.ClickBackdrop()
		}
	}
}

func (m *Model) setHovered(id string) {
	if id == m.hovered {
		return
	}
	m.hovered = id
	// Only sizes change; apply at once rather than staggered.
	targets := m.ctrl.Diff(m.result.Placements, m.result.Placements, m.hovered)
	for i := range targets {
		targets[i].Delay = 0
	}
	m.anim.Apply(targets)
	if !m.cfg.Motion.Enabled {
		m.anim.Snap()
	}
}

func (m *Model) applyDataset(msg datasetMsg) {
	if msg.err != nil {
		m.err = msg.err
		m.logger.Error("dataset reload failed", "err", msg.err)
		return
	}
	m.err = nil
	m.canonical = msg.items
	m.shuffler.Order().Replace(msg.items)
	if m.viewer.SetItems(dataset.IDs(msg.items)) {
		m.logger.Info("selected photo removed, closing viewer")
	}
	m.logger.Info("dataset reloaded", "items", len(msg.items))
	m.relayoutDue = true
}

// relayout runs a full layout pass over the current order and hands the
// difference to the animator.
func (m *Model) relayout() {
	if m.width == 0 {
		return
	}
	res, err := m.memo.Compute(m.ctx, m.shuffler.Items(), m.resolver.Value(), m.viewportPx())
	if err != nil {
		m.err = err
		m.logger.Error("layout failed", "err", err)
		return
	}
	m.anim.Apply(m.ctrl.Diff(m.result.Placements, res.Placements, m.hovered))
	if !m.cfg.Motion.Enabled {
		m.anim.Snap()
	}
	m.result = res
	m.scrollBy(0)
}

// animate starts the frame ticker unless it is already running.
func (m *Model) animate() tea.Cmd {
	if m.animating || m.anim.Settled() {
		return nil
	}
	m.animating = true
	return m.frame()
}

func (m *Model) viewportPx() float64 {
	return float64(m.width) * m.cfg.Layout.CellWidthPx
}

func (m *Model) gridRows() int {
	return max(m.height-headerRows-footerRows, 1)
}

func (m *Model) contentRows() int {
	return int(math.Ceil(m.result.Height / m.cfg.Layout.CellHeightPx))
}

func (m *Model) scrollBy(d int) {
	m.scroll = min(max(m.scroll+d, 0), max(m.contentRows()-m.gridRows(), 0))
}

// tileAt returns the id of the tile under the terminal cell (x, y).
func (m *Model) tileAt(x, y int) string {
	row := y - headerRows
	if row < 0 || row >= m.gridRows() {
		return ""
	}
	px := (float64(x) + 0.5) * m.cfg.Layout.CellWidthPx
	py := (float64(row+m.scroll) + 0.5) * m.cfg.Layout.CellHeightPx
	id, _ := m.result.Hit(px, py)
	return id
}
