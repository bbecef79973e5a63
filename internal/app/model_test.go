package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/mosaic/internal/config"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/shuffle"
)

func testItems(n int) []masonry.Item {
	out := make([]masonry.Item, n)
	for i := range out {
		out[i] = masonry.Item{
			ID:            fmt.Sprintf("p%02d", i),
			Image:         fmt.Sprintf("photos/%02d.jpg", i),
			NaturalHeight: float64(200 + 40*(i%5)),
		}
	}
	return out
}

func newTestModel(t *testing.T, n int) (*Model, *clockwork.FakeClock) {
	t.Helper()
	cfg := config.Default()
	cfg.Motion.Enabled = false
	cfg.Shuffle.Seed = 1
	clock := clockwork.NewFakeClock()

	m, err := New(Options{Items: testItems(n), Config: cfg, Clock: clock})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(m.Close)

	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, clock
}

// cellOf returns a terminal cell inside the placement of id.
func cellOf(t *testing.T, m *Model, id string) (x, y int) {
	t.Helper()
	p, ok := m.result.Index()[id]
	if !ok {
		t.Fatalf("no placement for %s", id)
	}
	x = int((p.X + p.Width/2) / m.cfg.Layout.CellWidthPx)
	y = headerRows + int(p.Y/m.cfg.Layout.CellHeightPx) + 1 - m.scroll
	return x, y
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func drag(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestWindowSizeResolvesColumns(t *testing.T) {
	m, _ := newTestModel(t, 12)

	tests := []struct {
		width int
		want  int
	}{
		{100, 3}, // 800px
		{200, 5}, // 1600px
		{130, 4}, // 1040px
		{50, 2},  // 400px
	}
	for _, tt := range tests {
		m.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
		if got := len(m.result.Columns); got != tt.want {
			t.Errorf("width %d cells: %d columns, want %d", tt.width, got, tt.want)
		}
		if got := m.result.Width; got != float64(tt.width)*8 {
			t.Errorf("layout width = %v, want %v", got, float64(tt.width)*8)
		}
	}
	if len(m.result.Placements) != 12 {
		t.Errorf("placements = %d, want 12", len(m.result.Placements))
	}
}

func TestClickTileOpensLightboxAndPauses(t *testing.T) {
	m, _ := newTestModel(t, 12)
	id := m.result.Placements[0].ID

	m.Update(press(cellOf(t, m, id)))

	got, _, ok := m.viewer.Selected()
	if !ok || got != id {
		t.Fatalf("Selected() = %q, %v; want %q", got, ok, id)
	}
	if m.shuffler.Running() {
		t.Error("shuffle should pause while the lightbox is open")
	}
	if !strings.Contains(m.View(), "shuffle paused") {
		t.Error("status should show the paused shuffle")
	}
}

func TestEscapeClosesAndShufflesOnce(t *testing.T) {
	m, _ := newTestModel(t, 12)
	m.viewer.Select("p03")

	m.Update(keyMsg(tea.KeyEsc))

	if m.viewer.IsOpen() {
		t.Fatal("esc should close the lightbox")
	}
	if m.shuffler.Shuffles() != 1 {
		t.Errorf("Shuffles() = %d, want one immediate shuffle", m.shuffler.Shuffles())
	}
	if !m.shuffler.Running() {
		t.Error("shuffle should resume after close")
	}
}

func TestArrowKeysNavigate(t *testing.T) {
	m, _ := newTestModel(t, 5)
	m.viewer.Select("p02")

	for _, k := range []tea.KeyType{tea.KeyRight, tea.KeyRight, tea.KeyRight} {
		m.Update(keyMsg(k))
	}
	if _, i, _ := m.viewer.Selected(); i != 4 {
		t.Errorf("index after three rights = %d, want 4", i)
	}

	m.Update(keyMsg(tea.KeyLeft))
	if _, i, _ := m.viewer.Selected(); i != 3 {
		t.Errorf("index after left = %d, want 3", i)
	}
	if !strings.Contains(m.View(), "4 / 5") {
		t.Error("view should show the counter")
	}
}

func TestDragSwipesOnce(t *testing.T) {
	m, _ := newTestModel(t, 5)
	m.viewer.Select("p01")

	// 10 cells at 8px is 80px, past the 50px threshold.
	m.Update(press(60, 5))
	m.Update(drag(50, 5))
	m.Update(drag(30, 5))
	m.Update(release(30, 5))

	if _, i, _ := m.viewer.Selected(); i != 2 {
		t.Errorf("index = %d, want 2 (one swipe)", i)
	}
	if !m.viewer.IsOpen() {
		t.Error("a swipe must not close the lightbox")
	}
}

func TestClickImageKeepsOpenBackdropCloses(t *testing.T) {
	m, _ := newTestModel(t, 5)
	m.viewer.Select("p01")

	bx, by, bw, bh := m.lightboxRect()
	cx, cy := bx+bw/2, by+bh/2
	m.Update(press(cx, cy))
	m.Update(release(cx, cy))
	if !m.viewer.IsOpen() {
		t.Fatal("click on the image must not close")
	}

	m.Update(press(0, headerRows))
	m.Update(release(0, headerRows))
	if m.viewer.IsOpen() {
		t.Error("click on the backdrop should close")
	}
}

func TestClickNavControls(t *testing.T) {
	m, _ := newTestModel(t, 5)
	bx, by, bw, bh := m.lightboxRect()
	row := by + bh - 2
	prevX, nextX := bx+2, bx+bw-3

	tests := []struct {
		name   string
		start  string
		x      int
		wantIx int
	}{
		{"next from middle", "p01", nextX, 2},
		{"prev from middle", "p02", prevX, 1},
		{"prev at first", "p00", prevX, 0},
		{"next at last", "p04", nextX, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.viewer.Select(tt.start)
			m.Update(press(tt.x, row))
			m.Update(release(tt.x, row))

			_, i, ok := m.viewer.Selected()
			if !ok {
				t.Fatal("clicking a nav control must not close the lightbox")
			}
			if i != tt.wantIx {
				t.Errorf("index = %d, want %d", i, tt.wantIx)
			}
		})
	}
}

func TestNavAt(t *testing.T) {
	m, _ := newTestModel(t, 5)
	bx, by, bw, bh := m.lightboxRect()
	row := by + bh - 2

	tests := []struct {
		x, y int
		want int
	}{
		{bx + 1, row, -1},
		{bx + 6, row, -1},
		{bx + 7, row, 0},
		{bx + bw/2, row, 0},
		{bx + bw - 8, row, 0},
		{bx + bw - 7, row, 1},
		{bx + bw - 2, row, 1},
		{bx + bw - 1, row, 0},
		{bx + 2, row - 1, 0},
	}
	for _, tt := range tests {
		if got := m.navAt(tt.x, tt.y); got != tt.want {
			t.Errorf("navAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestLightboxDimsMosaic(t *testing.T) {
	m, _ := newTestModel(t, 12)
	m.viewer.Select("p00")

	view := m.View()
	// The first grid row lies above the box.
	if lines := strings.Split(view, "\n"); !strings.Contains(lines[headerRows], "█") {
		t.Error("open lightbox should keep the mosaic visible behind it")
	}
	if strings.Contains(view, "░") {
		t.Error("backdrop should be the dimmed mosaic, not a fill pattern")
	}
	if !strings.Contains(view, prevLabel) || !strings.Contains(view, nextLabel) {
		t.Error("nav controls missing")
	}
	if !strings.Contains(view, "1 / 12") {
		t.Error("counter missing")
	}
}

func TestHoverSetsHoveredTile(t *testing.T) {
	m, _ := newTestModel(t, 6)
	id := m.result.Placements[1].ID
	x, y := cellOf(t, m, id)

	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if m.hovered != id {
		t.Errorf("hovered = %q, want %q", m.hovered, id)
	}

	var width float64
	for _, s := range m.anim.Frame() {
		if s.ID == id {
			width = s.Style.Width
		}
	}
	p := m.result.Index()[id]
	if want := p.Width * 1.1; width < want-1e-6 || width > want+1e-6 {
		t.Errorf("hovered width = %v, want %v", width, want)
	}
}

func TestShuffleTickRelayouts(t *testing.T) {
	m, clock := newTestModel(t, 12)

	clock.Advance(m.cfg.Shuffle.Interval)
	var tk shuffle.Tick
	select {
	case tk = <-m.ticks:
	case <-time.After(time.Second):
		t.Fatal("no tick delivered")
	}

	m.Update(shuffleMsg(tk))
	if m.shuffler.Shuffles() != 1 {
		t.Errorf("Shuffles() = %d, want 1", m.shuffler.Shuffles())
	}
	if len(m.result.Placements) != 12 {
		t.Errorf("placements = %d, want 12", len(m.result.Placements))
	}
}

func TestTickWhileOpenIsIgnored(t *testing.T) {
	m, clock := newTestModel(t, 12)
	clock.Advance(m.cfg.Shuffle.Interval)
	tk := <-m.ticks

	m.viewer.Select("p00")
	m.Update(shuffleMsg(tk))
	if m.shuffler.Shuffles() != 0 {
		t.Errorf("tick queued before open should be dropped, Shuffles() = %d", m.shuffler.Shuffles())
	}
}

func TestDatasetReloadClosesWhenSelectionRemoved(t *testing.T) {
	m, _ := newTestModel(t, 6)
	m.viewer.Select("p05")

	m.Update(datasetMsg{items: testItems(3)})

	if m.viewer.IsOpen() {
		t.Error("lightbox should close when its photo disappears")
	}
	if len(m.result.Placements) != 3 {
		t.Errorf("placements = %d, want 3", len(m.result.Placements))
	}
}

func TestDatasetReloadErrorKeepsState(t *testing.T) {
	m, _ := newTestModel(t, 6)
	m.Update(datasetMsg{err: errors.New(errors.ErrCodeInvalidDataset, "bad file")})

	if len(m.result.Placements) != 6 {
		t.Errorf("placements = %d, want 6", len(m.result.Placements))
	}
	if !strings.Contains(m.View(), "bad file") {
		t.Error("status line should show the reload error")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.CellWidthPx = 0
	if _, err := New(Options{Config: cfg}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("New error = %v, want INVALID_CONFIG", err)
	}
}

func TestQuitTearsDown(t *testing.T) {
	m, _ := newTestModel(t, 3)
	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.shuffler.Running() {
		t.Error("scheduler should be stopped on quit")
	}
}
