package app

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/motion"
	"github.com/matzehuels/mosaic/pkg/sink"
)

var (
	colorCyan = lipgloss.Color("36")
	colorRed  = lipgloss.Color("167")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleStatus   = lipgloss.NewStyle().Foreground(colorGray)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)
	styleEnabled  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDisabled = lipgloss.NewStyle().Foreground(colorDim)
	styleBox      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCyan)
)

// Lightbox size limits in cells, border included.
const (
	lightboxMaxWidth  = 64
	lightboxMaxHeight = 18
)

// View renders the status line, the mosaic or lightbox, and the key help.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	var body string
	if m.viewer.IsOpen() {
		body = m.renderLightbox()
	} else {
		body = m.renderGrid()
	}

	var help string
	if m.viewer.IsOpen() {
		help = m.help.View(lightboxKeys{keys})
	} else {
		help = m.help.View(mosaicKeys{keys})
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(), body, help)
}

func (m *Model) renderStatus() string {
	if m.err != nil {
		return styleError.Render(truncate("error: "+m.err.Error(), m.width))
	}
	state := fmt.Sprintf("shuffle every %s", m.cfg.Shuffle.Interval)
	switch {
	case !m.cfg.Shuffle.Enabled:
		state = "shuffle off"
	case !m.shuffler.Running():
		state = "shuffle paused"
	}
	status := fmt.Sprintf(" %d photos · %d columns · %s", len(m.canonical), m.resolver.Value(), state)
	return truncate(styleTitle.Render(buildinfo.Short())+styleStatus.Render(status), m.width)
}

type cell struct {
	ch    rune
	color string
}

// shade maps opacity onto block characters of decreasing density.
func shade(opacity float64) rune {
	switch {
	case opacity >= 0.75:
		return '█'
	case opacity >= 0.5:
		return '▓'
	case opacity >= 0.25:
		return '▒'
	default:
		return '░'
	}
}

// renderGrid draws the current animation frame.
func (m *Model) renderGrid() string {
	grid := m.frameCells()
	lines := make([]string, len(grid))
	for y, row := range grid {
		lines[y] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

// frameCells rasterises the current animation frame into terminal cells.
// One cell column is left free on the right of each tile as a gutter.
func (m *Model) frameCells() [][]cell {
	rows, cols := m.gridRows(), m.width
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
	}

	cw, ch := m.cfg.Layout.CellWidthPx, m.cfg.Layout.CellHeightPx
	for _, sp := range m.drawOrder() {
		s := sp.Style
		if s.Opacity <= 0.02 || s.Width <= 0 || s.Height <= 0 {
			continue
		}
		x0 := int(math.Round(s.X / cw))
		x1 := max(int(math.Round((s.X+s.Width)/cw))-1, x0+1)
		y0 := int(math.Round(s.Y/ch)) - m.scroll
		y1 := max(int(math.Round((s.Y+s.Height)/ch))-m.scroll, y0+1)

		c := cell{ch: shade(s.Opacity), color: sink.TileColor(sp.ID)}
		for y := max(y0, 0); y < min(y1, rows); y++ {
			for x := max(x0, 0); x < min(x1, cols); x++ {
				grid[y][x] = c
			}
		}
	}

	return grid
}

// drawOrder returns the frame with the hovered tile last, so its enlarged
// box is drawn over its neighbours.
func (m *Model) drawOrder() []motion.Sprite {
	frame := m.anim.Frame()
	if m.hovered == "" {
		return frame
	}
	i := slices.IndexFunc(frame, func(s motion.Sprite) bool { return s.ID == m.hovered })
	if i < 0 {
		return frame
	}
	h := frame[i]
	frame = append(frame[:i], frame[i+1:]...)
	return append(frame, h)
}

// renderRow styles runs of same-coloured cells together.
func renderRow(row []cell) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].color == row[i].color {
			if row[j].ch == 0 {
				run.WriteByte(' ')
			} else {
				run.WriteRune(row[j].ch)
			}
			j++
		}
		if row[i].color == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row[i].color)).Render(run.String()))
		}
		i = j
	}
	return b.String()
}

// Labels of the lightbox navigation controls.
const (
	prevLabel = "‹ prev"
	nextLabel = "next ›"
)

// lightboxRect returns the lightbox position and size in cells, border
// included.
func (m *Model) lightboxRect() (x, y, w, h int) {
	w = max(min(lightboxMaxWidth, m.width-4), 8)
	h = max(min(lightboxMaxHeight, m.gridRows()-2), 6)
	x = int(math.Round(float64(m.width-w) / 2))
	y = headerRows + int(math.Round(float64(m.gridRows()-h)/2))
	return x, y, w, h
}

// inLightbox reports whether the terminal cell (x, y) is on the lightbox.
func (m *Model) inLightbox(x, y int) bool {
	bx, by, bw, bh := m.lightboxRect()
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}

// navAt reports which navigation control covers the terminal cell (x, y):
// -1 for prev, +1 for next, 0 for neither. The controls sit at the two ends
// of the last row inside the border.
func (m *Model) navAt(x, y int) int {
	bx, by, bw, bh := m.lightboxRect()
	if y != by+bh-2 {
		return 0
	}
	switch {
	case x >= bx+1 && x < bx+1+lipgloss.Width(prevLabel):
		return -1
	case x >= bx+bw-1-lipgloss.Width(nextLabel) && x < bx+bw-1:
		return 1
	}
	return 0
}

// renderLightbox draws the selected photo over the dimmed mosaic.
func (m *Model) renderLightbox() string {
	id, index, _ := m.viewer.Selected()
	_, _, w, h := m.lightboxRect()
	innerW, innerH := w-2, h-2

	image := id
	for _, it := range m.canonical {
		if it.ID == id {
			image = it.Image
			break
		}
	}

	prev := styleDisabled.Render(prevLabel)
	if m.viewer.HasPrev() {
		prev = styleEnabled.Render(prevLabel)
	}
	next := styleDisabled.Render(nextLabel)
	if m.viewer.HasNext() {
		next = styleEnabled.Render(nextLabel)
	}
	counter := fmt.Sprintf("%d / %d", index+1, m.viewer.Len())
	gap := max(innerW-lipgloss.Width(prev)-lipgloss.Width(next)-lipgloss.Width(counter), 2)
	nav := prev + strings.Repeat(" ", gap/2) + counter + strings.Repeat(" ", gap-gap/2) + next

	previewRows := max(innerH-3, 1)
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(sink.TileColor(id))).
		Render(strings.Repeat(strings.Repeat("█", innerW)+"\n", previewRows-1) + strings.Repeat("█", innerW))

	content := lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render(truncate(image, innerW)),
		block,
		"",
		nav,
	)
	box := strings.Split(styleBox.Width(innerW).Height(innerH).Render(content), "\n")

	return m.overlay(box)
}

// overlay draws box over the current frame, with every tile in the dim
// colour.
func (m *Model) overlay(box []string) string {
	bx, by, bw, _ := m.lightboxRect()
	top := by - headerRows

	grid := m.frameCells()
	lines := make([]string, len(grid))
	for y, row := range grid {
		for x := range row {
			if row[x].ch != 0 {
				row[x].color = string(colorDim)
			}
		}
		i := y - top
		if i < 0 || i >= len(box) {
			lines[y] = renderRow(row)
			continue
		}
		left := min(bx, len(row))
		right := min(bx+bw, len(row))
		lines[y] = renderRow(row[:left]) + box[i] + renderRow(row[right:])
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(s)
}
