package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arknotes/internal/adapters/tui/styles"
	"arknotes/internal/application/workspace"
	"arknotes/internal/domain"
)

type cellStyle uint8

const (
	styleBlank cellStyle = iota
	styleDot
	styleFrame
	styleFocused
	styleTitle
	styleContent
	stylePreview
	styleControl
	styleDelete
	styleHandle
)

func (s cellStyle) style() lipgloss.Style {
	switch s {
	case styleDot:
		return styles.CanvasDot
	case styleFrame:
		return styles.NoteFrame
	case styleFocused:
		return styles.NoteFrameFocused
	case styleTitle:
		return styles.NoteTitle
	case styleContent:
		return styles.NoteContent
	case stylePreview:
		return styles.NotePreview
	case styleControl:
		return styles.NoteControl
	case styleDelete:
		return styles.NoteDelete
	case styleHandle:
		return styles.NoteHandle
	default:
		return lipgloss.NewStyle()
	}
}

// canvas is a grid of cells painted back to front
type canvas struct {
	cols, rows int
	runes      [][]rune
	kinds      [][]cellStyle
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	c := &canvas{cols: cols, rows: rows, runes: make([][]rune, rows), kinds: make([][]cellStyle, rows)}
	for r := range rows {
		c.runes[r] = []rune(strings.Repeat(" ", cols))
		c.kinds[r] = make([]cellStyle, cols)
	}
	return c
}

func (c *canvas) set(col, row int, r rune, s cellStyle) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.runes[row][col] = r
	c.kinds[row][col] = s
}

// text writes s from col onwards, at most n cells
func (c *canvas) text(col, row int, s string, n int, st cellStyle) {
	i := 0
	for _, r := range s {
		if i >= n {
			return
		}
		if r == '\t' || r < ' ' {
			r = ' '
		}
		c.set(col+i, row, r, st)
		i++
	}
}

// dots marks grid intersections of the workspace, following scroll and zoom
func (c *canvas) dots(layout workspace.Layout, vp workspace.Viewport, gridSize int) {
	if gridSize <= 0 {
		return
	}
	step := float64(gridSize) * vp.Transform.Scale
	if step < layout.Cell.Width || step < layout.Cell.Height {
		return
	}
	onLine := func(cell int, size, scroll float64) bool {
		pos := math.Mod(float64(cell)*size+scroll, step)
		if pos < 0 {
			pos += step
		}
		return pos < size
	}
	for row := range c.rows {
		if !onLine(row, layout.Cell.Height, vp.Scroll.Y) {
			continue
		}
		for col := range c.cols {
			if onLine(col, layout.Cell.Width, vp.Scroll.X) {
				c.set(col, row, '·', styleDot)
			}
		}
	}
}

// note paints one note frame with its header controls, body lines and resize handle
func (c *canvas) note(pn workspace.PlacedNote, focused bool, body []string) {
	f := pn.Frame
	border := styleFrame
	if focused {
		border = styleFocused
	}

	if f.Cols < 2 || f.Rows < 2 {
		for r := range f.Rows {
			for col := range f.Cols {
				c.set(f.Col+col, f.Row+r, '▪', border)
			}
		}
		return
	}

	last, bottom := f.Cols-1, f.Rows-1
	for col := 1; col < last; col++ {
		c.set(f.Col+col, f.Row, '─', border)
		c.set(f.Col+col, f.Row+bottom, '─', border)
	}
	c.set(f.Col, f.Row, '┌', border)
	c.set(f.Col+last, f.Row, '┐', border)
	c.set(f.Col, f.Row+bottom, '└', border)
	for r := 1; r < bottom; r++ {
		c.set(f.Col, f.Row+r, '│', border)
		c.set(f.Col+last, f.Row+r, '│', border)
		for col := 1; col < last; col++ {
			c.set(f.Col+col, f.Row+r, ' ', styleContent)
		}
	}

	if tc := f.TitleCells(pn.Note.Title); tc > 0 {
		c.set(f.Col+workspace.TitleOffset-1, f.Row, ' ', border)
		c.text(f.Col+workspace.TitleOffset, f.Row, pn.Note.Title, tc, styleTitle)
	}
	if cs := f.ControlsStart(); cs >= 0 {
		toggle := "[p]"
		if pn.Note.ViewMode == domain.ViewModePreview {
			toggle = "[m]"
		}
		c.text(f.Col+cs, f.Row, toggle, workspace.ControlCells, styleControl)
		c.text(f.Col+cs+workspace.ControlCells, f.Row, "[e]", workspace.ControlCells, styleControl)
		c.text(f.Col+cs+2*workspace.ControlCells, f.Row, "[x]", workspace.ControlCells, styleDelete)
	}

	content := styleContent
	if pn.Note.ViewMode == domain.ViewModePreview {
		content = stylePreview
	}
	cc, cr, ccols, crows := f.ContentRect()
	for i, line := range body {
		if i >= crows {
			break
		}
		c.text(f.Col+cc, f.Row+cr+i, line, ccols, content)
	}

	for i := workspace.HandleCells; i > 1; i-- {
		c.set(f.Col+f.Cols-i, f.Row+bottom, '─', styleHandle)
	}
	c.set(f.Col+last, f.Row+bottom, '◢', styleHandle)
}

// String renders the grid, styling runs of equal cells together
func (c *canvas) String() string {
	var b strings.Builder
	for r := range c.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for col := 1; col <= c.cols; col++ {
			if col < c.cols && c.kinds[r][col] == c.kinds[r][start] {
				continue
			}
			run := string(c.runes[r][start:col])
			if k := c.kinds[r][start]; k == styleBlank {
				b.WriteString(run)
			} else {
				b.WriteString(k.style().Render(run))
			}
			start = col
		}
	}
	return b.String()
}

// Plain returns the grid without styling
func (c *canvas) Plain() string {
	lines := make([]string, c.rows)
	for r := range c.rows {
		lines[r] = string(c.runes[r])
	}
	return strings.Join(lines, "\n")
}

// wrapLines hard-wraps text to width cells per line
func wrapLines(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(strings.TrimRight(line, "\r"))
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > width {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		out = append(out, string(runes))
	}
	return out
}
