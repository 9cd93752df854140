package workspace

import (
	"math"
	"sort"
	"unicode/utf8"

	"arknotes/internal/domain"
)

// Cell geometry of a note frame, shared by hit-testing and rendering
const (
	TitleOffset  = 2 // cells before the title in the header row
	ControlCells = 3 // width of one control button
	HandleCells  = 2 // width of the resize handle in the bottom row
)

// Controls in header order, left to right
var controlRegions = []Region{RegionToggle, RegionEdit, RegionDelete}

// Region is the part of the canvas a pointer press landed on
type Region int

const (
	RegionNone Region = iota
	RegionCanvas
	RegionBody
	RegionTitle
	RegionContent
	RegionToggle
	RegionEdit
	RegionDelete
	RegionResize
)

func (r Region) String() string {
	switch r {
	case RegionCanvas:
		return "canvas"
	case RegionBody:
		return "body"
	case RegionTitle:
		return "title"
	case RegionContent:
		return "content"
	case RegionToggle:
		return "toggle"
	case RegionEdit:
		return "edit"
	case RegionDelete:
		return "delete"
	case RegionResize:
		return "resize"
	default:
		return "none"
	}
}

// Layout maps screen pixels onto terminal cells
type Layout struct {
	Cell domain.Size
}

// DefaultLayout is 10x20 screen pixels per cell
func DefaultLayout() Layout {
	return Layout{Cell: domain.Size{Width: 10, Height: 20}}
}

// Frame is a note's footprint in cells, relative to the canvas origin
type Frame struct {
	Col, Row   int
	Cols, Rows int
}

// Contains reports whether the cell lies inside the frame
func (f Frame) Contains(col, row int) bool {
	return col >= f.Col && col < f.Col+f.Cols && row >= f.Row && row < f.Row+f.Rows
}

// ControlsStart returns the first column of the control buttons relative to the
// frame, or -1 when the frame is too narrow to show them.
func (f Frame) ControlsStart() int {
	start := f.Cols - 1 - len(controlRegions)*ControlCells
	if start < TitleOffset+1 {
		return -1
	}
	return start
}

// TitleCells returns how many header cells the title occupies. An empty title
// still gets one cell so it can be clicked.
func (f Frame) TitleCells(title string) int {
	end := f.Cols - 1
	if cs := f.ControlsStart(); cs >= 0 {
		end = cs - 1
	}
	avail := end - TitleOffset
	if avail <= 0 {
		return 0
	}
	n := utf8.RuneCountInString(title)
	if n < 1 {
		n = 1
	}
	return min(n, avail)
}

// ContentRect returns the inner cells below the header, relative to the frame
func (f Frame) ContentRect() (col, row, cols, rows int) {
	return 1, 1, max(f.Cols-2, 0), max(f.Rows-2, 0)
}

// CellAt converts a screen pixel position into a cell
func (l Layout) CellAt(p domain.Vec) (col, row int) {
	return int(math.Floor(p.X / l.Cell.Width)), int(math.Floor(p.Y / l.Cell.Height))
}

// CellOrigin converts a cell back into the screen pixel position of its top-left corner
func (l Layout) CellOrigin(col, row int) domain.Vec {
	return domain.Vec{X: float64(col) * l.Cell.Width, Y: float64(row) * l.Cell.Height}
}

// Frame places a note on the cell grid under the viewport
func (l Layout) Frame(n domain.Note, vp Viewport) Frame {
	origin := domain.WorkspaceToScreen(n.Position(), vp.Scroll, vp.Transform)
	col, row := l.CellAt(origin)
	scale := vp.Transform.Scale
	return Frame{
		Col:  col,
		Row:  row,
		Cols: max(1, int(math.Round(n.Width*scale/l.Cell.Width))),
		Rows: max(1, int(math.Round(n.Height*scale/l.Cell.Height))),
	}
}

// Region classifies a cell inside a note's frame. Disjoint regions are checked
// handle first, then controls, title, content; the rest of the frame is body.
func (l Layout) Region(f Frame, n domain.Note, col, row int) Region {
	if !f.Contains(col, row) {
		return RegionNone
	}
	c, r := col-f.Col, row-f.Row

	if r == f.Rows-1 && c >= f.Cols-HandleCells {
		return RegionResize
	}
	if r == 0 {
		if cs := f.ControlsStart(); cs >= 0 && c >= cs && c < f.Cols-1 {
			return controlRegions[(c-cs)/ControlCells]
		}
		if tc := f.TitleCells(n.Title); c >= TitleOffset && c < TitleOffset+tc {
			return RegionTitle
		}
		return RegionBody
	}
	cc, cr, ccols, crows := f.ContentRect()
	if c >= cc && c < cc+ccols && r >= cr && r < cr+crows {
		return RegionContent
	}
	return RegionBody
}

// PaintOrder returns note indices bottom-most first: ascending zIndex, ties in
// stored order.
func PaintOrder(notes []domain.Note) []int {
	order := make([]int, len(notes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return notes[order[a]].ZIndex < notes[order[b]].ZIndex
	})
	return order
}
