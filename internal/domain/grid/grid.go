package grid

import "image"

// Layout is the column and row count of the grid.
type Layout struct {
	Columns int
	Rows    int
}

// DefaultLayout is the 5x8 grid of the original face.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultLayout = Layout{Columns: 5, Rows: 8}

// Cell is one grid position and its fill state.
type Cell struct {
	Row    int
	Column int
	Index  int
	Filled bool
}

// Total returns the number of cells in the grid.
func (l Layout) Total() int {
	return l.Columns * l.Rows
}

// Index returns the fill index of the cell at row, col.
func (l Layout) Index(row, col int) int {
	return l.Total() - (row*l.Columns + col)
}

// Filled reports whether the cell at row, col is lit for minutesLeft.
func (l Layout) Filled(minutesLeft, row, col int) bool {
	return minutesLeft >= l.Index(row, col)
}

// Cells returns every cell in raster order with its fill state.
func (l Layout) Cells(minutesLeft int) []Cell {
	cells := make([]Cell, 0, l.Total())

	for row := range l.Rows {
		for col := range l.Columns {
			cells = append(cells, Cell{
				Row:    row,
				Column: col,
				Index:  l.Index(row, col),
				Filled: l.Filled(minutesLeft, row, col),
			})
		}
	}

	return cells
}

// CellsToFill returns how many cells are lit for minutesLeft, clamped to [0, total].
func CellsToFill(minutesLeft, total int) int {
	return max(0, min(minutesLeft, total))
}

// Geometry places cells on screen, in pixels.
type Geometry struct {
	CellWidth    int
	CellHeight   int
	OffsetX      int
	OffsetY      int
	CornerRadius int
}

// DefaultGeometry matches the 144x168 screen of the original face.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultGeometry = Geometry{
	CellWidth:    24,
	CellHeight:   12,
	OffsetX:      4,
	OffsetY:      4,
	CornerRadius: 2,
}

// Rect returns the screen rectangle of the cell at row, col.
func (g Geometry) Rect(row, col int) image.Rectangle {
	x := g.OffsetX + col*(g.CellWidth+g.OffsetX)
	y := g.OffsetY + row*(g.CellHeight+g.OffsetY)

	return image.Rect(x, y, x+g.CellWidth, y+g.CellHeight)
}

// Bounds returns the rectangle covering every cell of l.
func (g Geometry) Bounds(l Layout) image.Rectangle {
	return g.Rect(0, 0).Union(g.Rect(l.Rows-1, l.Columns-1))
}
