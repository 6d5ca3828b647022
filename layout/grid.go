package layout

import "math"

// Grid is the row and column count of the chord diagram grid.
type Grid struct {
	Rows    int
	Columns int
}

// Capacity is how many diagrams the grid holds.
func (g Grid) Capacity() int { return g.Rows * g.Columns }

// PackGrid chooses the grid for n diagrams of cellW by cellH in an area of
// width by height. Horizontal grids fill the width first, vertical grids
// fill the height first. The grid only grows as far as the area allows.
func PackGrid(n int, cellW, cellH, width, height float64, vertical bool) (Grid, error) {
	if n == 0 {
		return Grid{}, nil
	}
	maxCols := int(math.Floor(width / cellW))
	maxRows := int(math.Floor(height / cellH))
	if capacity := maxCols * maxRows; capacity < n {
		return Grid{}, &LayoutError{
			Msg: "chord grid too small",
			Err: &capacityError{chords: n, capacity: capacity},
		}
	}
	var g Grid
	if vertical {
		g.Rows = minOf(n, maxRows)
		g.Columns = ceilDiv(n, g.Rows)
	} else {
		g.Columns = minOf(n, maxCols)
		g.Rows = ceilDiv(n, g.Columns)
	}
	return g, nil
}

// cell is the top left corner of diagram i inside a grid at x, y. Vertical
// grids are filled column by column.
func (g Grid) cell(i int, x, y, cellW, cellH float64, vertical bool) (float64, float64) {
	row, col := i/g.Columns, i%g.Columns
	if vertical {
		row, col = i%g.Rows, i/g.Rows
	}
	return x + float64(col)*cellW, y + float64(row)*cellH
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
