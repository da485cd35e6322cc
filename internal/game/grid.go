// internal/game/grid.go
//
// Guess grid: a fixed rows×cols matrix of optional letters.
//
// Invariants:
//   - Cells fill in strict row-major order. A cell is never set while an
//     earlier cell is empty, so the cursor is always the first empty cell.
//   - Only Insert and Delete mutate cells (Reset clears everything).
//
// The zero rune marks an empty cell.

package game

// Grid holds the letters entered so far.
type Grid struct {
	rows, cols int
	cells      []rune // row-major, len rows*cols
	filled     int    // number of non-empty cells == index of the cursor
}

// NewGrid returns an empty grid. Non-positive dimensions fall back to defaults.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return &Grid{rows: rows, cols: cols, cells: make([]rune, rows*cols)}
}

func (g *Grid) Rows() int   { return g.rows }
func (g *Grid) Cols() int   { return g.cols }
func (g *Grid) Filled() int { return g.filled }

// Insert writes ch into the first empty cell.
// Returns ErrGridFull (and changes nothing) when every cell is taken.
// The grid does not validate ch beyond refusing the empty marker; alphabet
// policy belongs to the controller.
func (g *Grid) Insert(ch rune) error {
	if ch == 0 {
		return ErrInvalidLetter
	}
	if g.filled == len(g.cells) {
		return ErrGridFull
	}
	g.cells[g.filled] = ch
	g.filled++
	return nil
}

// Delete clears the most recently filled cell. When the cursor sits at the
// start of a row this is the previous row's last column. Reports false on an
// empty grid.
func (g *Grid) Delete() bool {
	if g.filled == 0 {
		return false
	}
	g.filled--
	g.cells[g.filled] = 0
	return true
}

// IsRowComplete reports whether every cell of row is filled.
// Out-of-range rows are never complete.
func (g *Grid) IsRowComplete(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	return g.filled >= (row+1)*g.cols
}

// IsFull reports whether the last cell of the last row is set.
func (g *Grid) IsFull() bool {
	return g.filled == len(g.cells)
}

// CurrentRow is the row holding the cursor, or the last row when full.
func (g *Grid) CurrentRow() int {
	if g.filled == len(g.cells) {
		return g.rows - 1
	}
	return g.filled / g.cols
}

// At returns the letter at (row, col), 0 when empty or out of range.
func (g *Grid) At(row, col int) rune {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0
	}
	return g.cells[row*g.cols+col]
}

// Row returns a copy of one row.
func (g *Grid) Row(row int) []rune {
	out := make([]rune, g.cols)
	if row < 0 || row >= g.rows {
		return out
	}
	copy(out, g.cells[row*g.cols:(row+1)*g.cols])
	return out
}

// Snapshot returns a deep copy of the grid as rows of cells.
func (g *Grid) Snapshot() [][]rune {
	out := make([][]rune, g.rows)
	for r := range out {
		out[r] = g.Row(r)
	}
	return out
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.cells)
	g.filled = 0
}
