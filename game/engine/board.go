package engine

// Board is the square grid the game is played on.
type Board struct {
	size  int
	cells [][]Cell
}

// NewBoard creates an empty size×size board.
func NewBoard(size int) *Board {
	cells := make([][]Cell, size)
	for row := range cells {
		cells[row] = make([]Cell, size)
	}
	return &Board{size: size, cells: cells}
}

// Size returns the board edge length.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether p addresses a cell on the board.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// At returns the cell at p, or an empty cell and false out of bounds.
func (b *Board) At(p Position) (Cell, bool) {
	if !b.InBounds(p) {
		return Cell{}, false
	}
	return b.cells[p.Row][p.Col], true
}

// ColorAt returns the color of the ball at p and whether a ball is there.
func (b *Board) ColorAt(p Position) (Color, bool) {
	cell, ok := b.At(p)
	if !ok || !cell.Occupied {
		return 0, false
	}
	return cell.Color, true
}

// IsEmpty reports whether p is on the board and holds no ball.
func (b *Board) IsEmpty(p Position) bool {
	cell, ok := b.At(p)
	return ok && !cell.Occupied
}

// Place puts a ball of the given color at p. It reports false without
// changing the board when p is out of bounds or already occupied.
func (b *Board) Place(p Position, color Color) bool {
	if !b.InBounds(p) || b.cells[p.Row][p.Col].Occupied {
		return false
	}
	b.cells[p.Row][p.Col] = Cell{Color: color, Occupied: true}
	return true
}

// Remove clears the cell at p. Removing an empty or out-of-bounds cell is
// a no-op.
func (b *Board) Remove(p Position) {
	if !b.InBounds(p) {
		return
	}
	b.cells[p.Row][p.Col] = Cell{}
}

// EmptyCells returns every empty position in row-major order.
func (b *Board) EmptyCells() []Position {
	var empty []Position
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if !b.cells[row][col].Occupied {
				empty = append(empty, Position{Row: row, Col: col})
			}
		}
	}
	return empty
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	count := 0
	for row := range b.cells {
		for col := range b.cells[row] {
			if !b.cells[row][col].Occupied {
				count++
			}
		}
	}
	return count
}

// BallCount returns the number of occupied cells.
func (b *Board) BallCount() int {
	return b.size*b.size - b.EmptyCount()
}

// Cells returns a deep copy of the grid for serialization.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.size)
	for row := range b.cells {
		out[row] = make([]Cell, b.size)
		copy(out[row], b.cells[row])
	}
	return out
}
