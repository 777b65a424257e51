package engine

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds   = errors.New("cell is outside the board")
	ErrInvalidConfig = errors.New("invalid game configuration")
)

// Move is a zero-based (row, col) coordinate on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board holds the size×size grid of player ids, 0 meaning an empty cell.
type Board struct {
	size  int
	cells [][]int
}

func NewBoard(size int) *Board {
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}

	return &Board{
		size:  size,
		cells: cells,
	}
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) Get(move Move) (int, error) {
	if !that.contains(move) {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, move.Row, move.Col)
	}

	return that.cells[move.Row][move.Col], nil
}

// Set overwrites the cell unconditionally; occupancy checks belong to the caller.
func (that *Board) Set(move Move, player int) error {
	if !that.contains(move) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, move.Row, move.Col)
	}

	that.cells[move.Row][move.Col] = player

	return nil
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == 0 {
				return false
			}
		}
	}

	return true
}

// Transposed returns the column-major view of the grid: row i of the result
// is column i of the board. It is recomputed on every call, the grid is small.
func (that *Board) Transposed() [][]int {
	cols := make([][]int, that.size)
	for c := range cols {
		cols[c] = make([]int, that.size)
		for r := range cols[c] {
			cols[c][r] = that.cells[r][c]
		}
	}

	return cols
}

// Cells returns a deep copy of the grid.
func (that *Board) Cells() [][]int {
	cells := make([][]int, that.size)
	for r := range cells {
		cells[r] = make([]int, that.size)
		copy(cells[r], that.cells[r])
	}

	return cells
}

func (that *Board) Clone() *Board {
	return &Board{
		size:  that.size,
		cells: that.Cells(),
	}
}

func (that *Board) contains(move Move) bool {
	return move.Row >= 0 && move.Row < that.size && move.Col >= 0 && move.Col < that.size
}
