package engine

import (
	"fmt"
	"strings"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
	MinSize    = 3
	MaxSize    = 7
)

// marks renders player ids on the board; index is the player id.
var marks = [MaxPlayers + 1]byte{' ', 'X', 'O', 'V', 'W'}

// Match is the state of one game: the board, the player count, and whose
// turn it is. It is a plain owned value; Clone gives search code an
// independent copy to simulate on.
type Match struct {
	numPlayers int
	current    int
	board      *Board
}

// NewMatch starts an empty game. Player 1 always moves first.
func NewMatch(numPlayers, size int) (*Match, error) {
	if err := validateConfig(numPlayers, size); err != nil {
		return nil, err
	}

	return &Match{
		numPlayers: numPlayers,
		current:    1,
		board:      NewBoard(size),
	}, nil
}

// RestoreMatch rebuilds a match from a stored snapshot, re-validating the
// configuration and every cell value.
func RestoreMatch(numPlayers, current int, cells [][]int) (*Match, error) {
	size := len(cells)

	if err := validateConfig(numPlayers, size); err != nil {
		return nil, err
	}

	if current < 1 || current > numPlayers {
		return nil, fmt.Errorf("%w: current player %d with %d players", ErrInvalidConfig, current, numPlayers)
	}

	board := NewBoard(size)
	for r, row := range cells {
		if len(row) != size {
			return nil, fmt.Errorf("%w: board is not square", ErrInvalidConfig)
		}

		for c, cell := range row {
			if cell < 0 || cell > numPlayers {
				return nil, fmt.Errorf("%w: cell (%d, %d) holds unknown player %d", ErrInvalidConfig, r, c, cell)
			}

			board.cells[r][c] = cell
		}
	}

	return &Match{
		numPlayers: numPlayers,
		current:    current,
		board:      board,
	}, nil
}

func validateConfig(numPlayers, size int) error {
	switch {
	case numPlayers < MinPlayers:
		return fmt.Errorf("%w: too few players (%d)", ErrInvalidConfig, numPlayers)
	case numPlayers > MaxPlayers:
		return fmt.Errorf("%w: too many players (%d)", ErrInvalidConfig, numPlayers)
	case size < MinSize:
		return fmt.Errorf("%w: board %dx%d is too small", ErrInvalidConfig, size, size)
	case size > MaxSize:
		return fmt.Errorf("%w: board %dx%d is too large", ErrInvalidConfig, size, size)
	case size == MinSize && numPlayers > 2:
		return fmt.Errorf("%w: a 3x3 board only fits 2 players", ErrInvalidConfig)
	}

	return nil
}

func (that *Match) NumPlayers() int {
	return that.numPlayers
}

func (that *Match) Size() int {
	return that.board.Size()
}

func (that *Match) CurrentPlayer() int {
	return that.current
}

// Cells returns a deep copy of the board grid.
func (that *Match) Cells() [][]int {
	return that.board.Cells()
}

// Clone returns an independent deep copy; simulating on the clone never
// touches the original.
func (that *Match) Clone() *Match {
	return &Match{
		numPlayers: that.numPlayers,
		current:    that.current,
		board:      that.board.Clone(),
	}
}

// AvailableMoves lists the empty cells in row-major order. The order is the
// tie-break for the search agent and must not change.
func (that *Match) AvailableMoves() []Move {
	moves := make([]Move, 0, that.board.Size()*that.board.Size())
	for r, row := range that.board.cells {
		for c, cell := range row {
			if cell == 0 {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}

	return moves
}

// TryMove places the current player's mark and advances the turn. An
// occupied cell is an expected outcome and reports (false, nil) with the
// state unchanged; a coordinate off the board is a caller bug and reports
// an error.
func (that *Match) TryMove(move Move) (bool, error) {
	cell, err := that.board.Get(move)
	if err != nil {
		return false, err
	}

	if cell != 0 {
		return false, nil
	}

	if err = that.board.Set(move, that.current); err != nil {
		return false, err
	}

	that.current = (that.current % that.numPlayers) + 1

	return true, nil
}

// WinningLine reports the first uniform full line, checked in fixed priority
// order: main diagonal, anti-diagonal, rows top to bottom, then columns left
// to right. A win reports (line, true); a full board with no line reports
// an empty line and true, meaning a tie; a game still in progress reports
// (nil, false).
func (that *Match) WinningLine() ([]Move, bool) {
	size := that.board.Size()
	cells := that.board.cells

	diag := make([]int, size)
	for i := range diag {
		diag[i] = cells[i][i]
	}
	if uniform(diag) {
		line := make([]Move, size)
		for i := range line {
			line[i] = Move{Row: i, Col: i}
		}
		return line, true
	}

	anti := make([]int, size)
	for i := range anti {
		anti[i] = cells[size-1-i][i]
	}
	if uniform(anti) {
		line := make([]Move, size)
		for i := range line {
			line[i] = Move{Row: size - 1 - i, Col: i}
		}
		return line, true
	}

	for r, row := range cells {
		if uniform(row) {
			line := make([]Move, size)
			for i := range line {
				line[i] = Move{Row: r, Col: i}
			}
			return line, true
		}
	}

	for c, col := range that.board.Transposed() {
		if uniform(col) {
			line := make([]Move, size)
			for i := range line {
				line[i] = Move{Row: i, Col: c}
			}
			return line, true
		}
	}

	if that.board.IsFull() {
		return []Move{}, true
	}

	return nil, false
}

// Winners derives the winner set from WinningLine: empty while the game is
// in progress, every player on a tie-by-fill, a single player on a win.
func (that *Match) Winners() []int {
	line, over := that.WinningLine()
	if !over {
		return nil
	}

	if len(line) == 0 {
		winners := make([]int, that.numPlayers)
		for i := range winners {
			winners[i] = i + 1
		}
		return winners
	}

	return []int{that.board.cells[line[0].Row][line[0].Col]}
}

func (that *Match) IsGameOver() bool {
	if that.board.IsFull() {
		return true
	}

	_, over := that.WinningLine()

	return over
}

func (that *Match) String() string {
	var b strings.Builder

	rule := strings.Repeat("-", 2*that.board.Size()-1)
	for r, row := range that.board.cells {
		if r > 0 {
			b.WriteString(rule)
			b.WriteByte('\n')
		}

		for c, cell := range row {
			if c > 0 {
				b.WriteByte('|')
			}
			b.WriteByte(marks[cell])
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func uniform(line []int) bool {
	if line[0] == 0 {
		return false
	}

	for _, cell := range line[1:] {
		if cell != line[0] {
			return false
		}
	}

	return true
}
