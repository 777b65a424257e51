package bot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/engine"
)

func restore(t *testing.T, numPlayers, current int, cells [][]int) *engine.Match {
	t.Helper()

	match, err := engine.RestoreMatch(numPlayers, current, cells)
	require.NoError(t, err)

	return match
}

// plainMinimax is the unpruned reference search used to check that pruning
// never changes the result.
func plainMinimax(state *engine.Match, player, depth int, maximizing bool) float64 {
	if depth <= 0 || state.IsGameOver() {
		return evaluate(state, player)
	}

	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}

	for _, move := range state.AvailableMoves() {
		next := state.Clone()
		if ok, err := next.TryMove(move); err != nil || !ok {
			continue
		}

		score := plainMinimax(next, player, depth-1, !maximizing)
		if maximizing {
			best = math.Max(best, score)
		} else {
			best = math.Min(best, score)
		}
	}

	return best
}

func TestEvaluate(t *testing.T) {
	t.Run("Scores +10 when the player has won", func(t *testing.T) {
		match := restore(t, 2, 2, [][]int{
			{1, 1, 1},
			{2, 2, 0},
			{0, 0, 0},
		})

		assert.InDelta(t, 10, evaluate(match, 1), 0.001)
	})

	t.Run("Scores -10 when another player has won", func(t *testing.T) {
		match := restore(t, 2, 2, [][]int{
			{1, 1, 1},
			{2, 2, 0},
			{0, 0, 0},
		})

		assert.InDelta(t, -10, evaluate(match, 2), 0.001)
	})

	t.Run("Scores 0 on a tie", func(t *testing.T) {
		match := restore(t, 2, 1, [][]int{
			{1, 2, 1},
			{1, 2, 2},
			{2, 1, 1},
		})

		assert.InDelta(t, 0, evaluate(match, 1), 0.001)
	})

	t.Run("Counts immediate winning replies on an undecided board", func(t *testing.T) {
		// Given: player 1 to move, with two cells completing row 0 or column 0,
		// and no immediate win for player 2
		match := restore(t, 2, 1, [][]int{
			{1, 1, 0},
			{1, 2, 0},
			{0, 2, 0},
		})

		// Then: the lookahead finds (0,2) and (2,0) for +0.5 each; the replies
		// where player 2 moves do not exist at this ply, so nothing is subtracted
		assert.InDelta(t, 1.0, evaluate(match, 1), 0.001)

		// And: the same position scored for player 2 counts the same two
		// one-move wins against it
		assert.InDelta(t, -1.0, evaluate(match, 2), 0.001)
	})
}

func TestSearchDepth(t *testing.T) {
	t.Run("3x3 searches to exhaustion", func(t *testing.T) {
		assert.Equal(t, 9, searchDepth(3, 9))
		assert.Equal(t, 2, searchDepth(3, 2))
	})

	t.Run("Budget shrinks as the board grows", func(t *testing.T) {
		assert.Equal(t, 4, searchDepth(4, 16))
		assert.Equal(t, 3, searchDepth(5, 25))
		assert.Equal(t, 2, searchDepth(6, 36))
		assert.Equal(t, 1, searchDepth(7, 49))
	})

	t.Run("Never exceeds the remaining moves", func(t *testing.T) {
		assert.Equal(t, 2, searchDepth(4, 2))
	})
}

func TestAgent_SelectMove(t *testing.T) {
	t.Run("Fails when no move is available", func(t *testing.T) {
		match := restore(t, 2, 1, [][]int{
			{1, 2, 1},
			{1, 2, 2},
			{2, 1, 1},
		})

		_, err := NewAgent(1).SelectMove(match)
		assert.ErrorIs(t, err, ErrNoAvailableMoves)
	})

	t.Run("Takes an immediate win", func(t *testing.T) {
		// Given: player 1 can complete row 0 at (0,2)
		match := restore(t, 2, 1, [][]int{
			{1, 1, 0},
			{2, 2, 0},
			{0, 0, 0},
		})

		move, err := NewAgent(1).SelectMove(match)
		require.NoError(t, err)

		assert.Equal(t, engine.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Blocks the opponent's immediate win", func(t *testing.T) {
		// Given: player 2 to move; player 1 threatens row 0 at (0,2)
		match := restore(t, 2, 2, [][]int{
			{1, 1, 0},
			{0, 2, 0},
			{0, 0, 0},
		})

		move, err := NewAgent(2).SelectMove(match)
		require.NoError(t, err)

		assert.Equal(t, engine.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Keeps the first of equally good moves in row-major order", func(t *testing.T) {
		// Given: a symmetric position where several moves score the same
		match, err := engine.NewMatch(2, 3)
		require.NoError(t, err)

		agent := NewAgent(1)

		first, err := agent.SelectMove(match)
		require.NoError(t, err)

		// Then: repeated searches are deterministic
		for i := 0; i < 3; i++ {
			again, err := agent.SelectMove(match)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}

func TestAgent_PruningEquivalence(t *testing.T) {
	// Given: a mid-game 3x3 position searched to exhaustion
	match := restore(t, 2, 2, [][]int{
		{1, 0, 0},
		{0, 2, 0},
		{1, 0, 0},
	})

	agent := NewAgent(2)
	moves := match.AvailableMoves()
	depth := searchDepth(match.Size(), len(moves))

	// Then: for every root move the pruned score equals the unpruned score
	for _, move := range moves {
		next := match.Clone()
		ok, err := next.TryMove(move)
		require.NoError(t, err)
		require.True(t, ok)

		pruned := agent.minimax(next, depth-1, false, math.Inf(-1), math.Inf(1))
		unpruned := plainMinimax(next, 2, depth-1, false)

		assert.InDelta(t, unpruned, pruned, 0.001, "root move (%d, %d)", move.Row, move.Col)
	}
}

func TestAgent_SelfPlay(t *testing.T) {
	t.Run("Optimal 3x3 self-play always ends in a tie", func(t *testing.T) {
		// Given: both seats driven by their own agent
		match, err := engine.NewMatch(2, 3)
		require.NoError(t, err)

		agents := map[int]*Agent{
			1: NewAgent(1),
			2: NewAgent(2),
		}

		// When: playing the game out
		for !match.IsGameOver() {
			move, err := agents[match.CurrentPlayer()].SelectMove(match)
			require.NoError(t, err)

			ok, err := match.TryMove(move)
			require.NoError(t, err)
			require.True(t, ok)
		}

		// Then: neither side ever loses from the opening position
		assert.Equal(t, []int{1, 2}, match.Winners())
	})

	t.Run("Agent never mutates the caller's match", func(t *testing.T) {
		match, err := engine.NewMatch(2, 3)
		require.NoError(t, err)

		before := match.Cells()
		turnBefore := match.CurrentPlayer()

		_, err = NewAgent(1).SelectMove(match)
		require.NoError(t, err)

		assert.Equal(t, before, match.Cells())
		assert.Equal(t, turnBefore, match.CurrentPlayer())
	})

	t.Run("Bounded search still moves on a large board", func(t *testing.T) {
		match, err := engine.NewMatch(4, 7)
		require.NoError(t, err)

		move, err := NewAgent(1).SelectMove(match)
		require.NoError(t, err)

		ok, err := match.TryMove(move)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
