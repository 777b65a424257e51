package bot

import (
	"errors"
	"math"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/engine"
)

var ErrNoAvailableMoves = errors.New("no available moves")

const (
	winScore  = 10
	lossScore = -10

	// threatWeight scores each immediate winning reply found by the
	// one-ply lookahead when the search bottoms out on an undecided board.
	threatWeight = 0.5

	// depthBase caps the budget on boards larger than 3x3: budget = depthBase - size,
	// so the search gets shallower as the branching factor grows.
	depthBase = 8
)

// Agent picks moves for one player with depth-bounded minimax and
// alpha-beta pruning. It holds no state besides the player it plays for;
// every call simulates on clones and never mutates the caller's match.
type Agent struct {
	player int
}

func NewAgent(player int) *Agent {
	return &Agent{player: player}
}

// SelectMove returns the best move for the agent's player. Moves are tried
// in row-major order and only a strictly better score replaces the current
// pick, so the first of equally good moves wins. Callers must only invoke
// it while at least one move is available.
func (that *Agent) SelectMove(state *engine.Match) (engine.Move, error) {
	moves := state.AvailableMoves()
	if len(moves) == 0 {
		return engine.Move{}, ErrNoAvailableMoves
	}

	depth := searchDepth(state.Size(), len(moves))

	bestScore := math.Inf(-1)
	bestMove := moves[0]

	for _, move := range moves {
		next := state.Clone()
		if ok, err := next.TryMove(move); err != nil || !ok {
			continue
		}

		score := that.minimax(next, depth-1, false, math.Inf(-1), math.Inf(1))
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove, nil
}

// searchDepth is the depth budget for one search: exhaustive on a 3x3
// board, shrinking with size on anything larger.
func searchDepth(size, remaining int) int {
	if size == engine.MinSize {
		return remaining
	}

	if budget := depthBase - size; budget < remaining {
		return budget
	}

	return remaining
}

func (that *Agent) minimax(state *engine.Match, depth int, maximizing bool, alpha, beta float64) float64 {
	if depth <= 0 || state.IsGameOver() {
		return evaluate(state, that.player)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, move := range state.AvailableMoves() {
			next := state.Clone()
			if ok, err := next.TryMove(move); err != nil || !ok {
				continue
			}

			score := that.minimax(next, depth-1, false, alpha, beta)
			best = math.Max(best, score)
			alpha = math.Max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range state.AvailableMoves() {
		next := state.Clone()
		if ok, err := next.TryMove(move); err != nil || !ok {
			continue
		}

		score := that.minimax(next, depth-1, true, alpha, beta)
		best = math.Min(best, score)
		beta = math.Min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// evaluate scores a state for the given player: ±10 once the game is
// decided, 0 on a tie. On an undecided board it plays every available move
// one ply ahead and sums ±0.5 per move that would immediately decide the
// game, approximating how many standing threats each side has.
func evaluate(state *engine.Match, player int) float64 {
	winners := state.Winners()
	switch {
	case len(winners) == 1 && winners[0] == player:
		return winScore
	case len(winners) == 1:
		return lossScore
	case len(winners) > 1:
		return 0
	}

	score := 0.0
	for _, move := range state.AvailableMoves() {
		next := state.Clone()
		if ok, err := next.TryMove(move); err != nil || !ok {
			continue
		}

		outcome := next.Winners()
		if len(outcome) != 1 {
			continue
		}

		if outcome[0] == player {
			score += threatWeight
		} else {
			score -= threatWeight
		}
	}

	return score
}
