package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/apperror"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/engine"
)

func newOngoingGame(t *testing.T, numPlayers, size int) *Game {
	t.Helper()

	game, err := NewGame("game-1", PrivateType, numPlayers, size)
	require.NoError(t, err)
	game.Start()

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Starts waiting with an empty board and player 1 to move", func(t *testing.T) {
		// Given: a new 2-player 3x3 game
		game, err := NewGame("game-1", PrivateType, 2, 3)
		require.NoError(t, err)

		// Then: the snapshot is an empty waiting game
		assert.Equal(t, StatusWaiting, game.Status)
		assert.Equal(t, 1, game.Turn)
		assert.Len(t, game.Board, 3)
		for _, row := range game.Board {
			assert.Equal(t, []int{0, 0, 0}, row)
		}
	})

	t.Run("Rejects a 3x3 board with 3 players", func(t *testing.T) {
		_, err := NewGame("game-1", PrivateType, 3, 3)
		assert.ErrorIs(t, err, engine.ErrInvalidConfig)
	})
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Applies the move and passes the turn", func(t *testing.T) {
		// Given: an ongoing game with player 1 to move
		game := newOngoingGame(t, 2, 3)

		// When: seat 1 plays (0, 0)
		err := game.MakeTurn(1, engine.Move{Row: 0, Col: 0})

		// Then: the cell is taken and it is seat 2's turn
		require.NoError(t, err)
		assert.Equal(t, 1, game.Board[0][0])
		assert.Equal(t, 2, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		game := newOngoingGame(t, 2, 3)

		err := game.MakeTurn(2, engine.Move{Row: 0, Col: 0})
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 0, game.Board[0][0])
	})

	t.Run("Rejects a move on an occupied cell", func(t *testing.T) {
		game := newOngoingGame(t, 2, 3)
		require.NoError(t, game.MakeTurn(1, engine.Move{Row: 1, Col: 1}))

		err := game.MakeTurn(2, engine.Move{Row: 1, Col: 1})
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, 2, game.Turn)
	})

	t.Run("Rejects a move outside the board", func(t *testing.T) {
		game := newOngoingGame(t, 2, 3)

		err := game.MakeTurn(1, engine.Move{Row: 5, Col: 0})
		assert.ErrorIs(t, err, engine.ErrOutOfBounds)
	})

	t.Run("Rejects any move before the game starts", func(t *testing.T) {
		game, err := NewGame("game-1", PrivateType, 2, 3)
		require.NoError(t, err)

		err = game.MakeTurn(1, engine.Move{Row: 0, Col: 0})
		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Finishes the game and records the winner on a full row", func(t *testing.T) {
		// Given: a game one move away from a row 0 win for seat 1
		game := newOngoingGame(t, 2, 3)
		moves := []struct {
			seat int
			move engine.Move
		}{
			{1, engine.Move{Row: 0, Col: 0}},
			{2, engine.Move{Row: 1, Col: 1}},
			{1, engine.Move{Row: 0, Col: 1}},
			{2, engine.Move{Row: 2, Col: 2}},
		}
		for _, m := range moves {
			require.NoError(t, game.MakeTurn(m.seat, m.move))
		}

		// When: seat 1 completes the row
		require.NoError(t, game.MakeTurn(1, engine.Move{Row: 0, Col: 2}))

		// Then: the game is finished with seat 1 as the only winner
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, []int{1}, game.Winners)
		assert.Equal(t, 0, game.Turn)

		// And: no further moves are accepted
		err := game.MakeTurn(2, engine.Move{Row: 2, Col: 0})
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_PlayerAtSeat(t *testing.T) {
	game := &Game{
		NumPlayers: 2,
		Players: []*Player{
			{ID: "human", Seat: 1, Type: HumanPlayerType},
			{ID: "robot", Seat: 2, Type: BotPlayerType},
		},
	}

	assert.Equal(t, "human", game.PlayerAtSeat(1).ID)
	assert.Equal(t, "robot", game.PlayerAtSeat(2).ID)
	assert.True(t, game.PlayerAtSeat(2).IsBot())
	assert.Nil(t, game.PlayerAtSeat(3))
}

func TestGame_GetRandomSeats(t *testing.T) {
	// Given: a 4-player game
	game := &Game{NumPlayers: 4}

	// When: shuffling the seats
	seats := game.GetRandomSeats()

	// Then: every seat appears exactly once
	require.Len(t, seats, 4)
	seen := make(map[int]bool)
	for _, seat := range seats {
		assert.GreaterOrEqual(t, seat, 1)
		assert.LessOrEqual(t, seat, 4)
		assert.False(t, seen[seat])
		seen[seat] = true
	}
}
