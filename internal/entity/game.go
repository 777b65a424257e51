package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/apperror"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PrivateType = "private"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the serializable snapshot of one match session. The playable
// state lives in the engine; State and Sync bridge between the two.
type Game struct {
	ID         string    `json:"id"`
	NumPlayers int       `json:"num_players"`
	Size       int       `json:"size"`
	Board      [][]int   `json:"board"`
	Turn       int       `json:"player_turn"`
	Winners    []int     `json:"winners,omitempty"`
	Status     string    `json:"status"`
	Players    []*Player `json:"players,omitempty"`
	Type       string    `json:"type,omitempty"`
}

func NewGame(id, gameType string, numPlayers, size int) (*Game, error) {
	match, err := engine.NewMatch(numPlayers, size)
	if err != nil {
		return nil, fmt.Errorf("invalid game setup: %w", err)
	}

	return &Game{
		ID:         id,
		NumPlayers: numPlayers,
		Size:       size,
		Board:      match.Cells(),
		Turn:       match.CurrentPlayer(),
		Status:     StatusWaiting,
		Type:       gameType,
	}, nil
}

// State rebuilds the playable engine state from the stored snapshot.
func (that *Game) State() (*engine.Match, error) {
	match, err := engine.RestoreMatch(that.NumPlayers, that.Turn, that.Board)
	if err != nil {
		return nil, fmt.Errorf("corrupt game %s: %w", that.ID, err)
	}

	return match, nil
}

// Sync copies the engine state back into the snapshot and refreshes the
// derived status and winner set.
func (that *Game) Sync(match *engine.Match) {
	that.Board = match.Cells()
	that.Turn = match.CurrentPlayer()
	that.Winners = match.Winners()

	if match.IsGameOver() {
		that.Status = StatusFinished
		that.Turn = 0
	}
}

// MakeTurn applies one move for the player holding the given seat. The
// engine reports an occupied cell as a plain false; here it becomes
// ErrCellOccupied so the caller learns why nothing changed.
func (that *Game) MakeTurn(seat int, move engine.Move) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != seat {
		return apperror.ErrNotYourTurn
	}

	match, err := that.State()
	if err != nil {
		return err
	}

	ok, err := match.TryMove(move)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}
	if !ok {
		return apperror.ErrCellOccupied
	}

	that.Sync(match)

	return nil
}

func (that *Game) Start() {
	that.Status = StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) PlayerAtSeat(seat int) *Player {
	for _, player := range that.Players {
		if player.Seat == seat {
			return player
		}
	}

	return nil
}

func (that *Game) SeatsTaken() int {
	return len(that.Players)
}

// GetRandomSeats returns the seats 1..NumPlayers in random order, used to
// decide who opens a bot game.
func (that *Game) GetRandomSeats() []int {
	seats := rand.Perm(that.NumPlayers) //nolint: gosec // it's ok
	for i := range seats {
		seats[i]++
	}

	return seats
}
