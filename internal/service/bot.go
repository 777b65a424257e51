package service

import (
	"errors"
	"fmt"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/bot"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/entity"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays one move for the bot whose seat holds the current turn.
func (that *botService) MakeTurn(game *entity.Game) error {
	botPlayer := game.PlayerAtSeat(game.Turn)
	if botPlayer == nil || !botPlayer.IsBot() {
		return ErrBotNotFound
	}

	state, err := game.State()
	if err != nil {
		return fmt.Errorf("bot failed to read game state: %w", err)
	}

	agent := bot.NewAgent(botPlayer.Seat)
	move, err := agent.SelectMove(state)
	if err != nil {
		return fmt.Errorf("bot found no move: %w", err)
	}

	if err = game.MakeTurn(botPlayer.Seat, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
