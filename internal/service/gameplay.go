package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/apperror"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/engine"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/entity"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/pkg"
)

type GamePlayService interface {
	CreateGame(ctx context.Context, playerID, gameType string, numPlayers, size int) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameState(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, move engine.Move) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)
}

type archiveRepo interface {
	SaveResult(ctx context.Context, game *entity.Game) error
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
	archive       archiveRepo
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService, archive archiveRepo) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
		archive:       archive,
	}
}

// CreateGame starts a new game owned by the given player. Bot games fill
// the remaining seats with bot players and start immediately; when the
// seat shuffle gives a bot the opening move the bot plays before the game
// is handed back.
func (that *gamePlayService) CreateGame(ctx context.Context, playerID, gameType string, numPlayers, size int) (*entity.Game, error) {
	player, err := that.playerService.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID != "" {
		existing, getErr := that.gameService.GetGameByID(ctx, player.GameID)
		if getErr == nil && !existing.IsFinished() {
			return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, existing.ID)
		}
	}

	game, err := that.gameService.CreateGame(ctx, gameType, numPlayers, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsWithBot() {
		seats := game.GetRandomSeats()
		player.Seat = seats[0]
		game.Players = []*entity.Player{player}

		for _, seat := range seats[1:] {
			game.Players = append(game.Players, &entity.Player{
				ID:     pkg.GenerateNewSessionID(),
				Seat:   seat,
				Type:   entity.BotPlayerType,
				GameID: game.ID,
			})
		}

		game.Start()

		if err = that.playBotTurns(game); err != nil {
			return nil, fmt.Errorf("failed to open bot game: %w", err)
		}
	} else {
		player.Seat = 1
		game.Players = []*entity.Player{player}
	}

	player.GameID = game.ID
	if err = that.playerService.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.playerService.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if game.SeatsTaken() >= game.NumPlayers {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameIsFull, gameID)
	}

	player.Seat = game.SeatsTaken() + 1
	player.GameID = game.ID
	game.Players = append(game.Players, player)

	if game.SeatsTaken() == game.NumPlayers {
		game.Start()
	}

	if err = that.playerService.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) GetGameState(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn applies the player's move, lets any bots reply while it is their
// turn, and archives the game once it finishes.
func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, move engine.Move) (*entity.Game, error) {
	player, err := that.playerService.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.MakeTurn(player.Seat, move); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsWithBot() {
		if err = that.playBotTurns(game); err != nil {
			return nil, err
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.CleanupGame(ctx, game)
	}

	return game, nil
}

// CleanupGame archives a finished game, removes its live record, and frees
// the human players for a new game. Failures are logged, not propagated:
// the turn that finished the game already succeeded.
func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("component", "gameplay", "gameID", game.ID)

	if err := that.archive.SaveResult(ctx, game); err != nil {
		log.Error("could not archive finished game", "error", err)
	}

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("could not delete finished game", "error", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		player.GameID = ""
		player.Seat = 0
		if err := that.playerService.Update(ctx, player); err != nil {
			log.Error("could not release player", "playerID", player.ID, "error", err)
		}
	}
}

func (that *gamePlayService) playBotTurns(game *entity.Game) error {
	for game.IsOngoing() {
		current := game.PlayerAtSeat(game.Turn)
		if current == nil || !current.IsBot() {
			break
		}

		if err := that.botService.MakeTurn(game); err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	return nil
}
