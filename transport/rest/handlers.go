package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/apperror"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/engine"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/entity"
	"github.com/RishabhSubramanian/tictactoe-backend/internal/repository"
)

type Handlers interface {
	Ping(w http.ResponseWriter, r *http.Request)

	Connect(w http.ResponseWriter, r *http.Request)
	NewGame(w http.ResponseWriter, r *http.Request)
	JoinGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	GameState(w http.ResponseWriter, r *http.Request)
}

type playerService interface {
	GetOrCreate(ctx context.Context, id string) (*entity.Player, error)
}

type gamePlayService interface {
	CreateGame(ctx context.Context, playerID, gameType string, numPlayers, size int) (*entity.Game, error)
	JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameState(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, move engine.Move) (*entity.Game, error)
}

type handlers struct {
	logger *slog.Logger

	playerService   playerService
	gamePlayService gamePlayService
}

func NewHandlers(logger *slog.Logger, playerService playerService, gamePlayService gamePlayService) Handlers {
	return &handlers{
		logger:          logger.With("component", "rest"),
		playerService:   playerService,
		gamePlayService: gamePlayService,
	}
}

type connectRequest struct {
	PlayerID string `json:"player_id"`
}

type newGameRequest struct {
	PlayerID   string `json:"player_id"`
	NumPlayers int    `json:"num_players"`
	Size       int    `json:"size"`
	Type       string `json:"type"`
}

type joinGameRequest struct {
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
}

type turnRequest struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type gameResponse struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) Connect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	player, err := that.playerService.GetOrCreate(r.Context(), req.PlayerID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if player.ID == req.PlayerID {
		that.logger.Info("player connected", "playerID", player.ID)
	} else {
		that.logger.Info("registered new player", "playerID", player.ID)
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Player: player})
}

func (that *handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	game, err := that.gamePlayService.CreateGame(r.Context(), req.PlayerID, req.Type, req.NumPlayers, req.Size)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.logger.Info("game created", "gameID", game.ID, "numPlayers", game.NumPlayers, "size", game.Size)

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

func (that *handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	game, err := that.gamePlayService.JoinGameByID(r.Context(), req.GameID, req.PlayerID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.logger.Info("player joined game", "gameID", game.ID, "playerID", req.PlayerID)

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	move := engine.Move{Row: req.Row, Col: req.Col}

	game, err := that.gamePlayService.MakeTurn(r.Context(), req.PlayerID, move)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

func (that *handlers) GameState(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")

	game, err := that.gamePlayService.GetGameState(r.Context(), playerID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: game})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrGameNotFound),
		errors.Is(err, repository.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrNoActiveGames):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrGameAlreadyExists),
		errors.Is(err, apperror.ErrGameIsFull),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, engine.ErrInvalidConfig),
		errors.Is(err, engine.ErrOutOfBounds):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}
