package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RishabhSubramanian/tictactoe-backend/internal/entity"
)

// MatchResult is one finished game in the archive.
type MatchResult struct {
	GameID     string    `json:"game_id"`
	NumPlayers int       `json:"num_players"`
	Size       int       `json:"size"`
	Winners    []int     `json:"winners"`
	FinishedAt time.Time `json:"finished_at"`
}

type ArchiveRepository interface {
	SaveResult(ctx context.Context, game *entity.Game) error
	ListRecent(ctx context.Context, limit int) ([]MatchResult, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) SaveResult(ctx context.Context, game *entity.Game) error {
	winnersJSON, err := json.Marshal(game.Winners)
	if err != nil {
		return fmt.Errorf("could not marshal winners: %w", err)
	}

	query := `INSERT INTO match_results (game_id, num_players, size, winners, finished_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		game.ID, game.NumPlayers, game.Size, string(winnersJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save match result: %w", err)
	}

	return nil
}

func (that *dbArchive) ListRecent(ctx context.Context, limit int) ([]MatchResult, error) {
	query := `SELECT game_id, num_players, size, winners, finished_at
		FROM match_results ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var result MatchResult
		var winnersJSON string

		if err = rows.Scan(&result.GameID, &result.NumPlayers, &result.Size, &winnersJSON, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}

		if err = json.Unmarshal([]byte(winnersJSON), &result.Winners); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winners: %w", err)
		}

		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match results: %w", err)
	}

	return results, nil
}
