package rest

import (
	"fmt"
	"net/http"
	"time"
)

func Start(handlers Handlers, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.Ping)
	mux.HandleFunc("POST /api/connect", handlers.Connect)
	mux.HandleFunc("POST /api/game/new", handlers.NewGame)
	mux.HandleFunc("POST /api/game/join", handlers.JoinGame)
	mux.HandleFunc("POST /api/game/turn", handlers.MakeTurn)
	mux.HandleFunc("GET /api/game/state", handlers.GameState)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
