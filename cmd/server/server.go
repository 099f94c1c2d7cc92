// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/tajhans/camber-scouting/internal/api"
	"github.com/tajhans/camber-scouting/internal/api/auth"
	"github.com/tajhans/camber-scouting/internal/api/matches"
	"github.com/tajhans/camber-scouting/internal/api/stats"
	"github.com/tajhans/camber-scouting/internal/api/teams"
	"github.com/tajhans/camber-scouting/internal/config"
	"github.com/tajhans/camber-scouting/internal/metrics"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()
	registerRoutes(router, cfg)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithMetrics,
		api.WithAuth,
	)

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}
	handler = cors.New(corsOptions).Handler(handler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Auth routes
	mux.HandleFunc("POST /api/v1/auth/sign-up", auth.HandleSignUp)
	mux.HandleFunc("POST /api/v1/auth/sign-in", auth.HandleSignIn)
	mux.HandleFunc("POST /api/v1/auth/sign-out", auth.HandleSignOut)
	mux.HandleFunc("POST /api/v1/auth/verify", auth.HandleVerifyEmail)
	mux.HandleFunc("POST /api/v1/auth/resend-code", auth.HandleResendCode)

	// Team routes
	mux.HandleFunc("POST /api/v1/teams", teams.HandleCreateTeam)
	mux.HandleFunc("GET /api/v1/teams", teams.HandleListTeams)
	mux.HandleFunc("GET /api/v1/teams/{id}", teams.HandleGetTeam)
	mux.HandleFunc("GET /api/v1/teams/{id}/matches", matches.HandleTeamMatches)

	// Match routes
	mux.HandleFunc("POST /api/v1/matches", matches.HandleCreateMatch)
	mux.HandleFunc("GET /api/v1/matches/{number}", matches.HandleGetMatch)
	mux.HandleFunc("PUT /api/v1/matches/{number}", matches.HandleUpdateMatch)

	// Stats routes
	mux.HandleFunc("GET /api/v1/stats/teams", stats.HandleTeamStats)
	mux.HandleFunc("GET /api/v1/stats/matches", stats.HandleMatchStats)
}
