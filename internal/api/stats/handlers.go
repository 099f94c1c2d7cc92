// internal/api/stats/handlers.go
package stats

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tajhans/camber-scouting/internal/api/apiutil"
	dbgen "github.com/tajhans/camber-scouting/internal/db/generated"
)

var queries *dbgen.Queries

func InitHandlers(q *dbgen.Queries) {
	queries = q
}

type teamStatsResponse struct {
	TotalTeams int64 `json:"totalTeams"`
}

type matchStatsResponse struct {
	TotalMatches  int64 `json:"totalMatches"`
	RecentMatches int64 `json:"recentMatches"`
}

// GET /api/v1/stats/teams
func HandleTeamStats(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	total, err := queries.CountTeams(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, teamStatsResponse{TotalTeams: total}); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// GET /api/v1/stats/matches
//
// RecentMatches counts matches recorded within the last 24 hours.
func HandleMatchStats(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	total, err := queries.CountMatches(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count matches")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	recent, err := queries.CountRecentMatches(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count recent matches")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, matchStatsResponse{
		TotalMatches:  total,
		RecentMatches: recent,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}
