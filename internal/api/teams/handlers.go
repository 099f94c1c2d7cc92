// internal/api/teams/handlers.go
package teams

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tajhans/camber-scouting/internal/api/apiutil"
	dbgen "github.com/tajhans/camber-scouting/internal/db/generated"
	"github.com/tajhans/camber-scouting/internal/metrics"
)

const pageSize = 10

var queries *dbgen.Queries

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	queries = q
}

// TeamView is the JSON shape returned for a team.
type TeamView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Matches   []int64   `json:"matches"`
	CreatedAt time.Time `json:"createdAt"`
}

func newTeamView(t dbgen.Team) TeamView {
	view := TeamView{
		ID:        t.ID,
		Name:      t.Name,
		Matches:   []int64{},
		CreatedAt: t.CreatedAt,
	}
	if err := json.Unmarshal([]byte(t.Matches), &view.Matches); err != nil {
		log.Warn().Err(err).Int64("team_id", t.ID).Msg("Malformed match list, returning empty")
		view.Matches = []int64{}
	}
	return view
}

type createTeamRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// POST /api/v1/teams
func HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	var req createTeamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.ID <= 0 || req.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	team, err := queries.CreateTeam(r.Context(), dbgen.CreateTeamParams{
		ID:   req.ID,
		Name: req.Name,
	})
	if err != nil {
		logger.Error().Err(err).Int64("team_id", req.ID).Msg("Failed to create team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	metrics.TeamsRegistered.Inc()

	if err := apiutil.WriteJSON(w, http.StatusCreated, newTeamView(team)); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

type teamListResponse struct {
	Teams       []TeamView `json:"teams"`
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int64      `json:"currentPage"`
}

// GET /api/v1/teams?page=&search=
func HandleListTeams(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	page := int64(1)
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			apiutil.WriteError(w, http.StatusBadRequest, "Invalid page")
			return
		}
		page = parsed
	}
	search := r.URL.Query().Get("search")

	rows, err := queries.ListTeams(r.Context(), dbgen.ListTeamsParams{
		Search: search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	total, err := queries.CountTeamsMatching(r.Context(), search)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count teams")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]TeamView, len(rows))
	for i, t := range rows {
		views[i] = newTeamView(t)
	}

	response := teamListResponse{
		Teams:       views,
		TotalPages:  (total + pageSize - 1) / pageSize,
		CurrentPage: page,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// GET /api/v1/teams/{id}
func HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	id, err := teamIDFromPath(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Team ID is missing")
		return
	}

	team, err := queries.GetTeamByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Team not found")
			return
		}
		logger.Error().Err(err).Int64("team_id", id).Msg("Failed to fetch team")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newTeamView(team)); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

func teamIDFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	if raw == "" {
		return 0, errors.New("missing team id")
	}
	return strconv.ParseInt(raw, 10, 64)
}
