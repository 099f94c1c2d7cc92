// internal/api/matches/handlers.go
package matches

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tajhans/camber-scouting/internal/api/apiutil"
	"github.com/tajhans/camber-scouting/internal/db"
	dbgen "github.com/tajhans/camber-scouting/internal/db/generated"
	"github.com/tajhans/camber-scouting/internal/metrics"
	"github.com/tajhans/camber-scouting/internal/scouting"
)

const allianceSize = 3

var database *db.DB

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d *db.DB) {
	database = d
}

// MatchView is the JSON shape returned for a match record, including
// the derived scoring summary. The summary is recomputed on every read.
type MatchView struct {
	MatchNumber         int64            `json:"matchNumber"`
	TeamID              *int64           `json:"teamId"`
	Alliance            string           `json:"alliance"`
	Position            int64            `json:"position"`
	RedAlliance         []int64          `json:"redAlliance"`
	BlueAlliance        []int64          `json:"blueAlliance"`
	CoralL1             int64            `json:"coralL1"`
	CoralL2             int64            `json:"coralL2"`
	CoralL3             int64            `json:"coralL3"`
	CoralL4             int64            `json:"coralL4"`
	LeftInAuton         bool             `json:"leftInAuton"`
	PointsScoredInAuton bool             `json:"pointsScoredInAuton"`
	AlgaeInProcessor    int64            `json:"algaeInProcessor"`
	AlgaeTakenOff       int64            `json:"algaeTakenOff"`
	AlgaeInNet          int64            `json:"algaeInNet"`
	HumanPlayer         bool             `json:"humanPlayer"`
	GroundIntake        bool             `json:"groundIntake"`
	DroppedCoral        int64            `json:"droppedCoral"`
	DroppedAlgae        int64            `json:"droppedAlgae"`
	PenaltyPoints       int64            `json:"penaltyPoints"`
	YellowCards         int64            `json:"yellowCards"`
	CreatedAt           time.Time        `json:"createdAt"`
	Summary             scouting.Summary `json:"summary"`
}

func newMatchView(m dbgen.Match) MatchView {
	view := MatchView{
		MatchNumber:         m.MatchNumber,
		Alliance:            m.Alliance,
		Position:            m.Position,
		RedAlliance:         decodeRoster(m.RedAlliance, m.MatchNumber),
		BlueAlliance:        decodeRoster(m.BlueAlliance, m.MatchNumber),
		CoralL1:             m.CoralL1,
		CoralL2:             m.CoralL2,
		CoralL3:             m.CoralL3,
		CoralL4:             m.CoralL4,
		LeftInAuton:         m.LeftInAuton,
		PointsScoredInAuton: m.PointsScoredInAuton,
		AlgaeInProcessor:    m.AlgaeInProcessor,
		AlgaeTakenOff:       m.AlgaeTakenOff,
		AlgaeInNet:          m.AlgaeInNet,
		HumanPlayer:         m.HumanPlayer,
		GroundIntake:        m.GroundIntake,
		DroppedCoral:        m.DroppedCoral,
		DroppedAlgae:        m.DroppedAlgae,
		PenaltyPoints:       m.PenaltyPoints,
		YellowCards:         m.YellowCards,
		CreatedAt:           m.CreatedAt,
		Summary: scouting.Summarize(scouting.Record{
			CoralL1:          m.CoralL1,
			CoralL2:          m.CoralL2,
			CoralL3:          m.CoralL3,
			CoralL4:          m.CoralL4,
			AlgaeInProcessor: m.AlgaeInProcessor,
			AlgaeTakenOff:    m.AlgaeTakenOff,
			AlgaeInNet:       m.AlgaeInNet,
			DroppedCoral:     m.DroppedCoral,
			DroppedAlgae:     m.DroppedAlgae,
		}),
	}
	if m.TeamID.Valid {
		id := m.TeamID.Int64
		view.TeamID = &id
	}
	return view
}

func decodeRoster(raw string, matchNumber int64) []int64 {
	roster := make([]int64, 0, allianceSize)
	if err := json.Unmarshal([]byte(raw), &roster); err != nil {
		log.Warn().Err(err).Int64("match_number", matchNumber).Msg("Malformed roster, returning empty")
		return []int64{}
	}
	return roster
}

func encodeRoster(roster []int64) (string, error) {
	if len(roster) != allianceSize {
		return "", fmt.Errorf("alliance roster must have exactly %d entries", allianceSize)
	}
	for _, teamNumber := range roster {
		if teamNumber < 0 {
			return "", fmt.Errorf("alliance roster entries must be non-negative")
		}
	}
	encoded, err := json.Marshal(roster)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func validAlliance(alliance string) bool {
	return alliance == "red" || alliance == "blue"
}

type createMatchRequest struct {
	MatchNumber  int64   `json:"matchNumber"`
	TeamID       int64   `json:"teamId"`
	Alliance     string  `json:"alliance"`
	Position     int64   `json:"position"`
	RedAlliance  []int64 `json:"redAlliance"`
	BlueAlliance []int64 `json:"blueAlliance"`
}

// POST /api/v1/matches
//
// Creating a match also appends the match number to the owning team's
// match list. Both writes run in one transaction: either the match row
// and the list entry both land, or neither does.
func HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	var req createMatchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if req.MatchNumber <= 0 || req.TeamID <= 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !validAlliance(req.Alliance) {
		apiutil.WriteError(w, http.StatusBadRequest, "Alliance must be red or blue")
		return
	}
	if req.Position < 1 || req.Position > 3 {
		apiutil.WriteError(w, http.StatusBadRequest, "Position must be 1, 2, or 3")
		return
	}

	redRoster, err := encodeRoster(req.RedAlliance)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	blueRoster, err := encodeRoster(req.BlueAlliance)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var created dbgen.Match
	err = database.RunInTx(r.Context(), func(tx *db.DB) error {
		var txErr error
		created, txErr = tx.Queries.CreateMatch(r.Context(), dbgen.CreateMatchParams{
			MatchNumber:  req.MatchNumber,
			TeamID:       sql.NullInt64{Int64: req.TeamID, Valid: true},
			Alliance:     req.Alliance,
			Position:     req.Position,
			RedAlliance:  redRoster,
			BlueAlliance: blueRoster,
		})
		if txErr != nil {
			return txErr
		}
		_, txErr = tx.Queries.AppendTeamMatch(r.Context(), dbgen.AppendTeamMatchParams{
			MatchNumber: created.MatchNumber,
			ID:          req.TeamID,
		})
		return txErr
	})
	if err != nil {
		logger.Error().Err(err).
			Int64("match_number", req.MatchNumber).
			Int64("team_id", req.TeamID).
			Msg("Failed to create match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create match")
		return
	}

	metrics.MatchesRecorded.Inc()

	if err := apiutil.WriteJSON(w, http.StatusCreated, newMatchView(created)); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// GET /api/v1/matches/{number}
func HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	matchNumber, err := matchNumberFromPath(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Match ID is missing")
		return
	}

	match, err := database.Queries.GetMatchByNumber(r.Context(), matchNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Match not found")
			return
		}
		logger.Error().Err(err).Int64("match_number", matchNumber).Msg("Failed to fetch match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch match")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newMatchView(match)); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// updateMatchRequest carries the scouting fields collected during the
// event. Only these fields may be overwritten: the owning team, the
// rosters, and the creation timestamp are fixed at create time.
type updateMatchRequest struct {
	Alliance            *string `json:"alliance"`
	Position            *int64  `json:"position"`
	CoralL1             *int64  `json:"coralL1"`
	CoralL2             *int64  `json:"coralL2"`
	CoralL3             *int64  `json:"coralL3"`
	CoralL4             *int64  `json:"coralL4"`
	LeftInAuton         *bool   `json:"leftInAuton"`
	PointsScoredInAuton *bool   `json:"pointsScoredInAuton"`
	AlgaeInProcessor    *int64  `json:"algaeInProcessor"`
	AlgaeTakenOff       *int64  `json:"algaeTakenOff"`
	AlgaeInNet          *int64  `json:"algaeInNet"`
	HumanPlayer         *bool   `json:"humanPlayer"`
	GroundIntake        *bool   `json:"groundIntake"`
	DroppedCoral        *int64  `json:"droppedCoral"`
	DroppedAlgae        *int64  `json:"droppedAlgae"`
	PenaltyPoints       *int64  `json:"penaltyPoints"`
	YellowCards         *int64  `json:"yellowCards"`
}

// PUT /api/v1/matches/{number}
func HandleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	matchNumber, err := matchNumberFromPath(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Match ID is missing")
		return
	}

	var req updateMatchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	match, err := database.Queries.GetMatchByNumber(r.Context(), matchNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Match not found")
			return
		}
		logger.Error().Err(err).Int64("match_number", matchNumber).Msg("Failed to fetch match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update match")
		return
	}

	params := mergeUpdate(match, req)
	if err := validateUpdate(params); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.Queries.UpdateMatchScouting(r.Context(), params); err != nil {
		logger.Error().Err(err).Int64("match_number", matchNumber).Msg("Failed to update match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update match")
		return
	}

	updated, err := database.Queries.GetMatchByNumber(r.Context(), matchNumber)
	if err != nil {
		logger.Error().Err(err).Int64("match_number", matchNumber).Msg("Failed to fetch updated match")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update match")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newMatchView(updated)); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

// GET /api/v1/teams/{id}/matches
func HandleTeamMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireUser(w, r); !ok {
		return
	}

	raw := strings.TrimSpace(r.PathValue("id"))
	teamID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || raw == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Team ID is missing")
		return
	}

	rows, err := database.Queries.ListMatchesByTeam(r.Context(), sql.NullInt64{Int64: teamID, Valid: true})
	if err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to list matches")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch matches")
		return
	}

	views := make([]MatchView, len(rows))
	for i, m := range rows {
		views[i] = newMatchView(m)
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

func mergeUpdate(match dbgen.Match, req updateMatchRequest) dbgen.UpdateMatchScoutingParams {
	params := dbgen.UpdateMatchScoutingParams{
		Alliance:            match.Alliance,
		Position:            match.Position,
		CoralL1:             match.CoralL1,
		CoralL2:             match.CoralL2,
		CoralL3:             match.CoralL3,
		CoralL4:             match.CoralL4,
		LeftInAuton:         match.LeftInAuton,
		PointsScoredInAuton: match.PointsScoredInAuton,
		AlgaeInProcessor:    match.AlgaeInProcessor,
		AlgaeTakenOff:       match.AlgaeTakenOff,
		AlgaeInNet:          match.AlgaeInNet,
		HumanPlayer:         match.HumanPlayer,
		GroundIntake:        match.GroundIntake,
		DroppedCoral:        match.DroppedCoral,
		DroppedAlgae:        match.DroppedAlgae,
		PenaltyPoints:       match.PenaltyPoints,
		YellowCards:         match.YellowCards,
		MatchNumber:         match.MatchNumber,
	}

	if req.Alliance != nil {
		params.Alliance = *req.Alliance
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.CoralL1 != nil {
		params.CoralL1 = *req.CoralL1
	}
	if req.CoralL2 != nil {
		params.CoralL2 = *req.CoralL2
	}
	if req.CoralL3 != nil {
		params.CoralL3 = *req.CoralL3
	}
	if req.CoralL4 != nil {
		params.CoralL4 = *req.CoralL4
	}
	if req.LeftInAuton != nil {
		params.LeftInAuton = *req.LeftInAuton
	}
	if req.PointsScoredInAuton != nil {
		params.PointsScoredInAuton = *req.PointsScoredInAuton
	}
	if req.AlgaeInProcessor != nil {
		params.AlgaeInProcessor = *req.AlgaeInProcessor
	}
	if req.AlgaeTakenOff != nil {
		params.AlgaeTakenOff = *req.AlgaeTakenOff
	}
	if req.AlgaeInNet != nil {
		params.AlgaeInNet = *req.AlgaeInNet
	}
	if req.HumanPlayer != nil {
		params.HumanPlayer = *req.HumanPlayer
	}
	if req.GroundIntake != nil {
		params.GroundIntake = *req.GroundIntake
	}
	if req.DroppedCoral != nil {
		params.DroppedCoral = *req.DroppedCoral
	}
	if req.DroppedAlgae != nil {
		params.DroppedAlgae = *req.DroppedAlgae
	}
	if req.PenaltyPoints != nil {
		params.PenaltyPoints = *req.PenaltyPoints
	}
	if req.YellowCards != nil {
		params.YellowCards = *req.YellowCards
	}

	return params
}

func validateUpdate(params dbgen.UpdateMatchScoutingParams) error {
	if !validAlliance(params.Alliance) {
		return errors.New("alliance must be red or blue")
	}
	if params.Position < 1 || params.Position > 3 {
		return errors.New("position must be 1, 2, or 3")
	}
	counters := []int64{
		params.CoralL1, params.CoralL2, params.CoralL3, params.CoralL4,
		params.AlgaeInProcessor, params.AlgaeTakenOff, params.AlgaeInNet,
		params.DroppedCoral, params.DroppedAlgae, params.PenaltyPoints,
		params.YellowCards,
	}
	for _, c := range counters {
		if c < 0 {
			return errors.New("scoring counters must be non-negative")
		}
	}
	return nil
}

func matchNumberFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("number"))
	if raw == "" {
		return 0, errors.New("missing match number")
	}
	return strconv.ParseInt(raw, 10, 64)
}
