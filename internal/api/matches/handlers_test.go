package matches

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tajhans/camber-scouting/internal/api/authz"
	"github.com/tajhans/camber-scouting/internal/db"
	dbgen "github.com/tajhans/camber-scouting/internal/db/generated"
	"github.com/tajhans/camber-scouting/internal/testutil"
)

func setupMatchesTest(t *testing.T) *db.DB {
	t.Helper()

	testDB := testutil.NewTestDB(t)

	// Save and restore global state
	prevDatabase := database
	t.Cleanup(func() {
		database = prevDatabase
	})

	database = testDB
	return testDB
}

func seedTeam(t *testing.T, testDB *db.DB, id int64, name string) {
	t.Helper()
	if _, err := testDB.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{ID: id, Name: name}); err != nil {
		t.Fatalf("create team %d: %v", id, err)
	}
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := authz.ContextWithUser(req.Context(), &authz.AuthUser{
		ID:    "user-1",
		Email: "scout@test.com",
		Name:  "Test Scout",
	})
	return req.WithContext(ctx)
}

func createMatch(t *testing.T, matchNumber, teamID int64) MatchView {
	t.Helper()

	body := map[string]any{
		"matchNumber":  matchNumber,
		"teamId":       teamID,
		"alliance":     "red",
		"position":     1,
		"redAlliance":  []int64{teamID, 0, 0},
		"blueAlliance": []int64{0, 0, 0},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}

	req := authedRequest(http.MethodPost, "/api/v1/matches", encoded)
	rec := httptest.NewRecorder()
	HandleCreateMatch(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var view MatchView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return view
}

func TestCreateMatchAppendsToTeam(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")

	view := createMatch(t, 12, 9658)

	if view.MatchNumber != 12 {
		t.Errorf("expected match number 12, got %d", view.MatchNumber)
	}
	if view.TeamID == nil || *view.TeamID != 9658 {
		t.Errorf("expected team id 9658, got %v", view.TeamID)
	}
	if len(view.RedAlliance) != 3 {
		t.Errorf("expected 3 red alliance entries, got %v", view.RedAlliance)
	}

	team, err := testDB.Queries.GetTeamByID(context.Background(), 9658)
	if err != nil {
		t.Fatalf("fetch team: %v", err)
	}
	if team.Matches != "[12]" {
		t.Errorf("expected team matches [12], got %q", team.Matches)
	}

	// A second match accumulates, including a duplicate number.
	createMatch(t, 30, 9658)
	createMatch(t, 30, 9658)

	team, err = testDB.Queries.GetTeamByID(context.Background(), 9658)
	if err != nil {
		t.Fatalf("fetch team: %v", err)
	}
	if team.Matches != "[12,30,30]" {
		t.Errorf("expected team matches [12,30,30], got %q", team.Matches)
	}
}

func TestCreateMatchRollsBackOnMissingTeam(t *testing.T) {
	testDB := setupMatchesTest(t)

	body := []byte(`{"matchNumber": 5, "teamId": 42, "alliance": "blue", "position": 2, "redAlliance": [0,0,0], "blueAlliance": [42,0,0]}`)
	req := authedRequest(http.MethodPost, "/api/v1/matches", body)
	rec := httptest.NewRecorder()

	HandleCreateMatch(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d: %s", rec.Code, rec.Body.String())
	}

	count, err := testDB.Queries.CountMatches(context.Background())
	if err != nil {
		t.Fatalf("count matches: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no match rows after rollback, got %d", count)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")

	tests := []struct {
		name string
		body string
	}{
		{"missing match number", `{"teamId": 9658, "alliance": "red", "position": 1, "redAlliance": [9658,0,0], "blueAlliance": [0,0,0]}`},
		{"missing team id", `{"matchNumber": 1, "alliance": "red", "position": 1, "redAlliance": [0,0,0], "blueAlliance": [0,0,0]}`},
		{"bad alliance", `{"matchNumber": 1, "teamId": 9658, "alliance": "green", "position": 1, "redAlliance": [9658,0,0], "blueAlliance": [0,0,0]}`},
		{"position too low", `{"matchNumber": 1, "teamId": 9658, "alliance": "red", "position": 0, "redAlliance": [9658,0,0], "blueAlliance": [0,0,0]}`},
		{"position too high", `{"matchNumber": 1, "teamId": 9658, "alliance": "red", "position": 4, "redAlliance": [9658,0,0], "blueAlliance": [0,0,0]}`},
		{"short roster", `{"matchNumber": 1, "teamId": 9658, "alliance": "red", "position": 1, "redAlliance": [9658,0], "blueAlliance": [0,0,0]}`},
		{"long roster", `{"matchNumber": 1, "teamId": 9658, "alliance": "red", "position": 1, "redAlliance": [9658,0,0], "blueAlliance": [0,0,0,0]}`},
		{"negative roster entry", `{"matchNumber": 1, "teamId": 9658, "alliance": "red", "position": 1, "redAlliance": [-1,0,0], "blueAlliance": [0,0,0]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/api/v1/matches", []byte(tt.body))
			rec := httptest.NewRecorder()

			HandleCreateMatch(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateMatchRequiresAuth(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")

	body := []byte(`{"matchNumber": 1, "teamId": 9658, "alliance": "red", "position": 1, "redAlliance": [9658,0,0], "blueAlliance": [0,0,0]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	HandleCreateMatch(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}

	count, err := testDB.Queries.CountMatches(context.Background())
	if err != nil {
		t.Fatalf("count matches: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no match rows, got %d", count)
	}
}

func TestGetMatchSummary(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")
	createMatch(t, 7, 9658)

	update := []byte(`{"coralL1": 1, "coralL2": 1, "coralL3": 1, "algaeInProcessor": 2, "algaeTakenOff": 5, "droppedCoral": 1, "droppedAlgae": 2}`)
	req := authedRequest(http.MethodPut, "/api/v1/matches/7", update)
	req.SetPathValue("number", "7")
	rec := httptest.NewRecorder()
	HandleUpdateMatch(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	get := authedRequest(http.MethodGet, "/api/v1/matches/7", nil)
	get.SetPathValue("number", "7")
	rec = httptest.NewRecorder()
	HandleGetMatch(rec, get)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view MatchView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// 3*1 + 4*1 + 6*1 coral, 6*2 processor algae (taken off scores nothing)
	if view.Summary.CoralPoints != 13 {
		t.Errorf("expected 13 coral points, got %d", view.Summary.CoralPoints)
	}
	if view.Summary.AlgaePoints != 12 {
		t.Errorf("expected 12 algae points, got %d", view.Summary.AlgaePoints)
	}
	if view.Summary.TotalDrops != 3 {
		t.Errorf("expected 3 total drops, got %d", view.Summary.TotalDrops)
	}
}

func TestGetMatchNotFound(t *testing.T) {
	setupMatchesTest(t)

	req := authedRequest(http.MethodGet, "/api/v1/matches/99", nil)
	req.SetPathValue("number", "99")
	rec := httptest.NewRecorder()

	HandleGetMatch(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestGetMatchReturnsFirstRecorded(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")
	seedTeam(t, testDB, 254, "The Cheesy Poofs")

	createMatch(t, 3, 9658)
	createMatch(t, 3, 254)

	req := authedRequest(http.MethodGet, "/api/v1/matches/3", nil)
	req.SetPathValue("number", "3")
	rec := httptest.NewRecorder()
	HandleGetMatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view MatchView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.TeamID == nil || *view.TeamID != 9658 {
		t.Errorf("expected first recorded match (team 9658), got %v", view.TeamID)
	}
}

func TestUpdateMatchPartialMerge(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")
	created := createMatch(t, 4, 9658)

	update := []byte(`{"coralL4": 2, "leftInAuton": true, "yellowCards": 1}`)
	req := authedRequest(http.MethodPut, "/api/v1/matches/4", update)
	req.SetPathValue("number", "4")
	rec := httptest.NewRecorder()
	HandleUpdateMatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view MatchView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.CoralL4 != 2 || !view.LeftInAuton || view.YellowCards != 1 {
		t.Errorf("updated fields not applied: %+v", view)
	}
	// Untouched fields keep their values.
	if view.Alliance != created.Alliance || view.Position != created.Position {
		t.Errorf("untouched fields changed: %+v", view)
	}
	if view.CoralL1 != 0 || view.DroppedAlgae != 0 {
		t.Errorf("expected zero counters to remain zero: %+v", view)
	}
	if view.TeamID == nil || *view.TeamID != 9658 {
		t.Errorf("team binding must survive updates, got %v", view.TeamID)
	}
}

func TestUpdateMatchRejectsImmutableFields(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")
	createMatch(t, 4, 9658)

	tests := []struct {
		name string
		body string
	}{
		{"team id", `{"teamId": 254}`},
		{"match number", `{"matchNumber": 99}`},
		{"rosters", `{"redAlliance": [1,2,3]}`},
		{"unknown field", `{"bogus": true}`},
		{"negative counter", `{"coralL1": -1}`},
		{"bad alliance", `{"alliance": "green"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPut, "/api/v1/matches/4", []byte(tt.body))
			req.SetPathValue("number", "4")
			rec := httptest.NewRecorder()
			HandleUpdateMatch(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateMatchNotFound(t *testing.T) {
	setupMatchesTest(t)

	req := authedRequest(http.MethodPut, "/api/v1/matches/99", []byte(`{"coralL1": 1}`))
	req.SetPathValue("number", "99")
	rec := httptest.NewRecorder()
	HandleUpdateMatch(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestTeamMatchesOrderedByMatchNumber(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")
	seedTeam(t, testDB, 254, "The Cheesy Poofs")

	createMatch(t, 12, 9658)
	createMatch(t, 5, 9658)
	createMatch(t, 8, 254)

	req := authedRequest(http.MethodGet, "/api/v1/teams/9658/matches", nil)
	req.SetPathValue("id", "9658")
	rec := httptest.NewRecorder()
	HandleTeamMatches(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var views []MatchView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(views))
	}
	if views[0].MatchNumber != 5 || views[1].MatchNumber != 12 {
		t.Errorf("expected matches ordered [5, 12], got [%d, %d]", views[0].MatchNumber, views[1].MatchNumber)
	}
}

func TestTeamMatchesEmpty(t *testing.T) {
	testDB := setupMatchesTest(t)
	seedTeam(t, testDB, 9658, "Camber")

	req := authedRequest(http.MethodGet, "/api/v1/teams/9658/matches", nil)
	req.SetPathValue("id", "9658")
	rec := httptest.NewRecorder()
	HandleTeamMatches(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := bytes.TrimSpace(rec.Body.Bytes())
	if string(body) != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}
