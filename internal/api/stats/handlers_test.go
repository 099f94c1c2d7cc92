package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tajhans/camber-scouting/internal/api/authz"
	"github.com/tajhans/camber-scouting/internal/db"
	dbgen "github.com/tajhans/camber-scouting/internal/db/generated"
	"github.com/tajhans/camber-scouting/internal/testutil"
)

func setupStatsTest(t *testing.T) *db.DB {
	t.Helper()

	testDB := testutil.NewTestDB(t)

	// Save and restore global state
	prevQueries := queries
	t.Cleanup(func() {
		queries = prevQueries
	})

	queries = dbgen.New(testDB.DB)
	return testDB
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := authz.ContextWithUser(req.Context(), &authz.AuthUser{
		ID:    "user-1",
		Email: "scout@test.com",
		Name:  "Test Scout",
	})
	return req.WithContext(ctx)
}

func TestTeamStats(t *testing.T) {
	testDB := setupStatsTest(t)

	ctx := context.Background()
	for _, id := range []int64{254, 1678, 9658} {
		if _, err := testDB.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{ID: id, Name: "Team"}); err != nil {
			t.Fatalf("create team %d: %v", id, err)
		}
	}

	req := authedRequest(http.MethodGet, "/api/v1/stats/teams")
	rec := httptest.NewRecorder()
	HandleTeamStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp teamStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalTeams != 3 {
		t.Errorf("expected 3 total teams, got %d", resp.TotalTeams)
	}
}

func TestMatchStatsRecentWindow(t *testing.T) {
	testDB := setupStatsTest(t)

	ctx := context.Background()
	if _, err := testDB.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{ID: 9658, Name: "Camber"}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	// One fresh match and one recorded two days ago.
	if _, err := testDB.Queries.CreateMatch(ctx, dbgen.CreateMatchParams{
		MatchNumber:  1,
		TeamID:       toNullInt64(9658),
		Alliance:     "red",
		Position:     1,
		RedAlliance:  "[9658,0,0]",
		BlueAlliance: "[0,0,0]",
	}); err != nil {
		t.Fatalf("create match: %v", err)
	}

	stale := time.Now().UTC().Add(-48 * time.Hour).Format("2006-01-02 15:04:05")
	_, err := testDB.ExecContext(ctx,
		`INSERT INTO matches (match_number, team_id, alliance, position, red_alliance, blue_alliance, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		2, 9658, "blue", 2, "[0,0,0]", "[9658,0,0]", stale,
	)
	if err != nil {
		t.Fatalf("insert stale match: %v", err)
	}

	req := authedRequest(http.MethodGet, "/api/v1/stats/matches")
	rec := httptest.NewRecorder()
	HandleMatchStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp matchStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalMatches != 2 {
		t.Errorf("expected 2 total matches, got %d", resp.TotalMatches)
	}
	if resp.RecentMatches != 1 {
		t.Errorf("expected 1 recent match, got %d", resp.RecentMatches)
	}
}

func TestStatsRequireAuth(t *testing.T) {
	setupStatsTest(t)

	for _, target := range []string{"/api/v1/stats/teams", "/api/v1/stats/matches"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		switch target {
		case "/api/v1/stats/teams":
			HandleTeamStats(rec, req)
		default:
			HandleMatchStats(rec, req)
		}

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", target, rec.Code)
		}
	}
}

func toNullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}
