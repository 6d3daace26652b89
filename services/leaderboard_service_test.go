package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"pacearena-api/models"
)

func (e *testEnv) addRun(t *testing.T, userID, clubID string, miles float64, seconds int, at time.Time) {
	t.Helper()
	run := &models.RunSubmission{
		ID:              uuid.New().String(),
		UserID:          userID,
		ClubID:          &clubID,
		DistanceMiles:   miles,
		DurationSeconds: seconds,
		SubmittedAt:     at,
	}
	if err := e.runs.Create(context.Background(), run); err != nil {
		t.Fatalf("create run: %v", err)
	}
}

func TestPaceBand(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{420, "7:00"},
		{434, "7:00"},
		{436, "7:30"},
		{525, "9:00+"},
		{600, "9:00+"},
		{389, "6:30"},
	}
	for _, tt := range tests {
		if got, _ := paceBand(tt.seconds); got != tt.want {
			t.Errorf("paceBand(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestLeaderboardService_BandsAndRanks(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLeaderboardService(env.runs, env.clubs, env.clock)
	ctx := context.Background()

	env.addClub(t, "fast", "Fast Club", "7:00")
	env.addClub(t, "quick", "Quick Club", "7:00")
	env.addClub(t, "easy", "Easy Club", "9:00")
	yesterday := testNow.Add(-24 * time.Hour)

	env.addRun(t, "u1", "fast", 3, 3*415, yesterday)   // 6:55
	env.addRun(t, "u2", "quick", 4, 4*430, yesterday)  // 7:10
	env.addRun(t, "u3", "easy", 3, 3*560, yesterday)   // 9:20
	env.addRun(t, "u4", "fast", 12, 12*480, yesterday) // long, excluded from short

	board, err := svc.Leaderboard(ctx, models.DistanceShort)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board.Bands) != 2 {
		t.Fatalf("expected 2 bands, got %+v", board.Bands)
	}
	first := board.Bands[0]
	if first.Pace != "7:00" || len(first.Clubs) != 2 {
		t.Fatalf("unexpected first band: %+v", first)
	}
	if first.Clubs[0].ClubID != "fast" || first.Clubs[0].Rank != 1 || first.Clubs[1].Rank != 2 {
		t.Errorf("unexpected ranking: %+v", first.Clubs)
	}
	if first.Clubs[0].AvgPace != "6:55" || first.Clubs[0].Name != "Fast Club" {
		t.Errorf("unexpected entry: %+v", first.Clubs[0])
	}
	if board.Bands[1].Pace != "9:00+" {
		t.Errorf("slow band = %q", board.Bands[1].Pace)
	}

	long, err := svc.Leaderboard(ctx, models.DistanceLong)
	if err != nil {
		t.Fatalf("Leaderboard long: %v", err)
	}
	if len(long.Bands) != 1 || long.Bands[0].Clubs[0].ClubID != "fast" {
		t.Errorf("unexpected long board: %+v", long.Bands)
	}
}

func TestLeaderboardService_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLeaderboardService(env.runs, env.clubs, env.clock)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		env.addClub(t, id, "Club "+id, "8:00")
	}
	thisWeek := testNow.Add(-48 * time.Hour)
	lastWeek := testNow.Add(-10 * 24 * time.Hour)

	env.addRun(t, "u1", "a", 4, 4*420, thisWeek)
	env.addRun(t, "u2", "b", 4, 4*450, thisWeek)
	env.addRun(t, "u3", "c", 4, 4*480, thisWeek)
	env.addRun(t, "u4", "d", 3, 3*510, thisWeek)
	env.addRun(t, "u5", "a", 4, 4*400, lastWeek)
	env.addRun(t, "u5", "a", 4, 4*400, testNow.Add(-30*24*time.Hour))

	dash, err := svc.Dashboard(ctx, models.DistanceShort)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.ActiveClubs != 4 || dash.TotalRunners != 4 || dash.MilesThisWeek != 15 {
		t.Errorf("unexpected totals: %+v", dash)
	}
	if dash.MilesChangePct == nil || *dash.MilesChangePct != 275 {
		t.Errorf("miles change = %v, want 275", dash.MilesChangePct)
	}
	if len(dash.TopClubs) != 3 {
		t.Fatalf("expected top 3, got %d", len(dash.TopClubs))
	}
	wantBadges := []string{"gold", "silver", "bronze"}
	wantClubs := []string{"a", "b", "c"}
	for i, tc := range dash.TopClubs {
		if tc.Badge != wantBadges[i] || tc.ClubID != wantClubs[i] {
			t.Errorf("top[%d] = %+v", i, tc)
		}
	}
}

func TestLeaderboardService_DashboardWithoutRuns(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLeaderboardService(env.runs, env.clubs, env.clock)

	dash, err := svc.Dashboard(context.Background(), models.DistanceLong)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.ActiveClubs != 0 || dash.MilesChangePct != nil || dash.AvgPace != "" || len(dash.TopClubs) != 0 {
		t.Errorf("unexpected empty dashboard: %+v", dash)
	}
}
