package models

import (
	"fmt"
	"time"
)

// RunSubmission is a run backed by an uploaded screenshot.
type RunSubmission struct {
	ID              string    `json:"id" gorm:"primaryKey;size:191"`
	UserID          string    `json:"user_id" gorm:"not null;size:191;index"`
	ClubID          *string   `json:"club_id,omitempty" gorm:"size:191;index"`
	DistanceMiles   float64   `json:"distance_miles" gorm:"not null"`
	DurationSeconds int       `json:"duration_seconds" gorm:"not null"`
	ScreenshotPath  string    `json:"screenshot_path" gorm:"size:500"`
	SubmittedAt     time.Time `json:"submitted_at" gorm:"not null;index"`
}

// PaceSeconds is seconds per mile.
func (r *RunSubmission) PaceSeconds() float64 {
	if r.DistanceMiles <= 0 {
		return 0
	}
	return float64(r.DurationSeconds) / r.DistanceMiles
}

// DistanceBand is the short/long split used by the dashboard and leaderboard.
type DistanceBand string

const (
	DistanceShort DistanceBand = "short" // under 5 miles
	DistanceLong  DistanceBand = "long"  // 10 miles or more
)

func ParseDistanceBand(s string) (DistanceBand, error) {
	switch DistanceBand(s) {
	case "", DistanceShort:
		return DistanceShort, nil
	case DistanceLong:
		return DistanceLong, nil
	}
	return "", ErrInvalidDistanceBand
}

// Contains reports whether a run of miles belongs to the band. Runs between
// 5 and 10 miles belong to neither.
func (b DistanceBand) Contains(miles float64) bool {
	switch b {
	case DistanceShort:
		return miles > 0 && miles < 5
	case DistanceLong:
		return miles >= 10
	}
	return false
}

// FormatPace renders seconds per mile as m:ss.
func FormatPace(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

type LeaderboardClub struct {
	Rank    int    `json:"rank"`
	ClubID  string `json:"club_id"`
	Name    string `json:"name"`
	AvgPace string `json:"avg_pace"`
	Members int    `json:"members"`

	avgSeconds float64
}

func (c *LeaderboardClub) SetAvgSeconds(s float64) {
	c.avgSeconds = s
	c.AvgPace = FormatPace(s)
}

func (c LeaderboardClub) AvgSeconds() float64 { return c.avgSeconds }

type PaceBand struct {
	Pace  string            `json:"pace"`
	Clubs []LeaderboardClub `json:"clubs"`
}

type LeaderboardResponse struct {
	Distance DistanceBand `json:"distance"`
	Bands    []PaceBand   `json:"pace_groups"`
}

type TopClub struct {
	ClubID  string `json:"club_id"`
	Name    string `json:"name"`
	Members int    `json:"members"`
	AvgPace string `json:"avg_pace"`
	Badge   string `json:"badge"`
}

type DashboardResponse struct {
	Distance       DistanceBand `json:"distance"`
	ActiveClubs    int          `json:"active_clubs"`
	TotalRunners   int          `json:"total_runners"`
	MilesThisWeek  float64      `json:"miles_this_week"`
	MilesChangePct *float64     `json:"miles_change_pct,omitempty"`
	AvgPace        string       `json:"avg_pace"`
	TopClubs       []TopClub    `json:"top_clubs"`
}
