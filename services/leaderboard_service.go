package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"pacearena-api/clock"
	"pacearena-api/models"
	"pacearena-api/repositories"
	"pacearena-api/utils"
)

const (
	paceBandSeconds = 30
	// Clubs averaging this pace or slower share the last band.
	slowestBandSeconds = 9 * 60
	dashboardWindow    = 7 * 24 * time.Hour
)

var badges = []string{"gold", "silver", "bronze"}

type LeaderboardService struct {
	runRepo  *repositories.RunRepository
	clubRepo *repositories.ClubRepository
	clock    clock.Clock
}

func NewLeaderboardService(runRepo *repositories.RunRepository, clubRepo *repositories.ClubRepository, clk clock.Clock) *LeaderboardService {
	return &LeaderboardService{runRepo: runRepo, clubRepo: clubRepo, clock: clk}
}

// clubStat accumulates one club's runs inside a distance band.
type clubStat struct {
	clubID  string
	miles   float64
	seconds float64
	runners map[string]bool
}

func (c *clubStat) avgPace() float64 {
	if c.miles == 0 {
		return 0
	}
	return c.seconds / c.miles
}

// aggregateByClub groups runs in band by club, ordered fastest first with
// ties broken by club id.
func aggregateByClub(runs []models.RunSubmission, band models.DistanceBand) []*clubStat {
	byClub := make(map[string]*clubStat)
	for _, r := range runs {
		if r.ClubID == nil || !band.Contains(r.DistanceMiles) {
			continue
		}
		stat, ok := byClub[*r.ClubID]
		if !ok {
			stat = &clubStat{clubID: *r.ClubID, runners: make(map[string]bool)}
			byClub[*r.ClubID] = stat
		}
		stat.miles += r.DistanceMiles
		stat.seconds += float64(r.DurationSeconds)
		stat.runners[r.UserID] = true
	}

	stats := make([]*clubStat, 0, len(byClub))
	for _, s := range byClub {
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		pi, pj := stats[i].avgPace(), stats[j].avgPace()
		if pi != pj {
			return pi < pj
		}
		return stats[i].clubID < stats[j].clubID
	})
	return stats
}

// paceBand returns the band label for an average pace: the pace rounded to
// the nearest 30 seconds, with everything from 9:00 up collapsed to "9:00+".
func paceBand(avgSeconds float64) (label string, key int) {
	rounded := int(math.Round(avgSeconds/paceBandSeconds)) * paceBandSeconds
	if rounded >= slowestBandSeconds {
		return models.FormatPace(slowestBandSeconds) + "+", slowestBandSeconds
	}
	return models.FormatPace(float64(rounded)), rounded
}

// Leaderboard ranks clubs inside pace bands for the given distance band.
func (s *LeaderboardService) Leaderboard(ctx context.Context, band models.DistanceBand) (*models.LeaderboardResponse, error) {
	runs, err := s.runRepo.ClubRunsBetween(ctx, time.Time{}, s.clock.Now().Add(time.Second))
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}
	stats := aggregateByClub(runs, band)
	names, err := s.clubRepo.Names(ctx, clubIDs(stats))
	if err != nil {
		return nil, err
	}

	bands := make(map[int]*models.PaceBand)
	var keys []int
	for _, stat := range stats {
		label, key := paceBand(stat.avgPace())
		pb, ok := bands[key]
		if !ok {
			pb = &models.PaceBand{Pace: label}
			bands[key] = pb
			keys = append(keys, key)
		}
		entry := models.LeaderboardClub{
			Rank:    len(pb.Clubs) + 1,
			ClubID:  stat.clubID,
			Name:    names[stat.clubID],
			Members: len(stat.runners),
		}
		entry.SetAvgSeconds(stat.avgPace())
		pb.Clubs = append(pb.Clubs, entry)
	}
	sort.Ints(keys)

	resp := &models.LeaderboardResponse{Distance: band, Bands: make([]models.PaceBand, 0, len(keys))}
	for _, k := range keys {
		resp.Bands = append(resp.Bands, *bands[k])
	}
	return resp, nil
}

// Dashboard summarises the last seven days for the distance band and
// compares mileage with the seven days before.
func (s *LeaderboardService) Dashboard(ctx context.Context, band models.DistanceBand) (*models.DashboardResponse, error) {
	now := s.clock.Now()
	weekStart := now.Add(-dashboardWindow)
	prevStart := weekStart.Add(-dashboardWindow)

	runs, err := s.runRepo.ClubRunsBetween(ctx, prevStart, now.Add(time.Second))
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}

	var thisWeek []models.RunSubmission
	var prevMiles float64
	for _, r := range runs {
		if !band.Contains(r.DistanceMiles) {
			continue
		}
		if r.SubmittedAt.Before(weekStart) {
			prevMiles += r.DistanceMiles
			continue
		}
		thisWeek = append(thisWeek, r)
	}

	stats := aggregateByClub(thisWeek, band)
	resp := &models.DashboardResponse{
		Distance:    band,
		ActiveClubs: len(stats),
		TopClubs:    []models.TopClub{},
	}

	runners := make(map[string]bool)
	var miles, seconds float64
	for _, stat := range stats {
		miles += stat.miles
		seconds += stat.seconds
		for id := range stat.runners {
			runners[id] = true
		}
	}
	resp.TotalRunners = len(runners)
	resp.MilesThisWeek = utils.RoundToDecimal(miles, 1)
	if miles > 0 {
		resp.AvgPace = models.FormatPace(seconds / miles)
	}
	if prevMiles > 0 {
		pct := utils.RoundToDecimal((miles-prevMiles)/prevMiles*100, 1)
		resp.MilesChangePct = &pct
	}

	top := stats
	if len(top) > len(badges) {
		top = top[:len(badges)]
	}
	names, err := s.clubRepo.Names(ctx, clubIDs(top))
	if err != nil {
		return nil, err
	}
	for i, stat := range top {
		resp.TopClubs = append(resp.TopClubs, models.TopClub{
			ClubID:  stat.clubID,
			Name:    names[stat.clubID],
			Members: len(stat.runners),
			AvgPace: models.FormatPace(stat.avgPace()),
			Badge:   badges[i],
		})
	}
	return resp, nil
}

func clubIDs(stats []*clubStat) []string {
	ids := make([]string, len(stats))
	for i, s := range stats {
		ids[i] = s.clubID
	}
	return ids
}
