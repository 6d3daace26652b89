package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"pacearena-api/models"
)

func TestEventService_NearbyKeepsOnlyEventsInsideRadius(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	ctx := context.Background()

	userLat, userLng := 40.7128, -74.0060
	near := env.addEvent(t, "Battery Park 5K", testNow.AddDate(0, 0, 2), ptr(userLat), ptr(userLng), false)
	// 0.58 degrees of latitude is roughly 40 miles.
	env.addEvent(t, "Far Away Half", testNow.AddDate(0, 0, 1), ptr(userLat+0.58), ptr(userLng), false)
	env.addEvent(t, "No Coordinates 10K", testNow.AddDate(0, 0, 3), nil, nil, true)

	got, err := svc.Nearby(ctx, models.NearbyEventsRequest{UserLat: &userLat, UserLng: &userLng, RadiusMiles: 25}, "")
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 1 || got[0].ID != near.ID {
		t.Fatalf("expected only %q, got %+v", near.Name, names(got))
	}
	if got[0].DistanceMiles == nil || *got[0].DistanceMiles != 0 {
		t.Errorf("expected distance 0 for event at user point, got %v", got[0].DistanceMiles)
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered list should contain every event, got %d", len(all))
	}
}

func TestEventService_NearbyDefaultsRadius(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()

	lat, lng := 40.7128, -74.0060
	env.addEvent(t, "Twenty Miles North", testNow, ptr(lat+0.29), ptr(lng), false)

	got, err := svc.Nearby(context.Background(), models.NearbyEventsRequest{UserLat: &lat, UserLng: &lng}, "")
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected event ~20 miles away inside default radius, got %d", len(got))
	}
}

func TestEventService_NearbyRejectsInvalidCoordinates(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()

	tests := []struct {
		name     string
		lat, lng *float64
	}{
		{"missing lat", nil, ptr(1.0)},
		{"lat out of range", ptr(91.0), ptr(0.0)},
		{"lng out of range", ptr(0.0), ptr(-181.0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Nearby(context.Background(), models.NearbyEventsRequest{UserLat: tt.lat, UserLng: tt.lng}, "")
			if !errors.Is(err, models.ErrInvalidCoordinates) {
				t.Errorf("got %v, want ErrInvalidCoordinates", err)
			}
		})
	}
}

func TestEventService_ListOrdersByDateWithAggregates(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	social := env.socialService()
	ctx := context.Background()

	later := env.addEvent(t, "Later", testNow.AddDate(0, 0, 10), nil, nil, false)
	sooner := env.addEvent(t, "Sooner", testNow.AddDate(0, 0, 1), nil, nil, true)
	env.addUser(t, "u1", nil)
	env.addUser(t, "u2", nil)

	if _, err := social.ApplyLike(ctx, "u1", models.EventTarget(later.ID), models.LikeAdd); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := social.ApplyLike(ctx, "u2", models.EventTarget(later.ID), models.LikeAdd); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := social.AddComment(ctx, "u2", models.EventTarget(sooner.ID), "see you there"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	events, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 || events[0].ID != sooner.ID || events[1].ID != later.ID {
		t.Fatalf("expected date ascending order, got %v", names(events))
	}
	if events[1].Likes.Count != 2 || !events[1].Likes.UserHasLiked {
		t.Errorf("later likes = %+v, want count 2 liked", events[1].Likes)
	}
	if events[0].Likes.Count != 0 || events[0].Likes.UserHasLiked {
		t.Errorf("sooner likes = %+v, want zero", events[0].Likes)
	}
	if events[0].Comments.Count != 1 {
		t.Errorf("sooner comments = %d, want 1", events[0].Comments.Count)
	}

	public, club := models.PartitionEvents(events)
	if len(public)+len(club) != len(events) || len(club) != 1 || club[0].ID != sooner.ID {
		t.Errorf("partition mismatch: public=%v club=%v", names(public), names(club))
	}
}

func TestEventService_CreateClubEventValidatesPaceGroups(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	club := env.addClub(t, "c1", "Pacers", "7:00", "8:00")
	ctx := context.Background()

	req := models.CreateEventRequest{
		Name:        "Tempo Tuesday",
		Date:        testNow.AddDate(0, 0, 7),
		Location:    "Track",
		IsClubEvent: true,
		ClubID:      &club.ID,
		PaceGroups:  []string{"7:00", "9:30"},
	}
	if _, err := svc.Create(ctx, "u1", req); !errors.Is(err, models.ErrInvalidPaceGroup) {
		t.Fatalf("got %v, want ErrInvalidPaceGroup", err)
	}

	req.PaceGroups = []string{"7:00"}
	ev, err := svc.Create(ctx, "u1", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ev.ClubID == nil || *ev.ClubID != club.ID || len(ev.PaceGroups) != 1 {
		t.Errorf("unexpected club event: %+v", ev)
	}

	req.IsClubEvent = false
	req.ClubID = nil
	req.Latitude = ptr(40.0)
	if _, err := svc.Create(ctx, "u1", req); !errors.Is(err, models.ErrInvalidCoordinates) {
		t.Errorf("half coordinates: got %v, want ErrInvalidCoordinates", err)
	}
}

func TestEventService_CloseExpiredRegistrations(t *testing.T) {
	env := newTestEnv(t)
	svc := env.eventService()
	ctx := context.Background()

	expired := env.addEvent(t, "Expired", testNow.AddDate(0, 0, 3), nil, nil, false)
	open := env.addEvent(t, "Open", testNow.AddDate(0, 0, 3), nil, nil, false)
	env.db.Model(expired).Update("registration_deadline", testNow.Add(-time.Hour))
	env.db.Model(open).Update("registration_deadline", testNow.Add(time.Hour))

	n, err := svc.CloseExpiredRegistrations(ctx)
	if err != nil {
		t.Fatalf("CloseExpiredRegistrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("closed %d events, want 1", n)
	}

	got, err := env.events.GetByID(ctx, expired.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.RegistrationClosed {
		t.Error("expired event should be closed")
	}
	if n, _ := svc.CloseExpiredRegistrations(ctx); n != 0 {
		t.Errorf("second run closed %d events, want 0", n)
	}
}

func names(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Name
	}
	return out
}
