package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"pacearena-api/clock"
	"pacearena-api/database"
	"pacearena-api/messaging"
	"pacearena-api/models"
	"pacearena-api/repositories"
)

var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db        *gorm.DB
	clock     clock.Clock
	published *messaging.Recorder

	events        *repositories.EventRepository
	social        *repositories.SocialRepository
	clubs         *repositories.ClubRepository
	users         *repositories.UserRepository
	posts         *repositories.PostRepository
	registrations *repositories.RegistrationRepository
	runs          *repositories.RunRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testEnv{
		db:            db,
		clock:         clock.NewFixed(testNow),
		published:     &messaging.Recorder{},
		events:        repositories.NewEventRepository(db),
		social:        repositories.NewSocialRepository(db),
		clubs:         repositories.NewClubRepository(db),
		users:         repositories.NewUserRepository(db),
		posts:         repositories.NewPostRepository(db),
		registrations: repositories.NewRegistrationRepository(db),
		runs:          repositories.NewRunRepository(db),
	}
}

func (e *testEnv) eventService() *EventService {
	return NewEventService(e.events, e.social, e.clubs, e.clock, 25)
}

func (e *testEnv) socialService() *SocialService {
	return NewSocialService(e.social, e.events, e.posts, e.published, e.clock)
}

func (e *testEnv) addEvent(t *testing.T, name string, date time.Time, lat, lng *float64, club bool) *models.Event {
	t.Helper()
	ev := &models.Event{
		ID:          uuid.New().String(),
		Name:        name,
		Date:        date,
		Location:    name + " start",
		Latitude:    lat,
		Longitude:   lng,
		IsClubEvent: club,
	}
	if err := e.events.Create(context.Background(), ev); err != nil {
		t.Fatalf("create event %q: %v", name, err)
	}
	return ev
}

func (e *testEnv) addUser(t *testing.T, id string, clubID *string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Name: "Runner " + id, Email: id + "@example.com", Password: "x", ClubID: clubID}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %q: %v", id, err)
	}
	return u
}

func (e *testEnv) addClub(t *testing.T, id, name string, paces ...string) *models.Club {
	t.Helper()
	groups := make([]models.PaceGroup, 0, len(paces))
	for _, p := range paces {
		groups = append(groups, models.PaceGroup{Name: p, Pace: p})
	}
	c := &models.Club{ID: id, Name: name, Location: "NYC", Email: id + "@example.com", PaceGroups: groups}
	if err := e.clubs.Create(context.Background(), c); err != nil {
		t.Fatalf("create club %q: %v", id, err)
	}
	return c
}

func ptr[T any](v T) *T { return &v }
