package client

import (
	"bytes"
	"context"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"

	"pacearena-api/models"
)

type fakeEventsAPI struct {
	events  []models.Event
	listErr error
	likeErr error

	liked      map[string]bool
	comments   map[string][]string
	calls      []string
	lastRadius float64
}

func newFakeEventsAPI(events ...models.Event) *fakeEventsAPI {
	return &fakeEventsAPI{events: events, liked: map[string]bool{}, comments: map[string][]string{}}
}

func (f *fakeEventsAPI) snapshot() []models.Event {
	out := make([]models.Event, len(f.events))
	for i, e := range f.events {
		e.Likes = models.LikeSummary{UserHasLiked: f.liked[e.ID]}
		if f.liked[e.ID] {
			e.Likes.Count = 1
		}
		e.Comments = models.CommentSummary{Count: int64(len(f.comments[e.ID]))}
		out[i] = e
	}
	return out
}

func (f *fakeEventsAPI) ListEvents(context.Context) ([]models.Event, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot(), nil
}

func (f *fakeEventsAPI) NearbyEvents(_ context.Context, _, _, radius float64) ([]models.Event, error) {
	f.calls = append(f.calls, "nearby")
	f.lastRadius = radius
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.snapshot(), nil
}

func (f *fakeEventsAPI) Like(_ context.Context, eventID string, action models.LikeAction) (models.LikeSummary, error) {
	f.calls = append(f.calls, "like:"+action.String())
	if f.likeErr != nil {
		return models.LikeSummary{}, f.likeErr
	}
	f.liked[eventID] = action == models.LikeAdd
	return models.LikeSummary{UserHasLiked: f.liked[eventID]}, nil
}

func (f *fakeEventsAPI) AddComment(_ context.Context, eventID, content string) (*models.Comment, error) {
	f.calls = append(f.calls, "comment")
	f.comments[eventID] = append(f.comments[eventID], content)
	return &models.Comment{Content: content}, nil
}

type fakeSessions struct{ user *models.User }

func (s fakeSessions) Session(context.Context) (*models.User, error) { return s.user, nil }

var signedIn = fakeSessions{user: &models.User{ID: "u1", Name: "Sarah Chen"}}

func quietLogger() *log.Logger { return log.New(&bytes.Buffer{}, "", 0) }

func fixtureEvents() []models.Event {
	return []models.Event{
		{ID: "e1", Name: "Brooklyn Half", IsClubEvent: false},
		{ID: "e2", Name: "Long Run", IsClubEvent: true},
		{ID: "e3", Name: "Queens 10K", IsClubEvent: false},
		{ID: "e4", Name: "Speed Work", IsClubEvent: true},
	}
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestFetchEvents_PartitionsByClubFlag(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	feed := NewEventFeed(api, signedIn, WithLogger(quietLogger()))

	if err := feed.FetchEvents(context.Background(), nil); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if got := ids(feed.Public()); !reflect.DeepEqual(got, []string{"e1", "e3"}) {
		t.Errorf("public = %v", got)
	}
	if got := ids(feed.Club()); !reflect.DeepEqual(got, []string{"e2", "e4"}) {
		t.Errorf("club = %v", got)
	}

	seen := map[string]int{}
	for _, e := range append(feed.Public(), feed.Club()...) {
		seen[e.ID]++
	}
	for _, e := range fixtureEvents() {
		if seen[e.ID] != 1 {
			t.Errorf("event %s appears %d times", e.ID, seen[e.ID])
		}
	}
}

func TestFetchEvents_WithCoordinatesUsesNearbySearch(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	notes := &NotificationLog{}
	feed := NewEventFeed(api, signedIn, WithNotifier(notes), WithLogger(quietLogger()))

	if err := feed.FetchEvents(context.Background(), &Coordinates{Lat: 40.7580, Lng: -73.9855}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if api.calls[0] != "nearby" || api.lastRadius != 25 {
		t.Errorf("calls = %v radius = %v", api.calls, api.lastRadius)
	}
	last, ok := notes.Last()
	if !ok || last.Level != LevelSuccess || last.Description != "Found 4 events nearby" {
		t.Errorf("notification = %+v", last)
	}

	if err := feed.FetchEvents(context.Background(), nil); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if len(notes.All()) != 1 {
		t.Errorf("unfiltered fetch should not notify, got %+v", notes.All())
	}
}

func TestFetchEvents_FailureKeepsPreviousLists(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	var logs bytes.Buffer
	notes := &NotificationLog{}
	feed := NewEventFeed(api, signedIn, WithNotifier(notes), WithLogger(log.New(&logs, "", 0)))

	if err := feed.FetchEvents(context.Background(), nil); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}

	api.listErr = ErrBackend
	err := feed.FetchEvents(context.Background(), &Coordinates{Lat: 40, Lng: -74})
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
	if len(feed.Public()) != 2 || len(feed.Club()) != 2 {
		t.Errorf("lists changed after failure: %v %v", ids(feed.Public()), ids(feed.Club()))
	}
	if len(notes.All()) != 0 {
		t.Errorf("failure should not notify, got %+v", notes.All())
	}
	if !strings.Contains(logs.String(), "Error fetching events") {
		t.Errorf("failure not logged: %q", logs.String())
	}
}

func TestToggleLike_RequiresSession(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	notes := &NotificationLog{}
	feed := NewEventFeed(api, fakeSessions{}, WithNotifier(notes), WithLogger(quietLogger()))

	err := feed.ToggleLike(context.Background(), "e1", false)
	if !errors.Is(err, models.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Errorf("no backend call expected, got %v", api.calls)
	}
	if last, _ := notes.Last(); last.Title != "Authentication required" {
		t.Errorf("notification = %+v", last)
	}

	if err := feed.AddComment(context.Background(), "e1", "hi"); !errors.Is(err, models.ErrAuthRequired) {
		t.Errorf("AddComment without session: %v", err)
	}
	if len(api.calls) != 0 {
		t.Errorf("no backend call expected, got %v", api.calls)
	}
}

func TestToggleLike_RoundTripRefetches(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	feed := NewEventFeed(api, signedIn, WithLogger(quietLogger()))
	ctx := context.Background()

	if err := feed.FetchEvents(ctx, nil); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if err := feed.ToggleLike(ctx, "e1", false); err != nil {
		t.Fatalf("like: %v", err)
	}
	if got := feed.Public()[0].Likes; !got.UserHasLiked || got.Count != 1 {
		t.Errorf("after like = %+v", got)
	}
	if err := feed.ToggleLike(ctx, "e1", true); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if got := feed.Public()[0].Likes; got.UserHasLiked || got.Count != 0 {
		t.Errorf("after unlike = %+v", got)
	}

	want := []string{"list", "like:add", "list", "like:remove", "list"}
	if !reflect.DeepEqual(api.calls, want) {
		t.Errorf("calls = %v, want %v", api.calls, want)
	}
}

func TestToggleLike_RefetchUsesKnownCoordinates(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	feed := NewEventFeed(api, signedIn, WithLogger(quietLogger()), WithRadius(10))
	ctx := context.Background()

	feed.OnLocation(ctx, Coordinates{Lat: 40.7, Lng: -73.9})
	if err := feed.ToggleLike(ctx, "e2", false); err != nil {
		t.Fatalf("like: %v", err)
	}
	want := []string{"nearby", "like:add", "nearby"}
	if !reflect.DeepEqual(api.calls, want) {
		t.Errorf("calls = %v, want %v", api.calls, want)
	}
	if api.lastRadius != 10 {
		t.Errorf("radius = %v", api.lastRadius)
	}
}

func TestToggleLike_WriteFailureSkipsRefetch(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	api.likeErr = &APIError{Status: 500, Message: "boom"}
	feed := NewEventFeed(api, signedIn, WithLogger(quietLogger()))

	if err := feed.ToggleLike(context.Background(), "e1", false); !errors.Is(err, ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
	if !reflect.DeepEqual(api.calls, []string{"like:add"}) {
		t.Errorf("calls = %v", api.calls)
	}
}

func TestAddComment(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	notes := &NotificationLog{}
	feed := NewEventFeed(api, signedIn, WithNotifier(notes), WithLogger(quietLogger()))
	ctx := context.Background()

	if err := feed.AddComment(ctx, "e2", "   "); !errors.Is(err, models.ErrEmptyComment) {
		t.Errorf("blank comment: %v", err)
	}
	if err := feed.AddComment(ctx, "e2", "  See you Sunday  "); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if got := api.comments["e2"]; !reflect.DeepEqual(got, []string{"See you Sunday"}) {
		t.Errorf("stored comments = %v", got)
	}
	if got := feed.Club()[0].Comments.Count; got != 1 {
		t.Errorf("comment count after refetch = %d", got)
	}
	if last, _ := notes.Last(); last.Level != LevelSuccess {
		t.Errorf("notification = %+v", last)
	}
}

func TestNewEventFeedFromConfig_UsesConfiguredRadius(t *testing.T) {
	api := newFakeEventsAPI(fixtureEvents()...)
	cfg := &Config{RegistrationMode: RegistrationModeAPI, NearbyRadiusMiles: 12}
	feed := NewEventFeedFromConfig(cfg, api, signedIn, WithLogger(quietLogger()))

	if err := feed.FetchEvents(context.Background(), &Coordinates{Lat: 40.7, Lng: -73.9}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if api.lastRadius != 12 {
		t.Errorf("radius = %v, want 12", api.lastRadius)
	}
}
