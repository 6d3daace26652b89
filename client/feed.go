package client

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"pacearena-api/models"
)

const DefaultNearbyRadiusMiles = 25

// EventsAPI is the part of the backend the feed reads and writes.
type EventsAPI interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	NearbyEvents(ctx context.Context, lat, lng, radiusMiles float64) ([]models.Event, error)
	Like(ctx context.Context, eventID string, action models.LikeAction) (models.LikeSummary, error)
	AddComment(ctx context.Context, eventID, content string) (*models.Comment, error)
}

// SessionProvider resolves the signed-in user; nil means nobody is.
type SessionProvider interface {
	Session(ctx context.Context) (*models.User, error)
}

// EventFeed holds the public and club event lists shown on the events view.
// Every write is followed by a full refetch so aggregates always come from
// the backend.
type EventFeed struct {
	api      EventsAPI
	sessions SessionProvider
	notifier Notifier
	logger   *log.Logger
	radius   float64

	mu     sync.Mutex
	coords *Coordinates
	public []models.Event
	club   []models.Event
}

type FeedOption func(*EventFeed)

func WithNotifier(n Notifier) FeedOption {
	return func(f *EventFeed) { f.notifier = n }
}

func WithLogger(l *log.Logger) FeedOption {
	return func(f *EventFeed) { f.logger = l }
}

func WithRadius(miles float64) FeedOption {
	return func(f *EventFeed) {
		if miles > 0 {
			f.radius = miles
		}
	}
}

func NewEventFeed(api EventsAPI, sessions SessionProvider, opts ...FeedOption) *EventFeed {
	f := &EventFeed{
		api:      api,
		sessions: sessions,
		notifier: discardNotifier{},
		logger:   log.Default(),
		radius:   DefaultNearbyRadiusMiles,
		public:   []models.Event{},
		club:     []models.Event{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewEventFeedFromConfig builds a feed that searches cfg.NearbyRadiusMiles
// around the viewer. Later options override the configured radius.
func NewEventFeedFromConfig(cfg *Config, api EventsAPI, sessions SessionProvider, opts ...FeedOption) *EventFeed {
	return NewEventFeed(api, sessions, append([]FeedOption{WithRadius(cfg.NearbyRadiusMiles)}, opts...)...)
}

// FetchEvents reloads both lists. With coords it runs the nearby search,
// remembers coords for later refetches and reports the match count; without
// them it loads every event. On failure the error is logged and returned and
// the lists keep their previous contents.
func (f *EventFeed) FetchEvents(ctx context.Context, coords *Coordinates) error {
	if coords != nil {
		c := *coords
		coords = &c
		f.mu.Lock()
		f.coords = coords
		f.mu.Unlock()
	}

	n, err := f.load(ctx, coords)
	if err != nil {
		return err
	}
	if coords != nil {
		f.notifier.Notify(Notification{
			Level:       LevelSuccess,
			Title:       "Location found",
			Description: fmt.Sprintf("Found %d events nearby", n),
		})
	}
	return nil
}

// OnLocation matches the LocationResolver callback and runs a filtered fetch.
func (f *EventFeed) OnLocation(ctx context.Context, c Coordinates) {
	_ = f.FetchEvents(ctx, &c)
}

// Refetch reloads the lists filtered by the last known coordinates, or
// unfiltered when none are known.
func (f *EventFeed) Refetch(ctx context.Context) error {
	f.mu.Lock()
	coords := f.coords
	f.mu.Unlock()
	_, err := f.load(ctx, coords)
	return err
}

func (f *EventFeed) load(ctx context.Context, coords *Coordinates) (int, error) {
	var (
		events []models.Event
		err    error
	)
	if coords != nil {
		events, err = f.api.NearbyEvents(ctx, coords.Lat, coords.Lng, f.radius)
	} else {
		events, err = f.api.ListEvents(ctx)
	}
	if err != nil {
		f.logger.Printf("Error fetching events: %v", err)
		return 0, fmt.Errorf("fetch events: %w", err)
	}

	public, club := models.PartitionEvents(events)
	f.mu.Lock()
	f.public = public
	f.club = club
	f.mu.Unlock()
	return len(events), nil
}

func (f *EventFeed) Public() []models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Event(nil), f.public...)
}

func (f *EventFeed) Club() []models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Event(nil), f.club...)
}

// ToggleLike flips the viewer's like on eventID and refetches.
func (f *EventFeed) ToggleLike(ctx context.Context, eventID string, currentlyLiked bool) error {
	if err := f.requireUser(ctx, "Please sign in to like events."); err != nil {
		return err
	}

	action := models.LikeActionFor(currentlyLiked)
	if _, err := f.api.Like(ctx, eventID, action); err != nil {
		f.logger.Printf("Error toggling like (%s) on event %s: %v", action, eventID, err)
		return fmt.Errorf("toggle like: %w", err)
	}
	return f.Refetch(ctx)
}

// AddComment posts text on eventID, refetches and confirms to the user.
func (f *EventFeed) AddComment(ctx context.Context, eventID, text string) error {
	if err := f.requireUser(ctx, "Please sign in to comment on events."); err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		f.notifier.Notify(Notification{
			Level:       LevelError,
			Title:       "Missing Information",
			Description: "Please write a comment first.",
		})
		return models.ErrEmptyComment
	}

	if _, err := f.api.AddComment(ctx, eventID, text); err != nil {
		f.logger.Printf("Error adding comment on event %s: %v", eventID, err)
		return fmt.Errorf("add comment: %w", err)
	}
	if err := f.Refetch(ctx); err != nil {
		return err
	}
	f.notifier.Notify(Notification{
		Level:       LevelSuccess,
		Title:       "Comment added",
		Description: "Your comment has been posted.",
	})
	return nil
}

func (f *EventFeed) requireUser(ctx context.Context, description string) error {
	user, err := f.sessions.Session(ctx)
	if err != nil {
		f.logger.Printf("Error resolving session: %v", err)
	}
	if user != nil {
		return nil
	}
	f.notifier.Notify(Notification{
		Level:       LevelError,
		Title:       "Authentication required",
		Description: description,
	})
	return models.ErrAuthRequired
}
