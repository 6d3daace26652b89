package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"pacearena-api/clock"
	"pacearena-api/models"
	"pacearena-api/repositories"
	"pacearena-api/telemetry"
	"pacearena-api/utils"
)

type EventService struct {
	eventRepo     *repositories.EventRepository
	socialRepo    *repositories.SocialRepository
	clubRepo      *repositories.ClubRepository
	clock         clock.Clock
	defaultRadius float64
}

func NewEventService(
	eventRepo *repositories.EventRepository,
	socialRepo *repositories.SocialRepository,
	clubRepo *repositories.ClubRepository,
	clk clock.Clock,
	defaultRadius float64,
) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		socialRepo:    socialRepo,
		clubRepo:      clubRepo,
		clock:         clk,
		defaultRadius: defaultRadius,
	}
}

// List returns every event ordered by date with like and comment aggregates
// computed for viewerID. An empty viewerID yields UserHasLiked=false.
func (s *EventService) List(ctx context.Context, viewerID string) ([]models.Event, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "EventService.List")
	defer span.End()

	events, err := s.eventRepo.ListByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if err := s.attachAggregates(ctx, events, viewerID); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("events.count", len(events)))
	return events, nil
}

// Nearby implements get_nearby_events: events within the radius of the
// user's point, ordered by date, each carrying its distance in miles.
// Events without coordinates never match.
func (s *EventService) Nearby(ctx context.Context, req models.NearbyEventsRequest, viewerID string) ([]models.Event, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "EventService.Nearby")
	defer span.End()

	if req.UserLat == nil || req.UserLng == nil || !utils.IsValidCoordinates(*req.UserLat, *req.UserLng) {
		return nil, models.ErrInvalidCoordinates
	}
	lat, lng := *req.UserLat, *req.UserLng

	radius := req.RadiusMiles
	if radius <= 0 {
		radius = s.defaultRadius
	}
	span.SetAttributes(attribute.Float64("nearby.radius_miles", radius))

	candidates, err := s.eventRepo.WithinBox(ctx, utils.BoundingBoxAround(lat, lng, radius))
	if err != nil {
		return nil, fmt.Errorf("query nearby events: %w", err)
	}

	events := make([]models.Event, 0, len(candidates))
	for _, e := range candidates {
		if !e.HasCoordinates() {
			continue
		}
		d := utils.DistanceMiles(lat, lng, *e.Latitude, *e.Longitude)
		if d > radius {
			continue
		}
		d = utils.RoundToDecimal(d, 2)
		e.DistanceMiles = &d
		events = append(events, e)
	}

	if err := s.attachAggregates(ctx, events, viewerID); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("events.count", len(events)))
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id, viewerID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	events := []models.Event{*event}
	if err := s.attachAggregates(ctx, events, viewerID); err != nil {
		return nil, err
	}
	return &events[0], nil
}

// Create stores a new event. Club events must name an existing club and
// may only use that club's pace groups.
func (s *EventService) Create(ctx context.Context, userID string, req models.CreateEventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, models.ErrMissingFields
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, models.ErrInvalidCoordinates
	}
	if req.Latitude != nil && !utils.IsValidCoordinates(*req.Latitude, *req.Longitude) {
		return nil, models.ErrInvalidCoordinates
	}

	event := &models.Event{
		ID:                   uuid.New().String(),
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		EventType:            req.EventType,
		Date:                 req.Date,
		Time:                 req.Time,
		Location:             strings.TrimSpace(req.Location),
		Distance:             req.Distance,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		Address:              req.Address,
		City:                 req.City,
		State:                req.State,
		Zipcode:              req.Zipcode,
		IsClubEvent:          req.IsClubEvent,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		CreatedBy:            userID,
	}

	if req.IsClubEvent {
		if req.ClubID == nil || *req.ClubID == "" {
			return nil, models.ErrMissingFields
		}
		club, err := s.clubRepo.GetByID(ctx, *req.ClubID)
		if err != nil {
			return nil, err
		}
		for _, pace := range req.PaceGroups {
			if !club.HasPaceGroup(pace) {
				return nil, fmt.Errorf("%w: %s", models.ErrInvalidPaceGroup, pace)
			}
		}
		event.ClubID = &club.ID
		event.PaceGroups = datatypes.NewJSONSlice(req.PaceGroups)
	}

	if event.RegistrationDeadline != nil && s.clock.Now().After(*event.RegistrationDeadline) {
		event.RegistrationClosed = true
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// CloseExpiredRegistrations is run by the deadline job.
func (s *EventService) CloseExpiredRegistrations(ctx context.Context) (int64, error) {
	return s.eventRepo.CloseExpiredRegistrations(ctx, s.clock.Now())
}

func (s *EventService) attachAggregates(ctx context.Context, events []models.Event, viewerID string) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}

	likes, err := s.socialRepo.LikeCounts(ctx, models.TargetEvent, ids)
	if err != nil {
		return fmt.Errorf("count likes: %w", err)
	}
	comments, err := s.socialRepo.CommentCounts(ctx, models.TargetEvent, ids)
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}
	liked, err := s.socialRepo.LikedBy(ctx, models.TargetEvent, ids, viewerID)
	if err != nil {
		return fmt.Errorf("load viewer likes: %w", err)
	}

	for i := range events {
		id := events[i].ID
		events[i].Likes = models.LikeSummary{Count: likes[id], UserHasLiked: liked[id]}
		events[i].Comments = models.CommentSummary{Count: comments[id]}
	}
	return nil
}
