package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"pacearena-api/clock"
	"pacearena-api/messaging"
	"pacearena-api/models"
	"pacearena-api/repositories"
	"pacearena-api/telemetry"
)

type RegistrationService struct {
	registrationRepo *repositories.RegistrationRepository
	eventRepo        *repositories.EventRepository
	userRepo         *repositories.UserRepository
	emailService     *EmailService
	publisher        messaging.Publisher
	clock            clock.Clock
}

func NewRegistrationService(
	registrationRepo *repositories.RegistrationRepository,
	eventRepo *repositories.EventRepository,
	userRepo *repositories.UserRepository,
	emailService *EmailService,
	publisher messaging.Publisher,
	clk clock.Clock,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		publisher:        publisher,
		clock:            clk,
	}
}

// Register signs userID up for eventID. Name and phone are trimmed and both
// must be non-empty.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID string, req models.RegisterForEventRequest) (*models.EventRegistration, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "RegistrationService.Register")
	defer span.End()
	span.SetAttributes(attribute.String("event.id", eventID))

	if userID == "" {
		return nil, models.ErrAuthRequired
	}
	name := strings.TrimSpace(req.FullName)
	phone := strings.TrimSpace(req.PhoneNumber)
	if name == "" || phone == "" {
		return nil, models.ErrMissingFields
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if !event.RegistrationOpen(now) {
		return nil, models.ErrRegistrationClosed
	}
	exists, err := s.registrationRepo.Exists(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if exists {
		return nil, models.ErrAlreadyRegistered
	}
	// Capacity is checked before the insert without a lock, so concurrent
	// sign-ups for the last slot can overshoot max_participants.
	if event.MaxParticipants != nil {
		count, err := s.registrationRepo.CountForEvent(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		if count >= int64(*event.MaxParticipants) {
			return nil, models.ErrEventFull
		}
	}

	reg := &models.EventRegistration{
		ID:               uuid.New().String(),
		EventID:          eventID,
		UserID:           userID,
		FullName:         name,
		PhoneNumber:      phone,
		RegistrationDate: now,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, models.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	if err := s.publisher.Publish(ctx, messaging.KeyRegistrationCreated, messaging.RegistrationMessage{
		RegistrationID: reg.ID,
		EventID:        eventID,
		UserID:         userID,
		At:             now,
	}); err != nil {
		log.Printf("Warning: failed to publish %s: %v", messaging.KeyRegistrationCreated, err)
	}

	s.sendConfirmation(ctx, reg, event)
	return reg, nil
}

// ListForUser returns the user's registrations with their events.
func (s *RegistrationService) ListForUser(ctx context.Context, userID string) ([]models.EventRegistration, error) {
	if userID == "" {
		return nil, models.ErrAuthRequired
	}
	return s.registrationRepo.ListForUser(ctx, userID)
}

// sendConfirmation never fails the registration; mail problems are logged.
func (s *RegistrationService) sendConfirmation(ctx context.Context, reg *models.EventRegistration, event *models.Event) {
	if s.emailService == nil || !s.emailService.Enabled() {
		return
	}
	user, err := s.userRepo.GetByID(ctx, reg.UserID)
	if err != nil {
		log.Printf("Warning: no email for registration %s: %v", reg.ID, err)
		return
	}
	if err := s.emailService.SendRegistrationConfirmation(user.Email, reg, event); err != nil {
		log.Printf("Warning: registration email for %s failed: %v", reg.ID, err)
	}
}
