package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"pacearena-api/models"
	"pacearena-api/utils"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID returns models.ErrEventNotFound when no row matches.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListByDate returns every event ordered by date ascending.
func (r *EventRepository) ListByDate(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	err := r.db.WithContext(ctx).Order("date ASC").Order("created_at ASC").Find(&events).Error
	return events, err
}

// WithinBox returns events with coordinates inside box, ordered by date.
// The box is a prefilter; callers apply the exact radius.
func (r *EventRepository) WithinBox(ctx context.Context, box utils.BoundingBox) ([]models.Event, error) {
	query := r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if box.LngBounded {
		query = query.Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	events := []models.Event{}
	err := query.Order("date ASC").Order("created_at ASC").Find(&events).Error
	return events, err
}

// CloseExpiredRegistrations flags events whose registration deadline is
// before now and returns how many rows changed.
func (r *EventRepository) CloseExpiredRegistrations(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("registration_closed = ?", false).
		Where("registration_deadline IS NOT NULL AND registration_deadline < ?", now).
		Update("registration_closed", true)
	return result.RowsAffected, result.Error
}
