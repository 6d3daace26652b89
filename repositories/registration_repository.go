package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"pacearena-api/models"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create stores reg. A second registration for the same (event, user) yields
// models.ErrAlreadyRegistered.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.EventRegistration) error {
	exists, err := r.Exists(ctx, reg.EventID, reg.UserID)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrAlreadyRegistered
	}

	if err := r.db.WithContext(ctx).Create(reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *RegistrationRepository) CountForEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// ListForUser returns the user's registrations, newest first, with events.
func (r *RegistrationRepository) ListForUser(ctx context.Context, userID string) ([]models.EventRegistration, error) {
	regs := []models.EventRegistration{}
	err := r.db.WithContext(ctx).Preload("Event").
		Where("user_id = ?", userID).
		Order("registration_date DESC").
		Find(&regs).Error
	return regs, err
}
