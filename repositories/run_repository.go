package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"pacearena-api/models"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(ctx context.Context, run *models.RunSubmission) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// ClubRunsBetween returns runs attributed to a club submitted in [from, to).
// A zero from means no lower bound.
func (r *RunRepository) ClubRunsBetween(ctx context.Context, from, to time.Time) ([]models.RunSubmission, error) {
	query := r.db.WithContext(ctx).Where("club_id IS NOT NULL").Where("submitted_at < ?", to)
	if !from.IsZero() {
		query = query.Where("submitted_at >= ?", from)
	}
	runs := []models.RunSubmission{}
	err := query.Order("submitted_at ASC").Find(&runs).Error
	return runs, err
}
