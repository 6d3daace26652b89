package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"pacearena-api/models"
)

type ClubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

// GetByID loads the club with its member count.
func (r *ClubRepository) GetByID(ctx context.Context, id string) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).First(&club, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrClubNotFound
		}
		return nil, err
	}

	counts, err := r.memberCounts(ctx, []string{club.ID})
	if err != nil {
		return nil, err
	}
	club.MembersCount = counts[club.ID]
	return &club, nil
}

// List returns clubs newest first with member counts.
func (r *ClubRepository) List(ctx context.Context) ([]models.Club, error) {
	clubs := []models.Club{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&clubs).Error; err != nil {
		return nil, err
	}

	ids := make([]string, len(clubs))
	for i := range clubs {
		ids[i] = clubs[i].ID
	}
	counts, err := r.memberCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range clubs {
		clubs[i].MembersCount = counts[clubs[i].ID]
	}
	return clubs, nil
}

// Names maps club ids to names.
func (r *ClubRepository) Names(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var clubs []models.Club
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&clubs).Error; err != nil {
		return nil, err
	}
	for _, c := range clubs {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (r *ClubRepository) memberCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("club_id AS target_id, COUNT(*) AS n").
		Where("club_id IN ?", ids).
		Group("club_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.N
	}
	return counts, nil
}
