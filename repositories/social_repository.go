package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pacearena-api/models"
)

// SocialRepository stores likes and comments for events and posts.
type SocialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) *SocialRepository {
	return &SocialRepository{db: db}
}

// InsertLike adds the like row unless one already exists for the same user
// and target. It reports whether a row was written.
func (r *SocialRepository) InsertLike(ctx context.Context, like *models.Like) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteLike removes the user's like on target and reports whether a row
// was removed.
func (r *SocialRepository) DeleteLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	result := r.db.WithContext(ctx).
		Where(target.Column()+" = ? AND user_id = ?", target.ID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SocialRepository) HasLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where(target.Column()+" = ? AND user_id = ?", target.ID, userID).
		Count(&count).Error
	return count > 0, err
}

// LikeUserIDs lists who liked target, oldest first.
func (r *SocialRepository) LikeUserIDs(ctx context.Context, target models.Target) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where(target.Column()+" = ?", target.ID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

type countRow struct {
	TargetID string
	N        int64
}

// LikeCounts returns like counts keyed by target id. Targets with no likes
// are absent from the map.
func (r *SocialRepository) LikeCounts(ctx context.Context, kind models.TargetKind, ids []string) (map[string]int64, error) {
	return r.countBy(ctx, &models.Like{}, kind, ids)
}

func (r *SocialRepository) CommentCounts(ctx context.Context, kind models.TargetKind, ids []string) (map[string]int64, error) {
	return r.countBy(ctx, &models.Comment{}, kind, ids)
}

func (r *SocialRepository) countBy(ctx context.Context, model interface{}, kind models.TargetKind, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	col := models.Target{Kind: kind}.Column()
	var rows []countRow
	err := r.db.WithContext(ctx).Model(model).
		Select(col+" AS target_id, COUNT(*) AS n").
		Where(col+" IN ?", ids).
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.N
	}
	return counts, nil
}

// LikedBy returns the subset of ids the user has liked.
func (r *SocialRepository) LikedBy(ctx context.Context, kind models.TargetKind, ids []string, userID string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if len(ids) == 0 || userID == "" {
		return liked, nil
	}

	col := models.Target{Kind: kind}.Column()
	var targetIDs []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where(col+" IN ? AND user_id = ?", ids, userID).
		Pluck(col, &targetIDs).Error
	if err != nil {
		return nil, err
	}
	for _, id := range targetIDs {
		liked[id] = true
	}
	return liked, nil
}

func (r *SocialRepository) InsertComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *SocialRepository) ListComments(ctx context.Context, target models.Target) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).Preload("User").
		Where(target.Column()+" = ?", target.ID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
