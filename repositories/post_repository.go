package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"pacearena-api/models"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Club").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListFeed returns posts newest first, optionally limited to one club.
func (r *PostRepository) ListFeed(ctx context.Context, clubID string) ([]models.Post, error) {
	query := r.db.WithContext(ctx).Preload("Club")
	if clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}
	posts := []models.Post{}
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, err
}
