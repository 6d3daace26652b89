package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post is a club social feed entry.
type Post struct {
	ID        string                      `json:"id" gorm:"primaryKey;size:191"`
	ClubID    string                      `json:"club_id" gorm:"not null;size:191;index"`
	UserID    string                      `json:"user_id" gorm:"not null;size:191"`
	Content   string                      `json:"content" gorm:"not null;type:text"`
	ImageURL  string                      `json:"image_url,omitempty" gorm:"size:500"`
	Hashtags  datatypes.JSONSlice[string] `json:"hashtags"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`

	Club *Club `json:"club,omitempty" gorm:"foreignKey:ClubID"`

	Likes    LikeSummary    `json:"likes" gorm:"-"`
	Comments CommentSummary `json:"comments" gorm:"-"`
}

type CreatePostRequest struct {
	Content  string   `json:"content" binding:"required"`
	ImageURL string   `json:"image_url"`
	Hashtags []string `json:"hashtags"`
}
