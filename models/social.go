package models

import (
	"time"

	"gorm.io/gorm"
)

// TargetKind names the parent a like or comment hangs off.
type TargetKind string

const (
	TargetEvent TargetKind = "event"
	TargetPost  TargetKind = "post"
)

// Target identifies exactly one likeable/commentable parent.
type Target struct {
	Kind TargetKind
	ID   string
}

func EventTarget(id string) Target { return Target{Kind: TargetEvent, ID: id} }
func PostTarget(id string) Target  { return Target{Kind: TargetPost, ID: id} }

// Column returns the foreign key column for the target kind.
func (t Target) Column() string {
	if t.Kind == TargetPost {
		return "post_id"
	}
	return "event_id"
}

func (t Target) Valid() bool {
	return t.ID != "" && (t.Kind == TargetEvent || t.Kind == TargetPost)
}

// Like is unique per (user, target); liking is presence, not a counter.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	EventID   *string   `json:"event_id,omitempty" gorm:"size:191;uniqueIndex:idx_likes_event_user"`
	PostID    *string   `json:"post_id,omitempty" gorm:"size:191;uniqueIndex:idx_likes_post_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_likes_event_user;uniqueIndex:idx_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	return checkSingleParent(l.EventID, l.PostID)
}

// Comment is append-only.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	EventID   *string   `json:"event_id,omitempty" gorm:"size:191;index"`
	PostID    *string   `json:"post_id,omitempty" gorm:"size:191;index"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	return checkSingleParent(c.EventID, c.PostID)
}

// SetTarget points the like at t, clearing the other parent.
func (l *Like) SetTarget(t Target) {
	id := t.ID
	l.EventID, l.PostID = nil, nil
	if t.Kind == TargetPost {
		l.PostID = &id
	} else {
		l.EventID = &id
	}
}

func (c *Comment) SetTarget(t Target) {
	id := t.ID
	c.EventID, c.PostID = nil, nil
	if t.Kind == TargetPost {
		c.PostID = &id
	} else {
		c.EventID = &id
	}
}

func checkSingleParent(eventID, postID *string) error {
	hasEvent := eventID != nil && *eventID != ""
	hasPost := postID != nil && *postID != ""
	if hasEvent == hasPost {
		return ErrInvalidTarget
	}
	return nil
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// LikeAction is the write a like toggle performs. The caller derives it from
// whether the viewer currently likes the target.
type LikeAction int

const (
	LikeAdd LikeAction = iota + 1
	LikeRemove
)

// LikeActionFor maps the current like state to the write that flips it.
func LikeActionFor(currentlyLiked bool) LikeAction {
	if currentlyLiked {
		return LikeRemove
	}
	return LikeAdd
}

func (a LikeAction) String() string {
	switch a {
	case LikeAdd:
		return "add"
	case LikeRemove:
		return "remove"
	}
	return "unknown"
}
