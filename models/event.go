package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event is a running event. IsClubEvent places it in exactly one of the two
// display categories: club events or public events.
type Event struct {
	ID                   string                      `json:"id" gorm:"primaryKey;size:191"`
	Name                 string                      `json:"name" gorm:"not null;size:255"`
	Description          string                      `json:"description" gorm:"type:text"`
	EventType            string                      `json:"event_type" gorm:"size:100"`
	Date                 time.Time                   `json:"date" gorm:"not null;index"`
	Time                 string                      `json:"time" gorm:"size:20"`
	Location             string                      `json:"location" gorm:"size:255"`
	Distance             string                      `json:"distance" gorm:"size:50"`
	Latitude             *float64                    `json:"latitude,omitempty"`
	Longitude            *float64                    `json:"longitude,omitempty"`
	Address              string                      `json:"address,omitempty" gorm:"size:500"`
	City                 string                      `json:"city,omitempty" gorm:"size:100"`
	State                string                      `json:"state,omitempty" gorm:"size:50"`
	Zipcode              string                      `json:"zipcode,omitempty" gorm:"size:20"`
	IsClubEvent          bool                        `json:"is_club_event" gorm:"not null"`
	ClubID               *string                     `json:"club_id,omitempty" gorm:"size:191;index"`
	PaceGroups           datatypes.JSONSlice[string] `json:"pace_groups,omitempty"`
	MaxParticipants      *int                        `json:"max_participants,omitempty"`
	RegistrationDeadline *time.Time                  `json:"registration_deadline,omitempty"`
	RegistrationClosed   bool                        `json:"registration_closed"`
	CreatedBy            string                      `json:"created_by,omitempty" gorm:"size:191"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`

	// Read-time aggregates, never stored on the row.
	Likes         LikeSummary    `json:"likes" gorm:"-"`
	Comments      CommentSummary `json:"comments" gorm:"-"`
	DistanceMiles *float64       `json:"distance_miles,omitempty" gorm:"-"`
}

// LikeSummary is the per-viewer like aggregate attached to events and posts.
type LikeSummary struct {
	Count        int64 `json:"count"`
	UserHasLiked bool  `json:"user_has_liked"`
}

type CommentSummary struct {
	Count int64 `json:"count"`
}

// HasCoordinates reports whether the event can take part in radius searches.
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// RegistrationOpen reports whether registrations are accepted at now.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.RegistrationClosed {
		return false
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	return true
}

// PartitionEvents splits events into public and club lists by IsClubEvent.
// Every event lands in exactly one list and input order is preserved.
func PartitionEvents(events []Event) (public []Event, club []Event) {
	public = make([]Event, 0, len(events))
	club = make([]Event, 0, len(events))
	for _, e := range events {
		if e.IsClubEvent {
			club = append(club, e)
		} else {
			public = append(public, e)
		}
	}
	return public, club
}

// NearbyEventsRequest is the argument set of the get_nearby_events procedure.
type NearbyEventsRequest struct {
	UserLat     *float64 `json:"user_lat" binding:"required"`
	UserLng     *float64 `json:"user_lng" binding:"required"`
	RadiusMiles float64  `json:"radius_miles"`
}

type CreateEventRequest struct {
	Name                 string     `json:"name" binding:"required"`
	Description          string     `json:"description"`
	EventType            string     `json:"event_type"`
	Date                 time.Time  `json:"date" binding:"required"`
	Time                 string     `json:"time"`
	Location             string     `json:"location" binding:"required"`
	Distance             string     `json:"distance"`
	Latitude             *float64   `json:"latitude"`
	Longitude            *float64   `json:"longitude"`
	Address              string     `json:"address"`
	City                 string     `json:"city"`
	State                string     `json:"state"`
	Zipcode              string     `json:"zipcode"`
	IsClubEvent          bool       `json:"is_club_event"`
	ClubID               *string    `json:"club_id"`
	PaceGroups           []string   `json:"pace_groups"`
	MaxParticipants      *int       `json:"max_participants" binding:"omitempty,min=1"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
}
