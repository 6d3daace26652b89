package models

import (
	"time"
)

type EventRegistration struct {
	ID               string    `json:"id" gorm:"primaryKey;size:191"`
	EventID          string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_registrations_event_user"`
	UserID           string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_registrations_event_user;index"`
	FullName         string    `json:"full_name" gorm:"not null;size:255"`
	PhoneNumber      string    `json:"phone_number" gorm:"not null;size:50"`
	RegistrationDate time.Time `json:"registration_date"`
	CreatedAt        time.Time `json:"created_at"`

	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

type RegisterForEventRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}
