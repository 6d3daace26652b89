package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaceGroup bands runners by per-mile time, e.g. {"Tempo", "7:30"}.
type PaceGroup struct {
	Name string `json:"name" validate:"required"`
	Pace string `json:"pace" validate:"required"`
}

type Club struct {
	ID           string                         `json:"id" gorm:"primaryKey;size:191"`
	Name         string                         `json:"name" gorm:"not null;size:255"`
	Location     string                         `json:"location" gorm:"not null;size:255"`
	Email        string                         `json:"email" gorm:"not null;size:255"`
	Description  string                         `json:"description" gorm:"type:text"`
	PaceGroups   datatypes.JSONSlice[PaceGroup] `json:"pace_groups"`
	OwnerID      string                         `json:"owner_id" gorm:"size:191"`
	MembersCount int64                          `json:"members_count" gorm:"-"`
	CreatedAt    time.Time                      `json:"created_at"`
	UpdatedAt    time.Time                      `json:"updated_at"`
}

// HasPaceGroup reports whether pace matches one of the club's groups by
// name or pace.
func (c *Club) HasPaceGroup(pace string) bool {
	for _, g := range c.PaceGroups {
		if g.Pace == pace || g.Name == pace {
			return true
		}
	}
	return false
}

type CreateClubRequest struct {
	Name        string      `json:"name" validate:"required"`
	Location    string      `json:"location" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Description string      `json:"description"`
	PaceGroups  []PaceGroup `json:"pace_groups" validate:"required,min=1,dive"`
}
