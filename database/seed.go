package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"pacearena-api/models"
)

// SeedData populates an empty database with the NYC demo clubs and events.
func SeedData(db *gorm.DB, now time.Time) error {
	var clubCount int64
	if err := db.Model(&models.Club{}).Count(&clubCount).Error; err != nil {
		return err
	}
	if clubCount > 0 {
		log.Println("Database already has data, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	clubs := []models.Club{
		{
			ID: "club-brooklyn-bridge", Name: "Brooklyn Bridge Runners", Location: "Brooklyn, NY",
			Email: "hello@bbrunners.example", Description: "Sunrise runs across the bridge.",
			PaceGroups: datatypes.NewJSONSlice([]models.PaceGroup{{Name: "Tempo", Pace: "7:30"}, {Name: "Steady", Pace: "8:00"}, {Name: "Easy", Pace: "8:30"}}),
		},
		{
			ID: "club-central-park", Name: "Central Park Pacers", Location: "Manhattan, NY",
			Email: "run@cppacers.example", Description: "Weekly long runs and Wednesday speed work.",
			PaceGroups: datatypes.NewJSONSlice([]models.PaceGroup{{Name: "Fast", Pace: "7:00"}, {Name: "Tempo", Pace: "7:30"}, {Name: "Steady", Pace: "8:00"}}),
		},
		{
			ID: "club-queens-distance", Name: "Queens Distance Club", Location: "Queens, NY",
			Email: "info@qdc.example", Description: "Marathon training every Saturday.",
			PaceGroups: datatypes.NewJSONSlice([]models.PaceGroup{{Name: "Steady", Pace: "8:00"}, {Name: "Easy", Pace: "8:30"}, {Name: "Recovery", Pace: "9:00"}}),
		},
	}

	brooklyn, central := "club-brooklyn-bridge", "club-central-park"
	users := []models.User{
		{ID: "user-1", Name: "Sarah Chen", Email: "sarah@example.com", Password: string(hash), ClubID: &central, PaceGroup: "7:00"},
		{ID: "user-2", Name: "Mike Rodriguez", Email: "mike@example.com", Password: string(hash), ClubID: &brooklyn, PaceGroup: "7:30"},
	}

	day := now.Truncate(24 * time.Hour)
	events := []models.Event{
		seedEvent("NYC Marathon", "Marathon", day.AddDate(0, 0, 30), "8:00 AM", "Central Park, Manhattan", "26.2 miles", 40.7829, -73.9654, false, nil),
		seedEvent("Brooklyn Half Marathon", "Half Marathon", day.AddDate(0, 0, 14), "7:30 AM", "Prospect Park, Brooklyn", "13.1 miles", 40.6602, -73.9690, false, nil),
		seedEvent("Queens 10K Run", "10K", day.AddDate(0, 0, 7), "9:00 AM", "Flushing Meadows Park", "6.2 miles", 40.7400, -73.8408, false, nil),
		seedEvent("Weekly Long Run", "Long Run", day.AddDate(0, 0, 3), "7:00 AM", "Brooklyn Bridge Park", "8-12 miles", 40.7003, -73.9967, true, &clubs[0]),
		seedEvent("Speed Work Wednesday", "Intervals", day.AddDate(0, 0, 5), "6:30 PM", "Central Park Reservoir", "5K intervals", 40.7851, -73.9626, true, &clubs[1]),
		seedEvent("Marathon Training", "Long Run", day.AddDate(0, 0, 6), "6:00 AM", "Astoria Park", "15-20 miles", 40.7794, -73.9219, true, &clubs[2]),
	}

	posts := []models.Post{
		{ID: uuid.New().String(), ClubID: clubs[0].ID, UserID: "user-2", Content: "Amazing sunrise run across the Brooklyn Bridge this morning! Our 7:45 group crushed their 5K goal today.", Hashtags: datatypes.JSONSlice[string]{"BrooklynBridge", "SunriseRun", "PaceGroup"}},
		{ID: uuid.New().String(), ClubID: clubs[1].ID, UserID: "user-1", Content: "Weekly long run complete! 12 miles through Central Park with our endurance group.", Hashtags: datatypes.JSONSlice[string]{"CentralPark", "LongRun", "Endurance"}},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&clubs).Error; err != nil {
			return fmt.Errorf("seed clubs: %w", err)
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := tx.Create(&events).Error; err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
		if err := tx.Create(&posts).Error; err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
		log.Println("Database seeded with demo clubs, events and posts")
		return nil
	})
}

func seedEvent(name, eventType string, date time.Time, at, location, distance string, lat, lng float64, clubEvent bool, club *models.Club) models.Event {
	e := models.Event{
		ID:          uuid.New().String(),
		Name:        name,
		Description: name + " in " + location,
		EventType:   eventType,
		Date:        date,
		Time:        at,
		Location:    location,
		Distance:    distance,
		Latitude:    &lat,
		Longitude:   &lng,
		City:        "New York",
		State:       "NY",
		IsClubEvent: clubEvent,
	}
	if club != nil {
		id := club.ID
		e.ClubID = &id
		paces := make([]string, 0, len(club.PaceGroups))
		for _, g := range club.PaceGroups {
			paces = append(paces, g.Pace)
		}
		e.PaceGroups = datatypes.NewJSONSlice(paces)
	}
	return e
}
