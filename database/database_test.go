package database

import (
	"testing"
	"time"

	"pacearena-api/models"
)

func TestInitialize_UnknownDriver(t *testing.T) {
	if _, err := Initialize("oracle", "x"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestSeedData(t *testing.T) {
	db, err := OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := SeedData(db, now); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var events []models.Event
	if err := db.Find(&events).Error; err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("expected 6 seeded events, got %d", len(events))
	}
	public, club := models.PartitionEvents(events)
	if len(public) != 3 || len(club) != 3 {
		t.Fatalf("expected 3 public and 3 club events, got %d/%d", len(public), len(club))
	}
	for _, e := range club {
		if e.ClubID == nil || len(e.PaceGroups) == 0 {
			t.Fatalf("club event %q missing club or pace groups", e.Name)
		}
	}

	var club0 models.Club
	if err := db.First(&club0, "id = ?", "club-central-park").Error; err != nil {
		t.Fatalf("load club: %v", err)
	}
	if !club0.HasPaceGroup("7:30") {
		t.Fatalf("expected pace groups to round-trip through the JSON column, got %+v", club0.PaceGroups)
	}

	t.Run("second seed is a no-op", func(t *testing.T) {
		if err := SeedData(db, now); err != nil {
			t.Fatalf("reseed: %v", err)
		}
		var count int64
		db.Model(&models.Event{}).Count(&count)
		if count != 6 {
			t.Fatalf("expected 6 events after reseed, got %d", count)
		}
	})
}
