package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"pacearena-api/models"
	"pacearena-api/repositories"
	"pacearena-api/utils"
)

type ClubService struct {
	clubRepo *repositories.ClubRepository
}

func NewClubService(clubRepo *repositories.ClubRepository) *ClubService {
	return &ClubService{clubRepo: clubRepo}
}

// Create registers a club. Name, location and email are required and at
// least one pace group with an m:ss pace must be given.
func (s *ClubService) Create(ctx context.Context, ownerID string, req models.CreateClubRequest) (*models.Club, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	req.Email = strings.TrimSpace(req.Email)
	if utils.BlankAny(req.Name, req.Location, req.Email) {
		return nil, models.ErrMissingFields
	}

	groups := make([]models.PaceGroup, 0, len(req.PaceGroups))
	for _, g := range req.PaceGroups {
		g.Name = strings.TrimSpace(g.Name)
		g.Pace = strings.TrimSpace(g.Pace)
		if g.Name == "" && g.Pace == "" {
			continue
		}
		if !utils.IsValidPace(g.Pace) {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidPace, g.Pace)
		}
		if g.Name == "" {
			g.Name = g.Pace
		}
		groups = append(groups, g)
	}
	req.PaceGroups = groups

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	club := &models.Club{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Location:    req.Location,
		Email:       req.Email,
		Description: strings.TrimSpace(req.Description),
		PaceGroups:  datatypes.NewJSONSlice(groups),
		OwnerID:     ownerID,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("create club: %w", err)
	}
	return club, nil
}

func (s *ClubService) Get(ctx context.Context, id string) (*models.Club, error) {
	return s.clubRepo.GetByID(ctx, id)
}

// List returns clubs newest first.
func (s *ClubService) List(ctx context.Context) ([]models.Club, error) {
	return s.clubRepo.List(ctx)
}
