package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"pacearena-api/models"
	"pacearena-api/repositories"
)

type AuthService struct {
	userRepo     *repositories.UserRepository
	clubRepo     *repositories.ClubRepository
	tokens       *TokenService
	emailService *EmailService
}

func NewAuthService(
	userRepo *repositories.UserRepository,
	clubRepo *repositories.ClubRepository,
	tokens *TokenService,
	emailService *EmailService,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		clubRepo:     clubRepo,
		tokens:       tokens,
		emailService: emailService,
	}
}

// Register creates an account and returns a session token for it. When a
// club is chosen, the pace group must be one of that club's groups.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	user := models.User{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
	}

	if req.ClubID != nil && *req.ClubID != "" {
		club, err := s.clubRepo.GetByID(ctx, *req.ClubID)
		if err != nil {
			return nil, err
		}
		if req.PaceGroup != "" && !club.HasPaceGroup(req.PaceGroup) {
			return nil, models.ErrInvalidPaceGroup
		}
		user.ClubID = &club.ID
		user.PaceGroup = req.PaceGroup
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("Failed to send welcome email: %v", err)
		}
	}

	return s.respond(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return s.respond(*user)
}

// Session resolves the current user for a verified token subject.
func (s *AuthService) Session(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, models.ErrAuthRequired
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrAuthRequired
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) respond(user models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	user.Password = ""
	return &models.AuthResponse{Token: token, User: user}, nil
}
