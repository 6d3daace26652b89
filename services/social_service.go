package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"pacearena-api/clock"
	"pacearena-api/messaging"
	"pacearena-api/models"
	"pacearena-api/repositories"
	"pacearena-api/telemetry"
)

type SocialService struct {
	socialRepo *repositories.SocialRepository
	eventRepo  *repositories.EventRepository
	postRepo   *repositories.PostRepository
	publisher  messaging.Publisher
	clock      clock.Clock
}

func NewSocialService(
	socialRepo *repositories.SocialRepository,
	eventRepo *repositories.EventRepository,
	postRepo *repositories.PostRepository,
	publisher messaging.Publisher,
	clk clock.Clock,
) *SocialService {
	return &SocialService{
		socialRepo: socialRepo,
		eventRepo:  eventRepo,
		postRepo:   postRepo,
		publisher:  publisher,
		clock:      clk,
	}
}

// ApplyLike performs action for userID on target. Adding an existing like and
// removing a missing one are both no-ops. The returned summary reflects the
// stored state after the write.
func (s *SocialService) ApplyLike(ctx context.Context, userID string, target models.Target, action models.LikeAction) (models.LikeSummary, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "SocialService.ApplyLike")
	defer span.End()
	span.SetAttributes(
		attribute.String("target.kind", string(target.Kind)),
		attribute.String("like.action", action.String()),
	)

	if userID == "" {
		return models.LikeSummary{}, models.ErrAuthRequired
	}
	if err := s.ensureTarget(ctx, target); err != nil {
		return models.LikeSummary{}, err
	}

	var changed bool
	switch action {
	case models.LikeAdd:
		like := &models.Like{ID: uuid.New().String(), UserID: userID, CreatedAt: s.clock.Now()}
		like.SetTarget(target)
		created, err := s.socialRepo.InsertLike(ctx, like)
		if err != nil {
			return models.LikeSummary{}, fmt.Errorf("insert like: %w", err)
		}
		changed = created
	case models.LikeRemove:
		removed, err := s.socialRepo.DeleteLike(ctx, userID, target)
		if err != nil {
			return models.LikeSummary{}, fmt.Errorf("delete like: %w", err)
		}
		changed = removed
	default:
		return models.LikeSummary{}, fmt.Errorf("unknown like action %d", action)
	}

	if changed {
		s.publish(ctx, likeKey(target.Kind, action), messaging.LikeMessage{
			TargetKind: string(target.Kind),
			TargetID:   target.ID,
			UserID:     userID,
			At:         s.clock.Now(),
		})
	}

	return s.likeSummary(ctx, userID, target)
}

// AddComment appends a comment by userID to target.
func (s *SocialService) AddComment(ctx context.Context, userID string, target models.Target, content string) (*models.Comment, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "SocialService.AddComment")
	defer span.End()

	if userID == "" {
		return nil, models.ErrAuthRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.ErrEmptyComment
	}
	if err := s.ensureTarget(ctx, target); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		CreatedAt: s.clock.Now(),
	}
	comment.SetTarget(target)
	if err := s.socialRepo.InsertComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	s.publish(ctx, messaging.KeyCommentCreated, messaging.CommentMessage{
		CommentID:  comment.ID,
		TargetKind: string(target.Kind),
		TargetID:   target.ID,
		UserID:     userID,
		At:         comment.CreatedAt,
	})
	return comment, nil
}

// ListComments returns target's comments oldest first with their authors.
func (s *SocialService) ListComments(ctx context.Context, target models.Target) ([]models.Comment, error) {
	if err := s.ensureTarget(ctx, target); err != nil {
		return nil, err
	}
	return s.socialRepo.ListComments(ctx, target)
}

// LikeUserIDs lists the users who like target.
func (s *SocialService) LikeUserIDs(ctx context.Context, target models.Target) ([]string, error) {
	if err := s.ensureTarget(ctx, target); err != nil {
		return nil, err
	}
	return s.socialRepo.LikeUserIDs(ctx, target)
}

func (s *SocialService) likeSummary(ctx context.Context, userID string, target models.Target) (models.LikeSummary, error) {
	counts, err := s.socialRepo.LikeCounts(ctx, target.Kind, []string{target.ID})
	if err != nil {
		return models.LikeSummary{}, err
	}
	liked, err := s.socialRepo.HasLike(ctx, userID, target)
	if err != nil {
		return models.LikeSummary{}, err
	}
	return models.LikeSummary{Count: counts[target.ID], UserHasLiked: liked}, nil
}

func (s *SocialService) ensureTarget(ctx context.Context, target models.Target) error {
	if !target.Valid() {
		return models.ErrInvalidTarget
	}

	var (
		exists bool
		err    error
	)
	switch target.Kind {
	case models.TargetEvent:
		exists, err = s.eventRepo.Exists(ctx, target.ID)
		if err == nil && !exists {
			err = models.ErrEventNotFound
		}
	case models.TargetPost:
		exists, err = s.postRepo.Exists(ctx, target.ID)
		if err == nil && !exists {
			err = models.ErrPostNotFound
		}
	}
	return err
}

func (s *SocialService) publish(ctx context.Context, key string, payload any) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		log.Printf("Warning: failed to publish %s: %v", key, err)
	}
}

func likeKey(kind models.TargetKind, action models.LikeAction) string {
	switch {
	case kind == models.TargetPost && action == models.LikeAdd:
		return messaging.KeyPostLiked
	case kind == models.TargetPost:
		return messaging.KeyPostUnliked
	case action == models.LikeAdd:
		return messaging.KeyEventLiked
	default:
		return messaging.KeyEventUnliked
	}
}
