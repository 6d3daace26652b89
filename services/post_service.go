package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"pacearena-api/models"
	"pacearena-api/repositories"
)

type PostService struct {
	postRepo   *repositories.PostRepository
	clubRepo   *repositories.ClubRepository
	socialRepo *repositories.SocialRepository
}

func NewPostService(
	postRepo *repositories.PostRepository,
	clubRepo *repositories.ClubRepository,
	socialRepo *repositories.SocialRepository,
) *PostService {
	return &PostService{postRepo: postRepo, clubRepo: clubRepo, socialRepo: socialRepo}
}

func (s *PostService) Create(ctx context.Context, userID, clubID string, req models.CreatePostRequest) (*models.Post, error) {
	if userID == "" {
		return nil, models.ErrAuthRequired
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.ErrMissingFields
	}
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.New().String(),
		ClubID:   club.ID,
		UserID:   userID,
		Content:  content,
		ImageURL: strings.TrimSpace(req.ImageURL),
		Hashtags: normalizeHashtags(req.Hashtags),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Club = club
	return post, nil
}

// Feed returns posts newest first with per-viewer like and comment
// aggregates. An empty clubID returns every club's posts.
func (s *PostService) Feed(ctx context.Context, clubID, viewerID string) ([]models.Post, error) {
	posts, err := s.postRepo.ListFeed(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	likes, err := s.socialRepo.LikeCounts(ctx, models.TargetPost, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.socialRepo.CommentCounts(ctx, models.TargetPost, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.socialRepo.LikedBy(ctx, models.TargetPost, ids, viewerID)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		id := posts[i].ID
		posts[i].Likes = models.LikeSummary{Count: likes[id], UserHasLiked: liked[id]}
		posts[i].Comments = models.CommentSummary{Count: comments[id]}
	}
	return posts, nil
}

// normalizeHashtags strips leading '#', drops blanks and duplicates.
func normalizeHashtags(tags []string) datatypes.JSONSlice[string] {
	seen := make(map[string]bool, len(tags))
	out := make(datatypes.JSONSlice[string], 0, len(tags))
	for _, t := range tags {
		t = strings.TrimLeft(strings.TrimSpace(t), "#")
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
