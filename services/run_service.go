package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"pacearena-api/clock"
	"pacearena-api/messaging"
	"pacearena-api/models"
	"pacearena-api/repositories"
	"pacearena-api/telemetry"
)

// Screenshots are stored no larger than this box.
const (
	screenshotMaxWidth  = 1080
	screenshotMaxHeight = 1920

	// Uploads declaring more pixels than this are rejected before decoding.
	screenshotMaxPixels = 40_000_000
)

type RunInput struct {
	DistanceMiles   float64
	DurationSeconds int
	Screenshot      io.Reader
}

type RunService struct {
	runRepo   *repositories.RunRepository
	userRepo  *repositories.UserRepository
	publisher messaging.Publisher
	clock     clock.Clock
	uploadDir string
}

func NewRunService(
	runRepo *repositories.RunRepository,
	userRepo *repositories.UserRepository,
	publisher messaging.Publisher,
	clk clock.Clock,
	uploadDir string,
) *RunService {
	return &RunService{
		runRepo:   runRepo,
		userRepo:  userRepo,
		publisher: publisher,
		clock:     clk,
		uploadDir: uploadDir,
	}
}

// Submit records a verified run for userID. The screenshot must decode as an
// image; it is downscaled and stored as JPEG under the upload directory. The
// run is attributed to the user's club at submission time.
func (s *RunService) Submit(ctx context.Context, userID string, in RunInput) (*models.RunSubmission, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "RunService.Submit")
	defer span.End()

	if userID == "" {
		return nil, models.ErrAuthRequired
	}
	if in.DistanceMiles <= 0 || in.DurationSeconds <= 0 {
		return nil, models.ErrInvalidRun
	}
	if in.Screenshot == nil {
		return nil, models.ErrInvalidScreenshot
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(in.Screenshot, &head))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidScreenshot, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > screenshotMaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels",
			models.ErrInvalidScreenshot, cfg.Width, cfg.Height, screenshotMaxPixels)
	}

	img, err := imaging.Decode(io.MultiReader(&head, in.Screenshot), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidScreenshot, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > screenshotMaxWidth || bounds.Dy() > screenshotMaxHeight {
		img = imaging.Fit(img, screenshotMaxWidth, screenshotMaxHeight, imaging.Lanczos)
	}

	run := &models.RunSubmission{
		ID:              uuid.New().String(),
		UserID:          userID,
		ClubID:          user.ClubID,
		DistanceMiles:   in.DistanceMiles,
		DurationSeconds: in.DurationSeconds,
		SubmittedAt:     s.clock.Now(),
	}

	dir := filepath.Join(s.uploadDir, "runs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, run.ID+".jpg")
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("save screenshot: %w", err)
	}
	run.ScreenshotPath = path

	if err := s.runRepo.Create(ctx, run); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("create run: %w", err)
	}

	msg := messaging.RunMessage{
		RunID:         run.ID,
		UserID:        userID,
		DistanceMiles: run.DistanceMiles,
		At:            run.SubmittedAt,
	}
	if run.ClubID != nil {
		msg.ClubID = *run.ClubID
	}
	if err := s.publisher.Publish(ctx, messaging.KeyRunSubmitted, msg); err != nil {
		log.Printf("Warning: failed to publish %s: %v", messaging.KeyRunSubmitted, err)
	}
	return run, nil
}
