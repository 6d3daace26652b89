package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"pacearena-api/messaging"
	"pacearena-api/models"
)

func screenshot(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w×h grayscale
// image, which is all the decoder reads to learn the dimensions.
func pngHeader(w, h uint32) *bytes.Buffer {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	buf := bytes.NewBufferString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf
}

func TestRunService_SubmitStoresDownscaledScreenshot(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	svc := NewRunService(env.runs, env.users, env.published, env.clock, dir)
	club := env.addClub(t, "c1", "Pacers", "8:00")
	env.addUser(t, "u1", &club.ID)

	run, err := svc.Submit(context.Background(), "u1", RunInput{
		DistanceMiles:   3.1,
		DurationSeconds: 1500,
		Screenshot:      screenshot(t, 1440, 2560),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if run.ClubID == nil || *run.ClubID != club.ID {
		t.Errorf("run not attributed to club: %+v", run)
	}
	if !strings.HasPrefix(run.ScreenshotPath, filepath.Join(dir, "runs")) {
		t.Errorf("screenshot stored at %q", run.ScreenshotPath)
	}

	saved, err := imaging.Open(run.ScreenshotPath)
	if err != nil {
		t.Fatalf("open saved screenshot: %v", err)
	}
	if b := saved.Bounds(); b.Dx() != screenshotMaxWidth || b.Dy() != screenshotMaxHeight {
		t.Errorf("saved size = %dx%d", b.Dx(), b.Dy())
	}
	if keys := env.published.Keys(); len(keys) != 1 || keys[0] != messaging.KeyRunSubmitted {
		t.Errorf("published %v", keys)
	}
}

func TestRunService_SubmitRejections(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	svc := NewRunService(env.runs, env.users, env.published, env.clock, dir)
	env.addUser(t, "u1", nil)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "", RunInput{DistanceMiles: 1, DurationSeconds: 1, Screenshot: screenshot(t, 4, 4)}); !errors.Is(err, models.ErrAuthRequired) {
		t.Errorf("anonymous: got %v", err)
	}
	if _, err := svc.Submit(ctx, "u1", RunInput{DistanceMiles: 0, DurationSeconds: 60, Screenshot: screenshot(t, 4, 4)}); !errors.Is(err, models.ErrInvalidRun) {
		t.Errorf("zero distance: got %v", err)
	}
	if _, err := svc.Submit(ctx, "u1", RunInput{DistanceMiles: 1, DurationSeconds: 60, Screenshot: strings.NewReader("not an image")}); !errors.Is(err, models.ErrInvalidScreenshot) {
		t.Errorf("garbage screenshot: got %v", err)
	}
	if entries, _ := os.ReadDir(filepath.Join(dir, "runs")); len(entries) != 0 {
		t.Errorf("rejected runs left %d files", len(entries))
	}
}

func TestRunService_SubmitRejectsOversizedDimensions(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	svc := NewRunService(env.runs, env.users, env.published, env.clock, dir)
	env.addUser(t, "u1", nil)

	_, err := svc.Submit(context.Background(), "u1", RunInput{
		DistanceMiles:   5,
		DurationSeconds: 2400,
		Screenshot:      pngHeader(16000, 16000),
	})
	if !errors.Is(err, models.ErrInvalidScreenshot) {
		t.Fatalf("16000x16000 screenshot: got %v, want ErrInvalidScreenshot", err)
	}
	if entries, _ := os.ReadDir(filepath.Join(dir, "runs")); len(entries) != 0 {
		t.Errorf("rejected run left %d files", len(entries))
	}
	if keys := env.published.Keys(); len(keys) != 0 {
		t.Errorf("published %v", keys)
	}
}
