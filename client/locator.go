package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pacearena-api/clock"
	"pacearena-api/utils"
)

type PermissionState int

const (
	PermissionPrompt PermissionState = iota
	PermissionGranted
	PermissionDenied
)

func (s PermissionState) String() string {
	switch s {
	case PermissionPrompt:
		return "prompt"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	}
	return "unknown"
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Position struct {
	Coordinates
	Timestamp time.Time
}

type PositionOptions struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	MaximumAge         time.Duration
}

// DefaultPositionOptions asks for a high accuracy fix within 10s and accepts
// one up to 5 minutes old.
func DefaultPositionOptions() PositionOptions {
	return PositionOptions{
		EnableHighAccuracy: true,
		Timeout:            10 * time.Second,
		MaximumAge:         5 * time.Minute,
	}
}

// Geolocator is the device's positioning capability. Implementations return
// ErrGeolocationUnsupported when the device has none and ErrPermissionDenied
// when the user refuses.
type Geolocator interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

type GeolocatorFunc func(ctx context.Context, opts PositionOptions) (Position, error)

func (f GeolocatorFunc) CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error) {
	return f(ctx, opts)
}

// CachingGeolocator returns the last fix while it is younger than the
// requested MaximumAge.
type CachingGeolocator struct {
	next  Geolocator
	clock clock.Clock

	mu   sync.Mutex
	last *Position
}

func NewCachingGeolocator(next Geolocator, clk clock.Clock) *CachingGeolocator {
	return &CachingGeolocator{next: next, clock: clk}
}

func (g *CachingGeolocator) CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error) {
	g.mu.Lock()
	if g.last != nil && g.clock.Now().Sub(g.last.Timestamp) <= opts.MaximumAge {
		pos := *g.last
		g.mu.Unlock()
		return pos, nil
	}
	g.mu.Unlock()

	pos, err := g.next.CurrentPosition(ctx, opts)
	if err != nil {
		return Position{}, err
	}
	if pos.Timestamp.IsZero() {
		pos.Timestamp = g.clock.Now()
	}
	g.mu.Lock()
	g.last = &pos
	g.mu.Unlock()
	return pos, nil
}

// LocationResolver turns a one-shot device position into the coordinates the
// event feed filters by. Once granted, the stored coordinates are returned
// without asking the device again.
type LocationResolver struct {
	geo        Geolocator
	opts       PositionOptions
	onResolved func(context.Context, Coordinates)

	mu      sync.Mutex
	state   PermissionState
	coords  *Coordinates
	lastErr error
}

// NewLocationResolver returns a resolver in the prompt state. geo may be nil
// on devices without positioning. onResolved, if set, runs after each
// successful resolution.
func NewLocationResolver(geo Geolocator, opts PositionOptions, onResolved func(context.Context, Coordinates)) *LocationResolver {
	return &LocationResolver{geo: geo, opts: opts, onResolved: onResolved}
}

// RequestLocation asks the device for coordinates.
//
// Without a positioning capability the state stays as it was and
// ErrGeolocationUnsupported is returned. Any other failure moves the state to
// denied and clears the coordinates; a later call may try again.
func (r *LocationResolver) RequestLocation(ctx context.Context) (Coordinates, error) {
	r.mu.Lock()
	if r.state == PermissionGranted {
		c := *r.coords
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	if r.geo == nil {
		return Coordinates{}, r.fail(ErrGeolocationUnsupported, false)
	}

	reqCtx := ctx
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	pos, err := r.geo.CurrentPosition(reqCtx, r.opts)
	switch {
	case errors.Is(err, ErrGeolocationUnsupported):
		return Coordinates{}, r.fail(err, false)
	case err == nil && !utils.IsValidCoordinates(pos.Lat, pos.Lng):
		return Coordinates{}, r.fail(fmt.Errorf("device returned invalid coordinates %v,%v", pos.Lat, pos.Lng), true)
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		return Coordinates{}, r.fail(fmt.Errorf("%w: %v", ErrLocationTimeout, err), true)
	case err != nil:
		return Coordinates{}, r.fail(err, true)
	}

	c := pos.Coordinates
	r.mu.Lock()
	r.state = PermissionGranted
	r.coords = &c
	r.lastErr = nil
	r.mu.Unlock()

	if r.onResolved != nil {
		r.onResolved(ctx, c)
	}
	return c, nil
}

func (r *LocationResolver) fail(err error, deny bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if deny {
		r.state = PermissionDenied
		r.coords = nil
	}
	r.lastErr = err
	return fmt.Errorf("request location: %w", err)
}

func (r *LocationResolver) State() PermissionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Coordinates returns the resolved coordinates, if any.
func (r *LocationResolver) Coordinates() (Coordinates, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.coords == nil {
		return Coordinates{}, false
	}
	return *r.coords, true
}

// Banner returns the retry message to keep on screen after the last request
// failed, or "" when there is nothing to show.
func (r *LocationResolver) Banner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.lastErr == nil:
		return ""
	case errors.Is(r.lastErr, ErrGeolocationUnsupported):
		return "Location is not available on this device. Showing all events."
	case r.state == PermissionDenied:
		return "Enable location services to see nearby events, then try again."
	}
	return ""
}
