package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"pacearena-api/models"
	"pacearena-api/telemetry"
)

// API talks to the PaceArena backend over JSON/HTTP. It holds the bearer
// token of the signed-in user, if any.
type API struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

// NewAPI returns a client for baseURL, e.g. "http://localhost:8080/api/v1".
// A nil httpClient uses http.DefaultClient.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), client: httpClient}
}

func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// SignUp creates an account and keeps the returned token.
func (a *API) SignUp(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	a.SetToken(resp.Token)
	return &resp, nil
}

// Login signs in and keeps the returned token.
func (a *API) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := a.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	a.SetToken(resp.Token)
	return &resp, nil
}

func (a *API) Logout() {
	a.SetToken("")
}

// Session returns the signed-in user, or nil when there is no valid session.
func (a *API) Session(ctx context.Context) (*models.User, error) {
	if a.Token() == "" {
		return nil, nil
	}
	var resp struct {
		User *models.User `json:"user"`
	}
	err := a.do(ctx, http.MethodGet, "/auth/session", nil, &resp)
	if errors.Is(err, models.ErrAuthRequired) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ListEvents returns every event ordered by date with like and comment
// aggregates for the current viewer.
func (a *API) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := a.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// NearbyEvents calls the get_nearby_events procedure.
func (a *API) NearbyEvents(ctx context.Context, lat, lng, radiusMiles float64) ([]models.Event, error) {
	req := models.NearbyEventsRequest{UserLat: &lat, UserLng: &lng, RadiusMiles: radiusMiles}
	var events []models.Event
	if err := a.do(ctx, http.MethodPost, "/rpc/get_nearby_events", req, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Like inserts or deletes the viewer's like on an event.
func (a *API) Like(ctx context.Context, eventID string, action models.LikeAction) (models.LikeSummary, error) {
	method := http.MethodPost
	if action == models.LikeRemove {
		method = http.MethodDelete
	}
	var summary models.LikeSummary
	err := a.do(ctx, method, "/events/"+url.PathEscape(eventID)+"/likes", nil, &summary)
	return summary, err
}

func (a *API) Comments(ctx context.Context, eventID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := a.do(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (a *API) AddComment(ctx context.Context, eventID, content string) (*models.Comment, error) {
	var comment models.Comment
	err := a.do(ctx, http.MethodPost, "/events/"+url.PathEscape(eventID)+"/comments", models.CreateCommentRequest{Content: content}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (a *API) Register(ctx context.Context, eventID string, req models.RegisterForEventRequest) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	if err := a.do(ctx, http.MethodPost, "/events/"+url.PathEscape(eventID)+"/registrations", req, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (a *API) Registrations(ctx context.Context) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	if err := a.do(ctx, http.MethodGet, "/registrations", nil, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := telemetry.Tracer().Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.request.method", method)),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := a.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%w: %s %s: %v", ErrBackend, method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: resp.Status}
		var eb errorBody
		if json.NewDecoder(resp.Body).Decode(&eb) == nil {
			switch {
			case eb.Message != "":
				apiErr.Message = eb.Message
			case eb.Error != "":
				apiErr.Message = eb.Error
			}
		}
		span.SetStatus(codes.Error, apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrBackend, method, path, err)
	}
	return nil
}
