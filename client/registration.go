package client

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"pacearena-api/models"
)

type RegistrationForm struct {
	Name  string
	Phone string
}

// Registrar completes a registration round trip for an event.
type Registrar interface {
	Register(ctx context.Context, eventID string, form RegistrationForm) error
}

// SimulatedRegistrar waits Delay and reports success without storing
// anything.
type SimulatedRegistrar struct {
	Delay time.Duration
}

func (s SimulatedRegistrar) Register(ctx context.Context, _ string, _ RegistrationForm) error {
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// APIRegistrar stores the registration through the backend.
type APIRegistrar struct {
	API *API
}

func (r APIRegistrar) Register(ctx context.Context, eventID string, form RegistrationForm) error {
	_, err := r.API.Register(ctx, eventID, models.RegisterForEventRequest{
		FullName:    form.Name,
		PhoneNumber: form.Phone,
	})
	return err
}

// NewRegistrar returns the Registrar selected by cfg.RegistrationMode.
func NewRegistrar(cfg *Config, api *API) (Registrar, error) {
	switch cfg.RegistrationMode {
	case RegistrationModeAPI:
		return APIRegistrar{API: api}, nil
	case RegistrationModeSimulated:
		return SimulatedRegistrar{Delay: cfg.SimulatedDelay}, nil
	}
	return nil, fmt.Errorf("unknown registration mode %q", cfg.RegistrationMode)
}

// RegistrationDialog is the form state for registering to one event.
type RegistrationDialog struct {
	EventID   string
	EventName string
	Name      string
	Phone     string

	registrar Registrar
	notifier  Notifier
	open      bool
}

func NewRegistrationDialog(eventID, eventName string, registrar Registrar, notifier Notifier) *RegistrationDialog {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &RegistrationDialog{
		EventID:   eventID,
		EventName: eventName,
		registrar: registrar,
		notifier:  notifier,
	}
}

func (d *RegistrationDialog) Open()        { d.open = true }
func (d *RegistrationDialog) Close()       { d.open = false }
func (d *RegistrationDialog) IsOpen() bool { return d.open }

// Submit validates the form and registers. On success the form is cleared
// and the dialog closed; on failure the form is kept for another attempt.
func (d *RegistrationDialog) Submit(ctx context.Context) error {
	form := RegistrationForm{
		Name:  strings.TrimSpace(d.Name),
		Phone: strings.TrimSpace(d.Phone),
	}
	if form.Name == "" || form.Phone == "" {
		d.notifier.Notify(Notification{
			Level:       LevelError,
			Title:       "Missing Information",
			Description: "Please fill in both your name and phone number.",
		})
		return models.ErrMissingFields
	}

	if err := d.registrar.Register(ctx, d.EventID, form); err != nil {
		log.Printf("Registration for event %s failed: %v", d.EventID, err)
		d.notifier.Notify(Notification{
			Level:       LevelError,
			Title:       "Registration Failed",
			Description: "Something went wrong. Please try again.",
		})
		return fmt.Errorf("register for event %s: %w", d.EventID, err)
	}

	d.notifier.Notify(Notification{
		Level:       LevelSuccess,
		Title:       "Registration Successful!",
		Description: fmt.Sprintf("You've been registered for %s. We'll send SMS updates to %s.", d.EventName, form.Phone),
	})
	d.Name, d.Phone = "", ""
	d.open = false
	return nil
}
