package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	RegistrationModeAPI       = "api"
	RegistrationModeSimulated = "simulated"
)

// Config is read from PACEARENA_* environment variables.
type Config struct {
	BaseURL string `envconfig:"API_URL" default:"http://localhost:8080/api/v1"`

	// RegistrationMode picks the Registrar and has no default: "api" stores
	// the registration, "simulated" only waits SimulatedDelay.
	RegistrationMode string        `envconfig:"REGISTRATION_MODE" required:"true"`
	SimulatedDelay   time.Duration `envconfig:"SIMULATED_REGISTRATION_DELAY" default:"1s"`

	NearbyRadiusMiles float64 `envconfig:"NEARBY_RADIUS_MILES" default:"25"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PACEARENA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load client config: %w", err)
	}
	switch cfg.RegistrationMode {
	case RegistrationModeAPI, RegistrationModeSimulated:
	default:
		return nil, fmt.Errorf("PACEARENA_REGISTRATION_MODE must be %q or %q, got %q",
			RegistrationModeAPI, RegistrationModeSimulated, cfg.RegistrationMode)
	}
	if cfg.NearbyRadiusMiles <= 0 {
		return nil, fmt.Errorf("PACEARENA_NEARBY_RADIUS_MILES must be positive, got %v", cfg.NearbyRadiusMiles)
	}
	return &cfg, nil
}
