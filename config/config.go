package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/zgs/booking-client/pkg/circuit_breaker"
	"github.com/zgs/booking-client/pkg/logger"
)

type Backend struct {
	BaseURL string `envconfig:"BOOKING_BASE_URL"`
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration `envconfig:"BOOKING_HTTP_TIMEOUT"`
	// RPS of zero disables client-side throttling.
	RPS       float64 `envconfig:"BOOKING_RPS"`
	UserAgent string  `envconfig:"BOOKING_USER_AGENT"`
}

type Config struct {
	Backend  Backend
	Breaker  circuit_breaker.Config
	PageSize int        `envconfig:"BOOKING_PAGE_SIZE"`
	Log      logger.Log `yaml:"log"`
}

// NewConfig starts from the built-in defaults, applies ops, then lets the
// environment override whatever it sets.
func NewConfig(ops ...Option) (Config, error) {
	cfg := defaults()
	for _, op := range ops {
		op(&cfg)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "NewConfig")
	}
	if cfg.PageSize <= 0 {
		return Config{}, errors.Errorf("NewConfig: page size must be positive, got %d", cfg.PageSize)
	}
	if cfg.Backend.BaseURL == "" {
		return Config{}, errors.New("NewConfig: empty backend base url")
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Backend: Backend{
			BaseURL:   "http://localhost:8080",
			UserAgent: "bookingctl",
		},
		Breaker: circuit_breaker.Config{
			Window:       100,
			Cooldown:     time.Second,
			FailureRatio: 0.2,
			Recovery:     2,
			Enabled:      true,
		},
		PageSize: 10,
	}
}
