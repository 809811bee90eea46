package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrOpenCB = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Call(service func() error) error
	State() Status
	Reset()
}

type Config struct {
	// Window is how many recent calls are tracked.
	Window int `envconfig:"BOOKING_CB_WINDOW"`
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration `envconfig:"BOOKING_CB_COOLDOWN"`
	// FailureRatio of the window that opens the breaker.
	FailureRatio float64 `envconfig:"BOOKING_CB_RATIO"`
	// Recovery is the number of consecutive half-open successes needed to close.
	Recovery int  `envconfig:"BOOKING_CB_RECOVERY"`
	Enabled  bool `envconfig:"BOOKING_CB_ENABLED"`
}

type circuitBreaker struct {
	mu  sync.Mutex
	cfg Config
	now func() time.Time

	state    Status
	openedAt time.Time
	// failed[i] is true when the i-th tracked call failed; pos wraps around.
	failed    []bool
	pos       int
	successes int
}

type Option func(*circuitBreaker)

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(cb *circuitBreaker) { cb.now = now }
}

func New(cfg Config, opts ...Option) CircuitBreaker {
	if !cfg.Enabled {
		return noop{}
	}
	if cfg.Window <= 0 {
		cfg.Window = 1
	}
	cb := &circuitBreaker{
		cfg:    cfg,
		now:    time.Now,
		state:  Closed,
		failed: make([]bool, cfg.Window),
	}
	for _, opt := range opts {
		opt(cb)
	}
	return cb
}

func (cb *circuitBreaker) Call(service func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.openedAt) <= cb.cfg.Cooldown {
			cb.mu.Unlock()
			return ErrOpenCB
		}
		cb.state = HalfOpen
		cb.successes = 0
	}
	cb.mu.Unlock()

	err := service()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failed[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % len(cb.failed)

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
			return err
		}
		cb.successes++
		if cb.successes >= cb.cfg.Recovery {
			cb.reset()
		}
		return err
	}

	fails := 0
	for _, f := range cb.failed {
		if f {
			fails++
		}
	}
	if float64(fails)/float64(len(cb.failed)) >= cb.cfg.FailureRatio {
		cb.trip()
	}
	return err
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successes = 0
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.failed {
		cb.failed[i] = false
	}
	cb.pos = 0
	cb.successes = 0
	cb.state = Closed
}

type noop struct{}

func (noop) Call(service func() error) error { return service() }
func (noop) State() Status                   { return Closed }
func (noop) Reset()                          {}
