package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.Backend.BaseURL = url
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Backend.Timeout = d
	}
}

func WithPageSize(size int) Option {
	return func(c *Config) {
		c.PageSize = size
	}
}

func WithoutBreaker() Option {
	return func(c *Config) {
		c.Breaker.Enabled = false
	}
}
