package app

import (
	"log"
	"sync"
	"time"
)

type Config struct {
	DeviceBaseURL    string
	TelemetryBaseURL string
	StatusPath       string
	AlertsPath       string
	HTTPTimeout      time.Duration

	BreakerFailures int
	BreakerOpenFor  time.Duration
	BreakerInterval time.Duration

	Logger *log.Logger
}

type Gateway struct {
	cfg    Config
	device *Upstream
	alerts *Upstream
	router NodeRouter

	// ultima risposta valida degli alert, servita quando l'upstream è giù
	mu             sync.Mutex
	lastGoodAlerts []Alert
}

func NewGateway(cfg Config, router NodeRouter) *Gateway {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	// Un breaker per ciascun upstream
	db := NewBreaker("device-service", cfg.BreakerFailures, cfg.BreakerOpenFor, cfg.BreakerInterval)
	tb := NewBreaker("telemetry-service", cfg.BreakerFailures, cfg.BreakerOpenFor, cfg.BreakerInterval)

	d := NewUpstream("device", cfg.DeviceBaseURL, cfg.StatusPath, cfg.HTTPTimeout, db)
	a := NewUpstream("alerts", cfg.TelemetryBaseURL, cfg.AlertsPath, cfg.HTTPTimeout, tb)

	return &Gateway{cfg: cfg, device: d, alerts: a, router: router}
}
