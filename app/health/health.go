// Package health reports the health of a running simpledex node.
//
// Components checked:
//   - store: the ledger is initialized and committing
//   - invariants: every registered invariant holds (detailed checks only)
//
// Results of basic checks are cached for a short period so that load
// balancers polling the readiness endpoint do not contend with writers.
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// HTTPStatus maps the overall status to a response code. Degraded nodes
// still serve traffic.
func (h *HealthCheck) HTTPStatus() int {
	if h.Status == StatusUnhealthy {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// Source is the node state the checker inspects. Implemented by app.DexApp.
type Source interface {
	LastBlockHeight() int64
	LastCommitTime() time.Time
	CheckInvariants() (string, bool)
}

// Config holds configuration for the health checker
type Config struct {
	// MaxCommitAge marks the store degraded when nothing was committed for
	// this long. Zero disables the check; an idle ledger is normal.
	MaxCommitAge time.Duration

	// CacheDuration is how long to cache basic health check results
	CacheDuration time.Duration

	Version string
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		CacheDuration: 5 * time.Second,
	}
}

// Checker performs health checks on the node's components
type Checker struct {
	logger log.Logger
	source Source
	cfg    Config

	mu           sync.RWMutex
	lastCheck    time.Time
	cachedHealth *HealthCheck
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, source Source, cfg Config) (*Checker, error) {
	if source == nil {
		return nil, fmt.Errorf("health source is required")
	}
	return &Checker{logger: logger, source: source, cfg: cfg}, nil
}

// Check runs the component checks. Detailed checks also run invariants and
// bypass the cache.
func (c *Checker) Check(ctx context.Context, detailed bool) *HealthCheck {
	if !detailed {
		if cached := c.cached(); cached != nil {
			return cached
		}
	}

	health := &HealthCheck{
		Timestamp:  time.Now(),
		Version:    c.cfg.Version,
		Components: make(map[string]ComponentHealth),
	}

	checks := []struct {
		name string
		fn   func(context.Context) ComponentHealth
	}{
		{"store", c.checkStore},
	}
	if detailed {
		checks = append(checks, struct {
			name string
			fn   func(context.Context) ComponentHealth
		}{"invariants", c.checkInvariants})
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, check := range checks {
		wg.Add(1)
		go func(name string, fn func(context.Context) ComponentHealth) {
			defer wg.Done()
			result := fn(ctx)
			mu.Lock()
			health.Components[name] = result
			mu.Unlock()
		}(check.name, check.fn)
	}
	wg.Wait()

	health.Status = calculateOverallStatus(health.Components)
	if health.Status != StatusHealthy {
		c.logger.Info("health check not healthy", "status", health.Status)
	}

	if !detailed {
		c.mu.Lock()
		c.lastCheck = time.Now()
		c.cachedHealth = health
		c.mu.Unlock()
	}
	return health
}

func (c *Checker) checkStore(_ context.Context) ComponentHealth {
	height := c.source.LastBlockHeight()
	result := ComponentHealth{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Metrics:   map[string]interface{}{"height": height},
	}

	if height == 0 {
		result.Status = StatusUnhealthy
		result.Message = "ledger not initialized"
		return result
	}

	if last := c.source.LastCommitTime(); !last.IsZero() {
		age := time.Since(last)
		result.Metrics["last_commit_age_seconds"] = age.Seconds()
		if c.cfg.MaxCommitAge > 0 && age > c.cfg.MaxCommitAge {
			result.Status = StatusDegraded
			result.Message = fmt.Sprintf("no commit for %s", age.Round(time.Second))
		}
	}
	return result
}

func (c *Checker) checkInvariants(_ context.Context) ComponentHealth {
	start := time.Now()
	msg, broken := c.source.CheckInvariants()
	result := ComponentHealth{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Metrics:   map[string]interface{}{"duration_ms": time.Since(start).Milliseconds()},
	}
	if broken {
		result.Status = StatusUnhealthy
		result.Message = msg
	}
	return result
}

// calculateOverallStatus determines the overall health status based on component statuses
func calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasDegraded := false
	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			hasDegraded = true
		}
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

func (c *Checker) cached() *HealthCheck {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cachedHealth == nil || time.Since(c.lastCheck) > c.cfg.CacheDuration {
		return nil
	}
	return c.cachedHealth
}
