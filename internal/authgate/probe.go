package authgate

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/mlc-apps/finance-backend/internal/common/clock"
	"github.com/mlc-apps/finance-backend/internal/common/logger"
	"github.com/mlc-apps/finance-backend/internal/observability/metrics"
)

type Prober interface {
	Healthy(ctx context.Context) bool
}

// LivenessProber checks the auth service's /api/ping endpoint. The result
// is cached for a short validity window so that gated navigation does not
// pay a probe round-trip per request. Expired cache plus a failed probe is
// treated exactly like an unhealthy response (fail closed).
type LivenessProber struct {
	client   *http.Client
	pingURL  string
	cacheTTL time.Duration
	clock    clock.Clock
	log      *logger.Logger

	mu          sync.Mutex
	lastResult  bool
	lastChecked time.Time
}

func NewLivenessProber(authServiceURL string, timeout, cacheTTL time.Duration, clk clock.Clock, log *logger.Logger) *LivenessProber {
	return &LivenessProber{
		client:   &http.Client{Timeout: timeout},
		pingURL:  authServiceURL + "/api/ping",
		cacheTTL: cacheTTL,
		clock:    clk,
		log:      log,
	}
}

func (p *LivenessProber) Healthy(ctx context.Context) bool {
	// The lock is held across the probe so concurrent requests share one
	// round-trip instead of stampeding the auth service.
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastChecked.IsZero() && p.clock.Since(p.lastChecked) < p.cacheTTL {
		metrics.AuthProbeCacheHits.Inc()
		return p.lastResult
	}

	healthy := p.probe(ctx)
	p.lastResult = healthy
	p.lastChecked = p.clock.Now()
	return healthy
}

func (p *LivenessProber) probe(ctx context.Context) bool {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.pingURL, nil)
	if err != nil {
		p.log.Errorf("auth probe: failed to build request: %v", err)
		metrics.AuthProbesTotal.WithLabelValues("error").Inc()
		return false
	}

	resp, err := p.client.Do(req)
	metrics.AuthProbeDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		p.log.Warnf("auth probe failed: %v", err)
		metrics.AuthProbesTotal.WithLabelValues("error").Inc()
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warnf("auth probe returned status %d", resp.StatusCode)
		metrics.AuthProbesTotal.WithLabelValues("unhealthy").Inc()
		return false
	}

	metrics.AuthProbesTotal.WithLabelValues("healthy").Inc()
	return true
}
