package gateway

import (
	"context"
	"fmt"
	"net/http"

	"merchant-pos/config"
)

// HealthChecker reports whether the processor endpoint is reachable. Any HTTP
// response counts as reachable; only transport errors fail the check, since
// real calls require credentials the health probe does not have.
type HealthChecker struct {
	endpoint   string
	httpClient *http.Client
}

// NewHealthChecker probes the sandbox endpoint; reachability is the same for
// both environments behind the processor's load balancer.
func NewHealthChecker(cfg config.GatewayConfig) *HealthChecker {
	return &HealthChecker{
		endpoint:   cfg.SandboxURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (h *HealthChecker) Name() string { return "gateway" }

func (h *HealthChecker) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint, nil)
	if err != nil {
		return fmt.Errorf("building health probe: %w", err)
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	return resp.Body.Close()
}
