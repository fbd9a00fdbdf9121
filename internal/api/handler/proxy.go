package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/metrics"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// Proxy forwards same-origin requests to the commerce backend. Handlers are
// stateless; the only thing carried across the hop is the inbound
// Authorization header.
type Proxy struct {
	upstream string
	http     *http.Client
	log      zerolog.Logger
}

// NewProxy returns a Proxy targeting the given backend origin.
func NewProxy(upstream string, timeout time.Duration, log zerolog.Logger) *Proxy {
	return &Proxy{
		upstream: strings.TrimRight(upstream, "/"),
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

// relay issues one upstream request and maps the outcome for the original
// caller:
//   - upstream replied (any status): status and body are relayed verbatim —
//     upstream error detail is never swallowed;
//   - upstream unreachable, or replied with a non-JSON body: a fixed 500
//     envelope carrying failMsg, with the real cause logged server-side only.
func (p *Proxy) relay(c echo.Context, route, method, path string, auth string, body []byte, failMsg string) error {
	req, err := http.NewRequestWithContext(c.Request().Context(), method, p.upstream+path, bytes.NewReader(body))
	if err != nil {
		return p.fail(c, route, failMsg, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := p.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		return p.fail(c, route, failMsg, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return p.fail(c, route, failMsg, err)
	}

	if len(data) == 0 || !json.Valid(data) {
		return p.fail(c, route, failMsg, nil)
	}

	metrics.ProxyRequestsTotal.WithLabelValues(route, "relayed").Inc()
	return c.JSONBlob(resp.StatusCode, data)
}

func (p *Proxy) fail(c echo.Context, route, failMsg string, cause error) error {
	metrics.ProxyRequestsTotal.WithLabelValues(route, "upstream_failure").Inc()
	p.log.Error().Err(cause).Str("route", route).Msg("upstream call failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: failMsg})
}
