package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/shopstream/storefront-gateway/internal/gateway"
)

func newTestRouter(t *testing.T, upstream http.Handler) http.Handler {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	client := gateway.NewClient(context.Background(), gateway.Config{BaseURL: srv.URL, Logger: zerolog.Nop()})

	return NewRouter(RouterConfig{
		Upstream:        srv.URL,
		UpstreamTimeout: 5 * time.Second,
		Client:          client,
		Logger:          zerolog.Nop(),
		Registry:        prometheus.NewRegistry(),
	})
}

func TestRouter_HealthLiveness(t *testing.T) {
	router := newTestRouter(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != "OK" {
		t.Fatalf(`expected {"status":"OK"}, got %s`, rec.Body.String())
	}
}

func TestRouter_FeedbackAllRequiresAuthorization(t *testing.T) {
	upstreamCalled := false
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/feedback/all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Authorization header required") {
		t.Fatalf("expected fixed error body, got %s", rec.Body.String())
	}
	if upstreamCalled {
		t.Fatalf("request without credentials must not be forwarded")
	}
}

func TestRouter_FeedbackSubmitRequiresAuthorization(t *testing.T) {
	router := newTestRouter(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/feedback/product",
		strings.NewReader(`{"product_id":"p1","rating":4,"text":"ok"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_EventsProxiedEndToEnd(t *testing.T) {
	var upstreamPath string
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamPath = r.URL.Path
		_, _ = w.Write([]byte(`{"accepted":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/events",
		strings.NewReader(`{"event_type":"page_view","session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if upstreamPath != "/events/" {
		t.Fatalf("expected upstream /events/, got %s", upstreamPath)
	}
}

func TestRouter_ReadinessDegradedWhenBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // backend unreachable

	client := gateway.NewClient(context.Background(), gateway.Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	router := NewRouter(RouterConfig{
		Upstream:        srv.URL,
		UpstreamTimeout: time.Second,
		Client:          client,
		Logger:          zerolog.Nop(),
		Registry:        prometheus.NewRegistry(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "degraded") {
		t.Fatalf("expected degraded status, got %s", rec.Body.String())
	}
}
