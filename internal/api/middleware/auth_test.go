package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func invoke(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/feedback/all", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}

	if err := RequireAuthorization()(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, reached
}

func TestRequireAuthorization_MissingHeader(t *testing.T) {
	rec, reached := invoke(t, "")

	if reached {
		t.Fatalf("request without credentials must not reach the handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Authorization header required") {
		t.Fatalf("expected fixed error body, got %s", rec.Body.String())
	}
}

func TestRequireAuthorization_NullToken(t *testing.T) {
	// A storefront with an empty credential store serialises the literal
	// string "null" into the header; treat it as missing.
	rec, reached := invoke(t, "Bearer null")

	if reached {
		t.Fatalf("null token must not reach the handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthorization_PassesThrough(t *testing.T) {
	rec, reached := invoke(t, "Bearer tok123")

	if !reached {
		t.Fatalf("authorized request should reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
