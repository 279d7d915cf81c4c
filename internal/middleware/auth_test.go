package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestGetSubject(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := GetSubject(c); got != "" {
		t.Errorf("Expected empty subject on unauthenticated request, got %q", got)
	}

	ctx := context.WithValue(req.Context(), SubjectKey, "auth0|user-42")
	c.SetRequest(req.WithContext(ctx))

	if got := GetSubject(c); got != "auth0|user-42" {
		t.Errorf("Expected subject from context, got %q", got)
	}
}
