package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func performGuarded(t *testing.T, svc *TokenService, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	handler := Middleware(svc)(func(c echo.Context) error {
		return c.String(http.StatusOK, fmt.Sprintf("%d:%s", UserID(c), Email(c)))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()

	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestMiddlewareAllowsValidToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)
	token, err := svc.Issue("gamer@example.com", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	rec := performGuarded(t, svc, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "7:gamer@example.com" {
		t.Errorf("handler saw wrong identity: %q", rec.Body.String())
	}
}

func TestMiddlewareAcceptsLowercaseBearerScheme(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)
	token, err := svc.Issue("gamer@example.com", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	rec := performGuarded(t, svc, "bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)

	rec := performGuarded(t, svc, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)

	for _, header := range []string{"Bearer garbage", "Basic abc", "Bearer"} {
		rec := performGuarded(t, svc, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status 401, got %d", header, rec.Code)
		}
	}
}

func TestMiddlewareRejectsTokenFromOtherSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one", 60)
	verifier := newTestTokenService(t, "secret-two", 60)

	token, err := issuer.Issue("gamer@example.com", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	rec := performGuarded(t, verifier, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
