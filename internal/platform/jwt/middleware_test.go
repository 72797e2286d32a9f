package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// createTokenWithSecret signs a token with arbitrary claims for the tests below.
func createTokenWithSecret(t *testing.T, secret, userID, email, role string, expiresIn time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   time.Now().Add(expiresIn).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
		"role":  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// newProtectedRouter mounts AuthRequired in front of a probe handler that
// echoes back what the middleware put on the context.
func newProtectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(ContextUserID),
			"email":  c.GetString(ContextEmail),
			"role":   c.GetString(ContextRole),
		})
	})
	return r
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "test-secret")

	token := createTokenWithSecret(t, "test-secret", "user-123", "user@example.com", "student", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newProtectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{"user-123", "user@example.com", "student"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q, got %s", want, body)
		}
	}
}

func TestAuthRequired_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authHeader func(t *testing.T) string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: func(t *testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			authHeader: func(t *testing.T) string { return "Basic dXNlcjpwYXNz" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			authHeader: func(t *testing.T) string {
				return "Bearer " + createTokenWithSecret(t, "other-secret", "user-1", "a@b.com", "student", time.Hour)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: func(t *testing.T) string {
				return "Bearer " + createTokenWithSecret(t, "test-secret", "user-1", "a@b.com", "student", -time.Minute)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: func(t *testing.T) string { return "Bearer not.a.jwt" },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKeyJWTSecret, "test-secret")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tt.authHeader(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			newProtectedRouter().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthRequired_MissingSecret(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "")

	token := createTokenWithSecret(t, "test-secret", "user-1", "a@b.com", "student", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newProtectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestAuthRequired_RejectsNonHMACAlgorithm(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "test-secret")

	// alg=none must never be accepted even with a matching payload
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	newProtectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}
