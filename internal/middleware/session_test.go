package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func setupSessionRouter(cfg SessionConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SessionMiddleware(cfg))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func doSessionRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSessionMiddlewareValidToken(t *testing.T) {
	router := setupSessionRouter(SessionConfig{Secret: testSecret, Issuer: "gtdflow"})

	token := signedToken(t, testSecret, jwt.MapClaims{
		"iss":     "gtdflow",
		"user_id": "123e4567-e89b-12d3-a456-426614174000",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := doSessionRequest(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSessionMiddlewareSubjectFallback(t *testing.T) {
	router := setupSessionRouter(SessionConfig{Secret: testSecret})

	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "123e4567-e89b-12d3-a456-426614174000",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doSessionRequest(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with sub claim, got %d", w.Code)
	}
}

func TestSessionMiddlewareRejections(t *testing.T) {
	router := setupSessionRouter(SessionConfig{Secret: testSecret, Issuer: "gtdflow"})

	expired := signedToken(t, testSecret, jwt.MapClaims{
		"iss":     "gtdflow",
		"user_id": "u",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongSecret := signedToken(t, "other-secret", jwt.MapClaims{
		"iss":     "gtdflow",
		"user_id": "u",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	wrongIssuer := signedToken(t, testSecret, jwt.MapClaims{
		"iss":     "someone-else",
		"user_id": "u",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	noUser := signedToken(t, testSecret, jwt.MapClaims{
		"iss": "gtdflow",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongSecret},
		{"wrong issuer", "Bearer " + wrongIssuer},
		{"no user id", "Bearer " + noUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doSessionRequest(router, tt.header)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", w.Code)
			}
		})
	}
}
