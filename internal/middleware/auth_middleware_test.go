package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "leavex.test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role models.Role, stream models.Stream) string {
	t.Helper()
	accessToken, _, _, _, err := svc.GenerateTokenPair(&models.Profile{
		ID:     "user-1",
		Email:  "user@college.edu",
		Role:   role,
		Stream: stream,
	})
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}
	return accessToken
}

func newTestRouter(m *AuthMiddleware, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/protected", m.JWTAuth())
	if len(roles) > 0 {
		group.Use(m.RoleRequired(roles...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(ContextUserID),
			"role":   c.GetString(ContextRole),
		})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	svc := newTestJWTService()
	m := NewAuthMiddleware(svc)

	t.Run("missing token rejected with 401", func(t *testing.T) {
		r := newTestRouter(m)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token rejected with 401", func(t *testing.T) {
		r := newTestRouter(m)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{
			SecretKey:       "other-secret",
			AccessTokenExp:  time.Hour,
			RefreshTokenExp: 24 * time.Hour,
			TokenIssuer:     "leavex.test",
		})
		r := newTestRouter(m)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, other, models.RoleStudent, models.StreamCSE))

		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token passes and populates context", func(t *testing.T) {
		r := newTestRouter(m)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RoleStudent, models.StreamCSE))

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("token accepted from query parameter", func(t *testing.T) {
		r := newTestRouter(m)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected?token="+issueToken(t, svc, models.RoleStudent, models.StreamCSE), nil)

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestRoleRequired(t *testing.T) {
	svc := newTestJWTService()
	m := NewAuthMiddleware(svc)

	t.Run("wrong role rejected with 403", func(t *testing.T) {
		r := newTestRouter(m, models.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RoleStudent, models.StreamCSE))

		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("matching role admitted", func(t *testing.T) {
		r := newTestRouter(m, models.RolePC, models.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RolePC, models.StreamECE))

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
