package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "learnhub-test",
	})
}

func decodeError(t *testing.T, body []byte) *dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error == nil {
		t.Fatalf("error response has no error detail: %s", body)
	}
	return &resp
}

func TestJWTAuth_MissingHeaderRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(newTestJWTService(), nil)

	router := gin.New()
	router.GET("/cart", m.JWTAuth(), func(c *gin.Context) {
		t.Fatalf("handler should not be called")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	resp := decodeError(t, w.Body.Bytes())
	if resp.Error.RedirectTo != "/login" {
		t.Fatalf("redirectTo = %q, want /login", resp.Error.RedirectTo)
	}
	if resp.Error.From != "/cart" {
		t.Fatalf("from = %q, want /cart", resp.Error.From)
	}
}

func TestJWTAuth_GarbageTokenRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(newTestJWTService(), nil)

	router := gin.New()
	router.GET("/profile", m.JWTAuth(), func(c *gin.Context) {
		t.Fatalf("handler should not be called")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	resp := decodeError(t, w.Body.Bytes())
	if resp.Error.RedirectTo != "/login" {
		t.Fatalf("redirectTo = %q, want /login", resp.Error.RedirectTo)
	}
}

func TestJWTAuth_ValidTokenLoadsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, nil)

	user := &models.User{ID: 7, Email: "s@learnhub.app", RoleType: models.RoleStudent}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	router := gin.New()
	router.GET("/profile", m.JWTAuth(), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok || id != 7 {
			t.Fatalf("user id from context = %d (%v), want 7", id, ok)
		}
		role, ok := CurrentRole(c)
		if !ok || role != models.RoleStudent {
			t.Fatalf("role from context = %s (%v), want STUDENT", role, ok)
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

// A student hitting a teacher route gets 403 and a redirect hint pointing
// at the student landing page, not at /login.
func TestRequireRoles_WrongRoleRedirectsHome(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, nil)

	student := &models.User{ID: 3, Email: "s@learnhub.app", RoleType: models.RoleStudent}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(student)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	router := gin.New()
	router.POST("/teacher/courses", m.JWTAuth(), m.RequireRoles(models.RoleTeacher), func(c *gin.Context) {
		t.Fatalf("handler should not be called")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/teacher/courses", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	resp := decodeError(t, w.Body.Bytes())
	if resp.Error.RedirectTo != "/my-courses" {
		t.Fatalf("redirectTo = %q, want /my-courses", resp.Error.RedirectTo)
	}
	if resp.Error.From != "/teacher/courses" {
		t.Fatalf("from = %q, want /teacher/courses", resp.Error.From)
	}
}

func TestRequireRoles_MatchingRolePasses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService, nil)

	teacher := &models.User{ID: 4, Email: "t@learnhub.app", RoleType: models.RoleTeacher}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(teacher)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	router := gin.New()
	router.POST("/teacher/courses", m.JWTAuth(), m.RequireRoles(models.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/teacher/courses", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}
