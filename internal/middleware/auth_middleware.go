package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/apperrors"
	"github.com/emre/learnhub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   *repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// JWTAuth validates the bearer token and loads the user identity into the
// request context. A missing or dead token answers 401 with a login
// redirect hint carrying the attempted location, so the client can send
// the user back after signing in.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortToLogin(c, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortToLogin(c, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			details := "Invalid token"
			code := dto.ErrorCodeInvalidToken
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(code, "Authentication failed")
			errorDetail = errorDetail.WithDetails(details)
			errorDetail = errorDetail.WithRedirect("/login", c.Request.URL.Path)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, models.RoleType(claims.RoleType))

		c.Next()
	}
}

// RequireRoles allows only the listed roles through. An authenticated user
// of the wrong role gets 403 with their own landing route as the redirect
// hint, mirroring how the client walks users back to their home page.
func (m *AuthMiddleware) RequireRoles(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			abortToLogin(c, "User role not found")
			return
		}

		roleType, ok := role.(models.RoleType)
		if !ok {
			abortToLogin(c, "User role not found")
			return
		}

		for _, allowed := range roles {
			if roleType == allowed {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
		errorDetail = errorDetail.WithRedirect(roleType.DefaultLandingRoute(), c.Request.URL.Path)

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// ActiveUser rejects requests from deactivated accounts. Runs after JWTAuth.
func (m *AuthMiddleware) ActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			abortToLogin(c, "User information not found")
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
			errorDetail = errorDetail.WithDetails("Failed to load user account")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			return
		}

		if !user.IsActive {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account disabled")
			errorDetail = errorDetail.WithRedirect("/login", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user's ID from the context
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// CurrentRole reads the authenticated user's role from the context
func CurrentRole(c *gin.Context) (models.RoleType, bool) {
	value, exists := c.Get(ContextRoleType)
	if !exists {
		return "", false
	}
	role, ok := value.(models.RoleType)
	return role, ok
}

func abortToLogin(c *gin.Context, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	errorDetail = errorDetail.WithDetails(details)
	errorDetail = errorDetail.WithRedirect("/login", c.Request.URL.Path)

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
