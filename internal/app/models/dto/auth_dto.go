package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/emre/learnhub/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request.
// Only STUDENT and TEACHER are accepted; admins are seeded.
type RegisterRequest struct {
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	FirstName string          `json:"firstName" binding:"required"`
	LastName  string          `json:"lastName" binding:"required"`
	RoleType  models.RoleType `json:"roleType" binding:"required,oneof=STUDENT TEACHER"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Role          string  `json:"role"`
	PointsBalance int64   `json:"pointsBalance"`
	AvatarURL     *string `json:"avatarUrl,omitempty"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          string(user.RoleType),
		PointsBalance: user.PointsBalance,
		AvatarURL:     user.AvatarURL,
	}
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// HandleValidationError converts a validator error into an ErrorDetail
func HandleValidationError(err error) *ErrorDetail {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		first := verrs[0]
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		detail = detail.WithField(first.Field())
		detail = detail.WithDetails(first.Error())
		return detail
	}
	return NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
}
