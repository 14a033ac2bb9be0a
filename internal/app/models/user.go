package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	Email         string     `json:"email" db:"email" example:"user@learnhub.app"`
	Password      string     `json:"-" db:"password"` // Hashed, excluded from JSON
	FirstName     string     `json:"firstName" db:"first_name" example:"John"`
	LastName      string     `json:"lastName" db:"last_name" example:"Doe"`
	RoleType      RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	PointsBalance int64      `json:"pointsBalance" db:"points_balance" example:"250"`
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	AvatarURL     *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
}

// Achievement is a reward record with a point value and completion state.
type Achievement struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"userId" db:"user_id"`
	Code        string     `json:"code" db:"code"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Points      int64      `json:"points" db:"points"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}

// Certificate records a completed course for a user.
type Certificate struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	Title      string    `json:"title" db:"title"`
	IssuedAt   time.Time `json:"issuedAt" db:"issued_at"`
	SerialCode string    `json:"serialCode" db:"serial_code"`

	// Relation (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// RefreshToken defines a stored refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
