package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
	RoleAdmin   RoleType = "ADMIN"
)

// DefaultLandingRoute returns the client route a user of this role lands on
// when a guard turns them away from a page outside their role.
func (r RoleType) DefaultLandingRoute() string {
	switch r {
	case RoleStudent:
		return "/my-courses"
	case RoleTeacher:
		return "/teacher/courses"
	case RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}

// SessionStatus is the moderation state of a tutoring session posting.
type SessionStatus string

const (
	SessionStatusPending  SessionStatus = "PENDING"
	SessionStatusApproved SessionStatus = "APPROVED"
	SessionStatusRejected SessionStatus = "REJECTED"
	SessionStatusArchived SessionStatus = "ARCHIVED"
)

// RequestStatus is the state of a student's booking request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusAccepted  RequestStatus = "ACCEPTED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCompleted RequestStatus = "COMPLETED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// PaymentMethod identifies which currency paid for a purchase.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodPoints PaymentMethod = "POINTS"
)

// PointsTransactionType distinguishes ledger entries.
type PointsTransactionType string

const (
	PointsEarned    PointsTransactionType = "EARNED"
	PointsSpent     PointsTransactionType = "SPENT"
	PointsPurchased PointsTransactionType = "PURCHASED"
)

// GrowthPeriod selects the bucketing of the admin growth chart.
type GrowthPeriod string

const (
	GrowthPeriodWeek  GrowthPeriod = "WEEK"
	GrowthPeriodMonth GrowthPeriod = "MONTH"
	GrowthPeriodYear  GrowthPeriod = "YEAR"
)

// ValidGrowthPeriod reports whether p is a supported period selector.
func ValidGrowthPeriod(p GrowthPeriod) bool {
	switch p {
	case GrowthPeriodWeek, GrowthPeriodMonth, GrowthPeriodYear:
		return true
	}
	return false
}
