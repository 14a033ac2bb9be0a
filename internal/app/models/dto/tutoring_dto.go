package dto

import "time"

// CreateSessionRequest posts a new tutoring session offering
type CreateSessionRequest struct {
	Subject         string `json:"subject" binding:"required"`
	Description     string `json:"description"`
	PricePerHour    int64  `json:"pricePerHour" binding:"min=0"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=15"`
}

// UpdateSessionRequest edits an existing session offering
type UpdateSessionRequest struct {
	Subject         string `json:"subject" binding:"required"`
	Description     string `json:"description"`
	PricePerHour    int64  `json:"pricePerHour" binding:"min=0"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=15"`
}

// CreateBookingRequest books a slot against an approved session
type CreateBookingRequest struct {
	SessionID   int64     `json:"sessionId" binding:"required,min=1"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Note        string    `json:"note"`
}

// RequestActions lists the affordances valid for a request's current state.
// A PENDING request offers accept/reject (teacher side) or cancel (student
// side); anything past PENDING offers only dismissal.
type RequestActions struct {
	CanAccept   bool `json:"canAccept"`
	CanReject   bool `json:"canReject"`
	CanCancel   bool `json:"canCancel"`
	CanComplete bool `json:"canComplete"`
	CanDismiss  bool `json:"canDismiss"`
}
