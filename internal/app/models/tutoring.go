package models

import (
	"time"
)

// TutoringSession is a recurring offering posted by a teacher.
// Lifecycle: PENDING -> APPROVED|REJECTED -> ARCHIVED.
type TutoringSession struct {
	ID              int64         `json:"id" db:"id"`
	TeacherID       int64         `json:"teacherId" db:"teacher_id"`
	Subject         string        `json:"subject" db:"subject"`
	Description     *string       `json:"description,omitempty" db:"description"`
	PricePerHour    int64         `json:"pricePerHour" db:"price_per_hour"` // cents
	DurationMinutes int           `json:"durationMinutes" db:"duration_minutes"`
	Status          SessionStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	Teacher *User `json:"teacher,omitempty"`
}

// TutoringRequest is a student's booking attempt against a session.
// Lifecycle: PENDING -> ACCEPTED|REJECTED|CANCELED, ACCEPTED -> COMPLETED.
type TutoringRequest struct {
	ID          int64         `json:"id" db:"id"`
	SessionID   int64         `json:"sessionId" db:"session_id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	ScheduledAt time.Time     `json:"scheduledAt" db:"scheduled_at"`
	Note        *string       `json:"note,omitempty" db:"note"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Session *TutoringSession `json:"session,omitempty"`
	Student *User            `json:"student,omitempty"`
}

// CalendarEvent is an upcoming accepted booking projected for either side.
type CalendarEvent struct {
	RequestID   int64     `json:"requestId"`
	Subject     string    `json:"subject"`
	ScheduledAt time.Time `json:"scheduledAt"`
	WithUser    string    `json:"withUser"`
}
