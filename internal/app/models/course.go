package models

import (
	"time"
)

// Course represents a catalog entry sold on the marketplace.
// Price and PointsPrice are always carried together so either payment
// path can be offered without a refetch.
type Course struct {
	ID           int64     `json:"id" db:"id"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Category     string    `json:"category" db:"category"`
	Price        int64     `json:"price" db:"price"` // cents
	PointsPrice  int64     `json:"pointsPrice" db:"points_price"`
	PointsReward int64     `json:"pointsReward" db:"points_reward"`
	CoverURL     *string   `json:"coverUrl,omitempty" db:"cover_url"`
	Rating       float64   `json:"rating" db:"rating"`
	ReviewCount  int64     `json:"reviewCount" db:"review_count"`
	IsPublished  bool      `json:"isPublished" db:"is_published"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Teacher *User   `json:"teacher,omitempty"`
	Topics  []Topic `json:"topics,omitempty"`
}

// Topic groups lessons inside a course.
type Topic struct {
	ID       int64    `json:"id" db:"id"`
	CourseID int64    `json:"courseId" db:"course_id"`
	Title    string   `json:"title" db:"title"`
	Position int      `json:"position" db:"position"`
	Lessons  []Lesson `json:"lessons,omitempty"`
}

// Lesson is a single unit of course content.
type Lesson struct {
	ID              int64   `json:"id" db:"id"`
	TopicID         int64   `json:"topicId" db:"topic_id"`
	Title           string  `json:"title" db:"title"`
	DurationMinutes int     `json:"durationMinutes" db:"duration_minutes"`
	Position        int     `json:"position" db:"position"`
	VideoURL        *string `json:"videoUrl,omitempty" db:"video_url"`
}

// Review is a student's rating of a purchased course. One per user per course.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}

// Enrollment links a user to a purchased course.
type Enrollment struct {
	ID            int64         `json:"id" db:"id"`
	UserID        int64         `json:"userId" db:"user_id"`
	CourseID      int64         `json:"courseId" db:"course_id"`
	PaymentMethod PaymentMethod `json:"paymentMethod" db:"payment_method"`
	Progress      int           `json:"progress" db:"progress"` // 0-100
	CompletedAt   *time.Time    `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Course *Course `json:"course,omitempty"`
}
