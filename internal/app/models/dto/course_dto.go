package dto

import (
	"github.com/emre/learnhub/internal/app/models"
)

// CreateCourseRequest represents the payload for creating a course
type CreateCourseRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required"`
	Price        int64  `json:"price" binding:"min=0"`
	PointsPrice  int64  `json:"pointsPrice" binding:"min=0"`
	PointsReward int64  `json:"pointsReward" binding:"min=0"`
}

// UpdateCourseRequest represents the payload for updating a course
type UpdateCourseRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required"`
	Price        int64  `json:"price" binding:"min=0"`
	PointsPrice  int64  `json:"pointsPrice" binding:"min=0"`
	PointsReward int64  `json:"pointsReward" binding:"min=0"`
	IsPublished  *bool  `json:"isPublished"`
}

// CourseFilter carries optional catalog query parameters
type CourseFilter struct {
	Category  string
	TeacherID int64
	Search    string
}

// CourseDetailResponse is the course tree plus values derived from it.
// TotalLessons and TotalDuration treat missing nested arrays as zero;
// FirstLessonID backs the client's "continue" shortcut.
type CourseDetailResponse struct {
	Course        *models.Course `json:"course"`
	TotalLessons  int            `json:"totalLessons"`
	TotalDuration int            `json:"totalDuration"` // minutes
	FirstLessonID *int64         `json:"firstLessonId,omitempty"`
}

// CreateTopicRequest adds a topic to a course
type CreateTopicRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position" binding:"min=0"`
}

// CreateLessonRequest adds a lesson to a topic
type CreateLessonRequest struct {
	Title           string `json:"title" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"min=0"`
	Position        int    `json:"position" binding:"min=0"`
	VideoURL        string `json:"videoUrl"`
}

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
