package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/apperrors"
)

// CourseService handles the catalog, course content and reviews
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	reviewRepo     *repositories.ReviewRepository
	enrollmentRepo *repositories.EnrollmentRepository
	logger         zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	reviewRepo *repositories.ReviewRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		reviewRepo:     reviewRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// ParseCourseID turns a raw path segment into a course ID. A blank,
// whitespace-only or literal "undefined" segment is reported as absent
// rather than invalid so callers can short-circuit without a lookup.
// Clients in a half-rendered state send exactly these values.
func ParseCourseID(raw string) (int64, bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "undefined" || trimmed == "null" {
		return 0, false, nil
	}

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, apperrors.NewBadRequestError("invalid course id")
	}

	return id, true, nil
}

// ListCourses retrieves the published catalog with optional filters
func (s *CourseService) ListCourses(ctx context.Context, filter dto.CourseFilter, offset uint64, limit int) ([]*models.Course, int64, error) {
	return s.courseRepo.List(ctx, filter, offset, limit)
}

// GetCourseDetail retrieves a course tree and its derived totals. An absent
// ID yields an empty detail without touching storage.
func (s *CourseService) GetCourseDetail(ctx context.Context, rawID string) (*dto.CourseDetailResponse, error) {
	id, present, err := ParseCourseID(rawID)
	if err != nil {
		return nil, err
	}
	if !present {
		return &dto.CourseDetailResponse{}, nil
	}

	course, err := s.courseRepo.GetTree(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	detail := &dto.CourseDetailResponse{Course: course}
	deriveCourseTotals(course, detail)
	return detail, nil
}

// deriveCourseTotals computes lesson count, total duration and the first
// lesson from whatever part of the tree is populated. Nil or empty nested
// slices contribute zero.
func deriveCourseTotals(course *models.Course, detail *dto.CourseDetailResponse) {
	if course == nil {
		return
	}

	for _, topic := range course.Topics {
		for i := range topic.Lessons {
			lesson := &topic.Lessons[i]
			detail.TotalLessons++
			detail.TotalDuration += lesson.DurationMinutes
			if detail.FirstLessonID == nil {
				id := lesson.ID
				detail.FirstLessonID = &id
			}
		}
	}
}

// CreateCourse creates an unpublished course owned by the teacher
func (s *CourseService) CreateCourse(ctx context.Context, teacherID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		TeacherID:    teacherID,
		Title:        req.Title,
		Category:     req.Category,
		Price:        req.Price,
		PointsPrice:  req.PointsPrice,
		PointsReward: req.PointsReward,
	}
	if req.Description != "" {
		course.Description = &req.Description
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseId", course.ID).Int64("teacherId", teacherID).Msg("Course created")
	return course, nil
}

// UpdateCourse edits a course the teacher owns
func (s *CourseService) UpdateCourse(ctx context.Context, teacherID, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.getOwnedCourse(ctx, teacherID, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Category = req.Category
	course.Price = req.Price
	course.PointsPrice = req.PointsPrice
	course.PointsReward = req.PointsReward
	if req.Description != "" {
		course.Description = &req.Description
	} else {
		course.Description = nil
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// DeleteCourse removes a course the teacher owns, unless it has buyers
func (s *CourseService) DeleteCourse(ctx context.Context, teacherID, courseID int64) error {
	if _, err := s.getOwnedCourse(ctx, teacherID, courseID); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrCourseHasBuyers) {
			return apperrors.NewConflictError("course has enrolled students and cannot be deleted")
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}

// ListTeacherCourses retrieves all courses owned by the teacher, draft or not
func (s *CourseService) ListTeacherCourses(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	return s.courseRepo.ListByTeacher(ctx, teacherID)
}

// AddTopic appends a topic to a course the teacher owns
func (s *CourseService) AddTopic(ctx context.Context, teacherID, courseID int64, req *dto.CreateTopicRequest) (*models.Topic, error) {
	if _, err := s.getOwnedCourse(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	topic := &models.Topic{
		CourseID: courseID,
		Title:    req.Title,
		Position: req.Position,
	}
	if err := s.courseRepo.AddTopic(ctx, topic); err != nil {
		return nil, fmt.Errorf("error adding topic: %w", err)
	}

	return topic, nil
}

// AddLesson appends a lesson to a topic of a course the teacher owns
func (s *CourseService) AddLesson(ctx context.Context, teacherID, courseID, topicID int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if _, err := s.getOwnedCourse(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	belongs, err := s.courseRepo.TopicBelongsToCourse(ctx, topicID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking topic: %w", err)
	}
	if !belongs {
		return nil, apperrors.NewResourceNotFoundError("topic not found in course")
	}

	lesson := &models.Lesson{
		TopicID:         topicID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Position:        req.Position,
	}
	if req.VideoURL != "" {
		lesson.VideoURL = &req.VideoURL
	}

	if err := s.courseRepo.AddLesson(ctx, lesson); err != nil {
		return nil, fmt.Errorf("error adding lesson: %w", err)
	}

	return lesson, nil
}

// CreateReview records a review from an enrolled student and refreshes the
// course's rating aggregates.
func (s *CourseService) CreateReview(ctx context.Context, userID, courseID int64, req *dto.CreateReviewRequest) (*models.Review, error) {
	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if !enrolled {
		return nil, apperrors.ErrNotEnrolled
	}

	review := &models.Review{
		CourseID: courseID,
		UserID:   userID,
		Rating:   req.Rating,
	}
	if req.Comment != "" {
		review.Comment = &req.Comment
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repositories.ErrAlreadyReviewed) {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("error creating review: %w", err)
	}

	if err := s.courseRepo.RefreshRatingAggregates(ctx, courseID); err != nil {
		s.logger.Warn().Err(err).Int64("courseId", courseID).Msg("Could not refresh rating aggregates")
	}

	return review, nil
}

// ListReviews retrieves a course's reviews, newest first
func (s *CourseService) ListReviews(ctx context.Context, courseID int64, offset uint64, limit int) ([]*models.Review, int64, error) {
	return s.reviewRepo.ListByCourse(ctx, courseID, offset, limit)
}

// ListMyCourses retrieves the user's enrollments with their courses
func (s *CourseService) ListMyCourses(ctx context.Context, userID int64) ([]*models.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

// UpdateProgress moves an enrollment's progress forward. Progress never
// decreases and completion is stamped once at 100.
func (s *CourseService) UpdateProgress(ctx context.Context, userID, courseID int64, progress int) error {
	if progress < 0 || progress > 100 {
		return apperrors.NewBadRequestError("progress must be between 0 and 100")
	}

	if err := s.enrollmentRepo.UpdateProgress(ctx, userID, courseID, progress); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return apperrors.ErrNotEnrolled
		}
		return fmt.Errorf("error updating progress: %w", err)
	}

	return nil
}

// getOwnedCourse loads a course and checks teacher ownership
func (s *CourseService) getOwnedCourse(ctx context.Context, teacherID, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if course.TeacherID != teacherID {
		return nil, apperrors.NewForbiddenError("course belongs to another teacher")
	}

	return course, nil
}
