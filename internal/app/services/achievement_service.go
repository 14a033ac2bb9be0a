package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/apperrors"
)

// Achievement codes awarded by the platform
const (
	AchievementFirstCourse   = "FIRST_COURSE"
	AchievementCourseMastery = "COURSE_MASTERY"
)

// AchievementService handles achievements and completion certificates
type AchievementService struct {
	achievementRepo *repositories.AchievementRepository
	enrollmentRepo  *repositories.EnrollmentRepository
	purchaseRepo    *repositories.PurchaseRepository
	logger          zerolog.Logger
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(
	achievementRepo *repositories.AchievementRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	purchaseRepo *repositories.PurchaseRepository,
	logger zerolog.Logger,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		enrollmentRepo:  enrollmentRepo,
		purchaseRepo:    purchaseRepo,
		logger:          logger,
	}
}

// ListAchievements retrieves the user's achievements
func (s *AchievementService) ListAchievements(ctx context.Context, userID int64) ([]*models.Achievement, error) {
	return s.achievementRepo.ListByUser(ctx, userID)
}

// ListCertificates retrieves the user's certificates
func (s *AchievementService) ListCertificates(ctx context.Context, userID int64) ([]*models.Certificate, error) {
	return s.achievementRepo.ListCertificates(ctx, userID)
}

// HandleCourseCompletion issues the certificate and awards the mastery
// achievement when an enrollment reaches full progress. Repeat calls for
// the same course are no-ops.
func (s *AchievementService) HandleCourseCompletion(ctx context.Context, userID int64, course *models.Course) (*models.Certificate, error) {
	if course == nil {
		return nil, nil
	}

	enrollment, err := s.enrollmentRepo.Get(ctx, userID, course.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, apperrors.ErrNotEnrolled
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	if enrollment.Progress < 100 {
		return nil, apperrors.NewBadRequestError("course is not completed yet")
	}

	certificate, err := s.achievementRepo.IssueCertificate(ctx, userID, course.ID, course.Title)
	if err != nil {
		return nil, fmt.Errorf("error issuing certificate: %w", err)
	}

	description := "Completed a course from start to finish"
	achievement := &models.Achievement{
		UserID:      userID,
		Code:        AchievementCourseMastery,
		Title:       "Course Mastery",
		Description: &description,
		Points:      50,
	}

	if err := s.achievementRepo.Award(ctx, achievement); err != nil {
		if !errors.Is(err, repositories.ErrAchievementExists) {
			return certificate, fmt.Errorf("error awarding achievement: %w", err)
		}
		return certificate, nil
	}

	if err := s.purchaseRepo.CreditPoints(ctx, userID, achievement.Points, "Achievement: "+achievement.Title); err != nil {
		s.logger.Warn().Err(err).Int64("userId", userID).Msg("Could not credit achievement points")
	}

	s.logger.Info().Int64("userId", userID).Int64("courseId", course.ID).Msg("Course completion recorded")
	return certificate, nil
}

// HandleFirstEnrollment awards the starter achievement after the user's
// first purchase.
func (s *AchievementService) HandleFirstEnrollment(ctx context.Context, userID int64) {
	description := "Enrolled in your first course"
	achievement := &models.Achievement{
		UserID:      userID,
		Code:        AchievementFirstCourse,
		Title:       "First Steps",
		Description: &description,
		Points:      25,
	}

	if err := s.achievementRepo.Award(ctx, achievement); err != nil {
		if !errors.Is(err, repositories.ErrAchievementExists) {
			s.logger.Warn().Err(err).Int64("userId", userID).Msg("Could not award first enrollment achievement")
		}
		return
	}

	if err := s.purchaseRepo.CreditPoints(ctx, userID, achievement.Points, "Achievement: "+achievement.Title); err != nil {
		s.logger.Warn().Err(err).Int64("userId", userID).Msg("Could not credit achievement points")
	}
}
