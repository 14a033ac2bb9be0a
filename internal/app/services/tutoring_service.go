package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/repositories"
	"github.com/emre/learnhub/internal/pkg/apperrors"
)

// sessionTransitions lists the reachable states per session status
var sessionTransitions = map[models.SessionStatus][]models.SessionStatus{
	models.SessionStatusPending:  {models.SessionStatusApproved, models.SessionStatusRejected},
	models.SessionStatusApproved: {models.SessionStatusArchived},
	models.SessionStatusRejected: {},
	models.SessionStatusArchived: {},
}

// requestTransitions lists the reachable states per request status
var requestTransitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestStatusPending:   {models.RequestStatusAccepted, models.RequestStatusRejected, models.RequestStatusCanceled},
	models.RequestStatusAccepted:  {models.RequestStatusCompleted},
	models.RequestStatusRejected:  {},
	models.RequestStatusCompleted: {},
	models.RequestStatusCanceled:  {},
}

// CanTransitionSession reports whether a session may move to the target state
func CanTransitionSession(from, to models.SessionStatus) bool {
	for _, next := range sessionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionRequest reports whether a request may move to the target state
func CanTransitionRequest(from, to models.RequestStatus) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActionsFor computes the affordances a viewer has on a request.
// Accept, reject and complete belong to the session's teacher; cancel
// belongs to the student while the request is still pending. Terminal
// requests offer only dismissal.
func ActionsFor(request *models.TutoringRequest, viewerID int64) dto.RequestActions {
	isTeacher := request.Session != nil && request.Session.TeacherID == viewerID
	isStudent := request.StudentID == viewerID

	switch request.Status {
	case models.RequestStatusPending:
		return dto.RequestActions{
			CanAccept: isTeacher,
			CanReject: isTeacher,
			CanCancel: isStudent,
		}
	case models.RequestStatusAccepted:
		return dto.RequestActions{
			CanComplete: isTeacher,
			CanDismiss:  isStudent,
		}
	default:
		return dto.RequestActions{
			CanDismiss: isTeacher || isStudent,
		}
	}
}

// TutoringService handles session postings and booking requests
type TutoringService struct {
	tutoringRepo *repositories.TutoringRepository
	logger       zerolog.Logger
}

// NewTutoringService creates a new TutoringService
func NewTutoringService(tutoringRepo *repositories.TutoringRepository, logger zerolog.Logger) *TutoringService {
	return &TutoringService{
		tutoringRepo: tutoringRepo,
		logger:       logger,
	}
}

// CreateSession posts a new session offering awaiting moderation
func (s *TutoringService) CreateSession(ctx context.Context, teacherID int64, req *dto.CreateSessionRequest) (*models.TutoringSession, error) {
	session := &models.TutoringSession{
		TeacherID:       teacherID,
		Subject:         req.Subject,
		PricePerHour:    req.PricePerHour,
		DurationMinutes: req.DurationMinutes,
		Status:          models.SessionStatusPending,
	}
	if req.Description != "" {
		session.Description = &req.Description
	}

	if err := s.tutoringRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	s.logger.Info().Int64("sessionId", session.ID).Int64("teacherId", teacherID).Msg("Tutoring session posted")
	return session, nil
}

// ListApprovedSessions retrieves bookable sessions, optionally by subject
func (s *TutoringService) ListApprovedSessions(ctx context.Context, subject string) ([]*models.TutoringSession, error) {
	return s.tutoringRepo.ListSessions(ctx, models.SessionStatusApproved, subject)
}

// ListPendingSessions retrieves sessions awaiting moderation
func (s *TutoringService) ListPendingSessions(ctx context.Context) ([]*models.TutoringSession, error) {
	return s.tutoringRepo.ListSessions(ctx, models.SessionStatusPending, "")
}

// ListTeacherSessions retrieves all of a teacher's postings, any status
func (s *TutoringService) ListTeacherSessions(ctx context.Context, teacherID int64) ([]*models.TutoringSession, error) {
	return s.tutoringRepo.ListSessionsByTeacher(ctx, teacherID)
}

// UpdateSession edits a posting the teacher owns. Editing an approved
// session sends it back to moderation.
func (s *TutoringService) UpdateSession(ctx context.Context, teacherID, sessionID int64, req *dto.UpdateSessionRequest) (*models.TutoringSession, error) {
	session, err := s.getOwnedSession(ctx, teacherID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Subject = req.Subject
	session.PricePerHour = req.PricePerHour
	session.DurationMinutes = req.DurationMinutes
	if req.Description != "" {
		session.Description = &req.Description
	} else {
		session.Description = nil
	}

	if err := s.tutoringRepo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("error updating session: %w", err)
	}

	if session.Status == models.SessionStatusApproved {
		if err := s.tutoringRepo.UpdateSessionStatus(ctx, session.ID, models.SessionStatusPending); err != nil {
			return nil, fmt.Errorf("error resetting session status: %w", err)
		}
		session.Status = models.SessionStatusPending
	}

	return session, nil
}

// ModerateSession moves a pending session to APPROVED or REJECTED
func (s *TutoringService) ModerateSession(ctx context.Context, sessionID int64, approve bool) (*models.TutoringSession, error) {
	target := models.SessionStatusApproved
	if !approve {
		target = models.SessionStatusRejected
	}
	return s.transitionSession(ctx, sessionID, target)
}

// ArchiveSession retires an approved session the teacher owns
func (s *TutoringService) ArchiveSession(ctx context.Context, teacherID, sessionID int64) (*models.TutoringSession, error) {
	if _, err := s.getOwnedSession(ctx, teacherID, sessionID); err != nil {
		return nil, err
	}
	return s.transitionSession(ctx, sessionID, models.SessionStatusArchived)
}

func (s *TutoringService) transitionSession(ctx context.Context, sessionID int64, target models.SessionStatus) (*models.TutoringSession, error) {
	session, err := s.tutoringRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	if !CanTransitionSession(session.Status, target) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			fmt.Sprintf("session cannot move from %s to %s", session.Status, target))
	}

	if err := s.tutoringRepo.UpdateSessionStatus(ctx, sessionID, target); err != nil {
		return nil, fmt.Errorf("error updating session status: %w", err)
	}

	session.Status = target
	return session, nil
}

// CreateBooking files a student's booking request against an approved session
func (s *TutoringService) CreateBooking(ctx context.Context, studentID int64, req *dto.CreateBookingRequest) (*models.TutoringRequest, error) {
	session, err := s.tutoringRepo.GetSession(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	if session.Status != models.SessionStatusApproved {
		return nil, apperrors.NewConflictError("session is not open for booking")
	}
	if session.TeacherID == studentID {
		return nil, apperrors.NewForbiddenError("cannot book your own session")
	}
	if !req.ScheduledAt.After(time.Now()) {
		return nil, apperrors.NewBadRequestError("scheduled time must be in the future")
	}

	request := &models.TutoringRequest{
		SessionID:   session.ID,
		StudentID:   studentID,
		ScheduledAt: req.ScheduledAt,
		Status:      models.RequestStatusPending,
	}
	if req.Note != "" {
		request.Note = &req.Note
	}

	if err := s.tutoringRepo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	request.Session = session
	return request, nil
}

// ListStudentBookings retrieves the student's booking requests
func (s *TutoringService) ListStudentBookings(ctx context.Context, studentID int64) ([]*models.TutoringRequest, error) {
	return s.tutoringRepo.ListRequestsByStudent(ctx, studentID)
}

// ListTeacherBookings retrieves requests against the teacher's sessions
func (s *TutoringService) ListTeacherBookings(ctx context.Context, teacherID int64) ([]*models.TutoringRequest, error) {
	return s.tutoringRepo.ListRequestsByTeacher(ctx, teacherID)
}

// RespondToBooking lets the session's teacher accept or reject a pending
// request.
func (s *TutoringService) RespondToBooking(ctx context.Context, teacherID, requestID int64, accept bool) (*models.TutoringRequest, error) {
	target := models.RequestStatusAccepted
	if !accept {
		target = models.RequestStatusRejected
	}

	return s.transitionRequest(ctx, requestID, target, func(request *models.TutoringRequest) error {
		if request.Session == nil || request.Session.TeacherID != teacherID {
			return apperrors.NewForbiddenError("request belongs to another teacher's session")
		}
		return nil
	})
}

// CancelBooking lets the student withdraw their own pending request
func (s *TutoringService) CancelBooking(ctx context.Context, studentID, requestID int64) (*models.TutoringRequest, error) {
	return s.transitionRequest(ctx, requestID, models.RequestStatusCanceled, func(request *models.TutoringRequest) error {
		if request.StudentID != studentID {
			return apperrors.NewForbiddenError("request belongs to another student")
		}
		return nil
	})
}

// CompleteBooking lets the teacher mark an accepted request as held
func (s *TutoringService) CompleteBooking(ctx context.Context, teacherID, requestID int64) (*models.TutoringRequest, error) {
	return s.transitionRequest(ctx, requestID, models.RequestStatusCompleted, func(request *models.TutoringRequest) error {
		if request.Session == nil || request.Session.TeacherID != teacherID {
			return apperrors.NewForbiddenError("request belongs to another teacher's session")
		}
		return nil
	})
}

func (s *TutoringService) transitionRequest(
	ctx context.Context,
	requestID int64,
	target models.RequestStatus,
	authorize func(*models.TutoringRequest) error,
) (*models.TutoringRequest, error) {
	request, err := s.tutoringRepo.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving request: %w", err)
	}

	if err := authorize(request); err != nil {
		return nil, err
	}

	if !CanTransitionRequest(request.Status, target) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			fmt.Sprintf("request cannot move from %s to %s", request.Status, target))
	}

	if err := s.tutoringRepo.UpdateRequestStatus(ctx, requestID, target); err != nil {
		return nil, fmt.Errorf("error updating request status: %w", err)
	}

	request.Status = target
	return request, nil
}

// GetCalendar retrieves the user's upcoming accepted bookings
func (s *TutoringService) GetCalendar(ctx context.Context, userID int64) ([]models.CalendarEvent, error) {
	return s.tutoringRepo.ListUpcomingAccepted(ctx, userID)
}

func (s *TutoringService) getOwnedSession(ctx context.Context, teacherID, sessionID int64) (*models.TutoringSession, error) {
	session, err := s.tutoringRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	if session.TeacherID != teacherID {
		return nil, apperrors.NewForbiddenError("session belongs to another teacher")
	}

	return session, nil
}
