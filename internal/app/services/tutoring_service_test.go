package services

import (
	"testing"

	"github.com/emre/learnhub/internal/app/models"
)

func TestCanTransitionSession(t *testing.T) {
	tests := []struct {
		from models.SessionStatus
		to   models.SessionStatus
		want bool
	}{
		{models.SessionStatusPending, models.SessionStatusApproved, true},
		{models.SessionStatusPending, models.SessionStatusRejected, true},
		{models.SessionStatusPending, models.SessionStatusArchived, false},
		{models.SessionStatusApproved, models.SessionStatusArchived, true},
		{models.SessionStatusApproved, models.SessionStatusRejected, false},
		{models.SessionStatusRejected, models.SessionStatusApproved, false},
		{models.SessionStatusArchived, models.SessionStatusPending, false},
	}

	for _, tt := range tests {
		if got := CanTransitionSession(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionSession(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransitionRequest(t *testing.T) {
	tests := []struct {
		from models.RequestStatus
		to   models.RequestStatus
		want bool
	}{
		{models.RequestStatusPending, models.RequestStatusAccepted, true},
		{models.RequestStatusPending, models.RequestStatusRejected, true},
		{models.RequestStatusPending, models.RequestStatusCanceled, true},
		{models.RequestStatusPending, models.RequestStatusCompleted, false},
		{models.RequestStatusAccepted, models.RequestStatusCompleted, true},
		{models.RequestStatusAccepted, models.RequestStatusCanceled, false},
		{models.RequestStatusRejected, models.RequestStatusAccepted, false},
		{models.RequestStatusCompleted, models.RequestStatusPending, false},
		{models.RequestStatusCanceled, models.RequestStatusAccepted, false},
	}

	for _, tt := range tests {
		if got := CanTransitionRequest(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionRequest(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestActionsFor(t *testing.T) {
	const (
		teacherID = int64(1)
		studentID = int64(2)
		otherID   = int64(3)
	)

	newRequest := func(status models.RequestStatus) *models.TutoringRequest {
		return &models.TutoringRequest{
			StudentID: studentID,
			Status:    status,
			Session:   &models.TutoringSession{TeacherID: teacherID},
		}
	}

	t.Run("pending seen by teacher", func(t *testing.T) {
		actions := ActionsFor(newRequest(models.RequestStatusPending), teacherID)
		if !actions.CanAccept || !actions.CanReject {
			t.Fatalf("teacher should be able to accept and reject: %+v", actions)
		}
		if actions.CanCancel || actions.CanComplete {
			t.Fatalf("teacher has student affordances: %+v", actions)
		}
	})

	t.Run("pending seen by student", func(t *testing.T) {
		actions := ActionsFor(newRequest(models.RequestStatusPending), studentID)
		if !actions.CanCancel {
			t.Fatalf("student should be able to cancel: %+v", actions)
		}
		if actions.CanAccept || actions.CanReject || actions.CanComplete {
			t.Fatalf("student has teacher affordances: %+v", actions)
		}
	})

	t.Run("pending seen by stranger", func(t *testing.T) {
		actions := ActionsFor(newRequest(models.RequestStatusPending), otherID)
		if actions.CanAccept || actions.CanReject || actions.CanCancel || actions.CanComplete || actions.CanDismiss {
			t.Fatalf("stranger should have no affordances: %+v", actions)
		}
	})

	t.Run("accepted seen by teacher", func(t *testing.T) {
		actions := ActionsFor(newRequest(models.RequestStatusAccepted), teacherID)
		if !actions.CanComplete {
			t.Fatalf("teacher should be able to complete: %+v", actions)
		}
		if actions.CanAccept || actions.CanCancel {
			t.Fatalf("unexpected affordances: %+v", actions)
		}
	})

	t.Run("accepted seen by student", func(t *testing.T) {
		actions := ActionsFor(newRequest(models.RequestStatusAccepted), studentID)
		if !actions.CanDismiss {
			t.Fatalf("student should be able to dismiss an accepted request: %+v", actions)
		}
		if actions.CanAccept || actions.CanReject || actions.CanCancel || actions.CanComplete {
			t.Fatalf("unexpected affordances: %+v", actions)
		}
	})

	t.Run("terminal offers only dismiss", func(t *testing.T) {
		for _, status := range []models.RequestStatus{
			models.RequestStatusRejected,
			models.RequestStatusCompleted,
			models.RequestStatusCanceled,
		} {
			actions := ActionsFor(newRequest(status), studentID)
			if !actions.CanDismiss {
				t.Fatalf("status %s: student cannot dismiss: %+v", status, actions)
			}
			if actions.CanAccept || actions.CanReject || actions.CanCancel || actions.CanComplete {
				t.Fatalf("status %s: unexpected affordances: %+v", status, actions)
			}
		}
	})
}
