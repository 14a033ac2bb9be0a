package services

import (
	"context"
	"errors"
	"testing"

	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/pkg/apperrors"
)

func TestParseCourseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		id      int64
		present bool
		wantErr bool
	}{
		{name: "valid", raw: "42", id: 42, present: true},
		{name: "valid with spaces", raw: "  7  ", id: 7, present: true},
		{name: "blank", raw: "", present: false},
		{name: "whitespace only", raw: "   ", present: false},
		{name: "literal undefined", raw: "undefined", present: false},
		{name: "literal null", raw: "null", present: false},
		{name: "not a number", raw: "abc", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, present, err := ParseCourseID(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCourseID(%q) error = nil, want error", tt.raw)
				}
				var custom *apperrors.CustomError
				if !errors.As(err, &custom) {
					t.Fatalf("ParseCourseID(%q) error = %v, want CustomError", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCourseID(%q) error = %v", tt.raw, err)
			}
			if present != tt.present {
				t.Fatalf("ParseCourseID(%q) present = %v, want %v", tt.raw, present, tt.present)
			}
			if id != tt.id {
				t.Fatalf("ParseCourseID(%q) id = %d, want %d", tt.raw, id, tt.id)
			}
		})
	}
}

// An absent ID must short-circuit before any repository access; the nil
// repo panics if the service reaches for storage.
func TestGetCourseDetail_AbsentID(t *testing.T) {
	s := &CourseService{}

	for _, raw := range []string{"", "   ", "undefined", "null"} {
		detail, err := s.GetCourseDetail(context.Background(), raw)
		if err != nil {
			t.Fatalf("GetCourseDetail(%q) error = %v", raw, err)
		}
		if detail == nil {
			t.Fatalf("GetCourseDetail(%q) = nil, want empty detail", raw)
		}
		if detail.Course != nil || detail.TotalLessons != 0 {
			t.Fatalf("GetCourseDetail(%q) = %+v, want empty detail", raw, detail)
		}
	}
}

func TestDeriveCourseTotals(t *testing.T) {
	course := &models.Course{
		Topics: []models.Topic{
			{
				Lessons: []models.Lesson{
					{ID: 10, DurationMinutes: 15},
					{ID: 11, DurationMinutes: 20},
				},
			},
			{Lessons: nil},
			{
				Lessons: []models.Lesson{
					{ID: 12, DurationMinutes: 5},
				},
			},
		},
	}

	detail := &dto.CourseDetailResponse{Course: course}
	deriveCourseTotals(course, detail)

	if detail.TotalLessons != 3 {
		t.Fatalf("TotalLessons = %d, want 3", detail.TotalLessons)
	}
	if detail.TotalDuration != 40 {
		t.Fatalf("TotalDuration = %d, want 40", detail.TotalDuration)
	}
	if detail.FirstLessonID == nil || *detail.FirstLessonID != 10 {
		t.Fatalf("FirstLessonID = %v, want 10", detail.FirstLessonID)
	}
}

func TestDeriveCourseTotals_EmptyTree(t *testing.T) {
	course := &models.Course{}
	detail := &dto.CourseDetailResponse{Course: course}
	deriveCourseTotals(course, detail)

	if detail.TotalLessons != 0 || detail.TotalDuration != 0 {
		t.Fatalf("totals = %d/%d, want 0/0", detail.TotalLessons, detail.TotalDuration)
	}
	if detail.FirstLessonID != nil {
		t.Fatalf("FirstLessonID = %v, want nil", detail.FirstLessonID)
	}
}
