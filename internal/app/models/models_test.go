package models

import "testing"

func TestDefaultLandingRoute(t *testing.T) {
	tests := []struct {
		role RoleType
		want string
	}{
		{RoleStudent, "/my-courses"},
		{RoleTeacher, "/teacher/courses"},
		{RoleAdmin, "/admin"},
		{RoleType("UNKNOWN"), "/"},
		{RoleType(""), "/"},
	}

	for _, tt := range tests {
		if got := tt.role.DefaultLandingRoute(); got != tt.want {
			t.Errorf("DefaultLandingRoute(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestValidGrowthPeriod(t *testing.T) {
	for _, p := range []GrowthPeriod{GrowthPeriodWeek, GrowthPeriodMonth, GrowthPeriodYear} {
		if !ValidGrowthPeriod(p) {
			t.Errorf("ValidGrowthPeriod(%q) = false, want true", p)
		}
	}
	for _, p := range []GrowthPeriod{"", "DAY", "month"} {
		if ValidGrowthPeriod(p) {
			t.Errorf("ValidGrowthPeriod(%q) = true, want false", p)
		}
	}
}
