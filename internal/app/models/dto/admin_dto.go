package dto

// GrowthPoint is one bucket of the user growth series
type GrowthPoint struct {
	Label    string `json:"label"` // bucket start, formatted per period
	NewUsers int64  `json:"newUsers"`
}

// CoursePerformance is one row of the course performance chart
type CoursePerformance struct {
	CourseID    int64   `json:"courseId"`
	Title       string  `json:"title"`
	Enrollments int64   `json:"enrollments"`
	Revenue     int64   `json:"revenue"` // cents
	Rating      float64 `json:"rating"`
}

// PlatformStats is the admin statistics table
type PlatformStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalStudents      int64 `json:"totalStudents"`
	TotalTeachers      int64 `json:"totalTeachers"`
	TotalCourses       int64 `json:"totalCourses"`
	TotalEnrollments   int64 `json:"totalEnrollments"`
	TotalRevenue       int64 `json:"totalRevenue"` // cents
	ActiveSubscribers  int64 `json:"activeSubscribers"`
	PendingSessions    int64 `json:"pendingSessions"`
	PointsInCirculation int64 `json:"pointsInCirculation"`
}

// SetUserActiveRequest toggles a user's active flag
type SetUserActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
