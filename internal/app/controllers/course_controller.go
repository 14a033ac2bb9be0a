package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/models/dto"
	"github.com/emre/learnhub/internal/app/services"
	"github.com/emre/learnhub/internal/middleware"
	"github.com/emre/learnhub/internal/pkg/helpers"
	"github.com/emre/learnhub/internal/pkg/logger"
)

// CourseController handles catalog, course content and review operations
type CourseController struct {
	courseService      *services.CourseService
	achievementService *services.AchievementService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, achievementService *services.AchievementService) *CourseController {
	return &CourseController{
		courseService:      courseService,
		achievementService: achievementService,
	}
}

// ListCourses retrieves the published catalog
// @Summary List courses
// @Description Retrieves published courses with optional category, teacher and search filters
// @Tags courses
// @Produce json
// @Param category query string false "Category filter"
// @Param teacherId query int false "Teacher filter"
// @Param search query string false "Title search"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Courses"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := dto.CourseFilter{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}
	if teacherID, err := strconv.ParseInt(ctx.Query("teacherId"), 10, 64); err == nil {
		filter.TeacherID = teacherID
	}

	courses, total, err := c.courseService.ListCourses(ctx, filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      courses,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves one course with its content tree
// @Summary Get course details
// @Description Retrieves a course tree with derived lesson totals. A blank or placeholder ID yields an empty detail.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course detail"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	detail, err := c.courseService.GetCourseDetail(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// CreateCourse creates a draft course for the teacher
// @Summary Create a course
// @Description Creates an unpublished course owned by the authenticated teacher
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, teacherID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// UpdateCourse edits a course the teacher owns
// @Summary Update a course
// @Description Edits a course owned by the authenticated teacher
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Updated course"
// @Failure 403 {object} dto.ErrorResponse "Course belongs to another teacher"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, teacherID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// DeleteCourse removes a course without buyers
// @Summary Delete a course
// @Description Deletes a course owned by the authenticated teacher, unless students are enrolled
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has enrolled students"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, teacherID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted"},
		Timestamp: time.Now(),
	})
}

// ListTeacherCourses retrieves the teacher's own courses
// @Summary List teacher courses
// @Description Retrieves all courses owned by the authenticated teacher, drafts included
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/courses [get]
func (c *CourseController) ListTeacherCourses(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	courses, err := c.courseService.ListTeacherCourses(ctx, teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// AddTopic appends a topic to a course
// @Summary Add a topic
// @Description Appends a topic to a course owned by the authenticated teacher
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CreateTopicRequest true "Topic information"
// @Success 201 {object} dto.APIResponse{data=models.Topic} "Topic created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/courses/{id}/topics [post]
func (c *CourseController) AddTopic(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateTopicRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	topic, err := c.courseService.AddTopic(ctx, teacherID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      topic,
		Timestamp: time.Now(),
	})
}

// AddLesson appends a lesson to a topic
// @Summary Add a lesson
// @Description Appends a lesson to a topic of a course owned by the authenticated teacher
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param topicId path int true "Topic ID"
// @Param request body dto.CreateLessonRequest true "Lesson information"
// @Success 201 {object} dto.APIResponse{data=models.Lesson} "Lesson created"
// @Failure 404 {object} dto.ErrorResponse "Course or topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/courses/{id}/topics/{topicId}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	teacherID, _ := middleware.CurrentUserID(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	topicID, ok := pathID(ctx, "topicId")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lesson, err := c.courseService.AddLesson(ctx, teacherID, courseID, topicID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      lesson,
		Timestamp: time.Now(),
	})
}

// CreateReview submits a review for an enrolled course
// @Summary Review a course
// @Description Records a review from an enrolled student, one per course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.APIResponse{data=models.Review} "Review created"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/reviews [post]
func (c *CourseController) CreateReview(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.courseService.CreateReview(ctx, userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      review,
		Timestamp: time.Now(),
	})
}

// ListReviews retrieves a course's reviews
// @Summary List course reviews
// @Description Retrieves reviews for a course, newest first
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Reviews"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/reviews [get]
func (c *CourseController) ListReviews(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	reviews, total, err := c.courseService.ListReviews(ctx, courseID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      reviews,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// ListMyCourses retrieves the user's enrollments
// @Summary List my courses
// @Description Retrieves the authenticated user's enrollments with progress
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /my-courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	enrollments, err := c.courseService.ListMyCourses(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}

// UpdateProgress moves an enrollment's progress forward
// @Summary Update course progress
// @Description Moves an enrollment's progress forward. Reaching 100 issues the certificate and mastery achievement.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body object{progress=int} true "Progress percentage"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Progress updated"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /my-courses/{id}/progress [put]
func (c *CourseController) UpdateProgress(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Progress int `json:"progress" binding:"min=0,max=100"`
	}
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.courseService.UpdateProgress(ctx, userID, courseID, req.Progress); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if req.Progress >= 100 {
		detail, err := c.courseService.GetCourseDetail(ctx, ctx.Param("id"))
		if err != nil {
			logger.Warn().Err(err).Int64("userId", userID).Int64("courseId", courseID).Msg("Could not reload course for completion rewards")
		} else if detail.Course != nil {
			if _, err := c.achievementService.HandleCourseCompletion(ctx, userID, detail.Course); err != nil {
				middleware.HandleAPIError(ctx, err)
				return
			}
		}
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Progress updated"},
		Timestamp: time.Now(),
	})
}

// pathID parses a positive int64 path parameter, answering 400 on failure
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
