package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/learnhub/internal/app/controllers"
	"github.com/emre/learnhub/internal/app/models"
	"github.com/emre/learnhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	cartController *controllers.CartController,
	pointsController *controllers.PointsController,
	tutoringController *controllers.TutoringController,
	subscriptionController *controllers.SubscriptionController,
	userController *controllers.UserController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.GET("/:id/reviews", courseController.ListReviews)
	}

	v1.GET("/bundles", subscriptionController.ListBundles)
	v1.GET("/bundles/:id", subscriptionController.GetBundle)
	v1.GET("/subscriptions/plans", subscriptionController.ListPlans)
	v1.GET("/points/packages", pointsController.ListPackages)
	v1.GET("/tutoring/sessions", tutoringController.ListSessions)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/profile", authController.GetProfile)
		authenticated.PUT("/profile", authController.UpdateProfile)

		authenticated.GET("/my-courses", courseController.ListMyCourses)
		authenticated.PUT("/my-courses/:id/progress", courseController.UpdateProgress)
		authenticated.POST("/courses/:id/reviews", courseController.CreateReview)

		authenticated.GET("/achievements", userController.ListAchievements)
		authenticated.GET("/certificates", userController.ListCertificates)

		authenticated.GET("/points/balance", pointsController.GetBalance)
		authenticated.GET("/points/transactions", pointsController.ListTransactions)
		authenticated.POST("/points/packages/buy", pointsController.BuyPackage)

		authenticated.POST("/subscriptions", subscriptionController.Subscribe)
		authenticated.GET("/subscriptions/active", subscriptionController.GetActive)
		authenticated.DELETE("/subscriptions/active", subscriptionController.Cancel)

		authenticated.GET("/tutoring/bookings", tutoringController.ListMyBookings)
		authenticated.GET("/tutoring/calendar", tutoringController.GetCalendar)

		// The cart loads the full user so the role gate and account state
		// are checked against storage, not the token.
		cart := authenticated.Group("/cart")
		cart.Use(authMiddleware.ActiveUser())
		{
			cart.GET("", cartController.GetCart)
			cart.DELETE("", cartController.Clear)
			cart.POST("/items", cartController.AddItem)
			cart.DELETE("/items/:id", cartController.RemoveItem)
			cart.POST("/checkout/points", cartController.CheckoutPoints)
			cart.POST("/checkout/card", cartController.CheckoutCard)
		}

		// Student-only routes
		student := authenticated.Group("")
		student.Use(authMiddleware.RequireRoles(models.RoleStudent))
		{
			student.POST("/tutoring/bookings", tutoringController.CreateBooking)
			student.POST("/tutoring/bookings/:id/cancel", tutoringController.CancelBooking)
		}

		// Teacher-only routes
		teacher := authenticated.Group("/teacher")
		teacher.Use(authMiddleware.RequireRoles(models.RoleTeacher))
		{
			teacher.GET("/courses", courseController.ListTeacherCourses)
			teacher.POST("/courses", courseController.CreateCourse)
			teacher.PUT("/courses/:id", courseController.UpdateCourse)
			teacher.DELETE("/courses/:id", courseController.DeleteCourse)
			teacher.POST("/courses/:id/topics", courseController.AddTopic)
			teacher.POST("/courses/:id/topics/:topicId/lessons", courseController.AddLesson)

			teacher.GET("/tutoring/sessions", tutoringController.ListTeacherSessions)
			teacher.POST("/tutoring/sessions", tutoringController.CreateSession)
			teacher.PUT("/tutoring/sessions/:id", tutoringController.UpdateSession)
			teacher.POST("/tutoring/sessions/:id/archive", tutoringController.ArchiveSession)
			teacher.POST("/tutoring/bookings/:id/accept", tutoringController.AcceptBooking)
			teacher.POST("/tutoring/bookings/:id/reject", tutoringController.RejectBooking)
			teacher.POST("/tutoring/bookings/:id/complete", tutoringController.CompleteBooking)
		}

		// Admin-only routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/stats", adminController.PlatformStats)
			admin.GET("/stats/growth", adminController.UserGrowth)
			admin.GET("/stats/courses", adminController.CoursePerformance)
			admin.GET("/users", adminController.ListUsers)
			admin.PUT("/users/:id/active", adminController.SetUserActive)
			admin.POST("/bundles", subscriptionController.CreateBundle)
			admin.GET("/tutoring/sessions", adminController.ListPendingSessions)
			admin.POST("/tutoring/sessions/:id/approve", adminController.ApproveSession)
			admin.POST("/tutoring/sessions/:id/reject", adminController.RejectSession)
		}
	}
}
