package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	courseHandler       *CourseHandler
	contentHandler      *ContentHandler
	enrollmentHandler   *EnrollmentHandler
	progressHandler     *ProgressHandler
	assignmentHandler   *AssignmentHandler
	forumHandler        *ForumHandler
	notificationHandler *NotificationHandler
	reportHandler       *ReportHandler
	authMiddleware      *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtSecret string,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		courseHandler:       NewCourseHandler(serviceManager.Course(), logger),
		contentHandler:      NewContentHandler(serviceManager.Content(), logger),
		enrollmentHandler:   NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		progressHandler:     NewProgressHandler(serviceManager.Progress(), logger),
		assignmentHandler:   NewAssignmentHandler(serviceManager.Assignment(), logger),
		forumHandler:        NewForumHandler(serviceManager.Forum(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		reportHandler:       NewReportHandler(serviceManager.Report(), logger),
		authMiddleware:      NewJWTAuthMiddleware(jwtSecret),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	authed := hm.authMiddleware.AuthMiddleware()
	optional := hm.authMiddleware.OptionalAuthMiddleware()
	teacherOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher)
	studentOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent)

	v1 := router.Group("/api/v1")
	{
		// Auth routes - registration, login and verification are public
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
			auth.GET("/verify", hm.authHandler.VerifyEmail)

			auth.GET("/me", authed, hm.authHandler.GetProfile)
			auth.PUT("/me", authed, hm.authHandler.UpdateProfile)
			auth.PUT("/me/password", authed, hm.authHandler.ChangePassword)
		}

		// Course routes - catalog reads are public, enrollment flags render
		// for signed-in callers via optional auth
		courses := v1.Group("/courses")
		{
			courses.GET("", optional, hm.courseHandler.ListCourses)
			courses.GET("/:id", optional, hm.courseHandler.GetCourse)
			courses.GET("/:id/contents", optional, hm.contentHandler.ListContents)

			courses.GET("/mine", authed, teacherOnly, hm.courseHandler.GetMyCourses)
			courses.POST("", authed, teacherOnly, hm.courseHandler.CreateCourse)
			courses.PUT("/:id", authed, teacherOnly, hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", authed, teacherOnly, hm.courseHandler.DeleteCourse)
			courses.POST("/:id/publish", authed, teacherOnly, hm.courseHandler.PublishCourse)
			courses.GET("/:id/stats", authed, teacherOnly, hm.courseHandler.GetCourseStats)

			// Content management - course teacher only
			courses.POST("/:id/contents", authed, teacherOnly, hm.contentHandler.CreateContent)
			courses.PUT("/:id/contents/reorder", authed, teacherOnly, hm.contentHandler.ReorderContents)

			// Enrollment
			courses.POST("/:id/enroll", authed, studentOnly, hm.enrollmentHandler.Enroll)
			courses.GET("/:id/enrollments", authed, teacherOnly, hm.enrollmentHandler.GetCourseEnrollments)

			// Progress
			courses.GET("/:id/progress", authed, studentOnly, hm.progressHandler.GetCourseProgress)

			// Assignments
			courses.POST("/:id/assignments", authed, teacherOnly, hm.assignmentHandler.CreateAssignment)
			courses.GET("/:id/assignments", authed, hm.assignmentHandler.ListAssignments)

			// Forum
			courses.POST("/:id/posts", authed, hm.forumHandler.CreatePost)
			courses.GET("/:id/posts", authed, hm.forumHandler.ListPosts)

			// Reports - course teacher only
			courses.GET("/:id/report", authed, teacherOnly, hm.reportHandler.GetCourseReport)
			courses.GET("/:id/report/export", authed, teacherOnly, hm.reportHandler.ExportCourseReport)
		}

		// Content routes
		contents := v1.Group("/contents")
		{
			contents.GET("/:id", optional, hm.contentHandler.GetContent)
			contents.PUT("/:id", authed, teacherOnly, hm.contentHandler.UpdateContent)
			contents.DELETE("/:id", authed, teacherOnly, hm.contentHandler.DeleteContent)

			contents.PUT("/:id/progress", authed, studentOnly, hm.progressHandler.UpdateProgress)
		}

		// Assignment routes
		assignments := v1.Group("/assignments")
		assignments.Use(authed)
		{
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.PUT("/:id", teacherOnly, hm.assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", teacherOnly, hm.assignmentHandler.DeleteAssignment)

			assignments.POST("/:id/submissions", studentOnly, hm.assignmentHandler.SubmitAssignment)
			assignments.GET("/:id/submissions", teacherOnly, hm.assignmentHandler.ListSubmissions)
		}

		// Submission routes
		submissions := v1.Group("/submissions")
		submissions.Use(authed)
		{
			submissions.GET("/mine", studentOnly, hm.assignmentHandler.GetMySubmissions)
			submissions.GET("/:id", hm.assignmentHandler.GetSubmission)
			submissions.POST("/:id/grade", teacherOnly, hm.assignmentHandler.GradeSubmission)
		}

		// Forum post routes
		posts := v1.Group("/posts")
		posts.Use(authed)
		{
			posts.GET("/:id", hm.forumHandler.GetPost)
			posts.PUT("/:id", hm.forumHandler.UpdatePost)
			posts.DELETE("/:id", hm.forumHandler.DeletePost)
			posts.POST("/:id/replies", hm.forumHandler.CreateReply)
		}

		replies := v1.Group("/replies")
		replies.Use(authed)
		{
			replies.DELETE("/:id", hm.forumHandler.DeleteReply)
		}

		// Enrollment routes - Students only
		enrollments := v1.Group("/enrollments")
		enrollments.Use(authed, studentOnly)
		{
			enrollments.GET("/mine", hm.enrollmentHandler.GetMyEnrollments)
		}

		// Student routes - Students only
		students := v1.Group("/students")
		students.Use(authed, studentOnly)
		{
			students.GET("/me/progress", hm.progressHandler.GetMyProgress)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(authed)
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkRead)
			notifications.PUT("/read-all", hm.notificationHandler.MarkAllRead)
		}

		// Dashboard routes - Teachers only
		dashboard := v1.Group("/dashboard")
		dashboard.Use(authed, teacherOnly)
		{
			dashboard.GET("/stats", hm.reportHandler.GetDashboard)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "course-service",
		})
	})
}
