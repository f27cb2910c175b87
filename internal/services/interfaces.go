package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request DTOs live in models; aliased here so callers import one package.
type RegisterRequest = models.RegisterRequest
type LoginRequest = models.LoginRequest
type UpdateProfileRequest = models.UpdateProfileRequest
type ChangePasswordRequest = models.ChangePasswordRequest

type CreateCourseRequest = models.CourseCreateRequest
type UpdateCourseRequest = models.CourseUpdateRequest
type CreateContentRequest = models.ContentCreateRequest
type UpdateContentRequest = models.ContentUpdateRequest
type ReorderContentRequest = models.ContentReorderRequest

type UpdateProgressRequest = models.ProgressUpdateRequest

type CreateAssignmentRequest = models.AssignmentCreateRequest
type UpdateAssignmentRequest = models.AssignmentUpdateRequest
type CreateSubmissionRequest = models.SubmissionCreateRequest
type GradeSubmissionRequest = models.GradeSubmissionRequest

type CreatePostRequest = models.ForumPostCreateRequest
type UpdatePostRequest = models.ForumPostUpdateRequest
type CreateReplyRequest = models.ForumReplyCreateRequest

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type CourseResponse struct {
	*models.Course
	EnrollmentCount int64 `json:"enrollment_count"`
	ContentCount    int64 `json:"content_count"`
	IsEnrolled      bool  `json:"is_enrolled"`
	CanEdit         bool  `json:"can_edit"`
}

type CourseListResponse struct {
	Courses []*CourseResponse `json:"courses"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
}

type EnrollmentResponse struct {
	*models.Enrollment
	Progress *models.CourseProgress `json:"progress,omitempty"`
}

type ProgressUpdateResponse struct {
	Progress       *models.StudentProgress `json:"progress"`
	CourseProgress *models.CourseProgress  `json:"course_progress"`
}

type CourseProgressResponse struct {
	CourseID uint                          `json:"course_id"`
	Summary  *models.CourseProgress        `json:"summary"`
	Contents []*models.ContentProgressItem `json:"contents"`
}

type SubmissionResponse struct {
	*models.Submission
	AssignmentTitle string `json:"assignment_title,omitempty"`
	MaxPoints       int    `json:"max_points,omitempty"`
}

type PostListResponse struct {
	Posts []*repositories.PostWithReplyCount `json:"posts"`
	Total int64                              `json:"total"`
	Page  int                                `json:"page"`
	Size  int                                `json:"size"`
}

type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

type TeacherDashboardResponse struct {
	Stats             *repositories.TeacherDashboardStats  `json:"stats"`
	RecentEnrollments []*repositories.RecentEnrollmentData `json:"recent_enrollments"`
	Courses           []*repositories.CourseBreakdownData  `json:"courses"`
}

type CourseReportResponse struct {
	CourseID    uint                             `json:"course_id"`
	CourseTitle string                           `json:"course_title"`
	Stats       *repositories.CourseStats        `json:"stats"`
	Roster      []*repositories.StudentProgressRow `json:"roster"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, teacherID uint) (*CourseResponse, error)
	GetByID(ctx context.Context, id uint, userID uint) (*CourseResponse, error)
	Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID uint) (*CourseResponse, error)
	Delete(ctx context.Context, id uint, userID uint) error
	List(ctx context.Context, filters repositories.CourseFilters, userID uint) (*CourseListResponse, error)
	GetByTeacher(ctx context.Context, teacherID uint, filters repositories.CourseFilters) (*CourseListResponse, error)
	Publish(ctx context.Context, id uint, userID uint) error
	GetStats(ctx context.Context, id uint, userID uint) (*repositories.CourseStats, error)

	CanEdit(ctx context.Context, courseID, userID uint) (bool, error)
}

type ContentService interface {
	Create(ctx context.Context, courseID uint, req *CreateContentRequest, userID uint) (*models.CourseContent, error)
	GetByID(ctx context.Context, id uint, userID uint) (*models.CourseContent, error)
	Update(ctx context.Context, id uint, req *UpdateContentRequest, userID uint) (*models.CourseContent, error)
	Delete(ctx context.Context, id uint, userID uint) error
	ListByCourse(ctx context.Context, courseID uint, userID uint) ([]*models.CourseContent, error)
	Reorder(ctx context.Context, courseID uint, req *ReorderContentRequest, userID uint) error
}

// EnrollmentService manages the student-course relationship. Enrollments
// have no direct revocation; they are removed only when their course is
// deleted and the cascade takes them along.
type EnrollmentService interface {
	Enroll(ctx context.Context, courseID, studentID uint) (*models.Enrollment, error)
	GetStudentEnrollments(ctx context.Context, studentID uint, filters repositories.EnrollmentFilters) ([]*EnrollmentResponse, int64, error)
	GetCourseEnrollments(ctx context.Context, courseID uint, filters repositories.EnrollmentFilters, userID uint) ([]*models.Enrollment, int64, error)
	IsEnrolled(ctx context.Context, courseID, studentID uint) (bool, error)
}

type ProgressService interface {
	UpdateProgress(ctx context.Context, contentID uint, req *UpdateProgressRequest, studentID uint) (*ProgressUpdateResponse, error)
	GetCourseProgress(ctx context.Context, courseID, studentID uint) (*CourseProgressResponse, error)
	GetStudentOverview(ctx context.Context, studentID uint) ([]*models.CourseProgressSummary, error)
}

type AssignmentService interface {
	Create(ctx context.Context, courseID uint, req *CreateAssignmentRequest, userID uint) (*models.Assignment, error)
	GetByID(ctx context.Context, id uint, userID uint) (*models.Assignment, error)
	Update(ctx context.Context, id uint, req *UpdateAssignmentRequest, userID uint) (*models.Assignment, error)
	Delete(ctx context.Context, id uint, userID uint) error
	ListByCourse(ctx context.Context, courseID uint, userID uint) ([]*models.Assignment, error)

	Submit(ctx context.Context, assignmentID uint, req *CreateSubmissionRequest, studentID uint) (*models.Submission, error)
	GetSubmission(ctx context.Context, submissionID uint, userID uint) (*SubmissionResponse, error)
	ListSubmissions(ctx context.Context, assignmentID uint, userID uint) ([]*models.Submission, error)
	GetStudentSubmissions(ctx context.Context, studentID uint) ([]*SubmissionResponse, error)
	Grade(ctx context.Context, submissionID uint, req *GradeSubmissionRequest, graderID uint) (*models.Submission, error)
}

type ForumService interface {
	CreatePost(ctx context.Context, courseID uint, req *CreatePostRequest, authorID uint) (*models.ForumPost, error)
	GetPost(ctx context.Context, postID uint, userID uint) (*models.ForumPost, error)
	UpdatePost(ctx context.Context, postID uint, req *UpdatePostRequest, userID uint) (*models.ForumPost, error)
	DeletePost(ctx context.Context, postID uint, userID uint) error
	ListPosts(ctx context.Context, courseID uint, filters repositories.ForumFilters, userID uint) (*PostListResponse, error)

	CreateReply(ctx context.Context, postID uint, req *CreateReplyRequest, authorID uint) (*models.ForumReply, error)
	DeleteReply(ctx context.Context, replyID uint, userID uint) error
}

type NotificationService interface {
	List(ctx context.Context, userID uint, filters repositories.NotificationFilters) (*NotificationListResponse, error)
	MarkRead(ctx context.Context, notificationID, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error

	// NotifyUsers persists notifications and publishes a bus event. Used by
	// the forum, grading and content services.
	NotifyUsers(ctx context.Context, userIDs []uint, notifType models.NotificationType, title, message string, data map[string]interface{}) error
}

type ReportService interface {
	TeacherDashboard(ctx context.Context, teacherID uint) (*TeacherDashboardResponse, error)
	CourseReport(ctx context.Context, courseID uint, userID uint) (*CourseReportResponse, error)
	ExportCourseReport(ctx context.Context, courseID uint, userID uint) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Course() CourseService
	Content() ContentService
	Enrollment() EnrollmentService
	Progress() ProgressService
	Assignment() AssignmentService
	Forum() ForumService
	Notification() NotificationService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
