package services

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"gorm.io/gorm"
)

// Function-field mocks. Unset fields return not-found for getters and nil for
// writes, so each test only configures the calls it cares about.

// ===== USER =====

type mockUserRepo struct {
	CreateFn                 func(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByIDFn                func(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmailFn             func(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByVerificationTokenFn func(ctx context.Context, tx *gorm.DB, token string) (*models.User, error)
	MarkVerifiedFn           func(ctx context.Context, tx *gorm.DB, id uint) error
	UpdateFn                 func(ctx context.Context, tx *gorm.DB, user *models.User) error
	ExistsByEmailFn          func(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	HasRoleFn                func(ctx context.Context, tx *gorm.DB, id uint, role models.UserRole) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, tx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, tx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByVerificationToken(ctx context.Context, tx *gorm.DB, token string) (*models.User, error) {
	if m.GetByVerificationTokenFn != nil {
		return m.GetByVerificationTokenFn(ctx, tx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) MarkVerified(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.MarkVerifiedFn != nil {
		return m.MarkVerifiedFn(ctx, tx, id)
	}
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, tx, email)
	}
	return false, nil
}

func (m *mockUserRepo) HasRole(ctx context.Context, tx *gorm.DB, id uint, role models.UserRole) (bool, error) {
	if m.HasRoleFn != nil {
		return m.HasRoleFn(ctx, tx, id, role)
	}
	return false, nil
}

// ===== COURSE =====

type mockCourseRepo struct {
	CreateFn              func(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByIDFn             func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	GetByIDWithTeacherFn  func(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	UpdateFn              func(ctx context.Context, tx *gorm.DB, course *models.Course) error
	DeleteFn              func(ctx context.Context, tx *gorm.DB, id uint) error
	ListFn                func(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, int64, error)
	GetEnrollmentCountsFn func(ctx context.Context, tx *gorm.DB, courseIDs []uint) (map[uint]int64, error)
	ExistsFn              func(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	IsOwnerFn             func(ctx context.Context, tx *gorm.DB, courseID, teacherID uint) (bool, error)
}

func (m *mockCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx, course)
	}
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDWithTeacher(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	if m.GetByIDWithTeacherFn != nil {
		return m.GetByIDWithTeacherFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, tx, course)
	}
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, tx, id)
	}
	return nil
}

func (m *mockCourseRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, tx, filters)
	}
	return nil, 0, nil
}

func (m *mockCourseRepo) GetByTeacher(ctx context.Context, tx *gorm.DB, teacherID uint, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	return nil, 0, nil
}

func (m *mockCourseRepo) GetStats(ctx context.Context, tx *gorm.DB, courseID uint) (*repositories.CourseStats, error) {
	return &repositories.CourseStats{}, nil
}

func (m *mockCourseRepo) GetEnrollmentCounts(ctx context.Context, tx *gorm.DB, courseIDs []uint) (map[uint]int64, error) {
	if m.GetEnrollmentCountsFn != nil {
		return m.GetEnrollmentCountsFn(ctx, tx, courseIDs)
	}
	return map[uint]int64{}, nil
}

func (m *mockCourseRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, tx, id)
	}
	return false, nil
}

func (m *mockCourseRepo) IsOwner(ctx context.Context, tx *gorm.DB, courseID, teacherID uint) (bool, error) {
	if m.IsOwnerFn != nil {
		return m.IsOwnerFn(ctx, tx, courseID, teacherID)
	}
	return false, nil
}

// ===== CONTENT =====

type mockContentRepo struct {
	CreateFn           func(ctx context.Context, tx *gorm.DB, content *models.CourseContent) error
	GetByIDFn          func(ctx context.Context, tx *gorm.DB, id uint) (*models.CourseContent, error)
	GetByCourseFn      func(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.ContentFilters) ([]*models.CourseContent, error)
	CountPublishedFn   func(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)
	NextDisplayOrderFn func(ctx context.Context, tx *gorm.DB, courseID uint) (int, error)
	ReorderFn          func(ctx context.Context, tx *gorm.DB, courseID uint, orderedIDs []uint) error
}

func (m *mockContentRepo) Create(ctx context.Context, tx *gorm.DB, content *models.CourseContent) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx, content)
	}
	return nil
}

func (m *mockContentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.CourseContent, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContentRepo) Update(ctx context.Context, tx *gorm.DB, content *models.CourseContent) error {
	return nil
}

func (m *mockContentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error { return nil }

func (m *mockContentRepo) GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.ContentFilters) ([]*models.CourseContent, error) {
	if m.GetByCourseFn != nil {
		return m.GetByCourseFn(ctx, tx, courseID, filters)
	}
	return nil, nil
}

func (m *mockContentRepo) CountPublished(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	if m.CountPublishedFn != nil {
		return m.CountPublishedFn(ctx, tx, courseID)
	}
	return 0, nil
}

func (m *mockContentRepo) Reorder(ctx context.Context, tx *gorm.DB, courseID uint, orderedIDs []uint) error {
	if m.ReorderFn != nil {
		return m.ReorderFn(ctx, tx, courseID, orderedIDs)
	}
	return nil
}

func (m *mockContentRepo) NextDisplayOrder(ctx context.Context, tx *gorm.DB, courseID uint) (int, error) {
	if m.NextDisplayOrderFn != nil {
		return m.NextDisplayOrderFn(ctx, tx, courseID)
	}
	return 1, nil
}

func (m *mockContentRepo) GetStats(ctx context.Context, tx *gorm.DB, courseID uint) (*repositories.ContentStats, error) {
	return &repositories.ContentStats{}, nil
}

// ===== ENROLLMENT =====

type mockEnrollmentRepo struct {
	CreateFn                func(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error
	GetByStudentFn          func(ctx context.Context, tx *gorm.DB, studentID uint, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error)
	GetByCourseFn           func(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error)
	GetStudentIDsByCourseFn func(ctx context.Context, tx *gorm.DB, courseID uint) ([]uint, error)
	IsEnrolledFn            func(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (bool, error)
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollment *models.Enrollment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx, enrollment)
	}
	return nil
}

func (m *mockEnrollmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Enrollment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EnrollmentStatus) error {
	return nil
}

func (m *mockEnrollmentRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	if m.GetByStudentFn != nil {
		return m.GetByStudentFn(ctx, tx, studentID, filters)
	}
	return nil, 0, nil
}

func (m *mockEnrollmentRepo) GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	if m.GetByCourseFn != nil {
		return m.GetByCourseFn(ctx, tx, courseID, filters)
	}
	return nil, 0, nil
}

func (m *mockEnrollmentRepo) GetStudentIDsByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]uint, error) {
	if m.GetStudentIDsByCourseFn != nil {
		return m.GetStudentIDsByCourseFn(ctx, tx, courseID)
	}
	return nil, nil
}

func (m *mockEnrollmentRepo) IsEnrolled(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (bool, error) {
	if m.IsEnrolledFn != nil {
		return m.IsEnrolledFn(ctx, tx, studentID, courseID)
	}
	return false, nil
}

func (m *mockEnrollmentRepo) CountByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	return 0, nil
}

// ===== PROGRESS =====

type mockProgressRepo struct {
	GetRecordFn          func(ctx context.Context, tx *gorm.DB, studentID, contentID uint) (*models.StudentProgress, error)
	CreateFn             func(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error
	UpdateFn             func(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error
	GetContentProgressFn func(ctx context.Context, tx *gorm.DB, studentID, courseID uint) ([]*models.ContentProgressItem, error)
	GetCourseProgressFn  func(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (*models.CourseProgress, error)
}

func (m *mockProgressRepo) GetRecord(ctx context.Context, tx *gorm.DB, studentID, contentID uint) (*models.StudentProgress, error) {
	if m.GetRecordFn != nil {
		return m.GetRecordFn(ctx, tx, studentID, contentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgressRepo) Create(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx, record)
	}
	return nil
}

func (m *mockProgressRepo) Update(ctx context.Context, tx *gorm.DB, record *models.StudentProgress) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, tx, record)
	}
	return nil
}

func (m *mockProgressRepo) GetContentProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uint) ([]*models.ContentProgressItem, error) {
	if m.GetContentProgressFn != nil {
		return m.GetContentProgressFn(ctx, tx, studentID, courseID)
	}
	return nil, nil
}

func (m *mockProgressRepo) GetCourseProgress(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (*models.CourseProgress, error) {
	if m.GetCourseProgressFn != nil {
		return m.GetCourseProgressFn(ctx, tx, studentID, courseID)
	}
	return &models.CourseProgress{}, nil
}

func (m *mockProgressRepo) GetStudentOverallProgress(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.CourseProgressSummary, error) {
	return nil, nil
}

func (m *mockProgressRepo) GetCourseRoster(ctx context.Context, tx *gorm.DB, courseID uint) ([]*repositories.StudentProgressRow, error) {
	return nil, nil
}

// ===== ASSIGNMENT =====

type mockAssignmentRepo struct {
	GetByIDFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error)
}

func (m *mockAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	return nil
}

func (m *mockAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	return nil
}

func (m *mockAssignmentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error { return nil }

func (m *mockAssignmentRepo) GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Assignment, error) {
	return nil, nil
}

// ===== SUBMISSION =====

type mockSubmissionRepo struct {
	CreateFn  func(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	GetByIDFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	GradeFn   func(ctx context.Context, tx *gorm.DB, id uint, grade float64, feedback *string, graderID uint) error
}

func (m *mockSubmissionRepo) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx, submission)
	}
	return nil
}

func (m *mockSubmissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uint) (*models.Submission, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	return nil
}

func (m *mockSubmissionRepo) GetByAssignment(ctx context.Context, tx *gorm.DB, assignmentID uint) ([]*models.Submission, error) {
	return nil, nil
}

func (m *mockSubmissionRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.Submission, error) {
	return nil, nil
}

func (m *mockSubmissionRepo) Grade(ctx context.Context, tx *gorm.DB, id uint, grade float64, feedback *string, graderID uint) error {
	if m.GradeFn != nil {
		return m.GradeFn(ctx, tx, id, grade, feedback, graderID)
	}
	return nil
}

func (m *mockSubmissionRepo) CountUngraded(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	return 0, nil
}

// ===== FORUM =====

type mockForumRepo struct {
	CreatePostFn  func(ctx context.Context, tx *gorm.DB, post *models.ForumPost) error
	GetPostByIDFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumPost, error)
	CreateReplyFn func(ctx context.Context, tx *gorm.DB, reply *models.ForumReply) error
}

func (m *mockForumRepo) CreatePost(ctx context.Context, tx *gorm.DB, post *models.ForumPost) error {
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, tx, post)
	}
	return nil
}

func (m *mockForumRepo) GetPostByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumPost, error) {
	if m.GetPostByIDFn != nil {
		return m.GetPostByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockForumRepo) GetPostWithReplies(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumPost, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockForumRepo) UpdatePost(ctx context.Context, tx *gorm.DB, post *models.ForumPost) error {
	return nil
}

func (m *mockForumRepo) DeletePost(ctx context.Context, tx *gorm.DB, id uint) error { return nil }

func (m *mockForumRepo) CreateReply(ctx context.Context, tx *gorm.DB, reply *models.ForumReply) error {
	if m.CreateReplyFn != nil {
		return m.CreateReplyFn(ctx, tx, reply)
	}
	return nil
}

func (m *mockForumRepo) GetReplyByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ForumReply, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockForumRepo) DeleteReply(ctx context.Context, tx *gorm.DB, id uint) error { return nil }

func (m *mockForumRepo) GetPostsByCourse(ctx context.Context, tx *gorm.DB, courseID uint, filters repositories.ForumFilters) ([]*repositories.PostWithReplyCount, int64, error) {
	return nil, 0, nil
}

func (m *mockForumRepo) CountPostsByCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	return 0, nil
}

// ===== NOTIFICATION =====

type mockNotificationRepo struct {
	CreateBatchFn func(ctx context.Context, tx *gorm.DB, notifications []*models.Notification) error
	GetByUserFn   func(ctx context.Context, tx *gorm.DB, userID uint, filters repositories.NotificationFilters) ([]*models.Notification, error)
	CountUnreadFn func(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
	MarkReadFn    func(ctx context.Context, tx *gorm.DB, id, userID uint) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error {
	return nil
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, tx *gorm.DB, notifications []*models.Notification) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, tx, notifications)
	}
	return nil
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uint, filters repositories.NotificationFilters) ([]*models.Notification, error) {
	if m.GetByUserFn != nil {
		return m.GetByUserFn(ctx, tx, userID, filters)
	}
	return nil, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(ctx, tx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id, userID uint) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, tx, id, userID)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID uint) error {
	return nil
}

// ===== DASHBOARD =====

type mockDashboardRepo struct{}

func (m *mockDashboardRepo) GetTotalCourses(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	return 0, nil
}

func (m *mockDashboardRepo) GetPublishedCourses(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	return 0, nil
}

func (m *mockDashboardRepo) GetTotalEnrollments(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	return 0, nil
}

func (m *mockDashboardRepo) GetTotalContent(ctx context.Context, tx *gorm.DB, teacherID uint) (int64, error) {
	return 0, nil
}

func (m *mockDashboardRepo) GetAverageCompletion(ctx context.Context, tx *gorm.DB, teacherID uint) (float64, error) {
	return 0, nil
}

func (m *mockDashboardRepo) GetRecentEnrollments(ctx context.Context, tx *gorm.DB, teacherID uint, limit int) ([]repositories.RecentEnrollmentData, error) {
	return nil, nil
}

func (m *mockDashboardRepo) GetCourseBreakdown(ctx context.Context, tx *gorm.DB, teacherID uint) ([]repositories.CourseBreakdownData, error) {
	return nil, nil
}

// ===== AGGREGATE =====

// mockRepository satisfies repositories.Repository. WithTransaction runs the
// callback against the same mock, mirroring the real tx-bound repository.
type mockRepository struct {
	user         mockUserRepo
	course       mockCourseRepo
	content      mockContentRepo
	enrollment   mockEnrollmentRepo
	progress     mockProgressRepo
	assignment   mockAssignmentRepo
	submission   mockSubmissionRepo
	forum        mockForumRepo
	notification mockNotificationRepo
	dashboard    mockDashboardRepo
}

func (m *mockRepository) User() repositories.UserRepository                 { return &m.user }
func (m *mockRepository) Course() repositories.CourseRepository             { return &m.course }
func (m *mockRepository) Content() repositories.ContentRepository           { return &m.content }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository     { return &m.enrollment }
func (m *mockRepository) Progress() repositories.ProgressRepository         { return &m.progress }
func (m *mockRepository) Assignment() repositories.AssignmentRepository     { return &m.assignment }
func (m *mockRepository) Submission() repositories.SubmissionRepository     { return &m.submission }
func (m *mockRepository) Forum() repositories.ForumRepository               { return &m.forum }
func (m *mockRepository) Notification() repositories.NotificationRepository { return &m.notification }
func (m *mockRepository) Dashboard() repositories.DashboardRepository       { return &m.dashboard }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }
