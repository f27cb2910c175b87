package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const recentEnrollmentLimit = 10

type reportService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// ===== TEACHER DASHBOARD =====

func (s *reportService) TeacherDashboard(ctx context.Context, teacherID uint) (*TeacherDashboardResponse, error) {
	dash := s.repo.Dashboard()

	totalCourses, err := dash.GetTotalCourses(ctx, s.db, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	publishedCourses, err := dash.GetPublishedCourses(ctx, s.db, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count published courses: %w", err)
	}
	totalEnrollments, err := dash.GetTotalEnrollments(ctx, s.db, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	totalContent, err := dash.GetTotalContent(ctx, s.db, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count content: %w", err)
	}
	avgCompletion, err := dash.GetAverageCompletion(ctx, s.db, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average completion: %w", err)
	}
	pendingGrading, err := s.repo.Submission().CountUngraded(ctx, s.db, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count ungraded submissions: %w", err)
	}

	recent, err := dash.GetRecentEnrollments(ctx, s.db, teacherID, recentEnrollmentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent enrollments: %w", err)
	}
	breakdown, err := dash.GetCourseBreakdown(ctx, s.db, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course breakdown: %w", err)
	}

	recentPtrs := make([]*repositories.RecentEnrollmentData, 0, len(recent))
	for i := range recent {
		recentPtrs = append(recentPtrs, &recent[i])
	}
	breakdownPtrs := make([]*repositories.CourseBreakdownData, 0, len(breakdown))
	for i := range breakdown {
		breakdownPtrs = append(breakdownPtrs, &breakdown[i])
	}

	return &TeacherDashboardResponse{
		Stats: &repositories.TeacherDashboardStats{
			TotalCourses:      int(totalCourses),
			PublishedCourses:  int(publishedCourses),
			TotalEnrollments:  int(totalEnrollments),
			TotalContent:      int(totalContent),
			AverageCompletion: avgCompletion,
			PendingGrading:    int(pendingGrading),
		},
		RecentEnrollments: recentPtrs,
		Courses:           breakdownPtrs,
	}, nil
}

// ===== COURSE REPORTS =====

func (s *reportService) CourseReport(ctx context.Context, courseID uint, userID uint) (*CourseReportResponse, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.TeacherID != userID {
		return nil, NewPermissionError(userID, courseID, "course", "view_report", "not the course owner")
	}

	stats, err := s.repo.Course().GetStats(ctx, s.db, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course stats: %w", err)
	}

	roster, err := s.repo.Progress().GetCourseRoster(ctx, s.db, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course roster: %w", err)
	}

	return &CourseReportResponse{
		CourseID:    courseID,
		CourseTitle: course.Title,
		Stats:       stats,
		Roster:      roster,
	}, nil
}

// ExportCourseReport renders the roster report as an xlsx workbook and
// returns its bytes plus a suggested file name.
func (s *reportService) ExportCourseReport(ctx context.Context, courseID uint, userID uint) ([]byte, string, error) {
	report, err := s.CourseReport(ctx, courseID, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	const sheet = "Progress"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Course progress report: %s", report.CourseTitle))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))

	headers := []string{"Student", "Email", "Enrolled", "Completed items", "Total items", "Average progress (%)", "Last activity"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A4", "G4", headerStyle)

	for i, row := range report.Roster {
		r := i + 5
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.StudentName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.StudentEmail)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.EnrolledAt.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.CompletedContent)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.TotalContent)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.AverageProgress)
		if row.LastActivity != nil {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.LastActivity.Format("2006-01-02 15:04"))
		}
	}

	f.SetColWidth(sheet, "A", "B", 28)
	f.SetColWidth(sheet, "C", "G", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("course-%d-progress-%s.xlsx", courseID, time.Now().Format("20060102"))

	s.logger.Info("Course report exported", "course_id", courseID, "rows", len(report.Roster))
	return buf.Bytes(), filename, nil
}
