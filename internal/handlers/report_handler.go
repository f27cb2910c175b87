package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// GetDashboard returns aggregate statistics across the teacher's courses
// @Summary Teacher dashboard
// @Tags reports
// @Produce json
// @Success 200 {object} services.TeacherDashboardResponse
// @Router /dashboard/stats [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	h.LogRequest(c, "Building teacher dashboard", "teacher_id", userID)

	dashboard, err := h.reportService.TeacherDashboard(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetCourseReport returns the per-student progress roster for a course
// @Summary Course report
// @Tags reports
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} services.CourseReportResponse
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/report [get]
func (h *ReportHandler) GetCourseReport(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	report, err := h.reportService.CourseReport(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportCourseReport downloads the course progress roster as an xlsx file
// @Summary Export course report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Course ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/report/export [get]
func (h *ReportHandler) ExportCourseReport(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	data, filename, err := h.reportService.ExportCourseReport(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
