package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

// Enroll enrolls the authenticated student in a course
// @Summary Enroll in course
// @Tags enrollments
// @Produce json
// @Param id path uint true "Course ID"
// @Success 201 {object} models.Enrollment
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /courses/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// GetMyEnrollments lists the authenticated student's enrollments with
// per-course progress summaries
// @Summary List own enrollments
// @Tags enrollments
// @Produce json
// @Param status query string false "Status filter (active, completed, dropped)"
// @Success 200 {array} services.EnrollmentResponse
// @Router /enrollments/mine [get]
func (h *EnrollmentHandler) GetMyEnrollments(c *gin.Context) {
	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	enrollments, total, err := h.enrollmentService.GetStudentEnrollments(c.Request.Context(), userID, parseEnrollmentFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enrollments": enrollments,
		"total":       total,
	})
}

// GetCourseEnrollments lists a course's enrollments for its teacher
// @Summary List course enrollments
// @Tags enrollments
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {array} models.Enrollment
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/enrollments [get]
func (h *EnrollmentHandler) GetCourseEnrollments(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	enrollments, total, err := h.enrollmentService.GetCourseEnrollments(c.Request.Context(), courseID, parseEnrollmentFilters(c), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enrollments": enrollments,
		"total":       total,
	})
}

func parseEnrollmentFilters(c *gin.Context) repositories.EnrollmentFilters {
	filters := repositories.EnrollmentFilters{}

	if status := c.Query("status"); status != "" {
		s := models.EnrollmentStatus(status)
		filters.Status = &s
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if size < 1 || size > 100 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	filters.Limit = size
	filters.Offset = page * size

	return filters
}
