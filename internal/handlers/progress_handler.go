package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	BaseHandler
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler:     NewBaseHandler(logger),
		progressService: progressService,
	}
}

// UpdateProgress records the authenticated student's progress on a content
// item and returns the refreshed course aggregate
// @Summary Update progress
// @Tags progress
// @Accept json
// @Produce json
// @Param id path uint true "Content ID"
// @Param progress body services.UpdateProgressRequest true "Progress data"
// @Success 200 {object} services.ProgressUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /contents/{id}/progress [put]
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	contentID := h.parseIDParam(c, "id")
	if contentID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.progressService.UpdateProgress(c.Request.Context(), contentID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCourseProgress returns the authenticated student's progress in a course
// @Summary Get course progress
// @Tags progress
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} services.CourseProgressResponse
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/progress [get]
func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	progress, err := h.progressService.GetCourseProgress(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetMyProgress returns the authenticated student's cross-course overview
// @Summary Get progress overview
// @Tags progress
// @Produce json
// @Success 200 {array} models.CourseProgressSummary
// @Router /students/me/progress [get]
func (h *ProgressHandler) GetMyProgress(c *gin.Context) {
	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	summaries, err := h.progressService.GetStudentOverview(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}
