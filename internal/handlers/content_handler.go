package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	BaseHandler
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
	}
}

// CreateContent adds a content item to a course
// @Summary Create content
// @Tags content
// @Accept json
// @Produce json
// @Param id path uint true "Course ID"
// @Param content body services.CreateContentRequest true "Content data"
// @Success 201 {object} models.CourseContent
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/contents [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	content, err := h.contentService.Create(c.Request.Context(), courseID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, content)
}

// ListContents lists a course's content items
// @Summary List content
// @Tags content
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {array} models.CourseContent
// @Router /courses/{id}/contents [get]
func (h *ContentHandler) ListContents(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	contents, err := h.contentService.ListByCourse(c.Request.Context(), courseID, GetUserIDFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, contents)
}

// GetContent retrieves a content item
// @Summary Get content
// @Tags content
// @Produce json
// @Param id path uint true "Content ID"
// @Success 200 {object} models.CourseContent
// @Failure 404 {object} ErrorResponse
// @Router /contents/{id} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	content, err := h.contentService.GetByID(c.Request.Context(), id, GetUserIDFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// UpdateContent updates a content item
// @Summary Update content
// @Tags content
// @Accept json
// @Produce json
// @Param id path uint true "Content ID"
// @Param content body services.UpdateContentRequest true "Content update data"
// @Success 200 {object} models.CourseContent
// @Failure 403 {object} ErrorResponse
// @Router /contents/{id} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	content, err := h.contentService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// DeleteContent removes a content item and its progress records
// @Summary Delete content
// @Tags content
// @Produce json
// @Param id path uint true "Content ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /contents/{id} [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	if err := h.contentService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Content deleted"})
}

// ReorderContents reassigns display order for a course's content
// @Summary Reorder content
// @Tags content
// @Accept json
// @Produce json
// @Param id path uint true "Course ID"
// @Param order body services.ReorderContentRequest true "Ordered content IDs"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /courses/{id}/contents/reorder [put]
func (h *ContentHandler) ReorderContents(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.ReorderContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.contentService.Reorder(c.Request.Context(), courseID, &req, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Content reordered"})
}
