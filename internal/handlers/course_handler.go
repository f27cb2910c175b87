package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

// CreateCourse creates a new course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param course body services.CreateCourseRequest true "Course data"
// @Success 201 {object} services.CourseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GetCourse retrieves a course by ID
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} services.CourseResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Getting course", "course_id", id)

	course, err := h.courseService.GetByID(c.Request.Context(), id, GetUserIDFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// UpdateCourse updates an existing course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path uint true "Course ID"
// @Param course body services.UpdateCourseRequest true "Course update data"
// @Success 200 {object} services.CourseResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse deletes a course and all dependent records
// @Summary Delete course
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Course deleted"})
}

// ListCourses lists published courses with filters and pagination
// @Summary List courses
// @Tags courses
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Title search"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} services.CourseListResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := parseCourseFilters(c)

	courses, err := h.courseService.List(c.Request.Context(), filters, GetUserIDFromContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetMyCourses lists the authenticated teacher's courses
// @Summary List own courses
// @Tags courses
// @Produce json
// @Success 200 {object} services.CourseListResponse
// @Router /courses/mine [get]
func (h *CourseHandler) GetMyCourses(c *gin.Context) {
	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	courses, err := h.courseService.GetByTeacher(c.Request.Context(), userID, parseCourseFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// PublishCourse publishes a course
// @Summary Publish course
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/publish [post]
func (h *CourseHandler) PublishCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	if err := h.courseService.Publish(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Course published"})
}

// GetCourseStats returns aggregate statistics for a course
// @Summary Get course stats
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} repositories.CourseStats
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/stats [get]
func (h *CourseHandler) GetCourseStats(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	stats, err := h.courseService.GetStats(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// parseCourseFilters builds repository filters from query parameters.
func parseCourseFilters(c *gin.Context) repositories.CourseFilters {
	filters := repositories.CourseFilters{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_dir"),
	}

	if category := c.Query("category"); category != "" {
		filters.Category = &category
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
