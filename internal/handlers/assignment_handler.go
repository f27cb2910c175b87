package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
	}
}

// CreateAssignment creates an assignment in a course
// @Summary Create assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Course ID"
// @Param assignment body services.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} models.Assignment
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), courseID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// ListAssignments lists a course's assignments
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {array} models.Assignment
// @Router /courses/{id}/assignments [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	assignments, err := h.assignmentService.ListByCourse(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// GetAssignment retrieves an assignment
// @Summary Get assignment
// @Tags assignments
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} models.Assignment
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// UpdateAssignment updates an assignment
// @Summary Update assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param assignment body services.UpdateAssignmentRequest true "Assignment update data"
// @Success 200 {object} models.Assignment
// @Failure 403 {object} ErrorResponse
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment deletes an assignment and its submissions
// @Summary Delete assignment
// @Tags assignments
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Assignment deleted"})
}

// SubmitAssignment submits the authenticated student's answer
// @Summary Submit assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param submission body services.CreateSubmissionRequest true "Submission data"
// @Success 201 {object} models.Submission
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assignments/{id}/submissions [post]
func (h *AssignmentHandler) SubmitAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.assignmentService.Submit(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListSubmissions lists an assignment's submissions for its teacher
// @Summary List submissions
// @Tags assignments
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {array} models.Submission
// @Failure 403 {object} ErrorResponse
// @Router /assignments/{id}/submissions [get]
func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	submissions, err := h.assignmentService.ListSubmissions(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// GetMySubmissions lists the authenticated student's submissions
// @Summary List own submissions
// @Tags assignments
// @Produce json
// @Success 200 {array} services.SubmissionResponse
// @Router /submissions/mine [get]
func (h *AssignmentHandler) GetMySubmissions(c *gin.Context) {
	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	submissions, err := h.assignmentService.GetStudentSubmissions(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// GetSubmission retrieves one submission
// @Summary Get submission
// @Tags assignments
// @Produce json
// @Param id path uint true "Submission ID"
// @Success 200 {object} services.SubmissionResponse
// @Failure 403 {object} ErrorResponse
// @Router /submissions/{id} [get]
func (h *AssignmentHandler) GetSubmission(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	submission, err := h.assignmentService.GetSubmission(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// GradeSubmission records a grade and feedback for a submission
// @Summary Grade submission
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Submission ID"
// @Param grade body services.GradeSubmissionRequest true "Grade data"
// @Success 200 {object} models.Submission
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /submissions/{id}/grade [post]
func (h *AssignmentHandler) GradeSubmission(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.assignmentService.Grade(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}
