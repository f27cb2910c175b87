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

type ForumHandler struct {
	BaseHandler
	forumService services.ForumService
}

func NewForumHandler(forumService services.ForumService, logger utils.Logger) *ForumHandler {
	return &ForumHandler{
		BaseHandler:  NewBaseHandler(logger),
		forumService: forumService,
	}
}

// CreatePost creates a discussion post in a course forum
// @Summary Create forum post
// @Tags forum
// @Accept json
// @Produce json
// @Param id path uint true "Course ID"
// @Param post body services.CreatePostRequest true "Post data"
// @Success 201 {object} models.ForumPost
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/posts [post]
func (h *ForumHandler) CreatePost(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	post, err := h.forumService.CreatePost(c.Request.Context(), courseID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts lists a course's forum posts
// @Summary List forum posts
// @Tags forum
// @Produce json
// @Param id path uint true "Course ID"
// @Param type query string false "Post type filter (discussion, question, announcement)"
// @Success 200 {object} services.PostListResponse
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id}/posts [get]
func (h *ForumHandler) ListPosts(c *gin.Context) {
	courseID := h.parseIDParam(c, "id")
	if courseID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	posts, err := h.forumService.ListPosts(c.Request.Context(), courseID, parseForumFilters(c), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a post with its replies
// @Summary Get forum post
// @Tags forum
// @Produce json
// @Param id path uint true "Post ID"
// @Success 200 {object} models.ForumPost
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [get]
func (h *ForumHandler) GetPost(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	post, err := h.forumService.GetPost(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost updates a post; pin and lock flags require the course teacher
// @Summary Update forum post
// @Tags forum
// @Accept json
// @Produce json
// @Param id path uint true "Post ID"
// @Param post body services.UpdatePostRequest true "Post update data"
// @Success 200 {object} models.ForumPost
// @Failure 403 {object} ErrorResponse
// @Router /posts/{id} [put]
func (h *ForumHandler) UpdatePost(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	post, err := h.forumService.UpdatePost(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and its replies
// @Summary Delete forum post
// @Tags forum
// @Produce json
// @Param id path uint true "Post ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /posts/{id} [delete]
func (h *ForumHandler) DeletePost(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	if err := h.forumService.DeletePost(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Post deleted"})
}

// CreateReply adds a reply to a post
// @Summary Create reply
// @Tags forum
// @Accept json
// @Produce json
// @Param id path uint true "Post ID"
// @Param reply body services.CreateReplyRequest true "Reply data"
// @Success 201 {object} models.ForumReply
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /posts/{id}/replies [post]
func (h *ForumHandler) CreateReply(c *gin.Context) {
	postID := h.parseIDParam(c, "id")
	if postID == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	var req services.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	reply, err := h.forumService.CreateReply(c.Request.Context(), postID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// DeleteReply deletes a reply
// @Summary Delete reply
// @Tags forum
// @Produce json
// @Param id path uint true "Reply ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /replies/{id} [delete]
func (h *ForumHandler) DeleteReply(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := requireUserID(c)
	if userID == 0 {
		return
	}

	if err := h.forumService.DeleteReply(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Reply deleted"})
}

func parseForumFilters(c *gin.Context) repositories.ForumFilters {
	filters := repositories.ForumFilters{}

	if postType := c.Query("type"); postType != "" {
		t := models.PostType(postType)
		filters.Type = &t
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
