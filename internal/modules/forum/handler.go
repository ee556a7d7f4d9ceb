package forum

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradeboard/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes covers read-only browsing.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/threads", h.ListThreads)
	rg.GET("/threads/:id", h.GetThread)
	rg.GET("/threads/:id/posts", h.ListPosts)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/threads", h.CreateThread)
	rg.PATCH("/threads/:id", h.UpdateThread)
	rg.DELETE("/threads/:id", h.DeleteThread)
	rg.POST("/threads/:id/posts", h.CreatePost)
	rg.PATCH("/posts/:id", h.UpdatePost)
	rg.DELETE("/posts/:id", h.DeletePost)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/threads/:id/moderate", h.ModerateThread)
}

func (h *Handler) CreateThread(c *gin.Context) {
	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.CreateThread(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"thread": t})
}

func (h *Handler) ListThreads(c *gin.Context) {
	page, limit := pagination(c)
	threads, total, err := h.service.ListThreads(c.Request.Context(), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"threads": threads, "total": total})
}

func (h *Handler) GetThread(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := h.service.GetThread(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"thread": t})
}

func (h *Handler) UpdateThread(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateThread(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"thread": t})
}

func (h *Handler) DeleteThread(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteThread(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ModerateThread(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ModerateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.ModerateThread(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"thread": t})
}

func (h *Handler) CreatePost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreatePost(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"post": p})
}

func (h *Handler) ListPosts(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	posts, total, err := h.service.ListPosts(c.Request.Context(), id, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdatePost(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": p})
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePost(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case ErrBanned:
		response.Error(c, http.StatusForbidden, "BANNED", err.Error())
	case ErrThreadLocked:
		response.Error(c, http.StatusConflict, "THREAD_LOCKED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
