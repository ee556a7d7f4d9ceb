package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradeboard/internal/domain"
	"tradeboard/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the user-facing request submission endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests/verification", h.SubmitVerification)
	rg.POST("/requests/admin", h.SubmitAdmin)
}

// RegisterAdminRoutes wires the moderation panel. The owner-only gate
// on admin-request resolution and admin revocation is enforced in the
// service, not the router, so a compromised admin token still cannot
// mint admins.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/requests/verification", h.ListVerifications)
	rg.POST("/requests/verification/:id/resolve", h.ResolveVerification)
	rg.GET("/requests/admin", h.ListAdminRequests)
	rg.POST("/requests/admin/:id/resolve", h.ResolveAdminRequest)

	rg.GET("/users", h.ListUsers)
	rg.POST("/users/:id/ban", h.BanUser)
	rg.POST("/users/:id/unban", h.UnbanUser)
	rg.POST("/users/:id/verify", h.Verify)
	rg.POST("/users/:id/unverify", h.Unverify)
	rg.POST("/users/:id/title", h.SetTitle)
	rg.POST("/users/:id/revoke-admin", h.RevokeAdmin)

	rg.GET("/statistics", h.Statistics)
}

func (h *Handler) SubmitVerification(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req, err := h.service.SubmitVerificationRequest(c.Request.Context(), c.GetInt64("user_id"), body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": req})
}

func (h *Handler) SubmitAdmin(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req, err := h.service.SubmitAdminRequest(c.Request.Context(), c.GetInt64("user_id"), body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": req})
}

func (h *Handler) ListVerifications(c *gin.Context) {
	page, limit := pagination(c)
	reqs, total, err := h.service.ListVerificationRequests(c.Request.Context(), domain.RequestStatus(c.Query("status")), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": reqs, "total": total})
}

func (h *Handler) ResolveVerification(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body ResolveRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.ResolveVerificationRequest(c.Request.Context(), id, c.GetInt64("user_id"), body); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resolved": true})
}

func (h *Handler) ListAdminRequests(c *gin.Context) {
	page, limit := pagination(c)
	reqs, total, err := h.service.ListAdminRequests(c.Request.Context(), domain.RequestStatus(c.Query("status")), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": reqs, "total": total})
}

func (h *Handler) ResolveAdminRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body ResolveRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.ResolveAdminRequest(c.Request.Context(), id, c.GetInt64("user_id"), body); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resolved": true})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := pagination(c)
	q := ListUsersQuery{
		Query: c.Query("q"),
		Role:  c.Query("role"),
		Page:  page,
		Limit: limit,
	}
	if raw := c.Query("banned"); raw != "" {
		banned := raw == "true"
		q.Banned = &banned
	}
	users, total, err := h.service.ListUsers(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *Handler) BanUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body BanRequest
	_ = c.ShouldBindJSON(&body)
	if err := h.service.BanUser(c.Request.Context(), id, c.GetInt64("user_id"), body.Reason); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"banned": true})
}

func (h *Handler) UnbanUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.UnbanUser(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"banned": false})
}

func (h *Handler) Verify(c *gin.Context) {
	h.setVerified(c, true)
}

func (h *Handler) Unverify(c *gin.Context) {
	h.setVerified(c, false)
}

func (h *Handler) setVerified(c *gin.Context, verified bool) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.SetVerified(c.Request.Context(), id, c.GetInt64("user_id"), verified); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verified": verified})
}

func (h *Handler) SetTitle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body TitleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := h.service.SetHonorableTitle(c.Request.Context(), id, c.GetInt64("user_id"), body.Title); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"title": body.Title})
}

func (h *Handler) RevokeAdmin(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.service.RevokeAdmin(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"statistics": stats})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case ErrRequestPending:
		response.Error(c, http.StatusConflict, "REQUEST_PENDING", err.Error())
	case ErrAlreadyGranted:
		response.Error(c, http.StatusConflict, "ALREADY_GRANTED", err.Error())
	case ErrOwnerOnly:
		response.Error(c, http.StatusForbidden, "OWNER_ONLY", err.Error())
	case ErrRequestClosed:
		response.Error(c, http.StatusConflict, "REQUEST_CLOSED", err.Error())
	case ErrCannotModerate:
		response.Error(c, http.StatusForbidden, "CANNOT_MODERATE", err.Error())
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
