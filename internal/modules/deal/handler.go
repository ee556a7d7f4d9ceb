package deal

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/deals", h.Propose)
	rg.GET("/deals", h.ListMyDeals)
	rg.GET("/deals/:id", h.GetDeal)
	rg.GET("/deals/:id/responses", h.ListResponses)
	rg.POST("/deals/:id/respond", h.Respond)
	rg.POST("/deals/:id/cancel", h.Cancel)
	rg.POST("/deals/:id/reviews", h.SubmitReview)
	rg.GET("/deals/:id/reviews", h.GetDealReviews)
	rg.POST("/reviews/:id/assessment", h.RequestAssessment)
}

// RegisterPublicRoutes exposes reviews on profile pages.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:id/reviews", h.ListUserReviews)
}

// RegisterAdminRoutes wires the arbiter and assessment queue.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/deals/:id/arbitrate", h.Arbitrate)
	rg.GET("/assessments", h.ListAssessments)
	rg.POST("/assessments/:id/resolve", h.ResolveAssessment)
}

func (h *Handler) Propose(c *gin.Context) {
	var req ProposeDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.Propose(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"deal": d})
}

func (h *Handler) GetDeal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := h.service.GetDeal(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deal": d})
}

func (h *Handler) ListMyDeals(c *gin.Context) {
	page, limit := pagination(c)
	deals, total, err := h.service.ListMyDeals(c.Request.Context(), c.GetInt64("user_id"), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deals": deals, "total": total})
}

func (h *Handler) ListResponses(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	responses, err := h.service.ListResponses(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"responses": responses})
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.Respond(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deal": d})
}

func (h *Handler) Arbitrate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ArbitrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.Arbitrate(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deal": d})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deal": d})
}

func (h *Handler) SubmitReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.SubmitReview(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) GetDealReviews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	reviews, err := h.service.GetDealReviews(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) ListUserReviews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	reviews, total, err := h.service.ListUserReviews(c.Request.Context(), id, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews, "total": total})
}

func (h *Handler) RequestAssessment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.RequestAssessment(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"assessment": a})
}

func (h *Handler) ListAssessments(c *gin.Context) {
	page, limit := pagination(c)
	status := domain.AssessmentStatus(c.Query("status"))
	assessments, total, err := h.service.ListAssessments(c.Request.Context(), status, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assessments": assessments, "total": total})
}

func (h *Handler) ResolveAssessment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ResolveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ResolveAssessment(c.Request.Context(), id, c.GetInt64("user_id"), req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resolved": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	case ErrSelfDeal:
		response.Error(c, http.StatusBadRequest, "SELF_DEAL", err.Error())
	case ErrDealNotPending:
		response.Error(c, http.StatusConflict, "DEAL_NOT_PENDING", err.Error())
	case ErrAdminReviewStage:
		response.Error(c, http.StatusConflict, "DEAL_NOT_NEGOTIATING", err.Error())
	case ErrDealNotApproved:
		response.Error(c, http.StatusConflict, "DEAL_NOT_APPROVED", err.Error())
	case ErrReviewExists:
		response.Error(c, http.StatusConflict, "REVIEW_EXISTS", err.Error())
	case ErrAssessmentNotAllowed:
		response.Error(c, http.StatusBadRequest, "ASSESSMENT_NOT_ALLOWED", err.Error())
	case ErrAssessmentExists:
		response.Error(c, http.StatusConflict, "ASSESSMENT_EXISTS", err.Error())
	case ErrAssessmentResolved:
		response.Error(c, http.StatusConflict, "ASSESSMENT_RESOLVED", err.Error())
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
