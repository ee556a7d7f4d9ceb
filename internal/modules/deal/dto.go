package deal

import "tradeboard/internal/domain"

type ProposeDealRequest struct {
	RecipientID int64           `json:"recipient_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description" binding:"required"`
	DealType    domain.DealType `json:"deal_type"`
	Images      []string        `json:"images"`
}

type RespondRequest struct {
	Content string   `json:"content" binding:"required"`
	Images  []string `json:"images"`
	Approve *bool    `json:"approve" binding:"required"`
}

type ArbitrateRequest struct {
	Content string `json:"content"`
	Approve *bool  `json:"approve" binding:"required"`
}

type ReviewRequest struct {
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5"`
	ReviewText string `json:"review_text"`
}

type AssessmentRequest struct {
	Reason string `json:"reason"`
}

type ResolveAssessmentRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Notes   string `json:"notes"`
}
