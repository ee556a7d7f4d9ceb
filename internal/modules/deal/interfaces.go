package deal

import (
	"context"

	"tradeboard/internal/domain"
)

// DealRepository covers deals, their append-only response log, reviews
// and review assessments.
type DealRepository interface {
	Create(ctx context.Context, d *domain.Deal) error
	GetByID(ctx context.Context, id int64) (*domain.Deal, error)
	ListForUser(ctx context.Context, userID int64, page, limit int) ([]domain.Deal, int64, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.DealStatus) (bool, error)
	TransitionWithResponse(ctx context.Context, id int64, from, to domain.DealStatus, resp *domain.DealResponse) (bool, error)
	ListResponses(ctx context.Context, dealID int64) ([]domain.DealResponse, error)

	CreateReview(ctx context.Context, rv *domain.DealReview) error
	GetReview(ctx context.Context, id int64) (*domain.DealReview, error)
	GetDealReviews(ctx context.Context, dealID int64) ([]domain.DealReview, error)
	ListReviewsForReviewee(ctx context.Context, userID int64, page, limit int) ([]domain.DealReview, int64, error)

	CreateAssessment(ctx context.Context, a *domain.ReviewAssessment) error
	GetAssessment(ctx context.Context, id int64) (*domain.ReviewAssessment, error)
	ListAssessmentsByStatus(ctx context.Context, status domain.AssessmentStatus, page, limit int) ([]domain.ReviewAssessment, int64, error)
	ApproveAssessment(ctx context.Context, assessmentID, adminID int64, notes string) error
	RejectAssessment(ctx context.Context, assessmentID, adminID int64, notes string) error
}

type UserGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	AddReputation(ctx context.Context, id int64, delta int) error
}

type NotificationSender interface {
	NotifyDealProposed(ctx context.Context, recipientID, dealID int64, title string) error
	NotifyDealResponded(ctx context.Context, initiatorID, dealID int64, accepted bool) error
	NotifyDealArbitrated(ctx context.Context, userID, dealID int64, approved bool) error
	NotifyDealCancelled(ctx context.Context, recipientID, dealID int64) error
	NotifyNewReview(ctx context.Context, revieweeID, dealID, reviewID int64, rating int) error
	NotifyAssessmentResolved(ctx context.Context, userID, reviewID int64, approved bool) error
}
