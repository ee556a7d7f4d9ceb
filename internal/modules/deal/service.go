package deal

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tradeboard/internal/domain"
	"tradeboard/internal/pkg/images"
)

type Service struct {
	deals  DealRepository
	users  UserGate
	notifs NotificationSender
}

func NewService(deals DealRepository, users UserGate, notifs NotificationSender) *Service {
	return &Service{deals: deals, users: users, notifs: notifs}
}

// Propose opens a deal in "pending" addressed to the recipient. There
// is deliberately no duplicate-proposal prevention: a user may run any
// number of concurrent deals with the same counterparty.
func (s *Service) Propose(ctx context.Context, initiatorID int64, req ProposeDealRequest) (*domain.Deal, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, ErrValidation
	}
	if req.RecipientID == initiatorID {
		return nil, ErrSelfDeal
	}

	dealType := req.DealType
	if dealType == "" {
		dealType = domain.DealOther
	}
	if !domain.ValidDealType(dealType) {
		return nil, ErrValidation
	}

	imgs, err := images.Normalize(req.Images)
	if err != nil {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d := &domain.Deal{
		InitiatorID:     initiatorID,
		RecipientID:     req.RecipientID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DealType:        dealType,
		InitiatorImages: imgs,
		Status:          domain.DealPending,
	}

	if err := s.deals.Create(ctx, d); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyDealProposed(ctx, d.RecipientID, d.ID, d.Title)
	}

	return d, nil
}

// GetDeal is readable by either party or a moderator.
func (s *Service) GetDeal(ctx context.Context, dealID, actorID int64) (*domain.Deal, error) {
	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.requireParticipantOrModerator(ctx, d, actorID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) ListMyDeals(ctx context.Context, userID int64, page, limit int) ([]domain.Deal, int64, error) {
	page, limit = clampPage(page, limit)
	return s.deals.ListForUser(ctx, userID, page, limit)
}

func (s *Service) ListResponses(ctx context.Context, dealID, actorID int64) ([]domain.DealResponse, error) {
	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.requireParticipantOrModerator(ctx, d, actorID); err != nil {
		return nil, err
	}
	return s.deals.ListResponses(ctx, dealID)
}

// Respond records the recipient's decision while the deal is pending.
// Accepting moves the deal to "negotiating", declining to "rejected".
func (s *Service) Respond(ctx context.Context, dealID, actorID int64, req RespondRequest) (*domain.Deal, error) {
	if strings.TrimSpace(req.Content) == "" || req.Approve == nil {
		return nil, ErrValidation
	}

	imgs, err := images.Normalize(req.Images)
	if err != nil {
		return nil, ErrValidation
	}

	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if d.RecipientID != actorID {
		return nil, ErrForbidden
	}
	if d.Status != domain.DealPending {
		return nil, ErrDealNotPending
	}

	next := domain.DealRejected
	if *req.Approve {
		next = domain.DealNegotiating
	}

	resp := &domain.DealResponse{
		DealID:       dealID,
		UserID:       actorID,
		Content:      req.Content,
		Images:       imgs,
		ResponseType: domain.ResponseRecipient,
		IsApproved:   req.Approve,
	}

	// the conditional update inside is the race arbiter: the loser
	// flips nothing and appends nothing
	ok, err := s.deals.TransitionWithResponse(ctx, dealID, domain.DealPending, next, resp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDealNotPending
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyDealResponded(ctx, d.InitiatorID, d.ID, *req.Approve)
	}

	d.Status = next
	return d, nil
}

// Arbitrate is the privileged final decision. It is only effective
// while the deal is "negotiating", i.e. after the recipient agreed.
func (s *Service) Arbitrate(ctx context.Context, dealID, actorID int64, req ArbitrateRequest) (*domain.Deal, error) {
	if req.Approve == nil {
		return nil, ErrValidation
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !actor.IsOwner {
		return nil, ErrForbidden
	}

	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if d.Status != domain.DealNegotiating {
		return nil, ErrAdminReviewStage
	}

	next := domain.DealRejected
	if *req.Approve {
		next = domain.DealApproved
	}

	resp := &domain.DealResponse{
		DealID:       dealID,
		UserID:       actorID,
		Content:      req.Content,
		ResponseType: domain.ResponseAdminApproval,
		IsApproved:   req.Approve,
	}

	ok, err := s.deals.TransitionWithResponse(ctx, dealID, domain.DealNegotiating, next, resp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAdminReviewStage
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyDealArbitrated(ctx, d.InitiatorID, d.ID, *req.Approve)
		_ = s.notifs.NotifyDealArbitrated(ctx, d.RecipientID, d.ID, *req.Approve)
	}

	d.Status = next
	return d, nil
}

// Cancel lets the initiator withdraw a proposal the recipient has not
// acted on yet.
func (s *Service) Cancel(ctx context.Context, dealID, actorID int64) (*domain.Deal, error) {
	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if d.InitiatorID != actorID {
		return nil, ErrForbidden
	}
	if d.Status != domain.DealPending {
		return nil, ErrDealNotPending
	}

	ok, err := s.deals.TransitionStatus(ctx, dealID, domain.DealPending, domain.DealCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDealNotPending
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyDealCancelled(ctx, d.RecipientID, d.ID)
	}

	d.Status = domain.DealCancelled
	return d, nil
}

// -------------------- Reviews --------------------

// SubmitReview lets either party rate the other once the deal is
// approved. The (deal, reviewer) pair is unique at the schema level;
// a lost race surfaces as ErrReviewExists rather than a duplicate row.
func (s *Service) SubmitReview(ctx context.Context, dealID, reviewerID int64, req ReviewRequest) (*domain.DealReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if d.Status != domain.DealApproved {
		return nil, ErrDealNotApproved
	}

	var revieweeID int64
	switch reviewerID {
	case d.InitiatorID:
		revieweeID = d.RecipientID
	case d.RecipientID:
		revieweeID = d.InitiatorID
	default:
		return nil, ErrForbidden
	}

	rv := &domain.DealReview{
		DealID:     dealID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}

	if err := s.deals.CreateReview(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// reputation shadows reviews: 3 stars is neutral
	_ = s.users.AddReputation(ctx, revieweeID, req.Rating-3)

	if s.notifs != nil {
		_ = s.notifs.NotifyNewReview(ctx, revieweeID, dealID, rv.ID, req.Rating)
	}

	return rv, nil
}

func (s *Service) GetDealReviews(ctx context.Context, dealID, actorID int64) ([]domain.DealReview, error) {
	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.requireParticipantOrModerator(ctx, d, actorID); err != nil {
		return nil, err
	}
	return s.deals.GetDealReviews(ctx, dealID)
}

// ListUserReviews backs the public profile page.
func (s *Service) ListUserReviews(ctx context.Context, userID int64, page, limit int) ([]domain.DealReview, int64, error) {
	page, limit = clampPage(page, limit)
	return s.deals.ListReviewsForReviewee(ctx, userID, page, limit)
}

// -------------------- Assessments --------------------

// RequestAssessment files a dispute against a low-rated review. Only
// the reviewee may file, and only for ratings 1-4.
func (s *Service) RequestAssessment(ctx context.Context, reviewID, actorID int64, req AssessmentRequest) (*domain.ReviewAssessment, error) {
	rv, err := s.deals.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if rv.RevieweeID != actorID {
		return nil, ErrForbidden
	}
	if rv.Rating == 5 {
		return nil, ErrAssessmentNotAllowed
	}

	a := &domain.ReviewAssessment{
		ReviewID: reviewID,
		UserID:   actorID,
		Reason:   req.Reason,
		Status:   domain.AssessmentPending,
	}

	if err := s.deals.CreateAssessment(ctx, a); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAssessmentExists
		}
		return nil, err
	}

	return a, nil
}

func (s *Service) ListAssessments(ctx context.Context, status domain.AssessmentStatus, page, limit int) ([]domain.ReviewAssessment, int64, error) {
	page, limit = clampPage(page, limit)
	if status == "" {
		status = domain.AssessmentPending
	}
	return s.deals.ListAssessmentsByStatus(ctx, status, page, limit)
}

// ResolveAssessment is terminal: approval deletes the disputed review
// (atomically with the status flip), rejection leaves it intact.
func (s *Service) ResolveAssessment(ctx context.Context, assessmentID, actorID int64, req ResolveAssessmentRequest) error {
	if req.Approve == nil {
		return ErrValidation
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && !actor.IsOwner {
		return ErrForbidden
	}

	a, err := s.deals.GetAssessment(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if a.Status != domain.AssessmentPending {
		return ErrAssessmentResolved
	}

	if *req.Approve {
		err = s.deals.ApproveAssessment(ctx, assessmentID, actorID, req.Notes)
	} else {
		err = s.deals.RejectAssessment(ctx, assessmentID, actorID, req.Notes)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssessmentResolved
		}
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAssessmentResolved(ctx, a.UserID, a.ReviewID, *req.Approve)
	}

	return nil
}

// -------------------- helpers --------------------

func (s *Service) requireParticipantOrModerator(ctx context.Context, d *domain.Deal, actorID int64) error {
	if d.InitiatorID == actorID || d.RecipientID == actorID {
		return nil
	}
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.IsAdmin || actor.IsOwner {
		return nil
	}
	return ErrForbidden
}

func clampPage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite has no typed error here
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "23505")
}
