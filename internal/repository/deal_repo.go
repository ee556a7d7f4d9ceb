package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
)

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) DB() *gorm.DB { return r.db }

func (r *DealRepository) Create(ctx context.Context, d *domain.Deal) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DealRepository) GetByID(ctx context.Context, id int64) (*domain.Deal, error) {
	var d domain.Deal
	err := r.db.WithContext(ctx).
		Preload("Initiator").
		Preload("Recipient").
		First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListForUser returns deals where the user is either party, newest first.
func (r *DealRepository) ListForUser(ctx context.Context, userID int64, page, limit int) ([]domain.Deal, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Where("initiator_id = ? OR recipient_id = ?", userID, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var deals []domain.Deal
	err := q.
		Preload("Initiator").
		Preload("Recipient").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&deals).Error
	return deals, total, err
}

// TransitionStatus moves a deal from one status to another. The WHERE
// clause carries the expected current status, so a concurrent actor
// racing the same edge flips exactly one of the two updates; the loser
// sees false.
func (r *DealRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.DealStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// TransitionWithResponse flips the status edge and appends the
// response row in one transaction, so a deal can never land in the new
// status without the response that justified it. The conditional
// update still arbitrates races; the loser sees false and writes
// nothing.
func (r *DealRepository) TransitionWithResponse(ctx context.Context, id int64, from, to domain.DealStatus, resp *domain.DealResponse) (bool, error) {
	moved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Deal{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]any{"status": to, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Create(resp).Error; err != nil {
			return err
		}
		moved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}

func (r *DealRepository) ListResponses(ctx context.Context, dealID int64) ([]domain.DealResponse, error) {
	var out []domain.DealResponse
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("deal_id = ?", dealID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// -------------------- Reviews --------------------

func (r *DealRepository) CreateReview(ctx context.Context, rv *domain.DealReview) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *DealRepository) GetReview(ctx context.Context, id int64) (*domain.DealReview, error) {
	var rv domain.DealReview
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		First(&rv, id).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *DealRepository) GetDealReviews(ctx context.Context, dealID int64) ([]domain.DealReview, error) {
	var out []domain.DealReview
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("deal_id = ?", dealID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *DealRepository) ListReviewsForReviewee(ctx context.Context, userID int64, page, limit int) ([]domain.DealReview, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.DealReview{}).
		Where("reviewee_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []domain.DealReview
	err := q.
		Preload("Reviewer").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error
	return reviews, total, err
}

// -------------------- Assessments --------------------

func (r *DealRepository) CreateAssessment(ctx context.Context, a *domain.ReviewAssessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *DealRepository) GetAssessment(ctx context.Context, id int64) (*domain.ReviewAssessment, error) {
	var a domain.ReviewAssessment
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *DealRepository) ListAssessmentsByStatus(ctx context.Context, status domain.AssessmentStatus, page, limit int) ([]domain.ReviewAssessment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ReviewAssessment{}).
		Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.ReviewAssessment
	err := q.
		Preload("User").
		Order("created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// ApproveAssessment resolves the assessment and deletes the disputed
// review in one transaction, so there is no window where the
// assessment is approved but the review still exists.
func (r *DealRepository) ApproveAssessment(ctx context.Context, assessmentID, adminID int64, notes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a domain.ReviewAssessment
		if err := tx.First(&a, assessmentID).Error; err != nil {
			return err
		}
		var rv domain.DealReview
		if err := tx.First(&rv, a.ReviewID).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.ReviewAssessment{}).
			Where("id = ? AND status = ?", assessmentID, domain.AssessmentPending).
			Updates(map[string]any{
				"status":      domain.AssessmentApproved,
				"admin_notes": notes,
				"resolved_by": adminID,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Delete(&domain.DealReview{}, a.ReviewID).Error; err != nil {
			return err
		}

		// the deleted review no longer counts toward reputation
		return tx.Model(&domain.Profile{}).
			Where("id = ?", rv.RevieweeID).
			Update("reputation", gorm.Expr("reputation - ?", rv.Rating-3)).Error
	})
}

func (r *DealRepository) RejectAssessment(ctx context.Context, assessmentID, adminID int64, notes string) error {
	res := r.db.WithContext(ctx).Model(&domain.ReviewAssessment{}).
		Where("id = ? AND status = ?", assessmentID, domain.AssessmentPending).
		Updates(map[string]any{
			"status":      domain.AssessmentRejected,
			"admin_notes": notes,
			"resolved_by": adminID,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
