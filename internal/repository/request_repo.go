package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) DB() *gorm.DB { return r.db }

// -------------------- Verification requests --------------------

func (r *RequestRepository) CreateVerification(ctx context.Context, req *domain.VerificationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) HasPendingVerification(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.VerificationRequest{}).
		Where("user_id = ? AND status = ?", userID, domain.RequestPending).
		Count(&count).Error
	return count > 0, err
}

func (r *RequestRepository) GetVerification(ctx context.Context, id int64) (*domain.VerificationRequest, error) {
	var req domain.VerificationRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListVerificationsByStatus(ctx context.Context, status domain.RequestStatus, page, limit int) ([]domain.VerificationRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.VerificationRequest{}).
		Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.VerificationRequest
	err := q.
		Preload("User").
		Order("created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// ResolveVerification flips the request status and, on approval, the
// profile's verified flag in the same transaction. The two writes the
// original issued as independent round trips become atomic here.
func (r *RequestRepository) ResolveVerification(ctx context.Context, id, adminID int64, approve bool, notes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req domain.VerificationRequest
		if err := tx.First(&req, id).Error; err != nil {
			return err
		}

		status := domain.RequestRejected
		if approve {
			status = domain.RequestApproved
		}
		res := tx.Model(&domain.VerificationRequest{}).
			Where("id = ? AND status = ?", id, domain.RequestPending).
			Updates(map[string]any{
				"status":      status,
				"admin_notes": notes,
				"reviewed_by": adminID,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if !approve {
			return nil
		}
		return tx.Model(&domain.Profile{}).
			Where("id = ?", req.UserID).
			Update("is_verified", true).Error
	})
}

// -------------------- Admin requests --------------------

func (r *RequestRepository) CreateAdminRequest(ctx context.Context, req *domain.AdminRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) HasPendingAdminRequest(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.AdminRequest{}).
		Where("user_id = ? AND status = ?", userID, domain.RequestPending).
		Count(&count).Error
	return count > 0, err
}

func (r *RequestRepository) GetAdminRequest(ctx context.Context, id int64) (*domain.AdminRequest, error) {
	var req domain.AdminRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListAdminRequestsByStatus(ctx context.Context, status domain.RequestStatus, page, limit int) ([]domain.AdminRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.AdminRequest{}).
		Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.AdminRequest
	err := q.
		Preload("User").
		Order("created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// ResolveAdminRequest mirrors ResolveVerification but grants is_admin.
func (r *RequestRepository) ResolveAdminRequest(ctx context.Context, id, ownerID int64, approve bool, notes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req domain.AdminRequest
		if err := tx.First(&req, id).Error; err != nil {
			return err
		}

		status := domain.RequestRejected
		if approve {
			status = domain.RequestApproved
		}
		res := tx.Model(&domain.AdminRequest{}).
			Where("id = ? AND status = ?", id, domain.RequestPending).
			Updates(map[string]any{
				"status":      status,
				"admin_notes": notes,
				"reviewed_by": ownerID,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if !approve {
			return nil
		}
		return tx.Model(&domain.Profile{}).
			Where("id = ?", req.UserID).
			Update("is_admin", true).Error
	})
}
