package admin

import (
	"context"

	"tradeboard/internal/domain"
	"tradeboard/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	UpdateFields(ctx context.Context, id int64, updates map[string]any) error
	List(ctx context.Context, f repository.UserFilter, page, limit int) ([]domain.Profile, int64, error)
}

type RequestRepository interface {
	CreateVerification(ctx context.Context, req *domain.VerificationRequest) error
	HasPendingVerification(ctx context.Context, userID int64) (bool, error)
	GetVerification(ctx context.Context, id int64) (*domain.VerificationRequest, error)
	ListVerificationsByStatus(ctx context.Context, status domain.RequestStatus, page, limit int) ([]domain.VerificationRequest, int64, error)
	ResolveVerification(ctx context.Context, id, adminID int64, approve bool, notes string) error

	CreateAdminRequest(ctx context.Context, req *domain.AdminRequest) error
	HasPendingAdminRequest(ctx context.Context, userID int64) (bool, error)
	GetAdminRequest(ctx context.Context, id int64) (*domain.AdminRequest, error)
	ListAdminRequestsByStatus(ctx context.Context, status domain.RequestStatus, page, limit int) ([]domain.AdminRequest, int64, error)
	ResolveAdminRequest(ctx context.Context, id, ownerID int64, approve bool, notes string) error
}

type StatsCollector interface {
	Collect(ctx context.Context) (*repository.BoardStats, error)
}

type NotificationSender interface {
	NotifyRequestResolved(ctx context.Context, userID int64, kind string, approved bool, notes string) error
}
