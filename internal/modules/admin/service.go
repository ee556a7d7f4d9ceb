package admin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
	"tradeboard/internal/pkg/images"
	"tradeboard/internal/repository"
)

type Service struct {
	users    UserRepository
	requests RequestRepository
	stats    StatsCollector
	notifier NotificationSender
}

func NewService(users UserRepository, requests RequestRepository, stats StatsCollector, notifier NotificationSender) *Service {
	return &Service{users: users, requests: requests, stats: stats, notifier: notifier}
}

// -------------------- user-facing request submission --------------------

func (s *Service) SubmitVerificationRequest(ctx context.Context, userID int64, body SubmitRequestBody) (*domain.VerificationRequest, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsBanned {
		return nil, ErrForbidden
	}
	if u.IsVerified {
		return nil, ErrAlreadyGranted
	}

	pending, err := s.requests.HasPendingVerification(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrRequestPending
	}

	imgs, err := images.Normalize(body.Images)
	if err != nil {
		return nil, ErrValidation
	}

	req := &domain.VerificationRequest{
		UserID:  userID,
		Content: body.Content,
		Images:  imgs,
		Status:  domain.RequestPending,
	}
	if err := s.requests.CreateVerification(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) SubmitAdminRequest(ctx context.Context, userID int64, body SubmitRequestBody) (*domain.AdminRequest, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsBanned {
		return nil, ErrForbidden
	}
	if u.IsAdmin || u.IsOwner {
		return nil, ErrAlreadyGranted
	}
	// Admin candidacy requires the verified tier first.
	if !u.IsVerified {
		return nil, ErrForbidden
	}

	pending, err := s.requests.HasPendingAdminRequest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrRequestPending
	}

	req := &domain.AdminRequest{
		UserID:  userID,
		Content: body.Content,
		Status:  domain.RequestPending,
	}
	if err := s.requests.CreateAdminRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// -------------------- review queues --------------------

func (s *Service) ListVerificationRequests(ctx context.Context, status domain.RequestStatus, page, limit int) ([]domain.VerificationRequest, int64, error) {
	if status == "" {
		status = domain.RequestPending
	}
	page, limit = clampPage(page, limit)
	return s.requests.ListVerificationsByStatus(ctx, status, page, limit)
}

func (s *Service) ListAdminRequests(ctx context.Context, status domain.RequestStatus, page, limit int) ([]domain.AdminRequest, int64, error) {
	if status == "" {
		status = domain.RequestPending
	}
	page, limit = clampPage(page, limit)
	return s.requests.ListAdminRequestsByStatus(ctx, status, page, limit)
}

func (s *Service) ResolveVerificationRequest(ctx context.Context, requestID, actorID int64, body ResolveRequestBody) error {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin && !actor.IsOwner {
		return ErrForbidden
	}

	req, err := s.requests.GetVerification(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err = s.requests.ResolveVerification(ctx, requestID, actorID, body.Approve, body.Notes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestClosed
		}
		return err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyRequestResolved(ctx, req.UserID, "verification", body.Approve, body.Notes)
	}
	return nil
}

// ResolveAdminRequest grants moderator rights, which only the owner
// may do.
func (s *Service) ResolveAdminRequest(ctx context.Context, requestID, actorID int64, body ResolveRequestBody) error {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsOwner {
		return ErrOwnerOnly
	}

	req, err := s.requests.GetAdminRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err = s.requests.ResolveAdminRequest(ctx, requestID, actorID, body.Approve, body.Notes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestClosed
		}
		return err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyRequestResolved(ctx, req.UserID, "admin", body.Approve, body.Notes)
	}
	return nil
}

// -------------------- user directory and moderation --------------------

func (s *Service) ListUsers(ctx context.Context, q ListUsersQuery) ([]domain.Profile, int64, error) {
	page, limit := clampPage(q.Page, q.Limit)
	return s.users.List(ctx, repository.UserFilter{
		Query:  q.Query,
		Banned: q.Banned,
		Role:   q.Role,
	}, page, limit)
}

func (s *Service) BanUser(ctx context.Context, targetID, actorID int64, reason string) error {
	target, err := s.moderationTarget(ctx, targetID, actorID)
	if err != nil {
		return err
	}
	if target.IsBanned {
		return ErrAlreadyGranted
	}
	now := time.Now()
	return s.users.UpdateFields(ctx, targetID, map[string]any{
		"is_banned":  true,
		"ban_reason": reason,
		"banned_at":  &now,
	})
}

func (s *Service) UnbanUser(ctx context.Context, targetID, actorID int64) error {
	target, err := s.moderationTarget(ctx, targetID, actorID)
	if err != nil {
		return err
	}
	if !target.IsBanned {
		return ErrAlreadyGranted
	}
	return s.users.UpdateFields(ctx, targetID, map[string]any{
		"is_banned":  false,
		"ban_reason": "",
		"banned_at":  nil,
	})
}

func (s *Service) SetVerified(ctx context.Context, targetID, actorID int64, verified bool) error {
	target, err := s.moderationTarget(ctx, targetID, actorID)
	if err != nil {
		return err
	}
	if target.IsVerified == verified {
		return ErrAlreadyGranted
	}
	return s.users.UpdateFields(ctx, targetID, map[string]any{"is_verified": verified})
}

func (s *Service) SetHonorableTitle(ctx context.Context, targetID, actorID int64, title string) error {
	if _, err := s.moderationTarget(ctx, targetID, actorID); err != nil {
		return err
	}
	return s.users.UpdateFields(ctx, targetID, map[string]any{"honorable_title": title})
}

// RevokeAdmin strips moderator rights; owner only, like granting them.
func (s *Service) RevokeAdmin(ctx context.Context, targetID, actorID int64) error {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsOwner {
		return ErrOwnerOnly
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if target.IsOwner {
		return ErrCannotModerate
	}
	if !target.IsAdmin {
		return ErrAlreadyGranted
	}
	return s.users.UpdateFields(ctx, targetID, map[string]any{"is_admin": false})
}

func (s *Service) GetStatistics(ctx context.Context) (*repository.BoardStats, error) {
	return s.stats.Collect(ctx)
}

func (s *Service) moderationTarget(ctx context.Context, targetID, actorID int64) (*domain.Profile, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if targetID == actorID || !actor.CanModerate(target) {
		return nil, ErrCannotModerate
	}
	return target, nil
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
