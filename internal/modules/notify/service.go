package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"tradeboard/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// Service persists notifications and pushes them to connected clients.
// It satisfies the sender interfaces of the deal and admin modules.
type Service struct {
	repo NotificationRepository
	hub  *Hub
}

func NewService(repo NotificationRepository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// -------------------- deal events --------------------

func (s *Service) NotifyDealProposed(ctx context.Context, recipientID, dealID int64, title string) error {
	return s.deliver(ctx, recipientID, domain.NotifDealProposed,
		"New deal proposal",
		fmt.Sprintf("You received a deal proposal: %s", title),
		map[string]any{"deal_id": dealID})
}

func (s *Service) NotifyDealResponded(ctx context.Context, initiatorID, dealID int64, accepted bool) error {
	body := "Your deal proposal was declined"
	if accepted {
		body = "Your deal proposal moved to negotiation"
	}
	return s.deliver(ctx, initiatorID, domain.NotifDealResponded,
		"Deal response", body,
		map[string]any{"deal_id": dealID, "accepted": accepted})
}

func (s *Service) NotifyDealArbitrated(ctx context.Context, userID, dealID int64, approved bool) error {
	body := "An administrator rejected the deal"
	if approved {
		body = "An administrator approved the deal"
	}
	return s.deliver(ctx, userID, domain.NotifDealArbitrated,
		"Deal arbitrated", body,
		map[string]any{"deal_id": dealID, "approved": approved})
}

func (s *Service) NotifyDealCancelled(ctx context.Context, recipientID, dealID int64) error {
	return s.deliver(ctx, recipientID, domain.NotifDealCancelled,
		"Deal cancelled",
		"The initiator withdrew a deal proposal addressed to you",
		map[string]any{"deal_id": dealID})
}

func (s *Service) NotifyNewReview(ctx context.Context, revieweeID, dealID, reviewID int64, rating int) error {
	return s.deliver(ctx, revieweeID, domain.NotifNewReview,
		"New review",
		fmt.Sprintf("You received a %d-star review", rating),
		map[string]any{"deal_id": dealID, "review_id": reviewID, "rating": rating})
}

func (s *Service) NotifyAssessmentResolved(ctx context.Context, userID, reviewID int64, approved bool) error {
	body := "Your review assessment was rejected; the review stands"
	if approved {
		body = "Your review assessment was approved; the review was removed"
	}
	return s.deliver(ctx, userID, domain.NotifAssessmentResolved,
		"Review assessment resolved", body,
		map[string]any{"review_id": reviewID, "approved": approved})
}

// -------------------- moderation events --------------------

func (s *Service) NotifyRequestResolved(ctx context.Context, userID int64, kind string, approved bool, notes string) error {
	verdict := "rejected"
	if approved {
		verdict = "approved"
	}
	return s.deliver(ctx, userID, domain.NotifRequestResolved,
		fmt.Sprintf("Your %s request was %s", kind, verdict),
		notes,
		map[string]any{"kind": kind, "approved": approved})
}

func (s *Service) deliver(ctx context.Context, userID int64, typ domain.NotificationType, title, body string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	n := &domain.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
		Data:   raw,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, n)
	}
	return nil
}
