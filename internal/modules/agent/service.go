package agent

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
	"tradeboard/internal/repository"
)

type Service struct {
	agents AgentRepository
	users  UserGate
}

func NewService(agents AgentRepository, users UserGate) *Service {
	return &Service{agents: agents, users: users}
}

// Create registers a marketplace listing. Verification is checked
// against the live profile, and the per-user cap is enforced inside
// the repository's insert transaction.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateAgentRequest) (*domain.Agent, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 {
		return nil, ErrValidation
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.IsBanned {
		return nil, ErrForbidden
	}
	if !owner.IsVerified && !owner.IsAdmin && !owner.IsOwner {
		return nil, ErrNotVerified
	}

	a := &domain.Agent{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Services:    req.Services,
		Price:       req.Price,
		Currency:    normalizeCurrency(req.Currency),
		Tags:        req.Tags,
		Socials:     req.Socials,
		AvatarURL:   req.AvatarURL,
	}

	if err := s.agents.Create(ctx, a, domain.MaxAgentsPerUser); err != nil {
		if errors.Is(err, repository.ErrLimitExceeded) {
			return nil, ErrAgentLimit
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Agent, error) {
	a, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Agent, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	return s.agents.List(ctx, repository.AgentFilters{
		Search:    q.Search,
		Tag:       q.Tag,
		Currency:  q.Currency,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Limit:     q.Limit,
		Offset:    (q.Page - 1) * q.Limit,
	})
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Agent, int64, error) {
	return s.agents.List(ctx, repository.AgentFilters{
		OwnerID: ownerID,
		Limit:   domain.MaxAgentsPerUser,
	})
}

func (s *Service) Update(ctx context.Context, id, actorID int64, req UpdateAgentRequest) (*domain.Agent, error) {
	a, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.requireOwnerOrModerator(ctx, a, actorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		a.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		a.Description = req.Description
	}
	if req.Services != nil {
		a.Services = req.Services
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		a.Price = *req.Price
	}
	if req.Currency != "" {
		a.Currency = normalizeCurrency(req.Currency)
	}
	if req.Tags != nil {
		a.Tags = req.Tags
	}
	if req.Socials != nil {
		a.Socials = req.Socials
	}
	if req.AvatarURL != "" {
		a.AvatarURL = req.AvatarURL
	}

	if err := s.agents.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	a, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.requireOwnerOrModerator(ctx, a, actorID); err != nil {
		return err
	}

	return s.agents.Delete(ctx, id)
}

func (s *Service) requireOwnerOrModerator(ctx context.Context, a *domain.Agent, actorID int64) error {
	if a.OwnerID == actorID {
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

func normalizeCurrency(cur string) string {
	cur = strings.ToUpper(strings.TrimSpace(cur))
	if cur == "" {
		return "USD"
	}
	return cur
}
