package agent

import (
	"context"

	"tradeboard/internal/domain"
	"tradeboard/internal/repository"
)

type AgentRepository interface {
	Create(ctx context.Context, a *domain.Agent, maxPerOwner int) error
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	List(ctx context.Context, f repository.AgentFilters) ([]domain.Agent, int64, error)
	Update(ctx context.Context, a *domain.Agent) error
	Delete(ctx context.Context, id int64) error
}

type UserGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
}
