package auth

import (
	"context"

	"tradeboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, p *domain.Profile) error
	UpdateFields(ctx context.Context, id int64, updates map[string]any) error
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}
