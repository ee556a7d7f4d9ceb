package forum

import (
	"context"

	"tradeboard/internal/domain"
)

type ForumRepository interface {
	CreateThread(ctx context.Context, t *domain.Thread) error
	GetThread(ctx context.Context, id int64) (*domain.Thread, error)
	ListThreads(ctx context.Context, page, limit int) ([]domain.Thread, int64, error)
	UpdateThread(ctx context.Context, t *domain.Thread) error
	DeleteThread(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	SetPinned(ctx context.Context, id int64, pinned bool) error
	SetLocked(ctx context.Context, id int64, locked bool) error

	CreatePost(ctx context.Context, p *domain.Post) error
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, threadID int64, page, limit int) ([]domain.Post, int64, error)
	UpdatePost(ctx context.Context, p *domain.Post) error
	DeletePost(ctx context.Context, id int64) error
}

type UserGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	IncrementPostCount(ctx context.Context, id int64, delta int) error
}
