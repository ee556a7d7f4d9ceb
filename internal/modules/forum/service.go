package forum

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
)

type Service struct {
	forum ForumRepository
	users UserGate
}

func NewService(forum ForumRepository, users UserGate) *Service {
	return &Service{forum: forum, users: users}
}

// -------------------- Threads --------------------

func (s *Service) CreateThread(ctx context.Context, authorID int64, req CreateThreadRequest) (*domain.Thread, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, ErrValidation
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.IsBanned {
		return nil, ErrBanned
	}

	t := &domain.Thread{
		AuthorID: authorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}
	if err := s.forum.CreateThread(ctx, t); err != nil {
		return nil, err
	}

	// the opening post counts toward the author's level
	_ = s.users.IncrementPostCount(ctx, authorID, 1)

	return t, nil
}

func (s *Service) ListThreads(ctx context.Context, page, limit int) ([]domain.Thread, int64, error) {
	page, limit = clampPage(page, limit)
	return s.forum.ListThreads(ctx, page, limit)
}

// GetThread bumps the view counter on every read, like the original.
func (s *Service) GetThread(ctx context.Context, id int64) (*domain.Thread, error) {
	t, err := s.forum.GetThread(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.forum.IncrementViews(ctx, id); err == nil {
		t.Views++
	}
	return t, nil
}

func (s *Service) UpdateThread(ctx context.Context, id, actorID int64, req UpdateThreadRequest) (*domain.Thread, error) {
	t, err := s.forum.GetThread(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if t.AuthorID != actorID {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(req.Title) != "" {
		t.Title = strings.TrimSpace(req.Title)
	}
	if strings.TrimSpace(req.Content) != "" {
		t.Content = req.Content
	}
	t.IsEdited = true
	t.EditCount++

	if err := s.forum.UpdateThread(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteThread(ctx context.Context, id, actorID int64) error {
	t, err := s.forum.GetThread(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if t.AuthorID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin && !actor.IsOwner {
			return ErrForbidden
		}
	}

	return s.forum.DeleteThread(ctx, id)
}

// ModerateThread pins and/or locks; callers are already role-gated.
func (s *Service) ModerateThread(ctx context.Context, id int64, req ModerateThreadRequest) (*domain.Thread, error) {
	if req.Pinned == nil && req.Locked == nil {
		return nil, ErrValidation
	}

	if _, err := s.forum.GetThread(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Pinned != nil {
		if err := s.forum.SetPinned(ctx, id, *req.Pinned); err != nil {
			return nil, err
		}
	}
	if req.Locked != nil {
		if err := s.forum.SetLocked(ctx, id, *req.Locked); err != nil {
			return nil, err
		}
	}

	return s.forum.GetThread(ctx, id)
}

// -------------------- Posts --------------------

func (s *Service) CreatePost(ctx context.Context, threadID, authorID int64, req CreatePostRequest) (*domain.Post, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrValidation
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.IsBanned {
		return nil, ErrBanned
	}

	t, err := s.forum.GetThread(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if t.IsLocked && !author.IsAdmin && !author.IsOwner {
		return nil, ErrThreadLocked
	}

	p := &domain.Post{
		ThreadID: threadID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.forum.CreatePost(ctx, p); err != nil {
		return nil, err
	}

	_ = s.users.IncrementPostCount(ctx, authorID, 1)

	return p, nil
}

func (s *Service) ListPosts(ctx context.Context, threadID int64, page, limit int) ([]domain.Post, int64, error) {
	page, limit = clampPage(page, limit)
	return s.forum.ListPosts(ctx, threadID, page, limit)
}

func (s *Service) UpdatePost(ctx context.Context, id, actorID int64, req UpdatePostRequest) (*domain.Post, error) {
	p, err := s.forum.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.AuthorID != actorID {
		return nil, ErrForbidden
	}

	p.Content = req.Content
	p.IsEdited = true
	p.EditCount++

	if err := s.forum.UpdatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePost(ctx context.Context, id, actorID int64) error {
	p, err := s.forum.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if p.AuthorID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin && !actor.IsOwner {
			return ErrForbidden
		}
	}

	if err := s.forum.DeletePost(ctx, id); err != nil {
		return err
	}

	_ = s.users.IncrementPostCount(ctx, p.AuthorID, -1)
	return nil
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
