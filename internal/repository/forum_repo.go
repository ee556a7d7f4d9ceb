package repository

import (
	"context"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
)

type ForumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

func (r *ForumRepository) DB() *gorm.DB { return r.db }

// -------------------- Threads --------------------

func (r *ForumRepository) CreateThread(ctx context.Context, t *domain.Thread) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ForumRepository) GetThread(ctx context.Context, id int64) (*domain.Thread, error) {
	var t domain.Thread
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ForumRepository) ListThreads(ctx context.Context, page, limit int) ([]domain.Thread, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Thread{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var threads []domain.Thread
	err := q.
		Preload("Author").
		Order("is_pinned DESC, created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&threads).Error
	return threads, total, err
}

func (r *ForumRepository) UpdateThread(ctx context.Context, t *domain.Thread) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteThread removes the thread and its posts together.
func (r *ForumRepository) DeleteThread(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", id).Delete(&domain.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Thread{}, id).Error
	})
}

func (r *ForumRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Thread{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *ForumRepository) SetPinned(ctx context.Context, id int64, pinned bool) error {
	return r.db.WithContext(ctx).Model(&domain.Thread{}).
		Where("id = ?", id).
		Update("is_pinned", pinned).Error
}

func (r *ForumRepository) SetLocked(ctx context.Context, id int64, locked bool) error {
	return r.db.WithContext(ctx).Model(&domain.Thread{}).
		Where("id = ?", id).
		Update("is_locked", locked).Error
}

// -------------------- Posts --------------------

func (r *ForumRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ForumRepository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ForumRepository) ListPosts(ctx context.Context, threadID int64, page, limit int) ([]domain.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("thread_id = ?", threadID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []domain.Post
	err := q.
		Preload("Author").
		Order("created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *ForumRepository) UpdatePost(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ForumRepository) DeletePost(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Post{}, id).Error
}
