package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, p *domain.Profile) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("username = ?", strings.TrimSpace(username)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// UpdateFields patches selected columns; used by moderation actions so
// unrelated profile fields are never overwritten by a stale struct.
func (r *UserRepository) UpdateFields(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *UserRepository) IncrementPostCount(ctx context.Context, id int64, delta int) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("post_count", gorm.Expr("post_count + ?", delta)).Error
}

func (r *UserRepository) AddReputation(ctx context.Context, id int64, delta int) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("reputation", gorm.Expr("reputation + ?", delta)).Error
}

type UserFilter struct {
	Query  string
	Banned *bool
	Role   string
}

func (r *UserRepository) List(ctx context.Context, f UserFilter, page, limit int) ([]domain.Profile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Profile{})

	if s := strings.TrimSpace(f.Query); s != "" {
		sv := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", sv, sv)
	}
	if f.Banned != nil {
		q = q.Where("is_banned = ?", *f.Banned)
	}
	switch strings.TrimSpace(f.Role) {
	case "owner":
		q = q.Where("is_owner = ?", true)
	case "admin":
		q = q.Where("is_admin = ?", true)
	case "verified":
		q = q.Where("is_verified = ?", true)
	case "":
	default:
		q = q.Where("is_owner = ? AND is_admin = ? AND is_verified = ?", false, false, false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.Profile
	err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	return users, total, err
}
