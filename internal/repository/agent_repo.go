package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradeboard/internal/domain"
)

// ErrLimitExceeded signals the per-owner listing cap was hit inside
// the insert transaction.
var ErrLimitExceeded = errors.New("listing limit exceeded")

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) DB() *gorm.DB { return r.db }

// Create inserts the listing after counting the owner's existing ones
// in the same transaction. The owner's profile row is locked FOR UPDATE
// first: under READ COMMITTED two concurrent inserts for the same owner
// would otherwise both count before either insert and overshoot the
// cap. The sqlite driver drops the locking clause; sqlite serializes
// writers on its own.
func (r *AgentRepository) Create(ctx context.Context, a *domain.Agent, maxPerOwner int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner domain.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&owner, a.OwnerID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.Agent{}).
			Where("owner_id = ?", a.OwnerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(maxPerOwner) {
			return ErrLimitExceeded
		}
		return tx.Create(a).Error
	})
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	var a domain.Agent
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Agent{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

type AgentFilters struct {
	Search    string
	Tag       string
	Currency  string
	OwnerID   int64
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// List returns listings with optional filters. Tag matching goes
// through LIKE on the serialized JSON column, which works on both
// PostgreSQL and sqlite.
func (r *AgentRepository) List(ctx context.Context, f AgentFilters) ([]domain.Agent, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Agent{})

	if f.OwnerID > 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", "%"+s+"%", "%"+s+"%")
	}
	if tag := strings.TrimSpace(f.Tag); tag != "" {
		q = q.Where("tags LIKE ?", "%\""+tag+"\"%")
	}
	if cur := strings.TrimSpace(f.Currency); cur != "" {
		q = q.Where("currency = ?", cur)
	}

	sortBy := strings.ToLower(strings.TrimSpace(f.SortBy))
	sortOrder := strings.ToLower(strings.TrimSpace(f.SortOrder))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	orderExpr := "created_at"
	switch sortBy {
	case "price":
		orderExpr = "price"
	case "name":
		orderExpr = "name"
	case "created_at", "":
	default:
	}
	q = q.Order(orderExpr + " " + strings.ToUpper(sortOrder))

	countQuery := q.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var agents []domain.Agent
	err := q.
		Preload("Owner").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&agents).Error
	return agents, total, err
}

func (r *AgentRepository) Update(ctx context.Context, a *domain.Agent) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AgentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Agent{}, id).Error
}
