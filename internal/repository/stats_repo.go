package repository

import (
	"context"

	"gorm.io/gorm"

	"tradeboard/internal/domain"
)

// BoardStats is a point-in-time snapshot for the admin dashboard.
type BoardStats struct {
	TotalUsers    int64 `json:"total_users"`
	VerifiedUsers int64 `json:"verified_users"`
	BannedUsers   int64 `json:"banned_users"`
	Admins        int64 `json:"admins"`

	TotalThreads int64 `json:"total_threads"`
	TotalPosts   int64 `json:"total_posts"`
	TotalAgents  int64 `json:"total_agents"`

	DealsByStatus map[string]int64 `json:"deals_by_status"`

	PendingVerifications int64 `json:"pending_verifications"`
	PendingAdminRequests int64 `json:"pending_admin_requests"`
	PendingAssessments   int64 `json:"pending_assessments"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Collect(ctx context.Context) (*BoardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &BoardStats{DealsByStatus: make(map[string]int64)}

	counts := []struct {
		dst   *int64
		model any
		cond  []any
	}{
		{&stats.TotalUsers, &domain.Profile{}, nil},
		{&stats.VerifiedUsers, &domain.Profile{}, []any{"is_verified = ?", true}},
		{&stats.BannedUsers, &domain.Profile{}, []any{"is_banned = ?", true}},
		{&stats.Admins, &domain.Profile{}, []any{"is_admin = ? OR is_owner = ?", true, true}},
		{&stats.TotalThreads, &domain.Thread{}, nil},
		{&stats.TotalPosts, &domain.Post{}, nil},
		{&stats.TotalAgents, &domain.Agent{}, nil},
		{&stats.PendingVerifications, &domain.VerificationRequest{}, []any{"status = ?", domain.RequestPending}},
		{&stats.PendingAdminRequests, &domain.AdminRequest{}, []any{"status = ?", domain.RequestPending}},
		{&stats.PendingAssessments, &domain.ReviewAssessment{}, []any{"status = ?", domain.AssessmentPending}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.cond != nil {
			q = q.Where(c.cond[0], c.cond[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	rows := []struct {
		Status string
		Count  int64
	}{}
	err := db.Model(&domain.Deal{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.DealsByStatus[row.Status] = row.Count
	}

	return stats, nil
}
