// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/contribution_points/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetContributorsStatistics returns per-user activity for every known user.
	GetContributorsStatistics(ctx context.Context) ([]model.ContributorStatistics, error)

	// GetContributionStatistics returns aggregate contribution statistics.
	GetContributionStatistics(ctx context.Context) (*model.ContributionStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetContributorsStatistics uses correlated subqueries so that counts from
// different child tables do not multiply each other.
func (r *repository) GetContributorsStatistics(ctx context.Context) ([]model.ContributorStatistics, error) {
	r.logger.Debugw("GetContributorsStatistics called")

	var stats []model.ContributorStatistics

	err := r.db.WithContext(ctx).
		Table("users").
		Select(`
			users.user_id,
			users.nickname,
			(SELECT COUNT(*) FROM contributions WHERE contributions.user_id = users.user_id) AS contributions,
			(SELECT COUNT(*) FROM pairings WHERE pairings.user_id = users.user_id) AS pairings,
			(SELECT COUNT(*) FROM reviews WHERE reviews.user_id = users.user_id) AS reviews_given,
			(SELECT COALESCE(SUM(points), 0) FROM contributions WHERE contributions.user_id = users.user_id) AS points_authored
		`).
		Order("pairings DESC, users.user_id ASC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetContributorsStatistics database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.ContributorStatistics{}
	}

	r.logger.Debugw("GetContributorsStatistics completed", "count", len(stats))
	return stats, nil
}

// GetContributionStatistics returns aggregate contribution statistics.
func (r *repository) GetContributionStatistics(ctx context.Context) (*model.ContributionStatistics, error) {
	r.logger.Debugw("GetContributionStatistics called")

	var totals struct {
		Total       int64 `gorm:"column:total"`
		TotalPoints int64 `gorm:"column:total_points"`
		Unreviewed  int64 `gorm:"column:unreviewed"`
	}

	err := r.db.WithContext(ctx).
		Table("contributions").
		Select(`
			COUNT(*) AS total,
			COALESCE(SUM(points), 0) AS total_points,
			COALESCE(SUM(CASE WHEN NOT EXISTS (
				SELECT 1 FROM reviews WHERE reviews.contribution_id = contributions.id
			) THEN 1 ELSE 0 END), 0) AS unreviewed
		`).
		Scan(&totals).Error
	if err != nil {
		r.logger.Errorw("GetContributionStatistics database error", "error", err)
		return nil, err
	}

	var reviews int64
	if err := r.db.WithContext(ctx).Table("reviews").Count(&reviews).Error; err != nil {
		r.logger.Errorw("GetContributionStatistics database error", "error", err)
		return nil, err
	}

	buckets := []model.PointsBucket{}
	err = r.db.WithContext(ctx).
		Table("contributions").
		Select("points, COUNT(*) AS count").
		Group("points").
		Order("points DESC").
		Scan(&buckets).Error
	if err != nil {
		r.logger.Errorw("GetContributionStatistics database error", "error", err)
		return nil, err
	}

	stats := &model.ContributionStatistics{
		TotalContributions:      int(totals.Total),
		TotalPoints:             totals.TotalPoints,
		TotalReviews:            int(reviews),
		UnreviewedContributions: int(totals.Unreviewed),
		PointsDistribution:      buckets,
	}
	if stats.TotalContributions > 0 {
		stats.AverageReviews = float64(stats.TotalReviews) / float64(stats.TotalContributions)
	}

	r.logger.Debugw("GetContributionStatistics completed", "total_contributions", stats.TotalContributions)
	return stats, nil
}
