// Package repository provides data access for score rows.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/contribution_points/internal/database"
	"github.com/festy23/contribution_points/internal/score/model"
)

// Repository defines the interface for score data access operations.
type Repository interface {
	// Increment adds points to the (user, span) row, creating it at zero first if missing.
	Increment(ctx context.Context, userID string, span model.TimeSpan, points int64) error

	// Decrement subtracts points from every existing row of the user and
	// returns the number of rows changed.
	Decrement(ctx context.Context, userID string, points int64) (int64, error)

	// Reset zeroes the given spans, or every row when no span is given.
	Reset(ctx context.Context, spans ...model.TimeSpan) (int64, error)

	// Get returns the row for (user, span).
	Get(ctx context.Context, userID string, span model.TimeSpan) (*model.Score, error)

	// Top returns up to limit rows of span ordered by points desc, user id asc.
	Top(ctx context.Context, span model.TimeSpan, limit int) ([]model.Score, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new score repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Increment runs in its own transaction. The addition is evaluated by the
// database so concurrent increments on one row never lose updates.
func (r *repository) Increment(ctx context.Context, userID string, span model.TimeSpan, points int64) error {
	r.logger.Debugw("Increment called", "user_id", userID, "time_span", span, "points", points)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.Score{UserID: userID, TimeSpan: span}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "time_span"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}

		return tx.Model(&model.Score{}).
			Where("user_id = ? AND time_span = ?", userID, span).
			Updates(map[string]any{
				"points":     gorm.Expr("points + ?", points),
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		if database.IsForeignKeyError(err) {
			r.logger.Debugw("Increment unknown user", "user_id", userID)
			return model.ErrUnknownUser
		}
		r.logger.Errorw("Increment database error", "user_id", userID, "time_span", span, "error", err)
		return err
	}

	return nil
}

// Decrement is a single UPDATE, so it is atomic per row. No rows is not an error.
func (r *repository) Decrement(ctx context.Context, userID string, points int64) (int64, error) {
	r.logger.Debugw("Decrement called", "user_id", userID, "points", points)

	result := r.db.WithContext(ctx).
		Model(&model.Score{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"points":     gorm.Expr("points - ?", points),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		r.logger.Errorw("Decrement database error", "user_id", userID, "error", result.Error)
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// Reset is one bulk UPDATE; rows are kept.
func (r *repository) Reset(ctx context.Context, spans ...model.TimeSpan) (int64, error) {
	r.logger.Infow("Reset called", "time_spans", spans)

	q := r.db.WithContext(ctx).Model(&model.Score{})
	if len(spans) > 0 {
		q = q.Where("time_span IN ?", spans)
	} else {
		q = q.Session(&gorm.Session{AllowGlobalUpdate: true})
	}

	result := q.Updates(map[string]any{"points": 0, "updated_at": time.Now()})
	if result.Error != nil {
		r.logger.Errorw("Reset database error", "time_spans", spans, "error", result.Error)
		return 0, result.Error
	}

	r.logger.Infow("Reset completed", "time_spans", spans, "rows", result.RowsAffected)
	return result.RowsAffected, nil
}

// Get returns the row for (user, span).
func (r *repository) Get(ctx context.Context, userID string, span model.TimeSpan) (*model.Score, error) {
	var score model.Score
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND time_span = ?", userID, span).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrScoreNotFound
		}
		r.logger.Errorw("Get database error", "user_id", userID, "time_span", span, "error", err)
		return nil, err
	}
	return &score, nil
}

// Top returns the highest rows of a span.
func (r *repository) Top(ctx context.Context, span model.TimeSpan, limit int) ([]model.Score, error) {
	r.logger.Debugw("Top called", "time_span", span, "limit", limit)

	var scores []model.Score
	err := r.db.WithContext(ctx).
		Where("time_span = ?", span).
		Order("points DESC").
		Order("user_id ASC").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		r.logger.Errorw("Top database error", "time_span", span, "error", err)
		return nil, err
	}

	if scores == nil {
		scores = []model.Score{}
	}
	return scores, nil
}
