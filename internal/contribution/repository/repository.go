// Package repository provides data access layer for contribution module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/contribution_points/internal/contribution/model"
	"github.com/festy23/contribution_points/internal/database"
)

// Repository defines the interface for contribution data access operations.
type Repository interface {
	// Create inserts a contribution without its pairings and reviews.
	Create(ctx context.Context, c *model.Contribution) error

	// Exists reports whether the repository and number were already ingested.
	Exists(ctx context.Context, repoFullName string, number int) (bool, error)

	// CreatePairing records a collaborator of a contribution.
	CreatePairing(ctx context.Context, contributionID, userID string) (*model.Pairing, error)

	// CreateReview records a review comment. userID may be nil.
	CreateReview(ctx context.Context, contributionID string, userID *string, body string) (*model.Review, error)

	// GetByID loads a contribution with pairings and reviews in insertion order.
	GetByID(ctx context.Context, id string) (*model.Contribution, error)

	// Delete removes a contribution with its pairings and reviews.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new contribution repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a contribution without its pairings and reviews.
func (r *repository) Create(ctx context.Context, c *model.Contribution) error {
	r.logger.Debugw("Create called", "id", c.ID, "repo", c.BaseRepoFullName, "number", c.Number)

	err := r.db.WithContext(ctx).Omit("Pairings", "Reviews").Create(c).Error
	if err != nil {
		if database.IsDuplicateError(err) {
			r.logger.Debugw("Create contribution exists", "repo", c.BaseRepoFullName, "number", c.Number)
			return model.ErrContributionExists
		}
		r.logger.Errorw("Create database error", "id", c.ID, "error", err)
		return err
	}
	return nil
}

// Exists reports whether the repository and number were already ingested.
func (r *repository) Exists(ctx context.Context, repoFullName string, number int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Where("base_repo_full_name = ? AND number = ?", repoFullName, number).
		Count(&n).Error
	if err != nil {
		r.logger.Errorw("Exists database error", "repo", repoFullName, "number", number, "error", err)
		return false, err
	}
	return n > 0, nil
}

// CreatePairing records a collaborator of a contribution.
func (r *repository) CreatePairing(ctx context.Context, contributionID, userID string) (*model.Pairing, error) {
	p := &model.Pairing{ContributionID: contributionID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		r.logger.Errorw("CreatePairing database error", "contribution_id", contributionID, "user_id", userID, "error", err)
		return nil, err
	}
	return p, nil
}

// CreateReview records a review comment.
func (r *repository) CreateReview(
	ctx context.Context,
	contributionID string,
	userID *string,
	body string,
) (*model.Review, error) {
	rv := &model.Review{ContributionID: contributionID, UserID: userID, Body: body}
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		r.logger.Errorw("CreateReview database error", "contribution_id", contributionID, "error", err)
		return nil, err
	}
	return rv, nil
}

// GetByID loads a contribution with pairings and reviews in insertion order.
func (r *repository) GetByID(ctx context.Context, id string) (*model.Contribution, error) {
	r.logger.Debugw("GetByID called", "id", id)

	var c model.Contribution
	err := r.db.WithContext(ctx).
		Preload("Pairings", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrContributionNotFound
		}
		r.logger.Errorw("GetByID database error", "id", id, "error", err)
		return nil, err
	}
	return &c, nil
}

// Delete removes children explicitly so it does not rely on the driver
// enforcing ON DELETE CASCADE. Callers run it inside a transaction.
func (r *repository) Delete(ctx context.Context, id string) error {
	r.logger.Infow("Delete called", "id", id)

	db := r.db.WithContext(ctx)
	if err := db.Where("contribution_id = ?", id).Delete(&model.Pairing{}).Error; err != nil {
		r.logger.Errorw("Delete pairings database error", "id", id, "error", err)
		return err
	}
	if err := db.Where("contribution_id = ?", id).Delete(&model.Review{}).Error; err != nil {
		r.logger.Errorw("Delete reviews database error", "id", id, "error", err)
		return err
	}

	result := db.Where("id = ?", id).Delete(&model.Contribution{})
	if result.Error != nil {
		r.logger.Errorw("Delete database error", "id", id, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrContributionNotFound
	}

	r.logger.Infow("Delete completed", "id", id)
	return nil
}
