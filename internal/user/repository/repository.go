// Package repository provides data access layer for user module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/contribution_points/internal/database"
	"github.com/festy23/contribution_points/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// GetByID finds user by user_id.
	GetByID(ctx context.Context, userID string) (*model.User, error)

	// FindByHandle finds user by exact nickname.
	FindByHandle(ctx context.Context, nickname string) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) (*model.User, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds user by user_id.
func (r *repository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	r.logger.Debugw("GetByID called", "user_id", userID)
	return r.first(ctx, "GetByID", "user_id = ?", userID)
}

// FindByHandle finds user by nickname. The match is exact and case-sensitive.
func (r *repository) FindByHandle(ctx context.Context, nickname string) (*model.User, error) {
	r.logger.Debugw("FindByHandle called", "nickname", nickname)
	return r.first(ctx, "FindByHandle", "nickname = ?", nickname)
}

func (r *repository) first(ctx context.Context, op, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw(op+" user not found", "key", arg)
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw(op+" database error", "key", arg, "error", err)
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user.
func (r *repository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.logger.Infow("Create called", "user_id", user.UserID, "nickname", user.Nickname)

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateError(err) {
			r.logger.Debugw("Create user exists", "user_id", user.UserID, "nickname", user.Nickname)
			return nil, model.ErrUserExists
		}
		r.logger.Errorw("Create database error", "user_id", user.UserID, "error", err)
		return nil, err
	}

	return user, nil
}
