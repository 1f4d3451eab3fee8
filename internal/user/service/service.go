// Package service provides business logic layer for user module.
package service

import (
	"context"

	"go.uber.org/zap"

	scoreModel "github.com/festy23/contribution_points/internal/score/model"
	"github.com/festy23/contribution_points/internal/user/model"
	"github.com/festy23/contribution_points/internal/user/repository"
)

const maxFieldLength = 255

// ScoreReader reads ledger totals.
type ScoreReader interface {
	Read(ctx context.Context, userID string, span scoreModel.TimeSpan) (int64, error)
}

// Service defines the interface for user business logic operations.
type Service interface {
	// AddUser registers a user.
	AddUser(ctx context.Context, req *model.AddUserRequest) (*model.UserResponse, error)

	// GetUser returns a user by nickname with both score totals.
	GetUser(ctx context.Context, nickname string) (*model.UserResponse, error)
}

type service struct {
	repo   repository.Repository
	scores ScoreReader
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(repo repository.Repository, scores ScoreReader, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, scores: scores, logger: logger}
}

// AddUser registers a user.
func (s *service) AddUser(ctx context.Context, req *model.AddUserRequest) (*model.UserResponse, error) {
	s.logger.Debugw("AddUser called", "user_id", req.UserID, "nickname", req.Nickname)

	if len(req.UserID) == 0 || len(req.UserID) > maxFieldLength {
		return nil, model.ErrInvalidUserID
	}
	if len(req.Nickname) == 0 || len(req.Nickname) > maxFieldLength {
		return nil, model.ErrInvalidNickname
	}

	user, err := s.repo.Create(ctx, &model.User{
		UserID:    req.UserID,
		Nickname:  req.Nickname,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		s.logger.Errorw("AddUser failed", "user_id", req.UserID, "error", err)
		return nil, err
	}

	s.logger.Infow("AddUser completed", "user_id", user.UserID)
	return &model.UserResponse{User: *user}, nil
}

// GetUser returns a user by nickname with both score totals.
func (s *service) GetUser(ctx context.Context, nickname string) (*model.UserResponse, error) {
	s.logger.Debugw("GetUser called", "nickname", nickname)

	if nickname == "" {
		return nil, model.ErrInvalidNickname
	}

	user, err := s.repo.FindByHandle(ctx, nickname)
	if err != nil {
		return nil, err
	}

	allTime, err := s.scores.Read(ctx, user.UserID, scoreModel.AllTime)
	if err != nil {
		s.logger.Errorw("GetUser failed to read all_time", "user_id", user.UserID, "error", err)
		return nil, err
	}
	weekly, err := s.scores.Read(ctx, user.UserID, scoreModel.Weekly)
	if err != nil {
		s.logger.Errorw("GetUser failed to read weekly", "user_id", user.UserID, "error", err)
		return nil, err
	}

	return &model.UserResponse{
		User:   *user,
		Scores: &model.Totals{AllTime: allTime, Weekly: weekly},
	}, nil
}
