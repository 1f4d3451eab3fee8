// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/contribution_points/internal/statistics/model"
	"github.com/festy23/contribution_points/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	GetContributorsStatistics(ctx context.Context) (*model.ContributorsStatisticsResponse, error)
	GetContributionStatistics(ctx context.Context) (*model.ContributionStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) GetContributorsStatistics(ctx context.Context) (*model.ContributorsStatisticsResponse, error) {
	contributors, err := s.repo.GetContributorsStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetContributorsStatistics failed", "error", err)
		return nil, err
	}

	if contributors == nil {
		contributors = []model.ContributorStatistics{}
	}

	return &model.ContributorsStatisticsResponse{
		Contributors: contributors,
		Total:        len(contributors),
	}, nil
}

func (s *service) GetContributionStatistics(ctx context.Context) (*model.ContributionStatisticsResponse, error) {
	stats, err := s.repo.GetContributionStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetContributionStatistics failed", "error", err)
		return nil, err
	}

	if stats.PointsDistribution == nil {
		stats.PointsDistribution = []model.PointsBucket{}
	}

	return &model.ContributionStatisticsResponse{
		Statistics: *stats,
	}, nil
}
