// Package service provides business logic layer for contribution module.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/contribution_points/internal/contribution/model"
	"github.com/festy23/contribution_points/internal/contribution/repository"
	userModel "github.com/festy23/contribution_points/internal/user/model"
)

// CommentFetcher fetches the review comments of a pull request.
type CommentFetcher interface {
	FetchReviewComments(ctx context.Context, repoFullName string, number int) ([]model.ReviewComment, error)
}

// Service defines the interface for contribution business logic operations.
type Service interface {
	// CreateContribution ingests a merged pull request and returns it with its points.
	CreateContribution(ctx context.Context, req *model.CreateContributionRequest) (*model.ContributionResponse, error)

	// GetContribution returns a contribution with pairings and reviews.
	GetContribution(ctx context.Context, id string) (*model.Contribution, error)

	// DeleteContribution removes a contribution with pairings and reviews.
	DeleteContribution(ctx context.Context, id string) error
}

type service struct {
	repo     repository.Repository
	users    IdentityLookup
	comments CommentFetcher
	db       *gorm.DB
	logger   *zap.SugaredLogger
}

// New creates a new contribution service instance.
func New(
	repo repository.Repository,
	users IdentityLookup,
	comments CommentFetcher,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		comments: comments,
		db:       db,
		logger:   logger,
	}
}

// CreateContribution validates, classifies, rejects an already ingested pull
// request and fetches comments before any write. All rows are then written in one transaction, so a failure at any
// step leaves nothing behind.
func (s *service) CreateContribution(
	ctx context.Context,
	req *model.CreateContributionRequest,
) (*model.ContributionResponse, error) {
	resp, err := s.createContribution(ctx, req)
	ingestCounter.WithLabelValues(ingestResult(err)).Inc()
	if err == nil {
		classifiedPointsCounter.WithLabelValues(strconv.Itoa(resp.Points)).Inc()
	}
	return resp, err
}

func (s *service) createContribution(
	ctx context.Context,
	req *model.CreateContributionRequest,
) (*model.ContributionResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Debugw("CreateContribution validation failed", "error", err)
		return nil, err
	}

	repoName, number := req.RepoFullName(), *req.Number
	s.logger.Debugw("CreateContribution called", "repo", repoName, "number", number, "author", req.AuthorLogin())

	author, err := s.users.FindByHandle(ctx, req.AuthorLogin())
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			verr := &model.ValidationError{}
			verr.Add("user.login", "does not match a known user")
			return nil, verr
		}
		return nil, err
	}

	points := Classify(*req.Additions, *req.Deletions)

	// The unique index still guards the insert against a concurrent ingest.
	exists, err := s.repo.Exists(ctx, repoName, number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrContributionExists
	}

	comments, err := s.comments.FetchReviewComments(ctx, repoName, number)
	if err != nil {
		s.logger.Errorw("CreateContribution comment fetch failed", "repo", repoName, "number", number, "error", err)
		return nil, &model.ExternalFetchError{Repo: repoName, Number: number, Err: err}
	}

	handles := PairedHandles(*req.Body)
	for _, c := range comments {
		handles = append(handles, c.Author)
	}
	lookup, err := s.resolveHandles(ctx, handles)
	if err != nil {
		return nil, err
	}

	c := &model.Contribution{
		ID:                   uuid.NewString(),
		UserID:               author.UserID,
		BaseRepoFullName:     repoName,
		Number:               number,
		Body:                 *req.Body,
		NumberOfComments:     *req.Comments,
		NumberOfCommits:      *req.Commits,
		NumberOfAdditions:    *req.Additions,
		NumberOfDeletions:    *req.Deletions,
		NumberOfChangedFiles: *req.ChangedFiles,
		Points:               points,
		MergedAt:             req.MergedAt.UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		if err := txRepo.Create(ctx, c); err != nil {
			return err
		}

		collaborators, err := ExtractCollaborators(ctx, c.Body, *author, lookup)
		if err != nil {
			return err
		}
		for _, u := range collaborators {
			p, err := txRepo.CreatePairing(ctx, c.ID, u.UserID)
			if err != nil {
				return err
			}
			c.Pairings = append(c.Pairings, *p)
		}

		reviews, err := RecordReviews(ctx, txRepo, c.ID, comments, lookup)
		if err != nil {
			return err
		}
		c.Reviews = reviews
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrContributionExists) {
			s.logger.Errorw("CreateContribution transaction failed", "repo", repoName, "number", number, "error", err)
		}
		return nil, err
	}

	s.logger.Infow("CreateContribution completed",
		"id", c.ID, "repo", repoName, "number", number,
		"points", points, "pairings", len(c.Pairings), "reviews", len(c.Reviews))
	return &model.ContributionResponse{Contribution: *c, Points: points}, nil
}

// resolveHandles looks each distinct handle up once, before the write
// transaction, and returns a lookup that answers from the results.
func (s *service) resolveHandles(ctx context.Context, handles []string) (IdentityLookup, error) {
	resolved := make(resolvedLookup, len(handles))
	seen := make(map[string]struct{}, len(handles))

	for _, h := range handles {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}

		u, err := s.users.FindByHandle(ctx, h)
		if err != nil {
			if errors.Is(err, userModel.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		resolved[h] = *u
	}
	return resolved, nil
}

type resolvedLookup map[string]userModel.User

func (l resolvedLookup) FindByHandle(_ context.Context, nickname string) (*userModel.User, error) {
	u, ok := l[nickname]
	if !ok {
		return nil, userModel.ErrUserNotFound
	}
	return &u, nil
}

// GetContribution returns a contribution with pairings and reviews.
func (s *service) GetContribution(ctx context.Context, id string) (*model.Contribution, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrInvalidContributionID
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteContribution removes a contribution with pairings and reviews.
// Points already awarded are not taken back.
func (s *service) DeleteContribution(ctx context.Context, id string) error {
	s.logger.Debugw("DeleteContribution called", "id", id)

	if _, err := uuid.Parse(id); err != nil {
		return model.ErrInvalidContributionID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, model.ErrContributionNotFound) {
			s.logger.Errorw("DeleteContribution failed", "id", id, "error", err)
		}
		return err
	}
	return nil
}

func validateCreateRequest(req *model.CreateContributionRequest) error {
	verr := &model.ValidationError{}

	if req.AuthorLogin() == "" {
		verr.Add("user.login", "is required")
	}
	if req.RepoFullName() == "" {
		verr.Add("base.repo.full_name", "is required")
	}
	switch {
	case req.Number == nil:
		verr.Add("number", "is required")
	case *req.Number <= 0:
		verr.Add("number", "must be positive")
	}
	if req.Body == nil || strings.TrimSpace(*req.Body) == "" {
		verr.Add("body", "is required")
	}
	if req.MergedAt == nil || req.MergedAt.IsZero() {
		verr.Add("merged_at", "is required")
	}
	if req.Merged == nil || !*req.Merged {
		verr.Add("merged", "contribution must be merged")
	}

	counts := []struct {
		field string
		value *int
	}{
		{"comments", req.Comments},
		{"commits", req.Commits},
		{"additions", req.Additions},
		{"deletions", req.Deletions},
		{"changed_files", req.ChangedFiles},
	}
	for _, c := range counts {
		switch {
		case c.value == nil:
			verr.Add(c.field, "is required")
		case *c.value < 0:
			verr.Add(c.field, "must be non-negative")
		}
	}

	return verr.Err()
}

func ingestResult(err error) string {
	var verr *model.ValidationError
	var ferr *model.ExternalFetchError
	switch {
	case err == nil:
		return "created"
	case errors.As(err, &verr):
		return "invalid"
	case errors.As(err, &ferr):
		return "fetch_failed"
	case errors.Is(err, model.ErrContributionExists):
		return "duplicate"
	default:
		return "error"
	}
}
