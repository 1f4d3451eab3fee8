// Package service implements the score ledger.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/contribution_points/internal/score/model"
	"github.com/festy23/contribution_points/internal/score/repository"
)

// DefaultLeaderboardLimit is used when no positive limit is given.
const DefaultLeaderboardLimit = 10

// MaxLeaderboardLimit caps leaderboard size.
const MaxLeaderboardLimit = 100

// Service is the score ledger.
type Service interface {
	// Give credits all_time, and weekly too when eventTime lies in the trailing week.
	Give(ctx context.Context, userID string, points int64, eventTime time.Time) error

	// Take debits every existing row of the user. Unknown users are a no-op.
	Take(ctx context.Context, userID string, points int64) error

	// Reset zeroes every row.
	Reset(ctx context.Context) error

	// ResetSpan zeroes the rows of one span.
	ResetSpan(ctx context.Context, span model.TimeSpan) error

	// Read returns the current total, 0 when the row does not exist.
	Read(ctx context.Context, userID string, span model.TimeSpan) (int64, error)

	// Leaderboard returns the top rows of a span.
	Leaderboard(ctx context.Context, span model.TimeSpan, limit int) (*model.LeaderboardResponse, error)
}

// Option configures the ledger.
type Option func(*service)

// WithClock overrides the time source used for the weekly window.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new ledger instance.
func New(repo repository.Repository, logger *zap.SugaredLogger, opts ...Option) Service {
	s := &service{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Give performs two independent increments. A failed weekly increment does
// not roll back the all_time one.
func (s *service) Give(ctx context.Context, userID string, points int64, eventTime time.Time) (err error) {
	defer func() { observe("give", err) }()
	s.logger.Debugw("Give called", "user_id", userID, "points", points, "event_time", eventTime)

	if err := validate(userID, points); err != nil {
		return err
	}

	if err := s.repo.Increment(ctx, userID, model.AllTime, points); err != nil {
		s.logger.Errorw("Give all_time failed", "user_id", userID, "error", err)
		return err
	}
	ledgerPointsCounter.WithLabelValues("give", string(model.AllTime)).Add(float64(points))

	if !s.inWeeklyWindow(eventTime) {
		s.logger.Debugw("Give outside weekly window", "user_id", userID, "event_time", eventTime)
		return nil
	}

	if err := s.repo.Increment(ctx, userID, model.Weekly, points); err != nil {
		s.logger.Errorw("Give weekly failed", "user_id", userID, "error", err)
		return err
	}
	ledgerPointsCounter.WithLabelValues("give", string(model.Weekly)).Add(float64(points))

	s.logger.Infow("Give completed", "user_id", userID, "points", points)
	return nil
}

func (s *service) inWeeklyWindow(eventTime time.Time) bool {
	return eventTime.After(s.now().Add(-model.WeeklyWindow))
}

// Take does not clamp at zero.
func (s *service) Take(ctx context.Context, userID string, points int64) (err error) {
	defer func() { observe("take", err) }()
	s.logger.Debugw("Take called", "user_id", userID, "points", points)

	if err := validate(userID, points); err != nil {
		return err
	}

	rows, err := s.repo.Decrement(ctx, userID, points)
	if err != nil {
		s.logger.Errorw("Take failed", "user_id", userID, "error", err)
		return err
	}
	if rows > 0 {
		ledgerPointsCounter.WithLabelValues("take", "any").Add(float64(points * rows))
	}

	s.logger.Infow("Take completed", "user_id", userID, "points", points, "rows", rows)
	return nil
}

// Reset zeroes every row.
func (s *service) Reset(ctx context.Context) (err error) {
	defer func() { observe("reset", err) }()
	_, err = s.repo.Reset(ctx)
	return err
}

// ResetSpan zeroes the rows of one span.
func (s *service) ResetSpan(ctx context.Context, span model.TimeSpan) (err error) {
	defer func() { observe("reset_span", err) }()
	if !span.Valid() {
		return model.ErrInvalidTimeSpan
	}
	_, err = s.repo.Reset(ctx, span)
	return err
}

// Read returns the current total, 0 when the row does not exist.
func (s *service) Read(ctx context.Context, userID string, span model.TimeSpan) (int64, error) {
	if userID == "" {
		return 0, model.ErrInvalidUserID
	}
	if !span.Valid() {
		return 0, model.ErrInvalidTimeSpan
	}

	score, err := s.repo.Get(ctx, userID, span)
	if err != nil {
		if errors.Is(err, model.ErrScoreNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return score.Points, nil
}

// Leaderboard ranks users of a span. Equal totals are ordered by user id.
func (s *service) Leaderboard(ctx context.Context, span model.TimeSpan, limit int) (*model.LeaderboardResponse, error) {
	if !span.Valid() {
		return nil, model.ErrInvalidTimeSpan
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	scores, err := s.repo.Top(ctx, span, limit)
	if err != nil {
		s.logger.Errorw("Leaderboard failed", "time_span", span, "error", err)
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(scores))
	for i, sc := range scores {
		entries = append(entries, model.LeaderboardEntry{Rank: i + 1, UserID: sc.UserID, Points: sc.Points})
	}
	return &model.LeaderboardResponse{TimeSpan: span, Entries: entries}, nil
}

func validate(userID string, points int64) error {
	if userID == "" {
		return model.ErrInvalidUserID
	}
	if points < 0 {
		return model.ErrInvalidPoints
	}
	return nil
}
