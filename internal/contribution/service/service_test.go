package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/contribution_points/internal/contribution/model"
	"github.com/festy23/contribution_points/internal/contribution/repository"
	userModel "github.com/festy23/contribution_points/internal/user/model"
	userRepository "github.com/festy23/contribution_points/internal/user/repository"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchReviewComments(ctx context.Context, repoFullName string, number int) ([]model.ReviewComment, error) {
	args := m.Called(ctx, repoFullName, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReviewComment), args.Error(1)
}

var _ CommentFetcher = (*mockFetcher)(nil)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&userModel.User{}, &model.Contribution{}, &model.Pairing{}, &model.Review{}))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type fixture struct {
	db      *gorm.DB
	svc     Service
	fetcher *mockFetcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	logger := zap.NewNop().Sugar()

	users := userRepository.New(db, logger)
	for _, u := range []userModel.User{alice, bob, carol} {
		u := u
		_, err := users.Create(context.Background(), &u)
		require.NoError(t, err)
	}

	fetcher := new(mockFetcher)
	return &fixture{
		db:      db,
		svc:     New(repository.New(db, logger), users, fetcher, db, logger),
		fetcher: fetcher,
	}
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}

func validRequest() *model.CreateContributionRequest {
	return &model.CreateContributionRequest{
		Number:       ptr(42),
		Body:         ptr("paired with @bob @carol, great work"),
		Merged:       ptr(true),
		MergedAt:     ptr(time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)),
		User:         &model.Account{Login: "alice"},
		Base:         &model.Branch{Repo: &model.Repo{FullName: "acme/widgets"}},
		Comments:     ptr(2),
		Commits:      ptr(3),
		Additions:    ptr(120),
		Deletions:    ptr(4),
		ChangedFiles: ptr(5),
	}
}

func TestService_CreateContribution(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.fetcher.On("FetchReviewComments", mock.Anything, "acme/widgets", 42).Return([]model.ReviewComment{
			{Author: "bob", Body: "LGTM"},
			{Author: "dependabot", Body: "Bump"},
			{Author: "carol", Body: "nit: rename"},
		}, nil)

		resp, err := f.svc.CreateContribution(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, 15, resp.Points)
		assert.Equal(t, "u1", resp.Contribution.UserID)
		assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, resp.Contribution.CollaboratorIDs())
		require.Len(t, resp.Contribution.Reviews, 3)
		assert.Equal(t, "u2", *resp.Contribution.Reviews[0].UserID)
		assert.Nil(t, resp.Contribution.Reviews[1].UserID)
		assert.Equal(t, "nit: rename", resp.Contribution.Reviews[2].Body)

		stored, err := f.svc.GetContribution(ctx, resp.Contribution.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, stored.Points)
		assert.Len(t, stored.Pairings, 3)
		assert.Len(t, stored.Reviews, 3)
		f.fetcher.AssertExpectations(t)
	})

	t.Run("no pairing phrase pairs only the author", func(t *testing.T) {
		f := newFixture(t)
		f.fetcher.On("FetchReviewComments", mock.Anything, "acme/widgets", 42).Return([]model.ReviewComment{}, nil)
		req := validRequest()
		req.Body = ptr("Bump dependencies")

		resp, err := f.svc.CreateContribution(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, resp.Contribution.CollaboratorIDs())
		assert.Empty(t, resp.Contribution.Reviews)
	})

	t.Run("not merged writes nothing", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Merged = ptr(false)

		_, err := f.svc.CreateContribution(ctx, req)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []model.FieldError{{Field: "merged", Message: "contribution must be merged"}}, verr.Fields)
		assert.Zero(t, f.count(t, &model.Contribution{}))
		assert.Zero(t, f.count(t, &model.Pairing{}))
		assert.Zero(t, f.count(t, &model.Review{}))
		f.fetcher.AssertNotCalled(t, "FetchReviewComments", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateContribution(ctx, &model.CreateContributionRequest{
			Number:    ptr(0),
			Body:      ptr(""),
			Merged:    ptr(true),
			Additions: ptr(-1),
		})

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		fields := make([]string, 0, len(verr.Fields))
		for _, fe := range verr.Fields {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{
			"user.login", "base.repo.full_name", "number", "body", "merged_at",
			"comments", "commits", "additions", "deletions", "changed_files",
		}, fields)
	})

	t.Run("unknown author", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.User = &model.Account{Login: "mallory"}

		_, err := f.svc.CreateContribution(ctx, req)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []model.FieldError{{Field: "user.login", Message: "does not match a known user"}}, verr.Fields)
		assert.Zero(t, f.count(t, &model.Contribution{}))
		f.fetcher.AssertNotCalled(t, "FetchReviewComments", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank body", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Body = ptr(" \n\t ")

		_, err := f.svc.CreateContribution(ctx, req)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []model.FieldError{{Field: "body", Message: "is required"}}, verr.Fields)
		assert.Zero(t, f.count(t, &model.Contribution{}))
	})

	t.Run("fetch failure writes nothing", func(t *testing.T) {
		f := newFixture(t)
		cause := errors.New("502 bad gateway")
		f.fetcher.On("FetchReviewComments", mock.Anything, "acme/widgets", 42).Return(nil, cause)

		_, err := f.svc.CreateContribution(ctx, validRequest())

		var ferr *model.ExternalFetchError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, "acme/widgets", ferr.Repo)
		assert.ErrorIs(t, err, cause)
		assert.Zero(t, f.count(t, &model.Contribution{}))
		assert.Zero(t, f.count(t, &model.Pairing{}))
		assert.Zero(t, f.count(t, &model.Review{}))
	})

	t.Run("duplicate skips the fetch and writes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.fetcher.On("FetchReviewComments", mock.Anything, "acme/widgets", 42).
			Return([]model.ReviewComment{{Author: "bob", Body: "LGTM"}}, nil)
		_, err := f.svc.CreateContribution(ctx, validRequest())
		require.NoError(t, err)

		_, err = f.svc.CreateContribution(ctx, validRequest())

		assert.ErrorIs(t, err, model.ErrContributionExists)
		f.fetcher.AssertNumberOfCalls(t, "FetchReviewComments", 1)
		assert.Equal(t, int64(1), f.count(t, &model.Contribution{}))
		assert.Equal(t, int64(3), f.count(t, &model.Pairing{}))
		assert.Equal(t, int64(1), f.count(t, &model.Review{}))
	})
}

func TestService_GetContribution(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.GetContribution(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, model.ErrInvalidContributionID)

	_, err = f.svc.GetContribution(ctx, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrContributionNotFound)
}

func TestService_DeleteContribution(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades", func(t *testing.T) {
		f := newFixture(t)
		f.fetcher.On("FetchReviewComments", mock.Anything, "acme/widgets", 42).
			Return([]model.ReviewComment{{Author: "bob", Body: "LGTM"}}, nil)
		resp, err := f.svc.CreateContribution(ctx, validRequest())
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteContribution(ctx, resp.Contribution.ID))

		assert.Zero(t, f.count(t, &model.Contribution{}))
		assert.Zero(t, f.count(t, &model.Pairing{}))
		assert.Zero(t, f.count(t, &model.Review{}))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.DeleteContribution(ctx, uuid.NewString()), model.ErrContributionNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.DeleteContribution(ctx, ""), model.ErrInvalidContributionID)
	})
}

func TestIngestResult(t *testing.T) {
	assert.Equal(t, "created", ingestResult(nil))
	assert.Equal(t, "invalid", ingestResult(&model.ValidationError{}))
	assert.Equal(t, "fetch_failed", ingestResult(&model.ExternalFetchError{Err: errors.New("x")}))
	assert.Equal(t, "duplicate", ingestResult(model.ErrContributionExists))
	assert.Equal(t, "error", ingestResult(errors.New("x")))
}
