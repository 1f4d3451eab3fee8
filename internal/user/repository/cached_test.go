package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/festy23/contribution_points/internal/user/model"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockRepository) FindByHandle(ctx context.Context, nickname string) (*model.User, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

var _ Repository = (*mockRepository)(nil)

func TestNewCached_InvalidSize(t *testing.T) {
	_, err := NewCached(new(mockRepository), 0)
	assert.Error(t, err)
}

func TestCached_FindByHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("hit after first lookup", func(t *testing.T) {
		inner := new(mockRepository)
		inner.On("FindByHandle", mock.Anything, "bob").
			Return(&model.User{UserID: "u2", Nickname: "bob"}, nil).Once()
		repo, err := NewCached(inner, 8)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			user, err := repo.FindByHandle(ctx, "bob")
			require.NoError(t, err)
			assert.Equal(t, "u2", user.UserID)
		}

		// The handle lookup also primes the id cache.
		user, err := repo.GetByID(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Nickname)
		inner.AssertExpectations(t)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		inner := new(mockRepository)
		inner.On("FindByHandle", mock.Anything, "carol").Return(nil, model.ErrUserNotFound).Once()
		inner.On("FindByHandle", mock.Anything, "carol").
			Return(&model.User{UserID: "u3", Nickname: "carol"}, nil).Once()
		repo, err := NewCached(inner, 8)
		require.NoError(t, err)

		_, err = repo.FindByHandle(ctx, "carol")
		assert.ErrorIs(t, err, model.ErrUserNotFound)

		user, err := repo.FindByHandle(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, "u3", user.UserID)
		inner.AssertExpectations(t)
	})
}

func TestCached_Create(t *testing.T) {
	ctx := context.Background()
	inner := new(mockRepository)
	u := &model.User{UserID: "u1", Nickname: "alice"}
	inner.On("Create", mock.Anything, u).Return(u, nil).Once()
	repo, err := NewCached(inner, 8)
	require.NoError(t, err)

	_, err = repo.Create(ctx, u)
	require.NoError(t, err)

	user, err := repo.FindByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	inner.AssertNotCalled(t, "FindByHandle", mock.Anything, "alice")
}
