package repository

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/festy23/contribution_points/internal/user/model"
)

// cached keeps recently resolved users in memory. Misses are not cached, so a
// user registered after a failed lookup is found on the next call.
type cached struct {
	Repository
	byID     *lru.Cache[string, model.User]
	byHandle *lru.Cache[string, model.User]
}

// NewCached wraps repo with LRU caches of the given size for GetByID and FindByHandle.
func NewCached(repo Repository, size int) (Repository, error) {
	byID, err := lru.New[string, model.User](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create user id cache: %w", err)
	}
	byHandle, err := lru.New[string, model.User](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create user handle cache: %w", err)
	}
	return &cached{Repository: repo, byID: byID, byHandle: byHandle}, nil
}

func (c *cached) GetByID(ctx context.Context, userID string) (*model.User, error) {
	if u, ok := c.byID.Get(userID); ok {
		return &u, nil
	}
	u, err := c.Repository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.add(u)
	return u, nil
}

func (c *cached) FindByHandle(ctx context.Context, nickname string) (*model.User, error) {
	if u, ok := c.byHandle.Get(nickname); ok {
		return &u, nil
	}
	u, err := c.Repository.FindByHandle(ctx, nickname)
	if err != nil {
		return nil, err
	}
	c.add(u)
	return u, nil
}

func (c *cached) Create(ctx context.Context, user *model.User) (*model.User, error) {
	u, err := c.Repository.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	c.add(u)
	return u, nil
}

func (c *cached) add(u *model.User) {
	c.byID.Add(u.UserID, *u)
	c.byHandle.Add(u.Nickname, *u)
}
