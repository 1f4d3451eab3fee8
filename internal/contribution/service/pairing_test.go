package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "github.com/festy23/contribution_points/internal/user/model"
)

type fakeDirectory map[string]userModel.User

func (d fakeDirectory) FindByHandle(_ context.Context, nickname string) (*userModel.User, error) {
	if u, ok := d[nickname]; ok {
		return &u, nil
	}
	return nil, userModel.ErrUserNotFound
}

var (
	alice = userModel.User{UserID: "u1", Nickname: "alice"}
	bob   = userModel.User{UserID: "u2", Nickname: "bob"}
	carol = userModel.User{UserID: "u3", Nickname: "carol"}
)

func directory() fakeDirectory {
	return fakeDirectory{"alice": alice, "bob": bob, "carol": carol}
}

func nicknames(users []userModel.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Nickname)
	}
	return out
}

func TestPairedHandles(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "no phrase", body: "Refactor the parser", want: nil},
		{name: "stops at comma", body: "paired with @bob @carol, great work", want: []string{"bob", "carol"}},
		{name: "case insensitive", body: "PAIRED WITH @bob", want: []string{"bob"}},
		{name: "no spaces", body: "pairedwith@bob", want: []string{"bob"}},
		{name: "words without at sign are skipped", body: "paired with @bob and @carol today", want: []string{"bob", "carol"}},
		{name: "stops at hyphen", body: "paired with @mary-jane", want: []string{"mary"}},
		{name: "newline continues the run", body: "paired with @bob\n@carol", want: []string{"bob", "carol"}},
		{name: "bare at sign", body: "paired with @ @bob", want: []string{"bob"}},
		{name: "inner at signs stripped", body: "paired with b@ob", want: []string{"bob"}},
		{name: "first phrase only", body: "paired with @bob. Later paired with @carol", want: []string{"bob"}},
		{name: "phrase without handles", body: "paired with nobody", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PairedHandles(tt.body))
		})
	}
}

func TestExtractCollaborators(t *testing.T) {
	ctx := context.Background()

	t.Run("paired handles and author", func(t *testing.T) {
		users, err := ExtractCollaborators(ctx, "paired with @bob @carol, great work", alice, directory())

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, nicknames(users))
	})

	t.Run("no phrase yields only the author", func(t *testing.T) {
		users, err := ExtractCollaborators(ctx, "Bump dependencies", alice, directory())

		require.NoError(t, err)
		assert.Equal(t, []userModel.User{alice}, users)
	})

	t.Run("unknown handles are dropped", func(t *testing.T) {
		users, err := ExtractCollaborators(ctx, "paired with @ghost @bob", alice, directory())

		require.NoError(t, err)
		assert.Equal(t, []string{"bob", "alice"}, nicknames(users))
	})

	t.Run("author named in phrase is kept twice", func(t *testing.T) {
		users, err := ExtractCollaborators(ctx, "paired with @alice", alice, directory())

		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "alice"}, nicknames(users))
	})

	t.Run("lookup failure", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := ExtractCollaborators(ctx, "paired with @bob", alice, failingLookup{err: boom})

		assert.ErrorIs(t, err, boom)
	})
}

type failingLookup struct {
	err error
}

func (f failingLookup) FindByHandle(context.Context, string) (*userModel.User, error) {
	return nil, f.err
}
