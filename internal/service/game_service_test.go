package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sudoku-server/internal/repository"
)

func registerTestUser(t *testing.T, users repository.UserRepository, username string) int64 {
	t.Helper()

	user, err := NewUserService(users).Register(context.Background(), username, "hunter2secret")
	require.NoError(t, err)
	return user.ID
}

func TestSaveCreatesWithoutID(t *testing.T) {
	ctx := context.Background()
	users, games := newTestRepos(t)
	svc := NewGameService(games)
	alice := registerTestUser(t, users, "alice")

	first, err := svc.Save(ctx, alice, nil, []byte(`{"v":1}`), false, 10)
	require.NoError(t, err)
	require.True(t, first.Created)

	// no game id means a new record every time
	second, err := svc.Save(ctx, alice, nil, []byte(`{"v":1}`), false, 10)
	require.NoError(t, err)
	require.True(t, second.Created)
	require.NotEqual(t, first.GameID, second.GameID)
}

func TestSaveUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	users, games := newTestRepos(t)
	svc := NewGameService(games)
	alice := registerTestUser(t, users, "alice")

	created, err := svc.Save(ctx, alice, nil, []byte(`{"v":1}`), false, 10)
	require.NoError(t, err)

	updated, err := svc.Save(ctx, alice, &created.GameID, []byte(`{"v":2}`), true, 42)
	require.NoError(t, err)
	require.False(t, updated.Created)
	require.Equal(t, created.GameID, updated.GameID)

	game, err := svc.Get(ctx, created.GameID, alice)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":2}`, string(game.BoardState))
	require.True(t, game.IsCompleted)
	require.Equal(t, int64(42), game.ElapsedTime)
}

func TestSaveForeignOrMissingID(t *testing.T) {
	ctx := context.Background()
	users, games := newTestRepos(t)
	svc := NewGameService(games)
	alice := registerTestUser(t, users, "alice")
	bob := registerTestUser(t, users, "bob")

	created, err := svc.Save(ctx, alice, nil, []byte(`{"v":1}`), false, 0)
	require.NoError(t, err)

	_, err = svc.Save(ctx, bob, &created.GameID, []byte(`{"v":9}`), false, 0)
	require.ErrorIs(t, err, ErrGameNotFound)

	missing := created.GameID + 1000
	_, err = svc.Save(ctx, alice, &missing, []byte(`{"v":9}`), false, 0)
	require.ErrorIs(t, err, ErrGameNotFound)

	// alice's board untouched by bob's attempt
	game, err := svc.Get(ctx, created.GameID, alice)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":1}`, string(game.BoardState))
}

func TestSaveValidation(t *testing.T) {
	ctx := context.Background()
	users, games := newTestRepos(t)
	svc := NewGameService(games)
	alice := registerTestUser(t, users, "alice")

	_, err := svc.Save(ctx, alice, nil, nil, false, 0)
	require.Error(t, err)

	_, err = svc.Save(ctx, alice, nil, []byte(`{}`), false, -1)
	require.Error(t, err)
}

func TestListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	users, games := newTestRepos(t)
	svc := NewGameService(games)
	alice := registerTestUser(t, users, "alice")

	g1, err := svc.Save(ctx, alice, nil, []byte(`{}`), false, 0)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	g2, err := svc.Save(ctx, alice, nil, []byte(`{}`), false, 0)
	require.NoError(t, err)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, g2.GameID, list[0].ID)
	require.Equal(t, g1.GameID, list[1].ID)
}

func TestDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	users, games := newTestRepos(t)
	svc := NewGameService(games)
	alice := registerTestUser(t, users, "alice")
	bob := registerTestUser(t, users, "bob")

	created, err := svc.Save(ctx, alice, nil, []byte(`{}`), false, 0)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, created.GameID, bob), ErrGameNotFound)

	require.NoError(t, svc.Delete(ctx, created.GameID, alice))
	_, err = svc.Get(ctx, created.GameID, alice)
	require.ErrorIs(t, err, ErrGameNotFound)
}
