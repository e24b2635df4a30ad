package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateSession(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, "admin@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, "admin@example.com", sess.Subject)

	got, err := svc.Validate(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, sess.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, sess.ID))
	got, err = svc.Validate(ctx, sess.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestValidate_ExpiredSessionIsRemoved(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, "admin@example.com", time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return sess.ExpiresAt.Add(time.Second) }
	got, err := svc.Validate(ctx, sess.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	stored, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestValidate_EmptyAndUnknownID(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	got, err := svc.Validate(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = svc.Validate(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCreateSession_UniqueIDs(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s, err := svc.CreateSession(context.Background(), "a", time.Minute)
		require.NoError(t, err)
		require.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}
