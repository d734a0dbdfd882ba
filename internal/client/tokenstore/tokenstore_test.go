package tokenstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

var samplePair = CredentialPair{
	AccessToken:  "access-1",
	RefreshToken: "refresh-1",
	TokenType:    "bearer",
	ExpiresIn:    900,
}

// storeContract - общие проверки для всех реализаций Store.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = s.RefreshToken(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, samplePair))

	acc, ok, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "access-1", acc)

	ref, ok, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "refresh-1", ref)

	next := samplePair
	next.AccessToken = "access-2"
	require.NoError(t, s.Save(ctx, next))
	acc, _, _ = s.AccessToken(ctx)
	require.Equal(t, "access-2", acc)

	require.NoError(t, s.Clear(ctx))
	_, ok, _ = s.AccessToken(ctx)
	require.False(t, ok)
	_, ok, _ = s.RefreshToken(ctx)
	require.False(t, ok)

	// Clear идемпотентен.
	require.NoError(t, s.Clear(ctx))
}

func TestMemory_Contract(t *testing.T) {
	t.Parallel()
	storeContract(t, NewMemory())
}

func TestBadgerInMemory_Contract(t *testing.T) {
	t.Parallel()

	s, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storeContract(t, s)
}

func TestBadger_SurvivesReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, samplePair))
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ref, ok, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "refresh-1", ref)
}

func TestBadger_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := OpenBadger("", nil)
	require.Error(t, err)
}

func TestBadger_CanceledContext(t *testing.T) {
	t.Parallel()

	s, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Save(ctx, samplePair), context.Canceled)

	require.NoError(t, s.Save(context.Background(), samplePair))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = s.RefreshToken(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}
