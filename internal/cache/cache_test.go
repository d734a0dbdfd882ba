package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты поднимают redis:7-alpine через testcontainers-go.
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/cache -v -count=1

func startRedis(t *testing.T) RefreshCache {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	rc, err := NewRedisCache(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "test:rt:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	return rc
}

func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache(context.Background(), "://bad", "")
	require.Error(t, err)
}

func TestRedisCache_SetGetRevoke(t *testing.T) {
	rc := startRedis(t)
	ctx := context.Background()

	uid := uuid.New()
	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	_, ok, err := rc.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, rc.Set(ctx, "h1", &RefreshEntry{UserID: uid, ExpiresAt: exp}, time.Hour))
	require.NoError(t, rc.Set(ctx, "h2", &RefreshEntry{UserID: uid, ExpiresAt: exp}, time.Hour))

	e, ok, err := rc.Get(ctx, "h1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uid, e.UserID)
	require.False(t, e.Revoked)
	require.True(t, exp.Equal(e.ExpiresAt))

	require.NoError(t, rc.MarkRevoked(ctx, "h1"))
	e, _, err = rc.Get(ctx, "h1")
	require.NoError(t, err)
	require.True(t, e.Revoked)

	// Отзыв неизвестного ключа не создаёт запись.
	require.NoError(t, rc.MarkRevoked(ctx, "ghost"))
	_, ok, err = rc.Get(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, rc.MarkUserRevoked(ctx, uid))
	e, _, err = rc.Get(ctx, "h2")
	require.NoError(t, err)
	require.True(t, e.Revoked)
}
