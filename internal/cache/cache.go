// cache - Redis-кэш состояния refresh-токенов.
// Источник истины - PostgreSQL; кэш лишь ускоряет проверку refresh
// и быстро отсекает уже отозванные токены.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RefreshEntry - данные refresh-токена, хранящиеся по его хэшу.
type RefreshEntry struct {
	UserID    uuid.UUID
	Revoked   bool
	ExpiresAt time.Time
}

//go:generate mockgen -destination=../../mocks/refresh_cache.go -package=mocks github.com/pribylovaa/go-group-fitness/internal/cache RefreshCache

// RefreshCache - контракт кэша refresh-токенов.
type RefreshCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	Get(ctx context.Context, hash string) (*RefreshEntry, bool, error)
	// Set сохраняет запись с TTL и привязывает хэш к пользователю.
	Set(ctx context.Context, hash string, e *RefreshEntry, ttl time.Duration) error
	// MarkRevoked помечает ключ revoked=true, сохраняя остаточный TTL.
	MarkRevoked(ctx context.Context, hash string) error
	// MarkUserRevoked помечает отозванными все известные кэшу токены пользователя.
	MarkUserRevoked(ctx context.Context, userID uuid.UUID) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент из URL (redis://:pass@host:6379/0) и проверяет соединение.
// Пустой prefix заменяется на "fitness:rt:".
func NewRedisCache(ctx context.Context, redisURL, prefix string) (RefreshCache, error) {
	const op = "cache.NewRedisCache"

	if prefix == "" {
		prefix = "fitness:rt:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(hash string) string { return c.prefix + hash }

func (c *redisCache) userKey(userID uuid.UUID) string { return c.prefix + "user:" + userID.String() }

// Запись - Redis Hash с полями uid, rev (0/1), exp (unix).
func (c *redisCache) Get(ctx context.Context, hash string) (*RefreshEntry, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(hash)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	uid, err := uuid.Parse(m["uid"])
	if err != nil {
		return nil, false, err
	}

	expUnix, err := strconv.ParseInt(m["exp"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	return &RefreshEntry{
		UserID:    uid,
		Revoked:   m["rev"] == "1",
		ExpiresAt: time.Unix(expUnix, 0).UTC(),
	}, true, nil
}

func (c *redisCache) Set(ctx context.Context, hash string, e *RefreshEntry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	kv := map[string]string{
		"uid": e.UserID.String(),
		"rev": boolTo01(e.Revoked),
		"exp": strconv.FormatInt(e.ExpiresAt.Unix(), 10),
	}

	uk := c.userKey(e.UserID)

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(hash), kv)
	pipe.Expire(ctx, c.key(hash), ttl)
	pipe.SAdd(ctx, uk, hash)
	pipe.ExpireNX(ctx, uk, ttl)
	pipe.ExpireGT(ctx, uk, ttl)

	_, err := pipe.Exec(ctx)
	return err
}

// markRevoked выставляет rev=1 только у существующего ключа: HSET на
// отсутствующем ключе создал бы запись без TTL.
var markRevoked = redis.NewScript(`
for i, k in ipairs(KEYS) do
	if redis.call("EXISTS", k) == 1 then
		redis.call("HSET", k, "rev", "1")
	end
end
return 0
`)

func (c *redisCache) MarkRevoked(ctx context.Context, hash string) error {
	return markRevoked.Run(ctx, c.rdb, []string{c.key(hash)}).Err()
}

func (c *redisCache) MarkUserRevoked(ctx context.Context, userID uuid.UUID) error {
	hashes, err := c.rdb.SMembers(ctx, c.userKey(userID)).Result()
	if err != nil || len(hashes) == 0 {
		return err
	}

	keys := make([]string, 0, len(hashes))
	for _, h := range hashes {
		keys = append(keys, c.key(h))
	}

	return markRevoked.Run(ctx, c.rdb, keys).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }

func boolTo01(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
