package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

var (
	keyAccess    = []byte("session/access_token")
	keyRefresh   = []byte("session/refresh_token")
	keyTokenType = []byte("session/token_type")
	keyExpiresIn = []byte("session/expires_in")
)

// Badger - durable-хранилище на BadgerDB; переживает перезапуск процесса.
// Один каталог - один экземпляр клиента.
type Badger struct {
	db *badger.DB
}

// OpenBadger открывает (создаёт) хранилище в каталоге path.
// logger == nil отключает внутренние логи badger.
func OpenBadger(path string, logger *slog.Logger) (*Badger, error) {
	const op = "tokenstore.OpenBadger"

	if path == "" {
		return nil, fmt.Errorf("%s: path is required", op)
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := badger.DefaultOptions(path).
		WithSyncWrites(true).
		WithNumVersionsToKeep(1)

	return open(op, opts, logger)
}

// OpenBadgerInMemory - badger без диска (для тестов).
func OpenBadgerInMemory() (*Badger, error) {
	const op = "tokenstore.OpenBadgerInMemory"

	return open(op, badger.DefaultOptions("").WithInMemory(true), nil)
}

func open(op string, opts badger.Options, logger *slog.Logger) (*Badger, error) {
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Badger{db: db}, nil
}

// Close закрывает БД.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Save записывает пару одной транзакцией.
func (b *Badger) Save(ctx context.Context, pair CredentialPair) error {
	const op = "tokenstore.Badger.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		for _, kv := range []struct {
			k []byte
			v string
		}{
			{keyAccess, pair.AccessToken},
			{keyRefresh, pair.RefreshToken},
			{keyTokenType, pair.TokenType},
			{keyExpiresIn, strconv.FormatInt(pair.ExpiresIn, 10)},
		} {
			if err := txn.Set(kv.k, []byte(kv.v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Clear удаляет все ключи сессии. Отмена ctx очистку не прерывает.
func (b *Badger) Clear(_ context.Context) error {
	const op = "tokenstore.Badger.Clear"

	err := b.db.Update(func(txn *badger.Txn) error {
		for _, k := range [][]byte{keyAccess, keyRefresh, keyTokenType, keyExpiresIn} {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (b *Badger) AccessToken(ctx context.Context) (string, bool, error) {
	return b.get(ctx, "tokenstore.Badger.AccessToken", keyAccess)
}

func (b *Badger) RefreshToken(ctx context.Context) (string, bool, error) {
	return b.get(ctx, "tokenstore.Badger.RefreshToken", keyRefresh)
}

func (b *Badger) get(ctx context.Context, op string, key []byte) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if len(val) == 0 {
		return "", false, nil
	}

	return string(val), true, nil
}

// badgerLogger адаптирует slog к badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
