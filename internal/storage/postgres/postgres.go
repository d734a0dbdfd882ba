// postgres реализует контракты storage поверх PostgreSQL (pgx/v5).
//
// users.go, refresh_tokens.go, codes.go - данные auth-сервиса;
// profiles.go, preferences.go - профили и предпочтения, включая транзакцию онбординга;
// events.go - групповые события.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

type Storage struct {
	db *pgxpool.Pool
}

// querier - общее подмножество pgxpool.Pool и pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// New создаёт пул соединений и проверяет доступность БД.
func New(ctx context.Context, dbURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Ping проверяет соединение (используется readiness-пробой).
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.db.Close()
}

// mapError переводит ошибки pgx в sentinel-ошибки storage.
// Нераспознанные ошибки возвращаются как есть.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return storage.ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return storage.ErrNotFound
		case pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException:
			return storage.ErrInvalidArgument
		}
	}

	return err
}

var (
	_ storage.AuthStorage     = (*Storage)(nil)
	_ storage.ProfilesStorage = (*Storage)(nil)
	_ storage.EventsStorage   = (*Storage)(nil)
)
