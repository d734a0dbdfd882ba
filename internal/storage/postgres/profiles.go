package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

// profileColumns - единый список колонок user_profiles для SELECT/RETURNING,
// чтобы порядок сканирования совпадал везде.
const profileColumns = `
id, user_id, email, name, bio, location_lat, location_lng, location_name, created_at, updated_at
`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile

	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Email,
		&p.Name,
		&p.Bio,
		&p.LocationLat,
		&p.LocationLng,
		&p.LocationName,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

// EnsureProfile создаёт профиль, если его нет (INSERT ... ON CONFLICT DO NOTHING),
// иначе возвращает существующий.
// Ошибки: storage.ErrNotFound, если пользователя нет в users.
func (s *Storage) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, bool, error) {
	const op = "storage/postgres/profiles/EnsureProfile"

	q := `
	INSERT INTO user_profiles (user_id, email)
	VALUES ($1, $2)
	ON CONFLICT (user_id) DO NOTHING
	RETURNING
	` + profileColumns

	created, err := scanProfile(s.db.QueryRow(ctx, q, userID, email))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("%s: %w", op, mapError(err))
	}

	existing, err := profileByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return existing, false, nil
}

// ProfileByUserID возвращает профиль по user_id.
// Ошибки: storage.ErrNotFound.
func (s *Storage) ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const op = "storage/postgres/profiles/ProfileByUserID"

	p, err := profileByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// UpdateProfile выполняет частичный апдейт профиля.
func (s *Storage) UpdateProfile(ctx context.Context, userID uuid.UUID, update storage.ProfileUpdate) (*models.Profile, error) {
	const op = "storage/postgres/profiles/UpdateProfile"

	p, err := updateProfile(ctx, s.db, userID, update)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func profileByUserID(ctx context.Context, q querier, userID uuid.UUID) (*models.Profile, error) {
	row := q.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID)

	p, err := scanProfile(row)
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}

// updateProfile обновляет только поля с непустыми указателями
// и всегда сдвигает updated_at = now().
func updateProfile(ctx context.Context, q querier, userID uuid.UUID, update storage.ProfileUpdate) (*models.Profile, error) {
	sets := []string{"updated_at = now()"}
	args := []any{userID}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Bio != nil {
		add("bio", *update.Bio)
	}
	if update.LocationLat != nil {
		add("location_lat", *update.LocationLat)
	}
	if update.LocationLng != nil {
		add("location_lng", *update.LocationLng)
	}
	if update.LocationName != nil {
		add("location_name", *update.LocationName)
	}

	sql := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE user_id = $1 RETURNING %s`,
		strings.Join(sets, ", "), profileColumns)

	p, err := scanProfile(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}
