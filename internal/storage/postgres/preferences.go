package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

const preferencesColumns = `
id, user_id, sports, preferred_pace, ride_type, distance_range_min, distance_range_max, availability, created_at, updated_at
`

func scanPreferences(row pgx.Row) (*models.Preferences, error) {
	var (
		p            models.Preferences
		sports       []string
		availability []string
		pace         *string
		rideType     *string
	)

	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&sports,
		&pace,
		&rideType,
		&p.DistanceRangeMin,
		&p.DistanceRangeMax,
		&availability,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Sports = make([]models.Sport, 0, len(sports))
	for _, s := range sports {
		p.Sports = append(p.Sports, models.Sport(s))
	}

	p.Availability = make([]models.Weekday, 0, len(availability))
	for _, d := range availability {
		p.Availability = append(p.Availability, models.Weekday(d))
	}

	if pace != nil {
		v := models.Pace(*pace)
		p.PreferredPace = &v
	}
	if rideType != nil {
		v := models.RideType(*rideType)
		p.RideType = &v
	}

	return &p, nil
}

// PreferencesByUserID возвращает предпочтения по user_id.
// Ошибки: storage.ErrNotFound.
func (s *Storage) PreferencesByUserID(ctx context.Context, userID uuid.UUID) (*models.Preferences, error) {
	const op = "storage/postgres/preferences/PreferencesByUserID"

	row := s.db.QueryRow(ctx, `SELECT `+preferencesColumns+` FROM user_preferences WHERE user_id = $1`, userID)

	p, err := scanPreferences(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return p, nil
}

// UpsertPreferences создаёт запись или обновляет переданные поля существующей.
// Ошибки: storage.ErrNotFound, если профиля нет (FK на user_profiles).
func (s *Storage) UpsertPreferences(ctx context.Context, userID uuid.UUID, update storage.PreferencesUpdate) (*models.Preferences, error) {
	const op = "storage/postgres/preferences/UpsertPreferences"

	p, err := upsertPreferences(ctx, s.db, userID, update)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// upsertPreferences строит INSERT ... ON CONFLICT (user_id) DO UPDATE
// только по колонкам, заданным в update.
func upsertPreferences(ctx context.Context, q querier, userID uuid.UUID, update storage.PreferencesUpdate) (*models.Preferences, error) {
	cols := []string{"user_id"}
	args := []any{userID}
	sets := []string{"updated_at = now()"}

	add := func(column string, value any) {
		args = append(args, value)
		cols = append(cols, column)
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	if update.Sports != nil {
		sports := make([]string, 0, len(update.Sports))
		for _, s := range update.Sports {
			sports = append(sports, string(s))
		}
		add("sports", sports)
	}
	if update.PreferredPace != nil {
		add("preferred_pace", string(*update.PreferredPace))
	}
	if update.RideType != nil {
		add("ride_type", string(*update.RideType))
	}
	if update.DistanceRangeMin != nil {
		add("distance_range_min", *update.DistanceRangeMin)
	}
	if update.DistanceRangeMax != nil {
		add("distance_range_max", *update.DistanceRangeMax)
	}
	if update.Availability != nil {
		days := make([]string, 0, len(update.Availability))
		for _, d := range update.Availability {
			days = append(days, string(d))
		}
		add("availability", days)
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sql := fmt.Sprintf(`
	INSERT INTO user_preferences (%s)
	VALUES (%s)
	ON CONFLICT (user_id) DO UPDATE SET %s
	RETURNING %s`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(sets, ", "),
		preferencesColumns,
	)

	p, err := scanPreferences(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}

	return p, nil
}

// CompleteOnboarding обновляет профиль и предпочтения в одной транзакции.
// Ошибки: storage.ErrNotFound, если профиля нет.
func (s *Storage) CompleteOnboarding(ctx context.Context, userID uuid.UUID, profile storage.ProfileUpdate, prefs storage.PreferencesUpdate) (*models.Profile, *models.Preferences, error) {
	const op = "storage/postgres/preferences/CompleteOnboarding"

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := updateProfile(ctx, tx, userID, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pr, err := upsertPreferences(ctx, tx, userID, prefs)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, pr, nil
}
