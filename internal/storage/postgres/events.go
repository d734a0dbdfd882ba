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

const eventColumns = `
id, name, sport_type, start_at, lat, lng, access, event_type, distance, gps_file_link, created_by, created_at, updated_at
`

func scanEvent(row pgx.Row) (*models.GroupEvent, error) {
	var (
		e      models.GroupEvent
		access string
	)

	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.SportType,
		&e.StartAt,
		&e.Lat,
		&e.Lng,
		&access,
		&e.EventType,
		&e.Distance,
		&e.GPSFileLink,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Access = models.Access(access)

	return &e, nil
}

// CreateEvent вставляет событие.
// Ошибки: storage.ErrNotFound, если у создателя нет профиля (FK).
func (s *Storage) CreateEvent(ctx context.Context, event *models.GroupEvent) (*models.GroupEvent, error) {
	const op = "storage/postgres/events/CreateEvent"

	q := `
	INSERT INTO group_events (name, sport_type, start_at, lat, lng, access, event_type, distance, gps_file_link, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING
	` + eventColumns

	result, err := scanEvent(s.db.QueryRow(ctx, q,
		event.Name,
		event.SportType,
		event.StartAt,
		event.Lat,
		event.Lng,
		string(event.Access),
		event.EventType,
		event.Distance,
		event.GPSFileLink,
		event.CreatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return result, nil
}

// EventByID возвращает событие по ID.
func (s *Storage) EventByID(ctx context.Context, id int64) (*models.GroupEvent, error) {
	const op = "storage/postgres/events/EventByID"

	result, err := scanEvent(s.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM group_events WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return result, nil
}

// ListEvents возвращает события, новые первыми.
// Limit <= 0 означает без ограничения.
func (s *Storage) ListEvents(ctx context.Context, filter storage.EventFilter) ([]*models.GroupEvent, error) {
	const op = "storage/postgres/events/ListEvents"

	var (
		where []string
		args  []any
	)

	if filter.SportType != "" {
		args = append(args, filter.SportType)
		where = append(where, fmt.Sprintf("sport_type = $%d", len(args)))
	}

	q := `SELECT ` + eventColumns + ` FROM group_events`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := make([]*models.GroupEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// UpdateEvent обновляет событие, принадлежащее createdBy.
// Ошибки: storage.ErrNotFound, если события нет или оно чужое.
func (s *Storage) UpdateEvent(ctx context.Context, id int64, createdBy uuid.UUID, update storage.EventUpdate) (*models.GroupEvent, error) {
	const op = "storage/postgres/events/UpdateEvent"

	sets := []string{"updated_at = now()"}
	args := []any{id, createdBy}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.SportType != nil {
		add("sport_type", *update.SportType)
	}
	if update.StartAt != nil {
		add("start_at", *update.StartAt)
	}
	if update.Lat != nil {
		add("lat", *update.Lat)
	}
	if update.Lng != nil {
		add("lng", *update.Lng)
	}
	if update.Access != nil {
		add("access", string(*update.Access))
	}
	if update.EventType != nil {
		add("event_type", *update.EventType)
	}
	if update.Distance != nil {
		add("distance", *update.Distance)
	}
	if update.GPSFileLink != nil {
		add("gps_file_link", *update.GPSFileLink)
	}

	q := fmt.Sprintf(`UPDATE group_events SET %s WHERE id = $1 AND created_by = $2 RETURNING %s`,
		strings.Join(sets, ", "), eventColumns)

	result, err := scanEvent(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return result, nil
}

// DeleteEvent удаляет событие, принадлежащее createdBy.
func (s *Storage) DeleteEvent(ctx context.Context, id int64, createdBy uuid.UUID) error {
	const op = "storage/postgres/events/DeleteEvent"

	tag, err := s.db.Exec(ctx, `DELETE FROM group_events WHERE id = $1 AND created_by = $2`, id, createdBy)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
