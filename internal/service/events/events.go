package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

const (
	maxNameLen   = 255
	maxKindLen   = 50
	defaultLimit = 50
	maxLimit     = 100
)

// CreateInput - поля нового события.
type CreateInput struct {
	Name        string
	SportType   string
	StartAt     time.Time
	Lat         *float64
	Lng         *float64
	Access      models.Access
	EventType   string
	Distance    int32
	GPSFileLink *string
}

// Create создаёт событие от имени userID.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*models.GroupEvent, error) {
	const op = "service/events/Create"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	in.Name = strings.TrimSpace(in.Name)
	in.SportType = strings.TrimSpace(in.SportType)
	in.EventType = strings.TrimSpace(in.EventType)

	if err := validateCreate(userID, in); err != nil {
		lg.Warn("invalid event", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ev, err := s.events.CreateEvent(ctx, &models.GroupEvent{
		Name:        in.Name,
		SportType:   in.SportType,
		StartAt:     in.StartAt.UTC(),
		Lat:         in.Lat,
		Lng:         in.Lng,
		Access:      in.Access,
		EventType:   in.EventType,
		Distance:    in.Distance,
		GPSFileLink: in.GPSFileLink,
		CreatedBy:   userID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("creator has no profile")
			return nil, fmt.Errorf("%s: %w", op, ErrProfileRequired)
		}

		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	lg.Info("event created", "event_id", ev.ID)

	return ev, nil
}

// Get возвращает событие по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.GroupEvent, error) {
	const op = "service/events/Get"

	lg := log.From(ctx).With("op", op, "event_id", id)

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	ev, err := s.events.EventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return ev, nil
}

// List возвращает события, новые первыми.
// Limit <= 0 заменяется на 50, больше 100 - обрезается.
func (s *Service) List(ctx context.Context, filter storage.EventFilter) ([]*models.GroupEvent, error) {
	const op = "service/events/List"

	lg := log.From(ctx).With("op", op)

	if filter.Offset < 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultLimit
	case filter.Limit > maxLimit:
		filter.Limit = maxLimit
	}

	filter.SportType = strings.TrimSpace(filter.SportType)

	list, err := s.events.ListEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return list, nil
}

// Update частично обновляет событие; доступно только создателю.
func (s *Service) Update(ctx context.Context, id int64, userID uuid.UUID, upd storage.EventUpdate) (*models.GroupEvent, error) {
	const op = "service/events/Update"

	lg := log.From(ctx).With("op", op, "event_id", id, "user_id", userID.String())

	upd, err := normalizeUpdate(upd)
	if err != nil {
		lg.Warn("invalid event update", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.ensureOwner(ctx, lg, id, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ev, err := s.events.UpdateEvent(ctx, id, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return ev, nil
}

// Delete удаляет событие; доступно только создателю.
func (s *Service) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	const op = "service/events/Delete"

	lg := log.From(ctx).With("op", op, "event_id", id, "user_id", userID.String())

	if err := s.ensureOwner(ctx, lg, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.events.DeleteEvent(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	lg.Info("event deleted")

	return nil
}

// GPSUploadURL выдаёт presigned PUT для GPS-трека события.
func (s *Service) GPSUploadURL(ctx context.Context, id int64, userID uuid.UUID, contentType string, contentLength int64) (*storage.UploadInfo, error) {
	const op = "service/events/GPSUploadURL"

	lg := log.From(ctx).With("op", op, "event_id", id, "user_id", userID.String())

	if s.gps == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	if strings.TrimSpace(contentType) == "" || contentLength <= 0 {
		lg.Warn("invalid argument for presign", "content_type", contentType, "content_length", contentLength)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.ensureOwner(ctx, lg, id, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := s.gps.GPSUploadURL(ctx, userID, contentType, contentLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return info, nil
}

// ConfirmGPSUpload проверяет загруженный объект и сохраняет ссылку в событии.
// Если публичный URL не сконфигурирован, сохраняется ключ объекта.
func (s *Service) ConfirmGPSUpload(ctx context.Context, id int64, userID uuid.UUID, key string) (*models.GroupEvent, error) {
	const op = "service/events/ConfirmGPSUpload"

	lg := log.From(ctx).With("op", op, "event_id", id, "user_id", userID.String(), "file_key", key)

	if s.gps == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.ensureOwner(ctx, lg, id, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	link, err := s.gps.CheckGPSUpload(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	if link == "" {
		link = key
	}

	ev, err := s.events.UpdateEvent(ctx, id, userID, storage.EventUpdate{GPSFileLink: &link})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	lg.Info("gps file attached")

	return ev, nil
}

// ensureOwner отличает «нет события» от «чужое событие».
func (s *Service) ensureOwner(ctx context.Context, lg *slog.Logger, id int64, userID uuid.UUID) error {
	if id <= 0 || userID == uuid.Nil {
		return ErrInvalidArgument
	}

	ev, err := s.events.EventByID(ctx, id)
	if err != nil {
		return mapStorageErr(lg, err)
	}

	if ev.CreatedBy != userID {
		lg.Warn("not the event creator")
		return ErrPermissionDenied
	}

	return nil
}

func mapStorageErr(lg *slog.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		lg.Warn("not found")
		return ErrNotFound
	case errors.Is(err, storage.ErrInvalidArgument):
		lg.Warn("rejected by storage", "err", err)
		return ErrInvalidArgument
	default:
		lg.Error("storage error", "err", err)
		return ErrInternal
	}
}

func validateCreate(userID uuid.UUID, in CreateInput) error {
	switch {
	case userID == uuid.Nil:
		return errors.New("empty user_id")
	case in.Name == "" || utf8.RuneCountInString(in.Name) > maxNameLen:
		return errors.New("name must be 1..255 characters")
	case in.SportType == "" || utf8.RuneCountInString(in.SportType) > maxKindLen:
		return errors.New("sport_type is required")
	case in.EventType == "" || utf8.RuneCountInString(in.EventType) > maxKindLen:
		return errors.New("event_type is required")
	case in.StartAt.IsZero():
		return errors.New("start_at is required")
	case !in.Access.Valid():
		return fmt.Errorf("unknown access %q", in.Access)
	case in.Distance < 0:
		return errors.New("distance is negative")
	}

	return validateCoords(in.Lat, in.Lng)
}

func normalizeUpdate(u storage.EventUpdate) (storage.EventUpdate, error) {
	for _, f := range []struct {
		p   **string
		max int
		nm  string
	}{
		{&u.Name, maxNameLen, "name"},
		{&u.SportType, maxKindLen, "sport_type"},
		{&u.EventType, maxKindLen, "event_type"},
	} {
		if *f.p == nil {
			continue
		}

		v := strings.TrimSpace(**f.p)
		if v == "" || utf8.RuneCountInString(v) > f.max {
			return u, fmt.Errorf("invalid %s", f.nm)
		}
		*f.p = &v
	}

	if u.StartAt != nil {
		if u.StartAt.IsZero() {
			return u, errors.New("start_at is zero")
		}
		t := u.StartAt.UTC()
		u.StartAt = &t
	}

	if u.Access != nil && !u.Access.Valid() {
		return u, fmt.Errorf("unknown access %q", *u.Access)
	}

	if u.Distance != nil && *u.Distance < 0 {
		return u, errors.New("distance is negative")
	}

	return u, validateCoords(u.Lat, u.Lng)
}

func validateCoords(lat, lng *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return errors.New("lat out of range")
	}

	if lng != nil && (*lng < -180 || *lng > 180) {
		return errors.New("lng out of range")
	}

	return nil
}
