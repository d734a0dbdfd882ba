package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

const (
	maxNameLen     = 255
	maxBioLen      = 1000
	maxLocationLen = 255
)

// Profile возвращает профиль пользователя; ErrNotFound, если он ещё не создан.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	const op = "service/users/Profile"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		lg.Warn("invalid argument: empty user_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	p, err := s.profiles.ProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return p, nil
}

// AutoCreateProfile создаёт пустой профиль, если его нет.
// Повторный вызов возвращает существующий профиль и created == false.
func (s *Service) AutoCreateProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, bool, error) {
	const op = "service/users/AutoCreateProfile"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil || strings.TrimSpace(email) == "" {
		lg.Warn("invalid argument: empty user_id or email")
		return nil, false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	p, created, err := s.profiles.EnsureProfile(ctx, userID, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	if created {
		lg.Info("profile created")
	}

	return p, created, nil
}

// UpdateProfile частично обновляет профиль. Пустой апдейт допустим
// и лишь сдвигает updated_at.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, upd storage.ProfileUpdate) (*models.Profile, error) {
	const op = "service/users/UpdateProfile"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	upd, err := normalizeProfile(upd)
	if err != nil {
		lg.Warn("invalid profile update", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	p, err := s.profiles.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return p, nil
}

// Preferences возвращает предпочтения; ErrNotFound, если они не заданы.
func (s *Service) Preferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, error) {
	const op = "service/users/Preferences"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	p, err := s.profiles.PreferencesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return p, nil
}

// UpdatePreferences создаёт или частично обновляет предпочтения.
// Требует существующего профиля.
func (s *Service) UpdatePreferences(ctx context.Context, userID uuid.UUID, upd storage.PreferencesUpdate) (*models.Preferences, error) {
	const op = "service/users/UpdatePreferences"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	upd, err := normalizePreferences(upd)
	if err != nil {
		lg.Warn("invalid preferences update", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Если передана только одна граница, сверяем её с сохранённой.
	if (upd.DistanceRangeMin == nil) != (upd.DistanceRangeMax == nil) {
		cur, err := s.profiles.PreferencesByUserID(ctx, userID)
		switch {
		case err == nil:
			lo, hi := upd.DistanceRangeMin, upd.DistanceRangeMax
			if lo == nil {
				lo = cur.DistanceRangeMin
			}
			if hi == nil {
				hi = cur.DistanceRangeMax
			}
			if lo != nil && hi != nil && *lo > *hi {
				lg.Warn("invalid argument: distance range inverted")
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
			}
		case errors.Is(err, storage.ErrNotFound):
		default:
			return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
		}
	}

	p, err := s.profiles.UpsertPreferences(ctx, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return p, nil
}

// Me возвращает профиль и (если заданы) предпочтения.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*models.Profile, *models.Preferences, error) {
	const op = "service/users/Me"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	prefs, err := s.profiles.PreferencesByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return p, nil, nil
		}

		return nil, nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	return p, prefs, nil
}

// Onboarding сохраняет профиль и предпочтения атомарно.
// Профиль должен существовать (см. AutoCreateProfile), иначе ErrNotFound.
func (s *Service) Onboarding(ctx context.Context, userID uuid.UUID, profile storage.ProfileUpdate, prefs storage.PreferencesUpdate) (*models.Profile, *models.Preferences, error) {
	const op = "service/users/Onboarding"

	lg := log.From(ctx).With("op", op, "user_id", userID.String())

	if userID == uuid.Nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	profile, err := normalizeProfile(profile)
	if err != nil {
		lg.Warn("invalid onboarding profile", slog.String("err", err.Error()))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	prefs, err = normalizePreferences(prefs)
	if err != nil {
		lg.Warn("invalid onboarding preferences", slog.String("err", err.Error()))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	p, pr, err := s.profiles.CompleteOnboarding(ctx, userID, profile, prefs)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, mapStorageErr(lg, err))
	}

	lg.Info("onboarding completed")

	return p, pr, nil
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

// normalizeProfile обрезает строки и проверяет длины и координаты.
// Пустая строка в Bio/LocationName допустима (очистка), в Name - нет.
func normalizeProfile(u storage.ProfileUpdate) (storage.ProfileUpdate, error) {
	trim := func(p *string, max int, allowEmpty bool, field string) (*string, error) {
		if p == nil {
			return nil, nil
		}

		v := strings.TrimSpace(*p)
		if v == "" && !allowEmpty {
			return nil, fmt.Errorf("%s is empty", field)
		}

		if utf8.RuneCountInString(v) > max {
			return nil, fmt.Errorf("%s is too long", field)
		}

		return &v, nil
	}

	var err error
	if u.Name, err = trim(u.Name, maxNameLen, false, "name"); err != nil {
		return u, err
	}
	if u.Bio, err = trim(u.Bio, maxBioLen, true, "bio"); err != nil {
		return u, err
	}
	if u.LocationName, err = trim(u.LocationName, maxLocationLen, true, "location_name"); err != nil {
		return u, err
	}

	if u.LocationLat != nil && (*u.LocationLat < -90 || *u.LocationLat > 90) {
		return u, errors.New("location_lat out of range")
	}
	if u.LocationLng != nil && (*u.LocationLng < -180 || *u.LocationLng > 180) {
		return u, errors.New("location_lng out of range")
	}

	return u, nil
}

// normalizePreferences проверяет значения перечислений и диапазон дистанции,
// убирает дубли из sports/availability с сохранением порядка.
func normalizePreferences(u storage.PreferencesUpdate) (storage.PreferencesUpdate, error) {
	if u.Sports != nil {
		out := make([]models.Sport, 0, len(u.Sports))
		seen := make(map[models.Sport]struct{}, len(u.Sports))
		for _, sp := range u.Sports {
			if !sp.Valid() {
				return u, fmt.Errorf("unknown sport %q", sp)
			}
			if _, ok := seen[sp]; ok {
				continue
			}
			seen[sp] = struct{}{}
			out = append(out, sp)
		}
		u.Sports = out
	}

	if u.Availability != nil {
		out := make([]models.Weekday, 0, len(u.Availability))
		seen := make(map[models.Weekday]struct{}, len(u.Availability))
		for _, d := range u.Availability {
			if !d.Valid() {
				return u, fmt.Errorf("unknown weekday %q", d)
			}
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
		u.Availability = out
	}

	if u.PreferredPace != nil && !u.PreferredPace.Valid() {
		return u, fmt.Errorf("unknown pace %q", *u.PreferredPace)
	}

	if u.RideType != nil && !u.RideType.Valid() {
		return u, fmt.Errorf("unknown ride type %q", *u.RideType)
	}

	if u.DistanceRangeMin != nil && *u.DistanceRangeMin < 0 {
		return u, errors.New("distance_range_min is negative")
	}
	if u.DistanceRangeMax != nil && *u.DistanceRangeMax < 0 {
		return u, errors.New("distance_range_max is negative")
	}
	if u.DistanceRangeMin != nil && u.DistanceRangeMax != nil && *u.DistanceRangeMin > *u.DistanceRangeMax {
		return u, errors.New("distance range inverted")
	}

	return u, nil
}
