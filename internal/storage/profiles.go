package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
)

// ProfileUpdate - частичный апдейт профиля.
// Обновляются только непустые указатели.
type ProfileUpdate struct {
	Name         *string
	Bio          *string
	LocationLat  *float64
	LocationLng  *float64
	LocationName *string
}

// PreferencesUpdate - частичный апдейт предпочтений.
// nil-слайс не меняет колонку, пустой - очищает.
type PreferencesUpdate struct {
	Sports           []models.Sport
	PreferredPace    *models.Pace
	RideType         *models.RideType
	DistanceRangeMin *int32
	DistanceRangeMax *int32
	Availability     []models.Weekday
}

// ProfilesStorage - контракт репозитория профилей и предпочтений.
type ProfilesStorage interface {
	// EnsureProfile создаёт профиль, если его нет, и возвращает актуальную запись.
	// created == false, если профиль уже существовал.
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (profile *models.Profile, created bool, err error)
	// ProfileByUserID возвращает профиль по user_id.
	ProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	// UpdateProfile выполняет частичное обновление; всегда сдвигает updated_at.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*models.Profile, error)
	// PreferencesByUserID возвращает предпочтения по user_id.
	PreferencesByUserID(ctx context.Context, userID uuid.UUID) (*models.Preferences, error)
	// UpsertPreferences создаёт или частично обновляет предпочтения.
	UpsertPreferences(ctx context.Context, userID uuid.UUID, update PreferencesUpdate) (*models.Preferences, error)
	// CompleteOnboarding в одной транзакции обновляет профиль (он должен существовать)
	// и применяет upsert предпочтений.
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, profile ProfileUpdate, prefs PreferencesUpdate) (*models.Profile, *models.Preferences, error)
}
