package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/go-group-fitness/internal/http/errors"
	"github.com/pribylovaa/go-group-fitness/internal/http/middleware"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/service/events"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

// AuthService - то, что хендлерам нужно от service/auth.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	SignIn(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	AccessTokenTTL() time.Duration
}

// UsersService - то, что хендлерам нужно от service/users.
type UsersService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	AutoCreateProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, bool, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd storage.ProfileUpdate) (*models.Profile, error)
	Preferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, upd storage.PreferencesUpdate) (*models.Preferences, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.Profile, *models.Preferences, error)
	Onboarding(ctx context.Context, userID uuid.UUID, profile storage.ProfileUpdate, prefs storage.PreferencesUpdate) (*models.Profile, *models.Preferences, error)
}

// EventsService - то, что хендлерам нужно от service/events.
type EventsService interface {
	Create(ctx context.Context, userID uuid.UUID, in events.CreateInput) (*models.GroupEvent, error)
	Get(ctx context.Context, id int64) (*models.GroupEvent, error)
	List(ctx context.Context, filter storage.EventFilter) ([]*models.GroupEvent, error)
	Update(ctx context.Context, id int64, userID uuid.UUID, upd storage.EventUpdate) (*models.GroupEvent, error)
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
	GPSUploadURL(ctx context.Context, id int64, userID uuid.UUID, contentType string, contentLength int64) (*storage.UploadInfo, error)
	ConfirmGPSUpload(ctx context.Context, id int64, userID uuid.UUID, key string) (*models.GroupEvent, error)
}

// Handlers агрегирует зависимости (сервисы).
type Handlers struct {
	Auth   AuthService
	Users  UsersService
	Events EventsService
}

func New(a AuthService, u UsersService, e EventsService) *Handlers {
	return &Handlers{Auth: a, Users: u, Events: e}
}

// maxBodyBytes - верхняя граница тела JSON-запроса.
const maxBodyBytes = 1 << 20

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict - строгий JSON-декодер: запрещаем неизвестные поля.
// Пустое тело считается пустым объектом.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil && !errors.Is(err, io.EOF) {
		return apierrors.BadRequest("Invalid request body")
	}
	return nil
}

// identity достаёт пользователя, положенного middleware.Authenticate.
func identity(r *http.Request) (middleware.Identity, error) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return middleware.Identity{}, apierrors.Unauthorized("Not authenticated")
	}
	return id, nil
}
