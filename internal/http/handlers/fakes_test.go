package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/service/events"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
)

// fakeAuth - AuthService на функциях; неустановленная функция паникует,
// что в тесте означает неожиданный вызов.
type fakeAuth struct {
	signUp        func(ctx context.Context, email, password, name string) (*models.User, error)
	confirmSignUp func(ctx context.Context, email, code string) error
	resendCode    func(ctx context.Context, email string) error
	signIn        func(ctx context.Context, email, password string) (*models.TokenPair, error)
	refresh       func(ctx context.Context, token string) (*models.TokenPair, error)
	signOut       func(ctx context.Context, token string) error
	me            func(ctx context.Context, userID uuid.UUID) (*models.User, error)
	forgot        func(ctx context.Context, email string) error
	reset         func(ctx context.Context, email, code, pw string) error
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password, name string) (*models.User, error) {
	return f.signUp(ctx, email, password, name)
}
func (f *fakeAuth) ConfirmSignUp(ctx context.Context, email, code string) error {
	return f.confirmSignUp(ctx, email, code)
}
func (f *fakeAuth) ResendCode(ctx context.Context, email string) error { return f.resendCode(ctx, email) }
func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*models.TokenPair, error) {
	return f.signIn(ctx, email, password)
}
func (f *fakeAuth) Refresh(ctx context.Context, token string) (*models.TokenPair, error) {
	return f.refresh(ctx, token)
}
func (f *fakeAuth) SignOut(ctx context.Context, token string) error { return f.signOut(ctx, token) }
func (f *fakeAuth) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return f.me(ctx, userID)
}
func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) error { return f.forgot(ctx, email) }
func (f *fakeAuth) ResetPassword(ctx context.Context, email, code, pw string) error {
	return f.reset(ctx, email, code, pw)
}
func (f *fakeAuth) AccessTokenTTL() time.Duration { return 15 * time.Minute }

type fakeUsers struct {
	profile     func(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	autoCreate  func(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, bool, error)
	update      func(ctx context.Context, userID uuid.UUID, upd storage.ProfileUpdate) (*models.Profile, error)
	prefs       func(ctx context.Context, userID uuid.UUID) (*models.Preferences, error)
	updatePrefs func(ctx context.Context, userID uuid.UUID, upd storage.PreferencesUpdate) (*models.Preferences, error)
	me          func(ctx context.Context, userID uuid.UUID) (*models.Profile, *models.Preferences, error)
	onboarding  func(ctx context.Context, userID uuid.UUID, p storage.ProfileUpdate, pr storage.PreferencesUpdate) (*models.Profile, *models.Preferences, error)
}

func (f *fakeUsers) Profile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return f.profile(ctx, userID)
}
func (f *fakeUsers) AutoCreateProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, bool, error) {
	return f.autoCreate(ctx, userID, email)
}
func (f *fakeUsers) UpdateProfile(ctx context.Context, userID uuid.UUID, upd storage.ProfileUpdate) (*models.Profile, error) {
	return f.update(ctx, userID, upd)
}
func (f *fakeUsers) Preferences(ctx context.Context, userID uuid.UUID) (*models.Preferences, error) {
	return f.prefs(ctx, userID)
}
func (f *fakeUsers) UpdatePreferences(ctx context.Context, userID uuid.UUID, upd storage.PreferencesUpdate) (*models.Preferences, error) {
	return f.updatePrefs(ctx, userID, upd)
}
func (f *fakeUsers) Me(ctx context.Context, userID uuid.UUID) (*models.Profile, *models.Preferences, error) {
	return f.me(ctx, userID)
}
func (f *fakeUsers) Onboarding(ctx context.Context, userID uuid.UUID, p storage.ProfileUpdate, pr storage.PreferencesUpdate) (*models.Profile, *models.Preferences, error) {
	return f.onboarding(ctx, userID, p, pr)
}

type fakeEvents struct {
	create  func(ctx context.Context, userID uuid.UUID, in events.CreateInput) (*models.GroupEvent, error)
	get     func(ctx context.Context, id int64) (*models.GroupEvent, error)
	list    func(ctx context.Context, f storage.EventFilter) ([]*models.GroupEvent, error)
	update  func(ctx context.Context, id int64, userID uuid.UUID, upd storage.EventUpdate) (*models.GroupEvent, error)
	del     func(ctx context.Context, id int64, userID uuid.UUID) error
	presign func(ctx context.Context, id int64, userID uuid.UUID, ct string, cl int64) (*storage.UploadInfo, error)
	confirm func(ctx context.Context, id int64, userID uuid.UUID, key string) (*models.GroupEvent, error)
}

func (f *fakeEvents) Create(ctx context.Context, userID uuid.UUID, in events.CreateInput) (*models.GroupEvent, error) {
	return f.create(ctx, userID, in)
}
func (f *fakeEvents) Get(ctx context.Context, id int64) (*models.GroupEvent, error) {
	return f.get(ctx, id)
}
func (f *fakeEvents) List(ctx context.Context, filter storage.EventFilter) ([]*models.GroupEvent, error) {
	return f.list(ctx, filter)
}
func (f *fakeEvents) Update(ctx context.Context, id int64, userID uuid.UUID, upd storage.EventUpdate) (*models.GroupEvent, error) {
	return f.update(ctx, id, userID, upd)
}
func (f *fakeEvents) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	return f.del(ctx, id, userID)
}
func (f *fakeEvents) GPSUploadURL(ctx context.Context, id int64, userID uuid.UUID, ct string, cl int64) (*storage.UploadInfo, error) {
	return f.presign(ctx, id, userID, ct, cl)
}
func (f *fakeEvents) ConfirmGPSUpload(ctx context.Context, id int64, userID uuid.UUID, key string) (*models.GroupEvent, error) {
	return f.confirm(ctx, id, userID, key)
}
