package users

// Тесты сервисного слоя профилей: валидация входов, нормализация апдейтов
// и маппинг ошибок storage -> service. Моки - в /mocks.

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/pribylovaa/go-group-fitness/mocks"
	"github.com/stretchr/testify/require"
)

func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockProfilesStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mp := mocks.NewMockProfilesStorage(ctrl)
	return New(mp), mp
}

func ptr[T any](v T) *T { return &v }

func TestProfile_InvalidArgument(t *testing.T) {
	t.Parallel()
	s, _ := newServiceWithMocks(t)

	_, err := s.Profile(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestProfile_NotFound_And_Internal(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(nil, storage.ErrNotFound)
	_, err := s.Profile(context.Background(), uid)
	require.ErrorIs(t, err, ErrNotFound)

	mp.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(nil, errors.New("db down"))
	_, err = s.Profile(context.Background(), uid)
	require.ErrorIs(t, err, ErrInternal)
}

func TestAutoCreateProfile_Idempotent(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()
	p := &models.Profile{ID: 1, UserID: uid, Email: "user@example.com"}

	gomock.InOrder(
		mp.EXPECT().EnsureProfile(gomock.Any(), uid, "user@example.com").Return(p, true, nil),
		mp.EXPECT().EnsureProfile(gomock.Any(), uid, "user@example.com").Return(p, false, nil),
	)

	got, created, err := s.AutoCreateProfile(context.Background(), uid, " User@Example.com")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, p, got)

	got, created, err = s.AutoCreateProfile(context.Background(), uid, "user@example.com")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, int64(1), got.ID)
}

func TestAutoCreateProfile_InvalidArgs(t *testing.T) {
	t.Parallel()
	s, _ := newServiceWithMocks(t)

	_, _, err := s.AutoCreateProfile(context.Background(), uuid.Nil, "a@b.c")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = s.AutoCreateProfile(context.Background(), uuid.New(), " ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateProfile_TrimsAndPassesThrough(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().UpdateProfile(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, u storage.ProfileUpdate) (*models.Profile, error) {
			require.Equal(t, "Ann", *u.Name)
			require.Equal(t, "", *u.Bio)
			require.Nil(t, u.LocationName)
			return &models.Profile{UserID: uid, Name: u.Name}, nil
		})

	p, err := s.UpdateProfile(context.Background(), uid, storage.ProfileUpdate{Name: ptr("  Ann "), Bio: ptr("   ")})
	require.NoError(t, err)
	require.Equal(t, "Ann", *p.Name)
}

func TestUpdateProfile_Validation(t *testing.T) {
	t.Parallel()
	s, _ := newServiceWithMocks(t)
	uid := uuid.New()

	cases := []storage.ProfileUpdate{
		{Name: ptr(" ")},
		{LocationLat: ptr(91.0)},
		{LocationLng: ptr(-180.5)},
		{Bio: ptr(string(make([]rune, maxBioLen+1)))},
	}
	for _, c := range cases {
		_, err := s.UpdateProfile(context.Background(), uid, c)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().UpdateProfile(gomock.Any(), uid, gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err := s.UpdateProfile(context.Background(), uid, storage.ProfileUpdate{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePreferences_DedupesAndValidates(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().UpsertPreferences(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, u storage.PreferencesUpdate) (*models.Preferences, error) {
			require.Equal(t, []models.Sport{models.SportCycling, models.SportRunning}, u.Sports)
			require.Equal(t, []models.Weekday{"monday", "friday"}, u.Availability)
			return &models.Preferences{UserID: uid, Sports: u.Sports}, nil
		})

	_, err := s.UpdatePreferences(context.Background(), uid, storage.PreferencesUpdate{
		Sports:           []models.Sport{models.SportCycling, models.SportRunning, models.SportCycling},
		Availability:     []models.Weekday{"monday", "friday", "monday"},
		DistanceRangeMin: ptr(int32(5)),
		DistanceRangeMax: ptr(int32(40)),
	})
	require.NoError(t, err)

	bad := []storage.PreferencesUpdate{
		{Sports: []models.Sport{"swimming"}},
		{Availability: []models.Weekday{"someday"}},
		{PreferredPace: ptr(models.Pace("warp"))},
		{RideType: ptr(models.RideType("gravel"))},
		{DistanceRangeMin: ptr(int32(-1))},
		{DistanceRangeMin: ptr(int32(50)), DistanceRangeMax: ptr(int32(10))},
	}
	for _, b := range bad {
		_, err := s.UpdatePreferences(context.Background(), uid, b)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestUpdatePreferences_SingleBound_ComparedWithStored(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().PreferencesByUserID(gomock.Any(), uid).
		Return(&models.Preferences{DistanceRangeMax: ptr(int32(20))}, nil)

	_, err := s.UpdatePreferences(context.Background(), uid, storage.PreferencesUpdate{DistanceRangeMin: ptr(int32(30))})
	require.ErrorIs(t, err, ErrInvalidArgument)

	mp.EXPECT().PreferencesByUserID(gomock.Any(), uid).Return(nil, storage.ErrNotFound)
	mp.EXPECT().UpsertPreferences(gomock.Any(), uid, gomock.Any()).Return(&models.Preferences{}, nil)

	_, err = s.UpdatePreferences(context.Background(), uid, storage.PreferencesUpdate{DistanceRangeMin: ptr(int32(30))})
	require.NoError(t, err)
}

func TestMe_WithoutPreferences(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().ProfileByUserID(gomock.Any(), uid).Return(&models.Profile{UserID: uid}, nil)
	mp.EXPECT().PreferencesByUserID(gomock.Any(), uid).Return(nil, storage.ErrNotFound)

	p, prefs, err := s.Me(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, uid, p.UserID)
	require.Nil(t, prefs)
}

func TestOnboarding_OK(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().CompleteOnboarding(gomock.Any(), uid, gomock.Any(), gomock.Any()).
		Return(&models.Profile{UserID: uid}, &models.Preferences{UserID: uid}, nil)

	p, pr, err := s.Onboarding(context.Background(), uid,
		storage.ProfileUpdate{Name: ptr("Ann")},
		storage.PreferencesUpdate{Sports: []models.Sport{models.SportRunning}},
	)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, pr)
}

func TestOnboarding_ProfileMissing(t *testing.T) {
	t.Parallel()
	s, mp := newServiceWithMocks(t)
	uid := uuid.New()

	mp.EXPECT().CompleteOnboarding(gomock.Any(), uid, gomock.Any(), gomock.Any()).
		Return(nil, nil, storage.ErrNotFound)

	_, _, err := s.Onboarding(context.Background(), uid, storage.ProfileUpdate{}, storage.PreferencesUpdate{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOnboarding_InvalidPreferences_NoStorageCall(t *testing.T) {
	t.Parallel()
	s, _ := newServiceWithMocks(t)

	_, _, err := s.Onboarding(context.Background(), uuid.New(), storage.ProfileUpdate{},
		storage.PreferencesUpdate{Sports: []models.Sport{"chess"}})
	require.ErrorIs(t, err, ErrInvalidArgument)
}
