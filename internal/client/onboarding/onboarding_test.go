package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/pribylovaa/go-group-fitness/internal/client/api"
	"github.com/pribylovaa/go-group-fitness/internal/client/flow"
	"github.com/pribylovaa/go-group-fitness/internal/client/tokenstore"
	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
	"github.com/stretchr/testify/require"
)

type backend struct {
	mu sync.Mutex

	autoCreateStatus int
	onboardingStatus int
	hasProfile       bool

	calls      []string
	onboarding rest.OnboardingRequest
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, r.Method+" "+r.URL.Path)

	if r.Header.Get("Authorization") != "Bearer tok" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
		return
	}

	switch r.URL.Path {
	case "/users/profile":
		if !b.hasProfile {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"User profile not found","code":"profile_not_found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(rest.Profile{ID: 1})
	case "/users/profile/auto-create":
		if b.autoCreateStatus != 0 {
			w.WriteHeader(b.autoCreateStatus)
			return
		}
		b.hasProfile = true
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rest.ProfileResponse{Message: "Profile created successfully", Profile: rest.Profile{ID: 1}})
	case "/users/onboarding":
		if b.onboardingStatus != 0 {
			w.WriteHeader(b.onboardingStatus)
			_, _ = w.Write([]byte(`{"detail":"Invalid argument"}`))
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&b.onboarding)
		_ = json.NewEncoder(w).Encode(rest.OnboardingResponse{Message: "Onboarding completed successfully"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *backend) snapshot() ([]string, rest.OnboardingRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.calls...), b.onboarding
}

// setup поднимает бэкенд, вход выполнен, flow на WelcomeGate.
func setup(t *testing.T, b *backend) (*Wizard, *flow.Controller) {
	t.Helper()

	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	store := tokenstore.NewMemory()
	require.NoError(t, store.Save(context.Background(), tokenstore.CredentialPair{AccessToken: "tok"}))
	client := api.New(srv.URL, store)

	fc := flow.New(client, flow.WithBackOff(func() backoff.BackOff { return &backoff.StopBackOff{} }))
	require.NoError(t, fc.Authenticated(context.Background()))
	require.Equal(t, flow.ScreenWelcomeGate, fc.Screen())
	fc.OnboardingStarted()

	return New(client, fc), fc
}

func TestWizard_Steps(t *testing.T) {
	t.Parallel()

	w := New(nil, nil)
	require.Equal(t, StepAbout, w.Step())
	require.Equal(t, StepAbout, w.Back())
	require.Equal(t, StepSports, w.Next())
	require.Equal(t, StepSchedule, w.Next())
	require.Equal(t, StepSchedule, w.Next())
	require.True(t, w.IsLast())
	require.Equal(t, StepSports, w.Back())
	require.Equal(t, "sports", w.Step().String())
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	b := &backend{}
	w, fc := setup(t, b)

	lat := 55.75
	w.Update(func(f *Fields) {
		f.Name = " Ann "
		f.LocationLat = &lat
		f.Sports = []string{"running", " ", "cycling"}
		f.PreferredPace = "moderate"
	})

	resp, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Onboarding completed successfully", resp.Message)

	calls, got := b.snapshot()
	require.Equal(t, []string{
		"GET /users/profile",
		"POST /users/profile/auto-create",
		"POST /users/onboarding",
	}, calls)
	require.Equal(t, "Ann", *got.Profile.Name)
	require.Nil(t, got.Profile.Bio)
	require.Equal(t, 55.75, *got.Profile.LocationLat)
	require.Equal(t, []string{"running", "cycling"}, got.Preferences.Sports)
	require.Nil(t, got.Preferences.Availability)

	st := fc.State()
	require.True(t, st.HasProfile)
	require.False(t, st.ShowOnboarding)
	require.Equal(t, flow.ScreenMain, fc.Screen())
	require.False(t, w.Submitting())
}

func TestSubmit_AutoCreateFailureSkipsOnboarding(t *testing.T) {
	t.Parallel()

	b := &backend{autoCreateStatus: http.StatusInternalServerError}
	w, fc := setup(t, b)

	_, err := w.Submit(context.Background())

	var pe *ProfileError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, PhaseAutoCreate, pe.Phase)
	require.Equal(t, "HTTP error, status=500", pe.Message)

	calls, _ := b.snapshot()
	require.NotContains(t, calls, "POST /users/onboarding")

	require.False(t, fc.State().HasProfile)
	require.Equal(t, flow.ScreenOnboarding, fc.Screen())
}

func TestSubmit_OnboardingFailure(t *testing.T) {
	t.Parallel()

	b := &backend{onboardingStatus: http.StatusBadRequest}
	w, fc := setup(t, b)

	_, err := w.Submit(context.Background())

	var pe *ProfileError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, PhaseOnboarding, pe.Phase)
	require.Equal(t, "Invalid argument", pe.Error())
	require.Equal(t, http.StatusBadRequest, api.StatusOf(err))

	require.False(t, fc.State().HasProfile)
}

// blockingAPI держит AutoCreateProfile до закрытия release.
type blockingAPI struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAPI) AutoCreateProfile(context.Context) (*rest.Profile, error) {
	close(b.entered)
	<-b.release
	return &rest.Profile{}, nil
}

func (b *blockingAPI) Onboarding(context.Context, rest.OnboardingRequest) (*rest.OnboardingResponse, error) {
	return &rest.OnboardingResponse{}, nil
}

func TestSubmit_RejectsDoubleSubmit(t *testing.T) {
	t.Parallel()

	stub := &blockingAPI{entered: make(chan struct{}), release: make(chan struct{})}
	w := New(stub, nil)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()

	<-stub.entered
	require.True(t, w.Submitting())

	_, err := w.Submit(context.Background())
	var pe *ProfileError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, PhaseSubmit, pe.Phase)

	close(stub.release)
	require.NoError(t, <-done)
	require.False(t, w.Submitting())
}
