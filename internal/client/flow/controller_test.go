package flow

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pribylovaa/go-group-fitness/internal/client/api"
	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
	"github.com/stretchr/testify/require"
)

// fakeProber отдаёт ошибки из очереди, затем профиль.
type fakeProber struct {
	calls atomic.Int32
	errs  []error
	block chan struct{}
}

func (f *fakeProber) GetProfile(context.Context) (*rest.Profile, error) {
	n := int(f.calls.Add(1)) - 1
	if f.block != nil {
		<-f.block
	}
	if n < len(f.errs) {
		return nil, f.errs[n]
	}
	return &rest.Profile{ID: 1}, nil
}

func statusErr(status int) error {
	return &api.APIError{Kind: api.KindStructured, Status: status, Message: http.StatusText(status)}
}

func profileMissing() error {
	return &api.APIError{
		Kind:    api.KindStructured,
		Status:  http.StatusNotFound,
		Message: "User profile not found",
		Code:    api.CodeProfileNotFound,
	}
}

func noWait(retries uint64) Option {
	return WithBackOff(func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, retries)
	})
}

func TestController_StartsLoading(t *testing.T) {
	t.Parallel()

	c := New(&fakeProber{})
	require.Equal(t, ScreenLoading, c.Screen())
}

func TestController_SignUpThenConfirm(t *testing.T) {
	t.Parallel()

	c := New(&fakeProber{})
	c.Unauthenticated()
	c.ShowSignUp()
	require.Equal(t, ScreenSignUp, c.Screen())

	c.SignUpSucceeded("a@b.com")

	st := c.State()
	require.False(t, st.ShowSignUp)
	require.True(t, st.ShowConfirmEmail)
	require.Equal(t, "a@b.com", st.PendingSignupEmail)
	require.Equal(t, ScreenConfirmEmail, c.Screen())

	c.ConfirmSucceeded()

	st = c.State()
	require.False(t, st.ShowConfirmEmail)
	require.Empty(t, st.PendingSignupEmail)
	require.False(t, st.IsAuthenticated)
	require.Equal(t, ScreenSignIn, c.Screen())
}

func TestController_ShowSignUpAndConfirmAreExclusive(t *testing.T) {
	t.Parallel()

	c := New(&fakeProber{})
	c.Unauthenticated()
	c.SignUpSucceeded("a@b.com")
	c.ShowSignUp()

	st := c.State()
	require.True(t, st.ShowSignUp)
	require.False(t, st.ShowConfirmEmail)

	c.ShowSignIn()
	require.Equal(t, ScreenSignIn, c.Screen())
}

func TestAuthenticated_ProfileExists(t *testing.T) {
	t.Parallel()

	c := New(&fakeProber{}, noWait(3))
	require.NoError(t, c.Authenticated(context.Background()))

	st := c.State()
	require.False(t, st.AuthLoading)
	require.True(t, st.HasProfile)
	require.Equal(t, ScreenMain, c.Screen())
}

func TestAuthenticated_NotFoundGoesToWelcomeGate(t *testing.T) {
	t.Parallel()

	p := &fakeProber{errs: []error{profileMissing()}}
	c := New(p, noWait(3))

	require.NoError(t, c.Authenticated(context.Background()))
	require.False(t, c.State().HasProfile)
	require.Equal(t, ScreenWelcomeGate, c.Screen())
	require.EqualValues(t, 1, p.calls.Load())
}

func TestAuthenticated_UnknownRoute404StaysLoading(t *testing.T) {
	t.Parallel()

	p := &fakeProber{errs: []error{statusErr(http.StatusNotFound)}}
	c := New(p, noWait(3))

	err := c.Authenticated(context.Background())
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, api.StatusOf(err))

	st := c.State()
	require.True(t, st.AuthLoading)
	require.False(t, st.HasProfile)
	require.Equal(t, ScreenLoading, c.Screen())
	require.EqualValues(t, 1, p.calls.Load())
}

func TestAuthenticated_TransientRetried(t *testing.T) {
	t.Parallel()

	p := &fakeProber{errs: []error{
		statusErr(http.StatusBadGateway),
		&api.APIError{Kind: api.KindGeneric, Message: "request failed"},
	}}
	c := New(p, noWait(3))

	require.NoError(t, c.Authenticated(context.Background()))
	require.True(t, c.State().HasProfile)
	require.EqualValues(t, 3, p.calls.Load())
}

func TestAuthenticated_PersistentFailureStaysLoading(t *testing.T) {
	t.Parallel()

	p := &fakeProber{errs: []error{
		statusErr(http.StatusServiceUnavailable),
		statusErr(http.StatusServiceUnavailable),
		statusErr(http.StatusServiceUnavailable),
	}}
	c := New(p, noWait(2))

	err := c.Authenticated(context.Background())
	require.Error(t, err)
	require.Equal(t, http.StatusServiceUnavailable, api.StatusOf(err))

	st := c.State()
	require.True(t, st.AuthLoading)
	require.False(t, st.HasProfile)
	require.Equal(t, ScreenLoading, c.Screen())
	require.EqualValues(t, 3, p.calls.Load())
}

func TestAuthenticated_NonTransientNotRetried(t *testing.T) {
	t.Parallel()

	p := &fakeProber{errs: []error{statusErr(http.StatusUnauthorized)}}
	c := New(p, noWait(5))

	err := c.Authenticated(context.Background())
	require.True(t, api.IsUnauthorized(err))
	require.EqualValues(t, 1, p.calls.Load())
	require.Equal(t, ScreenLoading, c.Screen())
}

func TestAuthenticated_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakeProber{errs: []error{statusErr(http.StatusBadGateway), statusErr(http.StatusBadGateway)}}
	c := New(p, noWait(10))

	require.Error(t, c.Authenticated(ctx))
	require.True(t, c.State().AuthLoading)
}

func TestAuthenticated_SignOutDuringProbeWins(t *testing.T) {
	t.Parallel()

	p := &fakeProber{block: make(chan struct{})}
	c := New(p, noWait(0))

	done := make(chan error, 1)
	go func() { done <- c.Authenticated(context.Background()) }()

	require.Eventually(t, func() bool { return p.calls.Load() == 1 }, testTimeout, testTick)
	c.SignedOut()
	close(p.block)

	require.NoError(t, <-done)
	require.Equal(t, State{}, c.State())
	require.Equal(t, ScreenSignIn, c.Screen())
}

func TestOnboarding_StartAndComplete(t *testing.T) {
	t.Parallel()

	p := &fakeProber{errs: []error{profileMissing()}}
	c := New(p, noWait(0))
	require.NoError(t, c.Authenticated(context.Background()))
	require.Equal(t, ScreenWelcomeGate, c.Screen())

	c.OnboardingStarted()
	require.Equal(t, ScreenOnboarding, c.Screen())

	c.OnboardingCompleted()

	st := c.State()
	require.False(t, st.ShowOnboarding)
	require.True(t, st.HasProfile)
	require.Equal(t, ScreenMain, c.Screen())
}

func TestSignedOut_ResetsFlags(t *testing.T) {
	t.Parallel()

	c := New(&fakeProber{}, noWait(0))
	require.NoError(t, c.Authenticated(context.Background()))
	c.OnboardingStarted()

	c.SignedOut()

	require.Equal(t, State{}, c.State())
	require.Equal(t, ScreenSignIn, c.Screen())
}

func TestTransient(t *testing.T) {
	t.Parallel()

	require.True(t, transient(statusErr(http.StatusInternalServerError)))
	require.True(t, transient(statusErr(http.StatusTooManyRequests)))
	require.True(t, transient(&api.APIError{}))
	require.False(t, transient(statusErr(http.StatusForbidden)))
	require.False(t, transient(errors.New("plain")))
}

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)
