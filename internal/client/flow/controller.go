package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pribylovaa/go-group-fitness/internal/client/api"
	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

// ProfileProber - проверка наличия профиля (*api.Client).
type ProfileProber interface {
	GetProfile(ctx context.Context) (*rest.Profile, error)
}

// Controller владеет State и применяет к нему события.
type Controller struct {
	mu      sync.Mutex
	state   State
	gen     uint64
	prober  ProfileProber
	backoff func() backoff.BackOff
}

// Option настраивает Controller.
type Option func(*Controller)

// WithBackOff задаёт политику повторов пробы профиля.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *Controller) { c.backoff = fn }
}

func New(prober ProfileProber, opts ...Option) *Controller {
	c := &Controller{
		state:   Initial(),
		prober:  prober,
		backoff: defaultBackOff,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 10 * time.Second
	return backoff.WithMaxRetries(b, 4)
}

// State возвращает копию текущего состояния.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Screen - Select от текущего состояния.
func (c *Controller) Screen() Screen {
	return Select(c.State())
}

// SignUpSucceeded - аккаунт создан, ждём код подтверждения.
func (c *Controller) SignUpSucceeded(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowSignUp = false
	c.state.ShowConfirmEmail = true
	c.state.PendingSignupEmail = email
}

// ConfirmSucceeded - email подтверждён; вход не выполняется автоматически.
func (c *Controller) ConfirmSucceeded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowConfirmEmail = false
	c.state.PendingSignupEmail = ""
}

// ShowSignUp переключает на форму регистрации.
func (c *Controller) ShowSignUp() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowSignUp = true
	c.state.ShowConfirmEmail = false
}

// ShowSignIn переключает на форму входа.
func (c *Controller) ShowSignIn() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowSignUp = false
	c.state.ShowConfirmEmail = false
}

// Unauthenticated - проверка сессии завершилась без входа.
func (c *Controller) Unauthenticated() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.state.AuthLoading = false
	c.state.IsAuthenticated = false
	c.state.HasProfile = false
}

// Authenticated - сессия установлена; проверяет наличие профиля.
//
// 404 с кодом profile_not_found означает «профиля нет», успех - «профиль есть». Транспортные ошибки,
// 5xx и 429 повторяются с экспоненциальной задержкой. Если ответ так и не
// получен, AuthLoading остаётся true, а ошибка возвращается: онбординг не
// навязывается из-за сбоя сети.
func (c *Controller) Authenticated(ctx context.Context) error {
	const op = "client.flow.Authenticated"

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state.AuthLoading = true
	c.state.IsAuthenticated = true
	c.mu.Unlock()

	lg := log.From(ctx).With("op", op)

	hasProfile, err := c.probe(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	// За время пробы мог случиться выход или повторный вход.
	if gen != c.gen {
		return nil
	}

	if err != nil {
		lg.Warn("profile_probe_failed", slog.String("err", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	c.state.AuthLoading = false
	c.state.HasProfile = hasProfile
	lg.Debug("profile_probe_done", slog.Bool("has_profile", hasProfile))

	return nil
}

func (c *Controller) probe(ctx context.Context) (bool, error) {
	var found bool

	operation := func() error {
		_, err := c.prober.GetProfile(ctx)
		switch {
		case err == nil:
			found = true
			return nil
		case api.IsProfileNotFound(err):
			found = false
			return nil
		case transient(err):
			log.From(ctx).Debug("profile_probe_retry", slog.String("err", err.Error()))
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	if err := backoff.Retry(operation, backoff.WithContext(c.backoff(), ctx)); err != nil {
		return false, err
	}

	return found, nil
}

// transient - ошибка, которую имеет смысл повторить.
func transient(err error) bool {
	var ae *api.APIError
	if !errors.As(err, &ae) {
		return false
	}

	return ae.Status == 0 ||
		ae.Status == http.StatusTooManyRequests ||
		ae.Status >= http.StatusInternalServerError
}

// OnboardingStarted - пользователь перешёл из WelcomeGate к анкете.
func (c *Controller) OnboardingStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowOnboarding = true
}

// OnboardingCompleted - анкета сохранена, профиль существует.
func (c *Controller) OnboardingCompleted() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ShowOnboarding = false
	c.state.HasProfile = true
}

// SignedOut сбрасывает все флаги потока.
func (c *Controller) SignedOut() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.state = State{}
}
