// session - контроллер аутентификации клиента.
// Единственный писатель в tokenstore: сохраняет пару токенов после signin и
// refresh, очищает её при выходе. Текущий пользователь не хранится на диске
// и всегда перезапрашивается через /auth/me.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/pribylovaa/go-group-fitness/internal/client/api"
	"github.com/pribylovaa/go-group-fitness/internal/client/tokenstore"
	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
	"github.com/pribylovaa/go-group-fitness/pkg/redact"
)

// State - состояние аутентификации.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// User - текущий пользователь из /auth/me.
type User struct {
	ID    string
	Email string
	Name  string
}

// Backend - вызовы бэкенда, нужные контроллеру (*api.Client).
type Backend interface {
	SignUp(ctx context.Context, in rest.SignUpRequest) (*rest.SignUpResponse, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	SignIn(ctx context.Context, email, password string) (*rest.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*rest.TokenResponse, error)
	SignOut(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (*rest.UserInfo, error)
}

// Controller владеет состоянием сессии. Безопасен для конкурентного
// использования: операции выполняются последовательно под mu.
type Controller struct {
	mu     sync.Mutex
	api    Backend
	store  tokenstore.Store
	state  State
	user   *User
	revoke bool
	closed bool
}

// Option настраивает Controller.
type Option func(*Controller)

// WithServerRevoke включает отзыв refresh-токена на сервере при SignOut.
// Отзыв best-effort: его ошибка не мешает локальному выходу.
func WithServerRevoke(on bool) Option {
	return func(c *Controller) { c.revoke = on }
}

func New(backend Backend, store tokenstore.Store, opts ...Option) *Controller {
	c := &Controller{
		api:   backend,
		store: store,
		state: StateUnknown,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State возвращает текущее состояние.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// User возвращает копию текущего пользователя.
func (c *Controller) User() (User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// SignUp регистрирует аккаунт. Состояние не меняется: аккаунт ещё не подтверждён.
func (c *Controller) SignUp(ctx context.Context, email, password, name string) error {
	const op = "client.session.SignUp"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClosed
	}

	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	if _, err := c.api.SignUp(ctx, rest.SignUpRequest{Email: email, Password: password, Name: name}); err != nil {
		lg.Warn("signup_rejected", slog.String("err", err.Error()))
		return authError(err)
	}

	lg.Info("signup_ok")
	return nil
}

// ConfirmSignUp подтверждает email кодом. Локальное состояние не меняется.
func (c *Controller) ConfirmSignUp(ctx context.Context, email, code string) error {
	const op = "client.session.ConfirmSignUp"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClosed
	}

	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	if err := c.api.ConfirmSignUp(ctx, email, code); err != nil {
		lg.Warn("confirm_rejected", slog.String("err", err.Error()))
		return authError(err)
	}

	lg.Info("confirm_ok")
	return nil
}

// SignIn обменивает логин/пароль на токены, сохраняет их и загружает
// пользователя. Если /auth/me не удался, токены остаются в хранилище,
// пользователь не выставляется, ошибка возвращается.
func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	const op = "client.session.SignIn"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClosed
	}

	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	tok, err := c.api.SignIn(ctx, email, password)
	if err != nil {
		lg.Warn("signin_rejected", slog.String("err", err.Error()))
		return authError(err)
	}

	if err := c.store.Save(ctx, pairFrom(tok, "")); err != nil {
		lg.Error("token_save_failed", slog.String("err", err.Error()))
		return authError(err)
	}

	// В хранилище уже токены нового входа: прежний пользователь недействителен.
	c.user = nil
	c.state = StateUnknown

	if err := c.fetchUserLocked(ctx); err != nil {
		lg.Warn("me_failed_after_signin", slog.String("err", err.Error()))
		return authError(err)
	}

	lg.Info("signin_ok")
	return nil
}

// SignOut очищает хранилище и переводит в Unauthenticated. Не падает.
func (c *Controller) SignOut(ctx context.Context) {
	const op = "client.session.SignOut"

	c.mu.Lock()
	defer c.mu.Unlock()

	lg := log.From(ctx).With("op", op)

	var refresh string
	if c.revoke {
		refresh, _, _ = c.store.RefreshToken(ctx)
	}

	c.signOutLocked(ctx)

	if refresh != "" {
		if err := c.api.SignOut(ctx, refresh); err != nil {
			lg.Warn("server_revoke_failed", slog.String("err", err.Error()))
		}
	}

	lg.Info("signout_ok")
}

// RefreshAuth обновляет пару токенов по refresh-токену.
// Без refresh-токена сеть не трогается. Отказ бэкенда завершает сессию.
func (c *Controller) RefreshAuth(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClosed
	}

	return c.refreshLocked(ctx)
}

// Initialize восстанавливает сессию при старте процесса: /auth/me по
// сохранённому access-токену, при неудаче один refresh, затем выход.
// Возвращает ошибку последнего шага, если сессию восстановить не удалось.
func (c *Controller) Initialize(ctx context.Context) error {
	const op = "client.session.Initialize"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errClosed
	}

	lg := log.From(ctx).With("op", op)

	_, ok, err := c.store.AccessToken(ctx)
	if err != nil {
		lg.Error("token_read_failed", slog.String("err", err.Error()))
		c.signOutLocked(ctx)
		return authError(err)
	}
	if !ok {
		c.state = StateUnauthenticated
		lg.Debug("no_stored_session")
		return nil
	}

	meErr := c.fetchUserLocked(ctx)
	if meErr == nil {
		lg.Info("session_restored")
		return nil
	}
	lg.Info("session_me_failed_trying_refresh", slog.String("err", meErr.Error()))

	if err := c.refreshLocked(ctx); err != nil {
		c.signOutLocked(ctx)
		lg.Info("session_not_restored", slog.String("err", err.Error()))
		return err
	}

	lg.Info("session_restored_after_refresh")
	return nil
}

// Close завершает жизненный цикл контроллера. Хранилище не очищается.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.user = nil
	c.state = StateUnknown
	return nil
}

func (c *Controller) refreshLocked(ctx context.Context) error {
	const op = "client.session.RefreshAuth"

	lg := log.From(ctx).With("op", op)

	refresh, ok, err := c.store.RefreshToken(ctx)
	if err != nil {
		lg.Error("token_read_failed", slog.String("err", err.Error()))
		c.signOutLocked(ctx)
		return authError(err)
	}
	if !ok {
		return &AuthError{Message: "no refresh token"}
	}

	tok, err := c.api.Refresh(ctx, refresh)
	if err != nil {
		lg.Warn("refresh_rejected", slog.String("err", err.Error()))
		c.signOutLocked(ctx)
		return authError(err)
	}

	if err := c.store.Save(ctx, pairFrom(tok, refresh)); err != nil {
		lg.Error("token_save_failed", slog.String("err", err.Error()))
		c.signOutLocked(ctx)
		return authError(err)
	}

	if err := c.fetchUserLocked(ctx); err != nil {
		lg.Warn("me_failed_after_refresh", slog.String("err", err.Error()))
		c.signOutLocked(ctx)
		return authError(err)
	}

	lg.Info("refresh_ok")
	return nil
}

func (c *Controller) fetchUserLocked(ctx context.Context) error {
	me, err := c.api.Me(ctx)
	if err != nil {
		return err
	}

	c.user = &User{ID: me.UserID, Email: me.Email, Name: me.Name}
	c.state = StateAuthenticated
	return nil
}

func (c *Controller) signOutLocked(ctx context.Context) {
	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		log.From(ctx).Error("token_clear_failed", slog.String("err", err.Error()))
	}

	c.user = nil
	c.state = StateUnauthenticated
}

// pairFrom собирает пару для хранилища; пустой refresh-токен в ответе
// заменяется прежним.
func pairFrom(tok *rest.TokenResponse, prevRefresh string) tokenstore.CredentialPair {
	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = prevRefresh
	}

	return tokenstore.CredentialPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: refresh,
		TokenType:    tok.TokenType,
		ExpiresIn:    tok.ExpiresIn,
	}
}

// AuthError - любой отказ в операции с учётными данными.
// Message показывается пользователю как есть.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

var errClosed = &AuthError{Message: "session closed"}

func authError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &AuthError{Message: apiErr.Message, Err: err}
	}

	return &AuthError{Message: err.Error(), Err: err}
}
