package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/go-group-fitness/internal/http/errors"
	"github.com/pribylovaa/go-group-fitness/internal/http/handlers"
	"github.com/pribylovaa/go-group-fitness/internal/http/middleware"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой - роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
// tokens проверяет Bearer-токены на защищённых роутах.
func NewRouter(h *handlers.Handlers, tokens middleware.TokenValidator, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, &apierrors.Error{Status: http.StatusNotFound, Code: "not_found", Detail: "Not Found"})
	})
	root.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, &apierrors.Error{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed", Detail: "Method Not Allowed"})
	})

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, tokens)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, tokens)
	return root
}

// registerRoutes - единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, tokens middleware.TokenValidator) {
	authn := middleware.Authenticate(tokens)

	// auth
	r.Post("/auth/signup", h.SignUp)
	r.Post("/auth/confirm-signup", h.ConfirmSignUp)
	r.Post("/auth/resend-code", h.ResendCode)
	r.Post("/auth/signin", h.SignIn)
	r.Post("/auth/refresh", h.Refresh)
	r.Post("/auth/forgot-password", h.ForgotPassword)
	r.Post("/auth/reset-password", h.ResetPassword)
	r.Post("/auth/signout", h.SignOut)
	r.With(authn).Get("/auth/me", h.Me)

	// users
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Get("/users/profile", h.GetProfile)
		r.Put("/users/profile", h.UpdateProfile)
		r.Post("/users/profile/auto-create", h.AutoCreateProfile)
		r.Get("/users/preferences", h.GetPreferences)
		r.Put("/users/preferences", h.UpdatePreferences)
		r.Get("/users/me", h.UserMe)
		r.Post("/users/onboarding", h.Onboarding)
	})

	// group events
	r.Get("/group_events", h.ListEvents)
	r.Get("/group_events/{id}", h.GetEvent)
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Post("/group_events", h.CreateEvent)
		r.Patch("/group_events/{id}", h.UpdateEvent)
		r.Delete("/group_events/{id}", h.DeleteEvent)
		r.Post("/group_events/{id}/gps/presign", h.GPSPresign)
		r.Post("/group_events/{id}/gps/confirm", h.GPSConfirm)
	})
}
