// onboarding - анкета нового пользователя: шаги, значения полей и
// двухфазная отправка (auto-create профиля, затем общая запись профиля
// и предпочтений).
package onboarding

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/pribylovaa/go-group-fitness/internal/client/api"
	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

// Step - шаг анкеты.
type Step int

const (
	StepAbout Step = iota
	StepSports
	StepSchedule
)

func (s Step) String() string {
	switch s {
	case StepAbout:
		return "about"
	case StepSports:
		return "sports"
	case StepSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// Fields - значения полей анкеты. Пустые значения не отправляются.
type Fields struct {
	Name         string
	Bio          string
	LocationName string
	LocationLat  *float64
	LocationLng  *float64

	Sports        []string
	PreferredPace string
	RideType      string
	DistanceMin   *int32
	DistanceMax   *int32
	Availability  []string
}

// ProfileAPI - вызовы бэкенда для анкеты (*api.Client).
type ProfileAPI interface {
	AutoCreateProfile(ctx context.Context) (*rest.Profile, error)
	Onboarding(ctx context.Context, in rest.OnboardingRequest) (*rest.OnboardingResponse, error)
}

// Notifier получает событие успешного онбординга (*flow.Controller).
type Notifier interface {
	OnboardingCompleted()
}

// Wizard хранит шаг и поля анкеты. Ничего не сохраняет между запусками.
type Wizard struct {
	mu         sync.Mutex
	api        ProfileAPI
	notify     Notifier
	step       Step
	fields     Fields
	submitting bool
}

func New(profiles ProfileAPI, notify Notifier) *Wizard {
	return &Wizard{api: profiles, notify: notify}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.step
}

// Next переходит к следующему шагу; на последнем шаге ничего не делает.
func (w *Wizard) Next() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step < StepSchedule {
		w.step++
	}
	return w.step
}

// Back возвращает на предыдущий шаг; на первом ничего не делает.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepAbout {
		w.step--
	}
	return w.step
}

// IsLast - текущий шаг последний, дальше только Submit.
func (w *Wizard) IsLast() bool {
	return w.Step() == StepSchedule
}

// Fields возвращает копию значений.
func (w *Wizard) Fields() Fields {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.fields
}

// Update меняет значения полей.
func (w *Wizard) Update(fn func(f *Fields)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	fn(&w.fields)
}

// Submitting - идёт отправка; форма должна быть заблокирована.
func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.submitting
}

// Submit создаёт профиль (идемпотентно) и записывает анкету.
// Вторая фаза выполняется только после успеха первой. Любой отказ
// возвращается как *ProfileError, flow не уведомляется.
func (w *Wizard) Submit(ctx context.Context) (*rest.OnboardingResponse, error) {
	const op = "client.onboarding.Submit"

	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, &ProfileError{Phase: PhaseSubmit, Message: "submit already in progress"}
	}
	w.submitting = true
	req := w.fields.request()
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	lg := log.From(ctx).With("op", op)

	if _, err := w.api.AutoCreateProfile(ctx); err != nil {
		lg.Warn("auto_create_failed", slog.String("err", err.Error()))
		return nil, profileError(PhaseAutoCreate, err)
	}

	resp, err := w.api.Onboarding(ctx, req)
	if err != nil {
		lg.Warn("onboarding_failed", slog.String("err", err.Error()))
		return nil, profileError(PhaseOnboarding, err)
	}

	if w.notify != nil {
		w.notify.OnboardingCompleted()
	}

	lg.Info("onboarding_ok")
	return resp, nil
}

func (f Fields) request() rest.OnboardingRequest {
	return rest.OnboardingRequest{
		Profile: rest.ProfileUpdate{
			Name:         optString(f.Name),
			Bio:          optString(f.Bio),
			LocationLat:  f.LocationLat,
			LocationLng:  f.LocationLng,
			LocationName: optString(f.LocationName),
		},
		Preferences: rest.PreferencesUpdate{
			Sports:           clean(f.Sports),
			PreferredPace:    optString(f.PreferredPace),
			RideType:         optString(f.RideType),
			DistanceRangeMin: f.DistanceMin,
			DistanceRangeMax: f.DistanceMax,
			Availability:     clean(f.Availability),
		},
	}
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// clean убирает пустые элементы; nil и пустой результат дают nil (не менять).
func clean(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Phase - на какой фазе отправки произошла ошибка.
type Phase string

const (
	PhaseSubmit     Phase = "submit"
	PhaseAutoCreate Phase = "auto_create"
	PhaseOnboarding Phase = "onboarding"
)

// ProfileError - отказ в чтении или записи профиля/предпочтений.
type ProfileError struct {
	Phase   Phase
	Message string
	Err     error
}

func (e *ProfileError) Error() string { return e.Message }

func (e *ProfileError) Unwrap() error { return e.Err }

func profileError(phase Phase, err error) *ProfileError {
	msg := err.Error()

	var ae *api.APIError
	if errors.As(err, &ae) {
		msg = ae.Message
	}

	return &ProfileError{Phase: phase, Message: msg, Err: err}
}
