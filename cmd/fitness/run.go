package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pribylovaa/go-group-fitness/internal/client/flow"
	"github.com/pribylovaa/go-group-fitness/internal/client/session"
)

// runFlow - интерактивный режим: экран выбирается flow.Select, каждый экран
// обрабатывает ввод и сообщает событие контроллеру потока.
func (a *app) runFlow(ctx context.Context) error {
	ctx = a.ctx(ctx)

	if err := a.startSession(ctx); err != nil {
		return err
	}

	for {
		screen := a.flow.Screen()
		a.log.Debug("flow_screen", slog.String("screen", screen.String()))

		var err error
		switch screen {
		case flow.ScreenLoading:
			// Проба профиля не дала ответа: показываем ошибку, не онбординг.
			return errors.New("the service is unavailable, try again later")
		case flow.ScreenSignIn:
			err = a.screenSignIn(ctx)
		case flow.ScreenSignUp:
			err = a.screenSignUp(ctx)
		case flow.ScreenConfirmEmail:
			err = a.screenConfirm(ctx)
		case flow.ScreenWelcomeGate:
			err = a.screenWelcome()
		case flow.ScreenOnboarding:
			err = runWizard(ctx, a)
		case flow.ScreenMain:
			return a.screenMain(ctx)
		}

		if err == nil {
			continue
		}
		if errors.Is(err, huh.ErrUserAborted) {
			return err
		}

		var ae *session.AuthError
		if !errors.As(err, &ae) {
			return err
		}
		warn(stdout, "%s", ae.Message)
	}
}

// startSession восстанавливает сессию и запускает пробу профиля.
func (a *app) startSession(ctx context.Context) error {
	if err := a.session.Initialize(ctx); err != nil {
		a.log.Info("stored_session_dropped", slog.String("err", err.Error()))
	}

	if a.session.State() != session.StateAuthenticated {
		a.flow.Unauthenticated()
		return nil
	}

	if err := a.flow.Authenticated(ctx); err != nil {
		a.log.Warn("profile_probe_failed", slog.String("err", err.Error()))
	}
	return nil
}

func (a *app) screenSignIn(ctx context.Context) error {
	var (
		email, password string
		action          = "signin"
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Welcome").
				Options(
					huh.NewOption("Sign in", "signin"),
					huh.NewOption("Create an account", "signup"),
				).
				Value(&action),
		),
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&email).Validate(validateEmail),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(validateRequired),
		).WithHideFunc(func() bool { return action != "signin" }),
	).Run()
	if err != nil {
		return err
	}

	if action == "signup" {
		a.flow.ShowSignUp()
		return nil
	}

	if err := a.session.SignIn(ctx, strings.TrimSpace(email), password); err != nil {
		return err
	}

	if err := a.flow.Authenticated(ctx); err != nil {
		a.log.Warn("profile_probe_failed", slog.String("err", err.Error()))
	}
	return nil
}

func (a *app) screenSignUp(ctx context.Context) error {
	var (
		email, password, name string
		create                = true
	)

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Email").Value(&email).Validate(validateEmail),
		huh.NewInput().Title("Name").Description("optional").Value(&name),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(validateRequired),
		huh.NewConfirm().Title("Create the account?").Affirmative("Create").Negative("Back to sign in").Value(&create),
	)).Run()
	if err != nil {
		return err
	}

	if !create {
		a.flow.ShowSignIn()
		return nil
	}

	email = strings.TrimSpace(email)
	if err := a.session.SignUp(ctx, email, password, strings.TrimSpace(name)); err != nil {
		return err
	}

	a.flow.SignUpSucceeded(email)
	return nil
}

func (a *app) screenConfirm(ctx context.Context) error {
	email := a.flow.State().PendingSignupEmail
	var code string

	err := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title("Confirm your email").Description(fmt.Sprintf("We sent a 6-digit code to %s.", email)),
		huh.NewInput().Title("Code").CharLimit(6).Value(&code).Validate(validateCode),
	)).Run()
	if err != nil {
		return err
	}

	if err := a.session.ConfirmSignUp(ctx, email, strings.TrimSpace(code)); err != nil {
		return err
	}

	a.flow.ConfirmSucceeded()
	success(stdout, "Email confirmed. Sign in to continue.")
	return nil
}

func (a *app) screenWelcome() error {
	start := true

	err := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title("Welcome!").Description("Tell us a bit about yourself to find people to train with."),
		huh.NewConfirm().Title("Set up your profile now?").Affirmative("Let's go").Negative("Later").Value(&start),
	)).Run()
	if err != nil {
		return err
	}

	if !start {
		return huh.ErrUserAborted
	}

	a.flow.OnboardingStarted()
	return nil
}

func (a *app) screenMain(ctx context.Context) error {
	u, _ := a.session.User()
	fmt.Fprintln(stdout, renderTable("Signed in", []kv{
		{"Email", u.Email},
		{"Name", u.Name},
	}))

	events, err := a.client.ListEvents(ctx, listLatest)
	if err != nil {
		warn(stdout, "Could not load events: %s", err)
		return nil
	}

	fmt.Fprintln(stdout, styles.Title.Render("Latest events"))
	for _, ev := range events {
		fmt.Fprintln(stdout, eventLine(ev))
	}
	return nil
}
