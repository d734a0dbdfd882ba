package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := &app{}
	defer func() { _ = a.close() }()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(os.Stderr, styles.Error.Render(err.Error()))
		}
		return 1
	}

	return 0
}

func newRootCmd(a *app) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "fitness",
		Short:         "Client for the group fitness service",
		Long:          "Without a subcommand starts the interactive flow: sign in or sign up, onboarding, then a summary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), configPath)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFlow(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newSignUpCmd(a),
		newConfirmCmd(a),
		newResendCodeCmd(a),
		newSignInCmd(a),
		newSignOutCmd(a),
		newWhoAmICmd(a),
		newRefreshCmd(a),
		newForgotPasswordCmd(a),
		newResetPasswordCmd(a),
		newOnboardingCmd(a),
		newProfileCmd(a),
		newEventsCmd(a),
	)

	return root
}

// setupLogger настраивает slog по окружению. Вывод в stderr, чтобы не
// смешиваться с результатом команд.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
