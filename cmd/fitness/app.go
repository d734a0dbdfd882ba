package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-group-fitness/internal/client/api"
	"github.com/pribylovaa/go-group-fitness/internal/client/config"
	"github.com/pribylovaa/go-group-fitness/internal/client/flow"
	"github.com/pribylovaa/go-group-fitness/internal/client/session"
	"github.com/pribylovaa/go-group-fitness/internal/client/tokenstore"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

// app - зависимости одного запуска CLI. Открывается в PersistentPreRunE,
// закрывается в run.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *tokenstore.Badger
	client  *api.Client
	session *session.Controller
	flow    *flow.Controller
}

func (a *app) open(ctx context.Context, configPath string) error {
	const op = "cmd.fitness.open"

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.cfg = cfg
	a.log = setupLogger(cfg.Env)
	slog.SetDefault(a.log)

	store, err := tokenstore.OpenBadger(cfg.StorePath, a.log)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.store = store

	a.client = api.New(cfg.APIURL, store)
	a.session = session.New(a.client, store, session.WithServerRevoke(true))
	a.flow = flow.New(a.client)

	a.log.Debug("client_initialized",
		slog.String("api_url", cfg.APIURL),
		slog.String("store_path", cfg.StorePath),
	)

	return nil
}

func (a *app) close() error {
	if a.session != nil {
		_ = a.session.Close()
		a.session = nil
	}
	if a.store != nil {
		err := a.store.Close()
		a.store = nil
		return err
	}
	return nil
}

// ctx добавляет логгер приложения в контекст команды.
func (a *app) ctx(ctx context.Context) context.Context {
	return log.Into(ctx, a.log)
}

// restore поднимает сохранённую сессию; без неё команда не выполняется.
func (a *app) restore(ctx context.Context) (session.User, error) {
	if err := a.session.Initialize(ctx); err != nil {
		return session.User{}, fmt.Errorf("session expired, sign in again: %w", err)
	}

	u, ok := a.session.User()
	if !ok {
		return session.User{}, fmt.Errorf("not signed in, run `fitness signin`")
	}
	return u, nil
}
