package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

// PurgeExpired удаляет просроченные refresh-токены и коды подтверждения.
func (s *Service) PurgeExpired(ctx context.Context) (tokens, codes int64, err error) {
	const op = "service.auth.PurgeExpired"

	now := s.now()

	tokens, err = s.storage.DeleteExpiredTokens(ctx, now)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	codes, err = s.storage.DeleteExpiredCodes(ctx, now)
	if err != nil {
		return tokens, 0, fmt.Errorf("%s: %w", op, err)
	}

	janitorPurgedTotal.WithLabelValues("refresh_tokens").Add(float64(tokens))
	janitorPurgedTotal.WithLabelValues("codes").Add(float64(codes))

	return tokens, codes, nil
}

// StartJanitor периодически вызывает PurgeExpired до отмены ctx.
// period <= 0 отключает очистку.
func (s *Service) StartJanitor(ctx context.Context, period time.Duration) {
	if period <= 0 {
		return
	}

	lg := log.From(ctx)

	go func() {
		t := time.NewTicker(period)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				tokens, codes, err := s.PurgeExpired(ctx)
				if err != nil {
					lg.Error("refresh_janitor_failed", slog.String("err", err.Error()))
					continue
				}

				lg.Debug("refresh_janitor_tick",
					slog.Int64("refresh_tokens", tokens),
					slog.Int64("codes", codes),
				)
			}
		}
	}()
}
