package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/pribylovaa/go-group-fitness/pkg/log"
)

// errServiceTimeout - причина отмены контекста по таймауту запроса.
var errServiceTimeout = errors.New("service timeout")

// Timeout ограничивает время обработки запроса значением d.
// Более ранний deadline клиента сохраняется; d <= 0 отключает ограничение.
// Если обработчик упёрся в deadline, пишется warn request_deadline_exceeded.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if dl, ok := ctx.Deadline(); ok && time.Until(dl) <= d {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeoutCause(ctx, d, errServiceTimeout)
			defer cancel()

			start := time.Now()
			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(context.Cause(ctx), errServiceTimeout) {
				logctx.From(ctx).Warn("request_deadline_exceeded",
					slog.String("path", r.URL.Path),
					slog.Duration("limit", d),
					slog.Duration("dur", time.Since(start)),
				)
			}
		})
	}
}
