// api - HTTP-клиент бэкенда.
// Подставляет Bearer-токен из хранилища сессии и приводит неуспешные ответы
// к *APIError. Ретраев и собственных таймаутов нет: поведение определяет
// транспорт.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
	"github.com/pribylovaa/go-group-fitness/pkg/log"
)

// TokenSource - источник access-токена (tokenstore.Store).
type TokenSource interface {
	AccessToken(ctx context.Context) (string, bool, error)
}

// maxErrorBody - сколько байт тела ошибки читаем для разбора detail.
const maxErrorBody = 64 << 10

// Client - обёртка над http.Client. Состояния не хранит.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет транспорт (тесты, прокси).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Request выполняет JSON-запрос.
// body == nil - запрос без тела; out == nil - тело ответа отбрасывается.
// authenticated добавляет Authorization из TokenSource; без токена запрос
// всё равно отправляется.
func (c *Client) Request(ctx context.Context, method, path string, body any, authenticated bool, out any) error {
	const op = "client.api.Request"

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated && c.tokens != nil {
		tok, ok, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("%s: read token: %w", op, err)
		}
		if ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.From(ctx).Debug("api_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
		return transportError(err)
	}
	defer resp.Body.Close()

	log.From(ctx).Debug("api_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("dur", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

// decodeError строит *APIError: structured, если в теле есть непустой detail.
func decodeError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body rest.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return structuredError(resp.StatusCode, body.Detail, body.Code, body.RequestID)
	}

	return genericError(resp.StatusCode)
}
