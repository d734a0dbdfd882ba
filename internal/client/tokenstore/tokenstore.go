// tokenstore хранит пару токенов клиента.
// Хранилище ничего не проверяет и не следит за сроками: истёкший токен
// отвергнет бэкенд.
package tokenstore

import (
	"context"
	"sync"
)

// CredentialPair - пара токенов из ответа signin/refresh.
type CredentialPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64 // секунды
}

// Store - контракт хранилища сессии.
// Пишет в него только session.Controller, читает api.Client.
type Store interface {
	Save(ctx context.Context, pair CredentialPair) error
	Clear(ctx context.Context) error
	AccessToken(ctx context.Context) (string, bool, error)
	RefreshToken(ctx context.Context) (string, bool, error)
}

// Memory - хранилище в памяти процесса (тесты, одноразовые запуски).
type Memory struct {
	mu   sync.RWMutex
	pair *CredentialPair
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, pair CredentialPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pair = &pair
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pair = nil
	return nil
}

func (m *Memory) AccessToken(context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pair == nil || m.pair.AccessToken == "" {
		return "", false, nil
	}
	return m.pair.AccessToken, true, nil
}

func (m *Memory) RefreshToken(context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pair == nil || m.pair.RefreshToken == "" {
		return "", false, nil
	}
	return m.pair.RefreshToken, true, nil
}
