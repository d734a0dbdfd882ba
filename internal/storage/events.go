package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-group-fitness/internal/models"
)

// EventUpdate - частичный апдейт события.
type EventUpdate struct {
	Name        *string
	SportType   *string
	StartAt     *time.Time
	Lat         *float64
	Lng         *float64
	Access      *models.Access
	EventType   *string
	Distance    *int32
	GPSFileLink *string
}

// EventFilter - параметры выборки списка.
type EventFilter struct {
	SportType string
	Limit     int
	Offset    int
}

// EventsStorage - контракт репозитория групповых событий.
type EventsStorage interface {
	// CreateEvent вставляет событие; ErrNotFound, если у создателя нет профиля.
	CreateEvent(ctx context.Context, event *models.GroupEvent) (*models.GroupEvent, error)
	// EventByID возвращает событие по ID.
	EventByID(ctx context.Context, id int64) (*models.GroupEvent, error)
	// ListEvents возвращает события, новые первыми (created_at DESC).
	ListEvents(ctx context.Context, filter EventFilter) ([]*models.GroupEvent, error)
	// UpdateEvent обновляет событие, принадлежащее createdBy.
	UpdateEvent(ctx context.Context, id int64, createdBy uuid.UUID, update EventUpdate) (*models.GroupEvent, error)
	// DeleteEvent удаляет событие, принадлежащее createdBy.
	DeleteEvent(ctx context.Context, id int64, createdBy uuid.UUID) error
}
