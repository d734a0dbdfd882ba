package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupEvent - групповая тренировка (заезд/забег).
type GroupEvent struct {
	ID          int64
	Name        string
	SportType   string
	StartAt     time.Time
	Lat         *float64
	Lng         *float64
	Access      Access
	EventType   string
	Distance    int32 // км
	GPSFileLink *string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Access string

const (
	AccessPublic     Access = "public"
	AccessPrivate    Access = "private"
	AccessInviteOnly Access = "invite_only"
)

func (a Access) Valid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessInviteOnly:
		return true
	}
	return false
}
