package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile - публичный профиль пользователя, один на user_id.
type Profile struct {
	ID           int64
	UserID       uuid.UUID
	Email        string
	Name         *string
	Bio          *string
	LocationLat  *float64
	LocationLng  *float64
	LocationName *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Preferences - спортивные предпочтения, один к одному с Profile.
type Preferences struct {
	ID               int64
	UserID           uuid.UUID
	Sports           []Sport
	PreferredPace    *Pace
	RideType         *RideType
	DistanceRangeMin *int32
	DistanceRangeMax *int32
	Availability     []Weekday
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Sport string

const (
	SportRunning Sport = "running"
	SportCycling Sport = "cycling"
)

func (s Sport) Valid() bool {
	return s == SportRunning || s == SportCycling
}

type Pace string

const (
	PaceCasual   Pace = "casual"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast"
)

func (p Pace) Valid() bool {
	switch p {
	case PaceCasual, PaceModerate, PaceFast:
		return true
	}
	return false
}

type RideType string

const (
	RideCasual      RideType = "casual"
	RideDrop        RideType = "drop_ride"
	RideCompetitive RideType = "competitive"
)

func (r RideType) Valid() bool {
	switch r {
	case RideCasual, RideDrop, RideCompetitive:
		return true
	}
	return false
}

type Weekday string

// Weekdays - допустимые значения availability в порядке недели.
var Weekdays = []Weekday{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}
