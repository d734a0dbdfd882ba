package api

import "time"

type Profile struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	LocationLat  *float64  `json:"location_lat,omitempty"`
	LocationLng  *float64  `json:"location_lng,omitempty"`
	LocationName *string   `json:"location_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate - частичное обновление: nil-поля не меняются.
type ProfileUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	LocationLat  *float64 `json:"location_lat,omitempty"`
	LocationLng  *float64 `json:"location_lng,omitempty"`
	LocationName *string  `json:"location_name,omitempty"`
}

type Preferences struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"user_id"`
	Sports           []string  `json:"sports"`
	PreferredPace    *string   `json:"preferred_pace,omitempty"`
	RideType         *string   `json:"ride_type,omitempty"`
	DistanceRangeMin *int32    `json:"distance_range_min,omitempty"`
	DistanceRangeMax *int32    `json:"distance_range_max,omitempty"`
	Availability     []string  `json:"availability"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PreferencesUpdate - частичное обновление; nil-слайс означает "не менять",
// пустой слайс - очистить.
type PreferencesUpdate struct {
	Sports           []string `json:"sports,omitempty"`
	PreferredPace    *string  `json:"preferred_pace,omitempty"`
	RideType         *string  `json:"ride_type,omitempty"`
	DistanceRangeMin *int32   `json:"distance_range_min,omitempty"`
	DistanceRangeMax *int32   `json:"distance_range_max,omitempty"`
	Availability     []string `json:"availability,omitempty"`
}

type ProfileResponse struct {
	Message string  `json:"message,omitempty"`
	Profile Profile `json:"profile"`
}

type UserWithPreferences struct {
	Profile     Profile      `json:"profile"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

type OnboardingRequest struct {
	Profile     ProfileUpdate     `json:"profile"`
	Preferences PreferencesUpdate `json:"preferences"`
}

type OnboardingResponse struct {
	Profile     Profile     `json:"profile"`
	Preferences Preferences `json:"preferences"`
	Message     string      `json:"message"`
}
