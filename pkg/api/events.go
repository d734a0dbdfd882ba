package api

import "time"

type GroupEvent struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SportType   string    `json:"sport_type"`
	StartAt     time.Time `json:"start_at"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	Access      string    `json:"access"`
	EventType   string    `json:"event_type"`
	Distance    int32     `json:"distance"`
	GPSFileLink *string   `json:"gps_file_link,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateEventRequest struct {
	Name        string    `json:"name"`
	SportType   string    `json:"sport_type"`
	StartAt     time.Time `json:"start_at"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	Access      string    `json:"access"`
	EventType   string    `json:"event_type"`
	Distance    int32     `json:"distance"`
	GPSFileLink *string   `json:"gps_file_link,omitempty"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty"`
	SportType   *string    `json:"sport_type,omitempty"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
	Access      *string    `json:"access,omitempty"`
	EventType   *string    `json:"event_type,omitempty"`
	Distance    *int32     `json:"distance,omitempty"`
	GPSFileLink *string    `json:"gps_file_link,omitempty"`
}

type GPSPresignRequest struct {
	ContentType   string `json:"content_type"`
	ContentLength int64  `json:"content_length"`
}

type GPSPresignResponse struct {
	UploadURL       string            `json:"upload_url"`
	FileKey         string            `json:"file_key"`
	ExpiresSeconds  int64             `json:"expires_seconds"`
	RequiredHeaders map[string]string `json:"required_headers"`
}

type GPSConfirmRequest struct {
	FileKey string `json:"file_key"`
}
