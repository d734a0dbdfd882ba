package handlers

import (
	"time"

	"github.com/pribylovaa/go-group-fitness/internal/models"
	"github.com/pribylovaa/go-group-fitness/internal/service/events"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/pribylovaa/go-group-fitness/pkg/api"
)

func tokenResponse(p *models.TokenPair, ttl time.Duration) api.TokenResponse {
	return api.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(ttl.Seconds()),
	}
}

func userInfo(u *models.User) api.UserInfo {
	return api.UserInfo{
		UserID:        u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
	}
}

func profileToAPI(p *models.Profile) api.Profile {
	return api.Profile{
		ID:           p.ID,
		UserID:       p.UserID.String(),
		Email:        p.Email,
		Name:         p.Name,
		Bio:          p.Bio,
		LocationLat:  p.LocationLat,
		LocationLng:  p.LocationLng,
		LocationName: p.LocationName,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func profileUpdateFromAPI(in api.ProfileUpdate) storage.ProfileUpdate {
	return storage.ProfileUpdate{
		Name:         in.Name,
		Bio:          in.Bio,
		LocationLat:  in.LocationLat,
		LocationLng:  in.LocationLng,
		LocationName: in.LocationName,
	}
}

func preferencesToAPI(p *models.Preferences) api.Preferences {
	out := api.Preferences{
		ID:               p.ID,
		UserID:           p.UserID.String(),
		Sports:           make([]string, 0, len(p.Sports)),
		DistanceRangeMin: p.DistanceRangeMin,
		DistanceRangeMax: p.DistanceRangeMax,
		Availability:     make([]string, 0, len(p.Availability)),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	for _, s := range p.Sports {
		out.Sports = append(out.Sports, string(s))
	}
	for _, d := range p.Availability {
		out.Availability = append(out.Availability, string(d))
	}
	if p.PreferredPace != nil {
		v := string(*p.PreferredPace)
		out.PreferredPace = &v
	}
	if p.RideType != nil {
		v := string(*p.RideType)
		out.RideType = &v
	}
	return out
}

// preferencesUpdateFromAPI сохраняет различие nil/пустой слайс:
// отсутствующее поле не меняется, [] очищает колонку.
func preferencesUpdateFromAPI(in api.PreferencesUpdate) storage.PreferencesUpdate {
	out := storage.PreferencesUpdate{
		DistanceRangeMin: in.DistanceRangeMin,
		DistanceRangeMax: in.DistanceRangeMax,
	}
	if in.Sports != nil {
		out.Sports = make([]models.Sport, 0, len(in.Sports))
		for _, s := range in.Sports {
			out.Sports = append(out.Sports, models.Sport(s))
		}
	}
	if in.Availability != nil {
		out.Availability = make([]models.Weekday, 0, len(in.Availability))
		for _, d := range in.Availability {
			out.Availability = append(out.Availability, models.Weekday(d))
		}
	}
	if in.PreferredPace != nil {
		v := models.Pace(*in.PreferredPace)
		out.PreferredPace = &v
	}
	if in.RideType != nil {
		v := models.RideType(*in.RideType)
		out.RideType = &v
	}
	return out
}

func eventToAPI(e *models.GroupEvent) api.GroupEvent {
	return api.GroupEvent{
		ID:          e.ID,
		Name:        e.Name,
		SportType:   e.SportType,
		StartAt:     e.StartAt,
		Lat:         e.Lat,
		Lng:         e.Lng,
		Access:      string(e.Access),
		EventType:   e.EventType,
		Distance:    e.Distance,
		GPSFileLink: e.GPSFileLink,
		CreatedBy:   e.CreatedBy.String(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func createInputFromAPI(in api.CreateEventRequest) events.CreateInput {
	return events.CreateInput{
		Name:        in.Name,
		SportType:   in.SportType,
		StartAt:     in.StartAt,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Access:      models.Access(in.Access),
		EventType:   in.EventType,
		Distance:    in.Distance,
		GPSFileLink: in.GPSFileLink,
	}
}

func eventUpdateFromAPI(in api.UpdateEventRequest) storage.EventUpdate {
	out := storage.EventUpdate{
		Name:        in.Name,
		SportType:   in.SportType,
		StartAt:     in.StartAt,
		Lat:         in.Lat,
		Lng:         in.Lng,
		EventType:   in.EventType,
		Distance:    in.Distance,
		GPSFileLink: in.GPSFileLink,
	}
	if in.Access != nil {
		a := models.Access(*in.Access)
		out.Access = &a
	}
	return out
}
