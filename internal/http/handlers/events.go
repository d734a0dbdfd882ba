package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-group-fitness/internal/http/errors"
	"github.com/pribylovaa/go-group-fitness/internal/storage"
	"github.com/pribylovaa/go-group-fitness/pkg/api"
)

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in api.CreateEventRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ev, err := h.Events.Create(r.Context(), id.UserID, createInputFromAPI(in))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, eventToAPI(ev))
}

// ListEvents поддерживает query-параметры sport_type, limit, offset.
func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.EventFilter{SportType: q.Get("sport_type")}

	var err error
	if filter.Limit, err = queryInt(q.Get("limit")); err != nil {
		apierrors.WriteError(w, r, apierrors.BadRequest("limit must be a non-negative integer"))
		return
	}
	if filter.Offset, err = queryInt(q.Get("offset")); err != nil {
		apierrors.WriteError(w, r, apierrors.BadRequest("offset must be a non-negative integer"))
		return
	}

	list, err := h.Events.List(r.Context(), filter)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]api.GroupEvent, 0, len(list))
	for _, ev := range list {
		out = append(out, eventToAPI(ev))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := eventIDParam(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ev, err := h.Events.Get(r.Context(), eventID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventToAPI(ev))
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in api.UpdateEventRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ev, err := h.Events.Update(r.Context(), eventID, id.UserID, eventUpdateFromAPI(in))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventToAPI(ev))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Events.Delete(r.Context(), eventID, id.UserID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GPSPresign(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in api.GPSPresignRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	info, err := h.Events.GPSUploadURL(r.Context(), eventID, id.UserID, in.ContentType, in.ContentLength)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.GPSPresignResponse{
		UploadURL:       info.UploadURL,
		FileKey:         info.FileKey,
		ExpiresSeconds:  int64(info.Expires.Seconds()),
		RequiredHeaders: info.RequiredHeader,
	})
}

func (h *Handlers) GPSConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in api.GPSConfirmRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ev, err := h.Events.ConfirmGPSUpload(r.Context(), eventID, id.UserID, in.FileKey)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, eventToAPI(ev))
}

func eventIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierrors.BadRequest("Invalid event id")
	}
	return id, nil
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
