package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-group-fitness/internal/http/errors"
	"github.com/pribylovaa/go-group-fitness/pkg/api"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.Users.Profile(r.Context(), id.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToAPI(p))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in api.ProfileUpdate
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.Users.UpdateProfile(r.Context(), id.UserID, profileUpdateFromAPI(in))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileToAPI(p))
}

// AutoCreateProfile идемпотентен: 201 при создании, 200 если профиль уже был.
func (h *Handlers) AutoCreateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, created, err := h.Users.AutoCreateProfile(r.Context(), id.UserID, id.Email)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	status, msg := http.StatusOK, "Profile already exists"
	if created {
		status, msg = http.StatusCreated, "Profile created successfully"
	}

	writeJSON(w, status, api.ProfileResponse{Message: msg, Profile: profileToAPI(p)})
}

func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.Users.Preferences(r.Context(), id.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preferencesToAPI(p))
}

func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in api.PreferencesUpdate
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.Users.UpdatePreferences(r.Context(), id.UserID, preferencesUpdateFromAPI(in))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preferencesToAPI(p))
}

func (h *Handlers) UserMe(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	profile, prefs, err := h.Users.Me(r.Context(), id.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := api.UserWithPreferences{Profile: profileToAPI(profile)}
	if prefs != nil {
		p := preferencesToAPI(prefs)
		out.Preferences = &p
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) Onboarding(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in api.OnboardingRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	profile, prefs, err := h.Users.Onboarding(r.Context(), id.UserID,
		profileUpdateFromAPI(in.Profile), preferencesUpdateFromAPI(in.Preferences))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.OnboardingResponse{
		Profile:     profileToAPI(profile),
		Preferences: preferencesToAPI(prefs),
		Message:     "Onboarding completed successfully",
	})
}
