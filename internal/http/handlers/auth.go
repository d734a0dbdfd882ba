package handlers

import (
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/go-group-fitness/internal/http/errors"
	"github.com/pribylovaa/go-group-fitness/pkg/api"
)

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var in api.SignUpRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.Auth.SignUp(r.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.SignUpResponse{
		UserID:  user.ID.String(),
		Email:   user.Email,
		Message: "User created successfully. Please check your email for confirmation code.",
	})
}

func (h *Handlers) ConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var in api.ConfirmSignUpRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Auth.ConfirmSignUp(r.Context(), in.Email, strings.TrimSpace(in.ConfirmationCode)); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Email confirmed successfully"})
}

func (h *Handlers) ResendCode(w http.ResponseWriter, r *http.Request) {
	var in api.ResendCodeRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Auth.ResendCode(r.Context(), in.Email); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "If the account exists, a new code has been sent"})
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var in api.SignInRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	pair, err := h.Auth.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse(pair, h.Auth.AccessTokenTTL()))
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in api.RefreshRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if in.RefreshToken == "" {
		apierrors.WriteError(w, r, apierrors.BadRequest("refresh_token is required"))
		return
	}

	pair, err := h.Auth.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse(pair, h.Auth.AccessTokenTTL()))
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	var in api.SignOutRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Auth.SignOut(r.Context(), in.RefreshToken); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Sign out successful"})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.Auth.Me(r.Context(), id.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userInfo(user))
}

func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in api.ForgotPasswordRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.Auth.ForgotPassword(r.Context(), in.Email); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Password reset code sent to your email"})
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in api.ResetPasswordRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	err := h.Auth.ResetPassword(r.Context(), in.Email, strings.TrimSpace(in.ConfirmationCode), in.NewPassword)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Password reset successfully"})
}
