package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	rest "github.com/pribylovaa/go-group-fitness/pkg/api"
)

// auth

func (c *Client) SignUp(ctx context.Context, in rest.SignUpRequest) (*rest.SignUpResponse, error) {
	var out rest.SignUpResponse
	if err := c.Request(ctx, http.MethodPost, "/auth/signup", in, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmSignUp(ctx context.Context, email, code string) error {
	in := rest.ConfirmSignUpRequest{Email: email, ConfirmationCode: code}
	return c.Request(ctx, http.MethodPost, "/auth/confirm-signup", in, false, nil)
}

func (c *Client) ResendCode(ctx context.Context, email string) error {
	return c.Request(ctx, http.MethodPost, "/auth/resend-code", rest.ResendCodeRequest{Email: email}, false, nil)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*rest.TokenResponse, error) {
	var out rest.TokenResponse
	in := rest.SignInRequest{Email: email, Password: password}
	if err := c.Request(ctx, http.MethodPost, "/auth/signin", in, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*rest.TokenResponse, error) {
	var out rest.TokenResponse
	in := rest.RefreshRequest{RefreshToken: refreshToken}
	if err := c.Request(ctx, http.MethodPost, "/auth/refresh", in, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut отзывает refresh-токен на сервере.
func (c *Client) SignOut(ctx context.Context, refreshToken string) error {
	in := rest.SignOutRequest{RefreshToken: refreshToken}
	return c.Request(ctx, http.MethodPost, "/auth/signout", in, false, nil)
}

func (c *Client) Me(ctx context.Context) (*rest.UserInfo, error) {
	var out rest.UserInfo
	if err := c.Request(ctx, http.MethodGet, "/auth/me", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.Request(ctx, http.MethodPost, "/auth/forgot-password", rest.ForgotPasswordRequest{Email: email}, false, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	in := rest.ResetPasswordRequest{Email: email, ConfirmationCode: code, NewPassword: newPassword}
	return c.Request(ctx, http.MethodPost, "/auth/reset-password", in, false, nil)
}

// users

func (c *Client) AutoCreateProfile(ctx context.Context) (*rest.Profile, error) {
	var out rest.ProfileResponse
	if err := c.Request(ctx, http.MethodPost, "/users/profile/auto-create", nil, true, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// GetProfile - IsProfileNotFound(err) означает, что профиля нет.
func (c *Client) GetProfile(ctx context.Context) (*rest.Profile, error) {
	var out rest.Profile
	if err := c.Request(ctx, http.MethodGet, "/users/profile", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in rest.ProfileUpdate) (*rest.Profile, error) {
	var out rest.Profile
	if err := c.Request(ctx, http.MethodPut, "/users/profile", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPreferences(ctx context.Context) (*rest.Preferences, error) {
	var out rest.Preferences
	if err := c.Request(ctx, http.MethodGet, "/users/preferences", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePreferences(ctx context.Context, in rest.PreferencesUpdate) (*rest.Preferences, error) {
	var out rest.Preferences
	if err := c.Request(ctx, http.MethodPut, "/users/preferences", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserMe(ctx context.Context) (*rest.UserWithPreferences, error) {
	var out rest.UserWithPreferences
	if err := c.Request(ctx, http.MethodGet, "/users/me", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Onboarding(ctx context.Context, in rest.OnboardingRequest) (*rest.OnboardingResponse, error) {
	var out rest.OnboardingResponse
	if err := c.Request(ctx, http.MethodPost, "/users/onboarding", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// group events

// ListEventsParams - фильтр списка; нулевые значения не передаются.
type ListEventsParams struct {
	SportType string
	Limit     int
	Offset    int
}

func (c *Client) ListEvents(ctx context.Context, p ListEventsParams) ([]rest.GroupEvent, error) {
	q := url.Values{}
	if p.SportType != "" {
		q.Set("sport_type", p.SportType)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}

	path := "/group_events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []rest.GroupEvent
	if err := c.Request(ctx, http.MethodGet, path, nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*rest.GroupEvent, error) {
	var out rest.GroupEvent
	if err := c.Request(ctx, http.MethodGet, eventPath(id), nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEvent(ctx context.Context, in rest.CreateEventRequest) (*rest.GroupEvent, error) {
	var out rest.GroupEvent
	if err := c.Request(ctx, http.MethodPost, "/group_events", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, in rest.UpdateEventRequest) (*rest.GroupEvent, error) {
	var out rest.GroupEvent
	if err := c.Request(ctx, http.MethodPatch, eventPath(id), in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, eventPath(id), nil, true, nil)
}

func (c *Client) GPSPresign(ctx context.Context, id int64, contentType string, size int64) (*rest.GPSPresignResponse, error) {
	var out rest.GPSPresignResponse
	in := rest.GPSPresignRequest{ContentType: contentType, ContentLength: size}
	if err := c.Request(ctx, http.MethodPost, eventPath(id)+"/gps/presign", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GPSConfirm(ctx context.Context, id int64, fileKey string) (*rest.GroupEvent, error) {
	var out rest.GroupEvent
	in := rest.GPSConfirmRequest{FileKey: fileKey}
	if err := c.Request(ctx, http.MethodPost, eventPath(id)+"/gps/confirm", in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPresigned выполняет PUT файла по presigned URL (мимо бэкенда).
func (c *Client) UploadPresigned(ctx context.Context, p *rest.GPSPresignResponse, body io.Reader, size int64) error {
	const op = "client.api.UploadPresigned"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.UploadURL, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.ContentLength = size
	for k, v := range p.RequiredHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return genericError(resp.StatusCode)
	}
	return nil
}

func eventPath(id int64) string {
	return "/group_events/" + strconv.FormatInt(id, 10)
}
