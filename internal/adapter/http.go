package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/cookie"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpAuthClient struct {
	client  *utils.HTTPClient
	baseURL *url.URL

	logger *logger.Logger
}

// NewHTTPAuthClient returns an [AuthClient] for the server at
// cfg.BaseURL. A bare host:port is treated as http.
//
// Redirects are not followed: a 302 to the login page surfaces as
// [ErrUnauthorized].
func NewHTTPAuthClient(cfg config.Adapter, logger *logger.Logger) (AuthClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL.String(), cfg.RequestTimeout)
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	return &httpAuthClient{client: client, baseURL: baseURL, logger: logger}, nil
}

func normalizeBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("address must include host and scheme")
	}

	return u, nil
}

func (h *httpAuthClient) SetToken(token string) {
	token = strings.TrimSpace(token)
	c := &http.Cookie{Name: cookie.SessionCookieName, Value: token, Path: "/"}
	if token == "" {
		c.MaxAge = -1
	}
	h.client.GetClient().Jar.SetCookies(h.baseURL, []*http.Cookie{c})
}

func (h *httpAuthClient) Token() string {
	for _, c := range h.client.GetClient().Jar.Cookies(h.baseURL) {
		if c.Name == cookie.SessionCookieName {
			return c.Value
		}
	}
	return ""
}

func (h *httpAuthClient) Register(ctx context.Context, user models.NewUser) (models.LoginResponse, error) {
	var result models.LoginResponse
	resp, err := h.jsonRequest(ctx, user).
		SetResult(&result).
		Post("/api/auth/register")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	return result, nil
}

func (h *httpAuthClient) Login(ctx context.Context, identifier, password, redirectTo string) (models.LoginResponse, error) {
	var result models.LoginResponse
	resp, err := h.jsonRequest(ctx, models.LoginRequest{Identifier: identifier, Password: password, RedirectTo: redirectTo}).
		SetResult(&result).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	return result, nil
}

func (h *httpAuthClient) Logout(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAuthClient) Me(ctx context.Context) (models.PublicUser, error) {
	var user models.PublicUser
	resp, err := h.client.R().SetContext(ctx).SetResult(&user).Get("/api/auth/me")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return user, nil
}

func (h *httpAuthClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := models.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	resp, err := h.jsonRequest(ctx, body).Put("/api/auth/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAuthClient) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	var users []models.PublicUser
	resp, err := h.client.R().SetContext(ctx).SetResult(&users).Get("/api/admin/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpAuthClient) CreateUser(ctx context.Context, user models.NewUser) (models.PublicUser, error) {
	var created models.PublicUser
	resp, err := h.jsonRequest(ctx, user).
		SetResult(&created).
		Post("/api/admin/users")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return created, nil
}

func (h *httpAuthClient) UpdateRole(ctx context.Context, id string, role models.Role) (models.PublicUser, error) {
	var updated models.PublicUser
	resp, err := h.jsonRequest(ctx, models.RoleUpdateRequest{Role: role}).
		SetResult(&updated).
		SetPathParam("id", id).
		Put("/api/admin/users/{id}/role")
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("update role request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicUser{}, err
	}

	return updated, nil
}

func (h *httpAuthClient) ResetPassword(ctx context.Context, id, password string) error {
	resp, err := h.jsonRequest(ctx, models.ResetPasswordRequest{Password: password}).
		SetPathParam("id", id).
		Put("/api/admin/users/{id}/password")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAuthClient) DeleteUser(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/api/admin/users/{id}")
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAuthClient) Version(ctx context.Context) (models.AppInfo, error) {
	var info models.AppInfo
	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/version/")
	if err != nil {
		return models.AppInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppInfo{}, err
	}

	return info, nil
}

func (h *httpAuthClient) jsonRequest(ctx context.Context, body any) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
}
