// Package client is the Go counterpart of the talent-pool SPA: a typed
// API client, the profile sync controller with its negotiated-upsert flow,
// and the client-side talent search.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-talentpool-backend/internal/domain"
)

// APIError is a decoded non-2xx response body.
type APIError struct {
	Status    int
	Message   string
	ProfileID int64 // set on profile-create conflicts
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// AuthResult is the body of a successful register or login call.
type AuthResult struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API at baseURL. A nil httpClient gets a
// default with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/register", credentials{email, password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/login", credentials{email, password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListProfiles(ctx context.Context) ([]domain.StudentProfile, error) {
	profiles := []domain.StudentProfile{}
	if err := c.do(ctx, http.MethodGet, "/api/profiles", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) GetProfile(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	var p domain.StudentProfile
	if err := c.do(ctx, http.MethodGet, "/api/profiles/"+strconv.FormatInt(userID, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProfile(ctx context.Context, profile *domain.StudentProfile) (int64, error) {
	var res struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/profiles", profile, &res); err != nil {
		return 0, err
	}
	return res.ID, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID int64, profile *domain.StudentProfile) error {
	return c.do(ctx, http.MethodPut, "/api/profiles/"+strconv.FormatInt(userID, 10), profile, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}

	var body struct {
		Message   string `json:"message"`
		ProfileID int64  `json:"profileId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.ProfileID = body.ProfileID
	}
	return apiErr
}
