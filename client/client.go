// Package client talks to the tutor scheduling API on behalf of a signed-in tutor.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tutorly/models"
	"tutorly/services/scheduling"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-auth failure reported by the server envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client implements scheduling.AvailabilityBackend and scheduling.SessionFetcher
// over the REST API. The bearer token identifies the tutor.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var (
	_ scheduling.AvailabilityBackend = (*Client)(nil)
	_ scheduling.SessionFetcher      = (*Client)(nil)
)

// New creates a client for baseURL. A nil httpClient gets a default with a timeout.
func New(baseURL, token string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		token:   token,
		http:    httpClient,
	}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) CreateAvailability(ctx context.Context, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	var w models.AvailabilityWindow
	if err := c.do(ctx, http.MethodPost, "/api/tutors/me/availability", p, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) UpdateAvailability(ctx context.Context, id string, p models.AvailabilityPayload) (*models.AvailabilityWindow, error) {
	if id == "" {
		return nil, errors.New("update availability: empty window id")
	}
	var w models.AvailabilityWindow
	if err := c.do(ctx, http.MethodPatch, "/api/tutors/me/availability/"+url.PathEscape(id), p, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) ListAvailability(ctx context.Context) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	if err := c.do(ctx, http.MethodGet, "/api/tutors/me/availability", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSessions(ctx context.Context, q models.SessionQuery) (*models.SessionPage, error) {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.FormatInt(q.Limit, 10))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.FormatInt(q.Offset, 10))
	}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	path := "/api/tutors/me/sessions"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var page models.SessionPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Board fetches the server-classified session board.
func (c *Client) Board(ctx context.Context, date string) (*models.SessionBoard, error) {
	path := "/api/tutors/me/sessions/board"
	if date != "" {
		path += "?" + url.Values{"date": {date}}.Encode()
	}
	var board models.SessionBoard
	if err := c.do(ctx, http.MethodGet, path, nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.token == "" {
		return &scheduling.AuthError{Message: "no api token configured"}
	}

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
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode == http.StatusUnauthorized {
			return &scheduling.AuthError{Message: resp.Status}
		}
		return &APIError{Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return &scheduling.AuthError{Message: env.Message}
	}
	if resp.StatusCode >= 300 || !env.Success {
		if resp.StatusCode == http.StatusBadRequest && env.Code != "" && isValidationCode(env.Code) {
			return &scheduling.ValidationError{Code: scheduling.ValidationCode(env.Code), Message: env.Message}
		}
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &APIError{Status: resp.StatusCode, Message: "empty response data"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func isValidationCode(code string) bool {
	switch scheduling.ValidationCode(code) {
	case scheduling.CodeSameStartEnd, scheduling.CodeMissingField, scheduling.CodeInvalidTime, scheduling.CodeInvalidDay:
		return true
	}
	return false
}
