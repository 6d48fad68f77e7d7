// Package api is a thin typed client for the firm's webhook backend. Every
// call issues exactly one request and returns the decoded envelope: there is
// no retry and no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Griffon01/borelli-advocacia/internal/model"
)

const defaultTimeout = 10 * time.Second

// APIError is a business failure: the backend completed the request but
// reported success=false.
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Op + ": request rejected"
	}
	return e.Op + ": " + e.Message
}

// ConnectivityError is a transport failure: the request never completed or
// the response could not be read as an envelope.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: cannot reach server: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// Client calls the remote webhook API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given webhook base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// envelope is the common response shape. Collection payloads are nested
// under named keys; exactly one of them is set per operation.
type envelope struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error"`
	User     *model.User     `json:"user"`
	Team     []model.User    `json:"team"`
	Events   []model.Event   `json:"events"`
	Event    *model.Event    `json:"event"`
	Comments []model.Comment `json:"comments"`
	Synced   int             `json:"synced"`
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "request_id", requestID, "error", err)
		return nil, &ConnectivityError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil, &ConnectivityError{Op: op, Err: err}
	}

	c.logger.Debug("request completed",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"success", env.Success,
		"duration", time.Since(start),
	)

	if !env.Success {
		return nil, &APIError{Op: op, Message: env.Error}
	}
	return &env, nil
}

// Login looks up a user by email. A registered email returns the user;
// anything else is an APIError.
func (c *Client) Login(ctx context.Context, email string) (*model.User, error) {
	env, err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, &APIError{Op: "login", Message: "user not found"}
	}
	return env.User, nil
}

// Team fetches the firm roster.
func (c *Client) Team(ctx context.Context) ([]model.User, error) {
	env, err := c.do(ctx, "team", http.MethodGet, "/auth/team", nil, nil)
	if err != nil {
		return nil, err
	}
	if env.Team == nil {
		return []model.User{}, nil
	}
	return env.Team, nil
}

// Events lists events. Filters are passed through as opaque query
// parameters and are not validated client-side.
func (c *Client) Events(ctx context.Context, filters url.Values) ([]model.Event, error) {
	env, err := c.do(ctx, "list events", http.MethodGet, "/events", filters, nil)
	if err != nil {
		return nil, err
	}
	if env.Events == nil {
		return []model.Event{}, nil
	}
	return env.Events, nil
}

// Event fetches a single event, comments and assignees included.
func (c *Client) Event(ctx context.Context, id int64) (*model.Event, error) {
	env, err := c.do(ctx, "get event", http.MethodGet, fmt.Sprintf("/events/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	if env.Event == nil {
		return nil, &APIError{Op: "get event", Message: "event not found"}
	}
	return env.Event, nil
}

type createEventRequest struct {
	model.EventDraft
	CreatedBy int64 `json:"created_by"`
}

// CreateEvent submits a new event on behalf of createdBy. The returned event
// may be nil when the backend acknowledges without echoing the record.
func (c *Client) CreateEvent(ctx context.Context, draft model.EventDraft, createdBy int64) (*model.Event, error) {
	env, err := c.do(ctx, "create event", http.MethodPost, "/events", nil, createEventRequest{EventDraft: draft, CreatedBy: createdBy})
	if err != nil {
		return nil, err
	}
	return env.Event, nil
}

// UpdateEvent applies a partial update. The returned event may be nil when
// the backend acknowledges without echoing the record.
func (c *Client) UpdateEvent(ctx context.Context, id int64, fields map[string]any) (*model.Event, error) {
	env, err := c.do(ctx, "update event", http.MethodPut, fmt.Sprintf("/events/%d", id), nil, fields)
	if err != nil {
		return nil, err
	}
	return env.Event, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	_, err := c.do(ctx, "delete event", http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
	return err
}

// Comments lists an event's comments.
func (c *Client) Comments(ctx context.Context, eventID int64) ([]model.Comment, error) {
	env, err := c.do(ctx, "list comments", http.MethodGet, fmt.Sprintf("/events/%d/comments", eventID), nil, nil)
	if err != nil {
		return nil, err
	}
	if env.Comments == nil {
		return []model.Comment{}, nil
	}
	return env.Comments, nil
}

type addCommentRequest struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

// AddComment appends a comment to an event.
func (c *Client) AddComment(ctx context.Context, eventID, userID int64, content string) error {
	_, err := c.do(ctx, "add comment", http.MethodPost, fmt.Sprintf("/events/%d/comments", eventID), nil, addCommentRequest{UserID: userID, Content: content})
	return err
}

// TodayEvents fetches the read-only feed of today's events.
func (c *Client) TodayEvents(ctx context.Context) ([]model.Event, error) {
	env, err := c.do(ctx, "today feed", http.MethodGet, "/notifications/today", nil, nil)
	if err != nil {
		return nil, err
	}
	if env.Events == nil {
		return []model.Event{}, nil
	}
	return env.Events, nil
}

// WeekEvents fetches the read-only feed of this week's events.
func (c *Client) WeekEvents(ctx context.Context) ([]model.Event, error) {
	env, err := c.do(ctx, "week feed", http.MethodGet, "/notifications/week", nil, nil)
	if err != nil {
		return nil, err
	}
	if env.Events == nil {
		return []model.Event{}, nil
	}
	return env.Events, nil
}

// SyncCalendar triggers an import from the external calendar provider and
// returns the number of events it brought in.
func (c *Client) SyncCalendar(ctx context.Context) (int, error) {
	env, err := c.do(ctx, "calendar sync", http.MethodPost, "/calendar/sync", nil, nil)
	if err != nil {
		return 0, err
	}
	return env.Synced, nil
}
