// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the studylab API client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeNotFound
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "study server is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrNotFound    = &ClientError{Type: ErrTypeNotFound, Message: "not found"}
)

// IsUnreachable checks if an error indicates the server cannot be reached.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsNotFound checks if an error is a 404 from the server.
func IsNotFound(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsServerDetail checks if an error carries a server-reported detail
// message that should be surfaced verbatim to the user.
func IsServerDetail(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeServer
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the API client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for requests (default: 15s). Chat uses ChatTimeout.
	Timeout time.Duration

	// ChatTimeout for /chat requests, which wait on the LLM (default: 90s)
	ChatTimeout time.Duration

	// ChatRate limits outgoing chat sends (default: 1 per 2s, burst 3)
	ChatRate rate.Limit

	// ChatBurst is the send limiter burst size
	ChatBurst int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:     "http://127.0.0.1:8000",
		Timeout:     15 * time.Second,
		ChatTimeout: 90 * time.Second,
		ChatRate:    rate.Every(2 * time.Second),
		ChatBurst:   3,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the studylab backend.
// It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	chatClient *http.Client
	limiter    *rate.Limiter

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a new API client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new API client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.ChatTimeout == 0 {
		config.ChatTimeout = 90 * time.Second
	}
	if config.ChatRate == 0 {
		config.ChatRate = rate.Every(2 * time.Second)
	}
	if config.ChatBurst == 0 {
		config.ChatBurst = 3
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		chatClient: &http.Client{Timeout: config.ChatTimeout},
		limiter:    rate.NewLimiter(config.ChatRate, config.ChatBurst),
		baseURL:    config.BaseURL,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL repoints the client at a different backend. Used by the
// config live-reload; in-flight requests finish against the old URL.
func (c *Client) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if url != "" {
		c.baseURL = url
	}
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// doJSON issues a request and decodes the JSON response into out.
// out may be nil when the response body is irrelevant.
func (c *Client) doJSON(ctx context.Context, client *http.Client, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, body)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Server-reported application errors carry a detail field that
		// is surfaced verbatim to the user.
		var se serverError
		if err := json.NewDecoder(resp.Body).Decode(&se); err == nil && se.Detail != "" {
			if resp.StatusCode == http.StatusNotFound {
				return &ClientError{Type: ErrTypeNotFound, Message: se.Detail}
			}
			return &ClientError{Type: ErrTypeServer, Message: se.Detail}
		}
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return &ClientError{Type: ErrTypeServer, Message: "request failed: " + resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies the backend is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	var root struct {
		Message string `json:"message"`
	}
	return c.doJSON(ctx, c.httpClient, http.MethodGet, "/", nil, &root)
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Register creates a new user account. The server also creates a default
// "General" thread for the user.
func (c *Client) Register(ctx context.Context, username, password string) (*UserOut, error) {
	var out UserOut
	in := RegisterRequest{Username: username, Password: password, Role: "student"}
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates a user by username and password.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	in := LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserInfo fetches identity plus progress counters for a user. Used to
// validate a cached session before entering authenticated mode.
func (c *Client) UserInfo(ctx context.Context, userID int) (*UserInfo, error) {
	var out UserInfo
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/users/"+itoa(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// THREAD AND CHAT OPERATIONS
// =============================================================================

// ListThreads returns all conversation threads for a user, oldest first.
func (c *Client) ListThreads(ctx context.Context, userID int) ([]Thread, error) {
	var out []Thread
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/threads/"+itoa(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateThread creates a new conversation thread.
func (c *Client) CreateThread(ctx context.Context, userID int, name string) (*Thread, error) {
	var out Thread
	in := ThreadCreate{UserID: userID, Name: name}
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/threads", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the stored exchanges for a user's thread, oldest first.
func (c *Client) History(ctx context.Context, userID, threadID int) ([]HistoryItem, error) {
	var out []HistoryItem
	path := "/history/" + itoa(userID) + "/" + itoa(threadID)
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Chat sends a student message and returns the tutor's reply. Sends are
// rate limited client-side; Chat blocks until the limiter admits the
// request or the context is cancelled.
func (c *Client) Chat(ctx context.Context, userID, threadID int, message string) (*ChatResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, ErrTimeout
	}
	var out ChatResponse
	in := ChatRequest{UserID: userID, ThreadID: threadID, Message: message}
	if err := c.doJSON(ctx, c.chatClient, http.MethodPost, "/chat", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSummary fetches the stored summary for a thread, if any.
func (c *Client) GetSummary(ctx context.Context, userID, threadID int) (*Summary, error) {
	var out Summary
	path := "/summaries/" + itoa(userID) + "/" + itoa(threadID)
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PutSummary creates or replaces the summary for a thread.
func (c *Client) PutSummary(ctx context.Context, s Summary) (*Summary, error) {
	var out Summary
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/summaries", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// PROGRESS OPERATIONS
// =============================================================================

// Dashboard returns the gamification summary for a user.
func (c *Client) Dashboard(ctx context.Context, userID int) (*Dashboard, error) {
	var out Dashboard
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/dashboard/"+itoa(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// TOPIC, GOAL AND PLAN OPERATIONS
// =============================================================================

// ListTopics returns all topics, ordered by name.
func (c *Client) ListTopics(ctx context.Context) ([]Topic, error) {
	var out []Topic
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/topics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTopic creates a new topic. Topic names must be unique.
func (c *Client) CreateTopic(ctx context.Context, name, description string) (*Topic, error) {
	var out Topic
	in := TopicCreate{Name: name, Description: description}
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/topics", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListGoals returns all study goals for a user.
func (c *Client) ListGoals(ctx context.Context, userID int) ([]Goal, error) {
	var out []Goal
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/goals/"+itoa(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateGoal creates a new study goal.
func (c *Client) CreateGoal(ctx context.Context, g GoalCreate) (*Goal, error) {
	var out Goal
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/goals", g, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteGoal records one completed study session against a goal.
// Completion is server-authoritative; the response carries the updated
// counters.
func (c *Client) CompleteGoal(ctx context.Context, goalID int) (*Goal, error) {
	var out Goal
	path := "/goals/" + itoa(goalID) + "/complete"
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPlans returns all study plans for a user.
func (c *Client) ListPlans(ctx context.Context, userID int) ([]Plan, error) {
	var out []Plan
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/plans/"+itoa(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePlan creates a study plan from existing goal IDs.
func (c *Client) CreatePlan(ctx context.Context, p PlanCreate) (*Plan, error) {
	var out Plan
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/plans", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePlan removes a study plan and its goal links.
func (c *Client) DeletePlan(ctx context.Context, planID int) error {
	return c.doJSON(ctx, c.httpClient, http.MethodDelete, "/plans/"+itoa(planID), nil, nil)
}

// =============================================================================
// FEEDBACK AND SUBSCRIPTION OPERATIONS
// =============================================================================

// SendFeedback submits a topic rating.
func (c *Client) SendFeedback(ctx context.Context, f FeedbackCreate) (*Feedback, error) {
	var out Feedback
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/feedback", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subscribe activates or cancels a user's subscription.
func (c *Client) Subscribe(ctx context.Context, userID int, action string) (*SubscriptionStatus, error) {
	var out SubscriptionStatus
	in := SubscriptionRequest{UserID: userID, Action: action}
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/subscribe", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubscriptionStatus returns the current subscription state for a user.
func (c *Client) SubscriptionStatus(ctx context.Context, userID int) (*SubscriptionStatus, error) {
	var out SubscriptionStatus
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/subscription/"+itoa(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// MATERIALS OPERATIONS
// =============================================================================

// ListSubjects returns the available study-material subjects.
func (c *Client) ListSubjects(ctx context.Context) ([]string, error) {
	var out SubjectList
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/materials", nil, &out); err != nil {
		return nil, err
	}
	return out.Subjects, nil
}

// ListCategories returns the categories within a subject.
func (c *Client) ListCategories(ctx context.Context, subject string) ([]string, error) {
	var out CategoryList
	path := "/materials/" + url.PathEscape(subject)
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// GetMaterials returns the units for a subject/category pair.
func (c *Client) GetMaterials(ctx context.Context, subject, category string) (*Materials, error) {
	var out Materials
	path := "/materials/" + url.PathEscape(subject) + "/" + url.PathEscape(category)
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
