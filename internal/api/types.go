// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// AUTH TYPES
// =============================================================================

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // defaults to "student" server-side
}

// UserOut is the server's view of a registered user.
type UserOut struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse confirms a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
	Role    string `json:"role"`
}

// UserInfo is the combined identity + progress snapshot returned by
// GET /users/{id}. Used to validate a cached session on startup.
type UserInfo struct {
	ID                 int    `json:"id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	SubscriptionStatus string `json:"subscription_status"`
	MessageCount       int    `json:"message_count"`
	XP                 int    `json:"xp"`
	Level              int    `json:"level"`
	StreakCount        int    `json:"streak_count"`
}

// =============================================================================
// THREAD AND CHAT TYPES
// =============================================================================

// Thread is one conversation stream belonging to a user.
type Thread struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ThreadCreate creates a new conversation thread.
type ThreadCreate struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// HistoryItem is one stored exchange: the student's message and the
// tutor's response, ordered by timestamp.
type HistoryItem struct {
	Message   string `json:"message"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// ChatRequest sends a student message to the tutor.
type ChatRequest struct {
	UserID   int    `json:"user_id"`
	ThreadID int    `json:"thread_id"`
	Message  string `json:"message"`
}

// ChatResponse carries the tutor's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// Summary is the server-side condensation of a thread's older messages.
type Summary struct {
	UserID   int    `json:"user_id"`
	ThreadID int    `json:"thread_id"`
	Summary  string `json:"summary"`
}

// =============================================================================
// PROGRESS TYPES
// =============================================================================

// Dashboard is the gamification summary returned by GET /dashboard/{id}.
type Dashboard struct {
	UserID        int      `json:"user_id"`
	TotalMessages int      `json:"total_messages"`
	LastActivity  string   `json:"last_activity"`
	SessionsCount int      `json:"sessions_count"`
	Badges        []string `json:"badges"`
	XP            int      `json:"xp"`
	Level         int      `json:"level"`
	StreakCount   int      `json:"streak_count"`
}

// =============================================================================
// TOPIC, GOAL AND PLAN TYPES
// =============================================================================

// Topic is a study subject area goals can be attached to.
type Topic struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TopicCreate creates a new topic.
type TopicCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Goal is a study goal. completed_sessions is server-authoritative; the
// client never computes completion locally.
type Goal struct {
	ID                int    `json:"id"`
	UserID            int    `json:"user_id"`
	TopicID           int    `json:"topic_id"`
	Description       string `json:"description,omitempty"`
	TargetSessions    int    `json:"target_sessions"`
	CompletedSessions int    `json:"completed_sessions"`
	CreatedAt         string `json:"created_at"`
	DueDate           string `json:"due_date,omitempty"`
}

// GoalCreate creates a new study goal.
type GoalCreate struct {
	UserID         int    `json:"user_id"`
	TopicID        int    `json:"topic_id"`
	Description    string `json:"description,omitempty"`
	TargetSessions int    `json:"target_sessions"`
	DueDate        string `json:"due_date,omitempty"`
}

// Plan groups multiple goals under one schedule.
type Plan struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	Goals      []Goal `json:"goals"`
	DueDate    string `json:"due_date,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// PlanCreate creates a new study plan from existing goal IDs.
type PlanCreate struct {
	UserID     int    `json:"user_id"`
	GoalIDs    []int  `json:"goal_ids"`
	DueDate    string `json:"due_date,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
}

// =============================================================================
// FEEDBACK AND SUBSCRIPTION TYPES
// =============================================================================

// FeedbackCreate submits a topic rating.
type FeedbackCreate struct {
	UserID   int    `json:"user_id"`
	TopicID  int    `json:"topic_id"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments,omitempty"`
}

// Feedback is a stored feedback entry.
type Feedback struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	TopicID  int    `json:"topic_id"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments,omitempty"`
}

// SubscriptionRequest activates or cancels a subscription.
type SubscriptionRequest struct {
	UserID int    `json:"user_id"`
	Action string `json:"action"` // "activate" or "cancel"
}

// SubscriptionStatus is the current subscription state for a user.
type SubscriptionStatus struct {
	UserID    int    `json:"user_id"`
	Status    string `json:"status"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// =============================================================================
// MATERIALS TYPES
// =============================================================================

// SubjectList is the response of GET /materials.
type SubjectList struct {
	Subjects []string `json:"subjects"`
}

// CategoryList is the response of GET /materials/{subject}.
type CategoryList struct {
	Subject    string   `json:"subject"`
	Categories []string `json:"categories"`
}

// MaterialTopic is one teachable item within a unit.
type MaterialTopic struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// MaterialUnit is one unit of study materials.
type MaterialUnit struct {
	Unit   string          `json:"unit"`
	Topics []MaterialTopic `json:"topics"`
}

// Materials is the full content of one subject/category pair.
type Materials struct {
	Units []MaterialUnit `json:"units"`
}

// =============================================================================
// ERROR DETAIL
// =============================================================================

// serverError is the backend's non-2xx error body.
type serverError struct {
	Detail string `json:"detail"`
}
