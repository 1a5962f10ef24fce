// Package rl wraps the remote policy service that decides which topic a
// learner should study next. Decision calls never fail from the caller's
// point of view: when the service is unreachable a local heuristic stands
// in, so the learning loop cannot stall on an unavailable backend.
package rl

import (
	"context"
	"log/slog"
	"time"

	"github.com/p-n-ai/pai-study/internal/api"
)

const (
	pathNextAction = "/api/rl/next-action"
	pathUpdate     = "/api/rl/update"
)

// NextTopicSentinel is the topic value the fallback policy returns to advance
// the learner past the current topic.
const NextTopicSentinel = "next-topic"

// advanceThreshold is the mean score above which the fallback policy moves
// the learner on. Exactly at the threshold the learner keeps practicing.
const advanceThreshold = 0.7

// PerformanceEntry is one scored attempt in a learner's history. Entries are
// append-only and chronological.
type PerformanceEntry struct {
	Topic       string    `json:"topic"`
	Score       int       `json:"score"` // 1 correct, 0 incorrect
	Attempts    int       `json:"attempts"`
	LastAttempt time.Time `json:"lastAttempt"`
}

// State is a learner's adaptive-learning context at a point in time.
type State struct {
	LearnerID          string             `json:"studentId"`
	CurrentTopic       string             `json:"currentTopic"`
	PerformanceHistory []PerformanceEntry `json:"performanceHistory"`
	LearningStyle      string             `json:"learningStyle"`
	TimeSpent          int                `json:"timeSpent"`
}

// Action is a next-topic decision. Callers cannot tell whether it came from
// the remote policy or the local fallback.
type Action struct {
	NextTopic     string `json:"nextTopic"`
	LearningStyle string `json:"learningStyle"`
}

// Policy is the interface the quiz session depends on.
type Policy interface {
	NextAction(ctx context.Context, state State) Action
	UpdateModel(ctx context.Context, state State, reward float64)
}

// Client calls the remote policy endpoints.
type Client struct {
	api *api.Client
}

// NewClient creates an RL client over the shared transport.
func NewClient(transport *api.Client) *Client {
	return &Client{api: transport}
}

// NextAction asks the policy service for the learner's next topic. Transport
// failures are absorbed: the caller always gets an action.
func (c *Client) NextAction(ctx context.Context, state State) Action {
	var action Action
	err := c.api.PostJSON(ctx, "rl.next-action", pathNextAction, state, &action)
	if err != nil {
		slog.Warn("policy service unavailable, using fallback action",
			"learner_id", state.LearnerID,
			"error", err,
		)
		return FallbackAction(state)
	}
	return action
}

type updateRequest struct {
	State  State   `json:"state"`
	Reward float64 `json:"reward"`
}

// UpdateModel pushes a reward signal to the policy service. Best-effort:
// failures are logged and swallowed, never surfaced to the caller.
func (c *Client) UpdateModel(ctx context.Context, state State, reward float64) {
	err := c.api.PostJSON(ctx, "rl.update", pathUpdate, updateRequest{State: state, Reward: reward}, nil)
	if err != nil {
		slog.Warn("policy model update failed",
			"learner_id", state.LearnerID,
			"reward", reward,
			"error", err,
		)
	}
}

// FallbackAction is the local substitute decision: advance when the mean
// score is above the threshold, otherwise repeat the current topic. An empty
// history counts as zero — a learner with no evidence needs practice, not
// advancement. The learning style is carried through unchanged.
func FallbackAction(state State) Action {
	if AverageScore(state.PerformanceHistory) > advanceThreshold {
		return Action{NextTopic: NextTopicSentinel, LearningStyle: state.LearningStyle}
	}
	return Action{NextTopic: state.CurrentTopic, LearningStyle: state.LearningStyle}
}

// AverageScore returns the arithmetic mean of the scores, or 0 for an empty
// history.
func AverageScore(history []PerformanceEntry) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, e := range history {
		sum += e.Score
	}
	return float64(sum) / float64(len(history))
}
