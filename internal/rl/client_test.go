package rl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/p-n-ai/pai-study/internal/api"
)

func history(scores ...int) []PerformanceEntry {
	entries := make([]PerformanceEntry, len(scores))
	for i, s := range scores {
		entries[i] = PerformanceEntry{Topic: "fractions", Score: s, Attempts: 1}
	}
	return entries
}

func TestClient_NextAction_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rl/next-action" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var state State
		json.NewDecoder(r.Body).Decode(&state)
		if state.LearnerID != "stu-1" {
			t.Errorf("studentId = %q, want stu-1", state.LearnerID)
		}

		json.NewEncoder(w).Encode(Action{NextTopic: "decimals", LearningStyle: "visual"})
	}))
	defer server.Close()

	client := NewClient(api.New(server.URL))

	action := client.NextAction(context.Background(), State{
		LearnerID:    "stu-1",
		CurrentTopic: "fractions",
	})
	if action.NextTopic != "decimals" {
		t.Errorf("nextTopic = %q, want decimals", action.NextTopic)
	}
}

func TestClient_NextAction_FallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(api.New(server.URL))

	action := client.NextAction(context.Background(), State{
		LearnerID:          "stu-1",
		CurrentTopic:       "fractions",
		LearningStyle:      "practical",
		PerformanceHistory: history(1, 1, 1),
	})
	if action.NextTopic != NextTopicSentinel {
		t.Errorf("nextTopic = %q, want %q", action.NextTopic, NextTopicSentinel)
	}
	if action.LearningStyle != "practical" {
		t.Errorf("learningStyle = %q, want practical", action.LearningStyle)
	}
}

func TestClient_NextAction_FallbackOnUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(api.New(server.URL))

	action := client.NextAction(context.Background(), State{
		CurrentTopic:       "fractions",
		PerformanceHistory: history(1, 0, 0),
	})
	if action.NextTopic != "fractions" {
		t.Errorf("nextTopic = %q, want current topic fractions", action.NextTopic)
	}
}

func TestFallbackAction(t *testing.T) {
	tests := []struct {
		name      string
		scores    []int
		wantTopic string
	}{
		{"three correct advances", []int{1, 1, 1}, NextTopicSentinel},
		{"one of three repeats", []int{1, 0, 0}, "fractions"},
		{"empty history repeats", nil, "fractions"},
		{"all incorrect repeats", []int{0, 0, 0, 0}, "fractions"},
		{"four of five advances", []int{1, 1, 1, 1, 0}, NextTopicSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := FallbackAction(State{
				CurrentTopic:       "fractions",
				LearningStyle:      "visual",
				PerformanceHistory: history(tt.scores...),
			})
			if action.NextTopic != tt.wantTopic {
				t.Errorf("nextTopic = %q, want %q", action.NextTopic, tt.wantTopic)
			}
			if action.LearningStyle != "visual" {
				t.Errorf("learningStyle = %q, want visual", action.LearningStyle)
			}
		})
	}
}

func TestFallbackAction_ThresholdBoundary(t *testing.T) {
	// Mean exactly 0.7 must repeat, not advance: 7 correct out of 10.
	scores := []int{1, 1, 1, 1, 1, 1, 1, 0, 0, 0}
	action := FallbackAction(State{
		CurrentTopic:       "fractions",
		PerformanceHistory: history(scores...),
	})
	if action.NextTopic != "fractions" {
		t.Errorf("nextTopic = %q at the 0.7 boundary, want current topic", action.NextTopic)
	}
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"empty", nil, 0},
		{"all correct", []int{1, 1, 1}, 1.0},
		{"mixed", []int{1, 0}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageScore(history(tt.scores...)); got != tt.want {
				t.Errorf("AverageScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_UpdateModel(t *testing.T) {
	var gotReward float64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rl/update" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			State  State   `json:"state"`
			Reward float64 `json:"reward"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotReward = req.Reward
	}))
	defer server.Close()

	client := NewClient(api.New(server.URL))

	client.UpdateModel(context.Background(), State{LearnerID: "stu-1"}, -0.5)
	if gotReward != -0.5 {
		t.Errorf("reward = %v, want -0.5", gotReward)
	}
}

func TestClient_UpdateModel_SwallowsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(api.New(server.URL))

	// Must not panic and has no error to return.
	client.UpdateModel(context.Background(), State{LearnerID: "stu-1"}, 1.0)
}
