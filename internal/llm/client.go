// Package llm wraps the remote question and feedback generation endpoints.
// The client is stateless: every call is a fresh round-trip and failures
// propagate unchanged to the caller.
package llm

import (
	"context"
	"strings"

	"github.com/p-n-ai/pai-study/internal/api"
	"github.com/p-n-ai/pai-study/internal/apierror"
)

const (
	pathGenerateQuestion  = "/api/llm/generate-question"
	pathGenerateFeedback  = "/api/llm/generate-feedback"
	pathSuggestStudyPlan  = "/api/llm/suggest-study-plan"
	pathSuggestAssignment = "/api/llm/suggest-assignment"
)

// Question is a generated question with its expected answer, immutable once
// fetched.
type Question struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Feedback is generated feedback plus a hint for a submitted answer.
type Feedback struct {
	Feedback string `json:"feedback"`
	Hint     string `json:"hint"`
}

// StudyPlan is a suggested ordering of topics for a subject.
type StudyPlan struct {
	RecommendedOrder  []string `json:"recommendedOrder"`
	EstimatedDuration string   `json:"estimatedDuration"`
	FocusAreas        []string `json:"focusAreas"`
}

// Assignment is a suggested assignment for a topic.
type Assignment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"` // "manual" or "ai-suggested"
}

// Generator is the interface the quiz session depends on.
type Generator interface {
	GenerateQuestion(ctx context.Context, subject, topic, learningStyle string) (Question, error)
	GenerateFeedback(ctx context.Context, question, studentAnswer, correctAnswer, learningStyle string) (Feedback, error)
}

// Client calls the remote LLM endpoints.
type Client struct {
	api *api.Client
}

// NewClient creates an LLM client over the shared transport.
func NewClient(transport *api.Client) *Client {
	return &Client{api: transport}
}

type questionRequest struct {
	Subject       string `json:"subject"`
	Topic         string `json:"topic"`
	LearningStyle string `json:"learningStyle"`
}

// GenerateQuestion fetches a question and its expected answer for the topic.
// All inputs must be non-empty; no retry, no fallback, no caching.
func (c *Client) GenerateQuestion(ctx context.Context, subject, topic, learningStyle string) (Question, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(topic) == "" || strings.TrimSpace(learningStyle) == "" {
		return Question{}, apierror.Validation("llm.generate-question", "subject, topic and learningStyle are required")
	}

	var q Question
	err := c.api.PostJSON(ctx, "llm.generate-question", pathGenerateQuestion,
		questionRequest{Subject: subject, Topic: topic, LearningStyle: learningStyle}, &q)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

type feedbackRequest struct {
	Question      string `json:"question"`
	StudentAnswer string `json:"studentAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	LearningStyle string `json:"learningStyle"`
}

// GenerateFeedback fetches feedback and a hint for a submitted answer. The
// student answer may be empty when only a hint is wanted.
func (c *Client) GenerateFeedback(ctx context.Context, question, studentAnswer, correctAnswer, learningStyle string) (Feedback, error) {
	var fb Feedback
	err := c.api.PostJSON(ctx, "llm.generate-feedback", pathGenerateFeedback,
		feedbackRequest{
			Question:      question,
			StudentAnswer: studentAnswer,
			CorrectAnswer: correctAnswer,
			LearningStyle: learningStyle,
		}, &fb)
	if err != nil {
		return Feedback{}, err
	}
	return fb, nil
}

type studyPlanRequest struct {
	Subject       string   `json:"subject"`
	Topics        []string `json:"topics"`
	LearningStyle string   `json:"learningStyle"`
}

// SuggestStudyPlan asks for a recommended topic order for a subject.
func (c *Client) SuggestStudyPlan(ctx context.Context, subject string, topics []string, learningStyle string) (StudyPlan, error) {
	if strings.TrimSpace(subject) == "" || len(topics) == 0 {
		return StudyPlan{}, apierror.Validation("llm.suggest-study-plan", "subject and topics are required")
	}

	var plan StudyPlan
	err := c.api.PostJSON(ctx, "llm.suggest-study-plan", pathSuggestStudyPlan,
		studyPlanRequest{Subject: subject, Topics: topics, LearningStyle: learningStyle}, &plan)
	if err != nil {
		return StudyPlan{}, err
	}
	return plan, nil
}

// SuggestAssignment asks for an assignment suggestion for a topic.
func (c *Client) SuggestAssignment(ctx context.Context, subject, topic, learningStyle string) (Assignment, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(topic) == "" {
		return Assignment{}, apierror.Validation("llm.suggest-assignment", "subject and topic are required")
	}

	var a Assignment
	err := c.api.PostJSON(ctx, "llm.suggest-assignment", pathSuggestAssignment,
		questionRequest{Subject: subject, Topic: topic, LearningStyle: learningStyle}, &a)
	if err != nil {
		return Assignment{}, err
	}
	return a, nil
}
