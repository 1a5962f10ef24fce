package llm

import "context"

// Mock is a test double for the Generator interface.
type Mock struct {
	Question      Question
	Feedback      Feedback
	QuestionErr   error
	FeedbackErr   error
	QuestionCalls int
	FeedbackCalls int
	LastAnswer    string // captures the last student answer for inspection
}

func (m *Mock) GenerateQuestion(_ context.Context, _, _, _ string) (Question, error) {
	m.QuestionCalls++
	if m.QuestionErr != nil {
		return Question{}, m.QuestionErr
	}
	return m.Question, nil
}

func (m *Mock) GenerateFeedback(_ context.Context, _, studentAnswer, _, _ string) (Feedback, error) {
	m.FeedbackCalls++
	m.LastAnswer = studentAnswer
	if m.FeedbackErr != nil {
		return Feedback{}, m.FeedbackErr
	}
	return m.Feedback, nil
}
