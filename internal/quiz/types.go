package quiz

import "time"

// QuestionResponse is one completed answer within an attempt.
type QuestionResponse struct {
	ID            string    `json:"id"`
	QuizAttemptID string    `json:"quizAttemptId"`
	Question      string    `json:"question"`
	StudentAnswer string    `json:"studentAnswer"`
	CorrectAnswer string    `json:"correctAnswer"`
	IsCorrect     bool      `json:"isCorrect"`
	AnsweredAt    time.Time `json:"answeredAt"`
}

// Performance summarizes an attempt.
type Performance struct {
	Score     float64 `json:"score"` // fraction of correct responses, 0..1
	TimeSpent int     `json:"timeSpent"`
}

// Attempt accumulates the responses of one quiz sitting. The session appends
// one response per completed submission; the caller decides when the sitting
// ends.
type Attempt struct {
	ID          string             `json:"id"`
	LearnerID   string             `json:"studentId"`
	Subject     string             `json:"subject"`
	Topic       string             `json:"topic"`
	StartedAt   time.Time          `json:"startedAt"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	Responses   []QuestionResponse `json:"responses"`
	Performance Performance        `json:"performance"`
}

// CorrectCount returns how many responses were correct.
func (a Attempt) CorrectCount() int {
	n := 0
	for _, r := range a.Responses {
		if r.IsCorrect {
			n++
		}
	}
	return n
}
