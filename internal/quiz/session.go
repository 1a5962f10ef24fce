// Package quiz drives one learner through repeated question/answer/feedback
// cycles, mediating between the LLM and policy clients and keeping the
// learner's performance ledger.
package quiz

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/p-n-ai/pai-study/internal/apierror"
	"github.com/p-n-ai/pai-study/internal/llm"
	"github.com/p-n-ai/pai-study/internal/rl"
)

// Reward values pushed to the policy service per submission.
const (
	RewardCorrect   = 1.0
	RewardIncorrect = -0.5
)

// Phase is the session's position in the question cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseSubmitting
	PhaseFeedback
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading_question"
	case PhaseReady:
		return "ready"
	case PhaseSubmitting:
		return "submitting"
	case PhaseFeedback:
		return "feedback_shown"
	default:
		return "idle"
	}
}

// SessionConfig holds dependencies and the learner's starting context.
type SessionConfig struct {
	LLM           llm.Generator
	Policy        rl.Policy
	Store         AttemptStore // optional; attempts persist only on Complete
	LearnerID     string
	Subject       string
	Topic         string
	LearningStyle string
	OnAttempt     func(Attempt) // invoked with the updated attempt after each submission
	// ResolveTopic optionally maps a policy-returned topic (such as the
	// advance sentinel) to a concrete topic before it is applied.
	ResolveTopic func(topic string) string
	Now          func() time.Time
}

// Session is the quiz state machine for one learner. It is cooperative and
// single-flight: callers gate overlapping actions on Busy(); the session
// does not queue or reject concurrent calls itself.
type Session struct {
	llm       llm.Generator
	policy    rl.Policy
	store     AttemptStore
	onAttempt func(Attempt)
	resolve   func(string) string
	now       func() time.Time

	subject string
	state   rl.State
	attempt *Attempt

	phase    Phase
	busy     bool
	question llm.Question
	answer   string
	feedback string
	hint     string
	errMsg   string

	updates sync.WaitGroup // detached policy updates in flight
}

// NewSession creates a session positioned at the starting topic.
func NewSession(cfg SessionConfig) *Session {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	style := cfg.LearningStyle
	if style == "" {
		style = "visual"
	}
	return &Session{
		llm:       cfg.LLM,
		policy:    cfg.Policy,
		store:     cfg.Store,
		onAttempt: cfg.OnAttempt,
		resolve:   cfg.ResolveTopic,
		now:       now,
		subject:   cfg.Subject,
		state: rl.State{
			LearnerID:     cfg.LearnerID,
			CurrentTopic:  cfg.Topic,
			LearningStyle: style,
		},
	}
}

// LoadQuestion clears the prior cycle and fetches a fresh question for the
// current topic. On failure the question stays empty, the error message is
// surfaced and the session does not reach Ready; the caller may retry.
func (s *Session) LoadQuestion(ctx context.Context) error {
	s.busy = true
	defer func() { s.busy = false }()

	s.resetCycle()
	s.phase = PhaseLoading

	q, err := s.llm.GenerateQuestion(ctx, s.subject, s.state.CurrentTopic, s.state.LearningStyle)
	if err != nil {
		s.errMsg = "Unable to load question. Please try again."
		s.phase = PhaseIdle
		slog.Warn("question load failed",
			"learner_id", s.state.LearnerID,
			"topic", s.state.CurrentTopic,
			"error", err,
		)
		return err
	}

	s.question = q
	s.phase = PhaseReady
	return nil
}

// SetAnswer records the learner's in-progress answer. Mutable until the
// answer is submitted.
func (s *Session) SetAnswer(text string) {
	s.answer = text
}

// RequestHint fetches a hint using the current, possibly empty, answer. The
// hint is populated without touching feedback; this is not a submission and
// nothing is scored or appended to the history.
func (s *Session) RequestHint(ctx context.Context) error {
	s.busy = true
	defer func() { s.busy = false }()
	s.errMsg = ""

	fb, err := s.llm.GenerateFeedback(ctx, s.question.Question, s.answer, s.question.CorrectAnswer, s.state.LearningStyle)
	if err != nil {
		s.errMsg = "Unable to get hint. Please try again."
		return err
	}

	s.hint = fb.Hint
	return nil
}

// Submit scores the current answer. Commit order: build the response record,
// generate feedback, compute the reward, append one performance entry, push
// the detached model update, ask the policy for the next topic, then append
// the response to the attempt and hand it to the caller. A failure before a
// step commits nothing from that step onward.
func (s *Session) Submit(ctx context.Context) error {
	if strings.TrimSpace(s.answer) == "" {
		s.errMsg = "Please provide your answer"
		return apierror.Validation("quiz.submit", "answer is empty")
	}

	s.busy = true
	defer func() { s.busy = false }()
	s.errMsg = ""
	s.phase = PhaseSubmitting

	attempt := s.ensureAttempt()
	isCorrect := answerMatches(s.answer, s.question.CorrectAnswer)
	response := QuestionResponse{
		ID:            uuid.NewString(),
		QuizAttemptID: attempt.ID,
		Question:      s.question.Question,
		StudentAnswer: s.answer,
		CorrectAnswer: s.question.CorrectAnswer,
		IsCorrect:     isCorrect,
		AnsweredAt:    s.now(),
	}

	fb, err := s.llm.GenerateFeedback(ctx, s.question.Question, s.answer, s.question.CorrectAnswer, s.state.LearningStyle)
	if err != nil {
		// Nothing committed: no history entry, no model update, no
		// attempt append.
		s.errMsg = "Unable to submit answer. Please try again."
		s.phase = PhaseReady
		return err
	}
	s.feedback = fb.Feedback
	s.hint = fb.Hint

	reward := RewardIncorrect
	score := 0
	if isCorrect {
		reward = RewardCorrect
		score = 1
	}

	s.state.PerformanceHistory = append(s.state.PerformanceHistory, rl.PerformanceEntry{
		Topic:       s.state.CurrentTopic,
		Score:       score,
		Attempts:    1,
		LastAttempt: response.AnsweredAt,
	})

	// Detached best-effort update; no ordering guarantee relative to the
	// NextAction call below.
	updateState := s.state
	s.updates.Add(1)
	go func() {
		defer s.updates.Done()
		s.policy.UpdateModel(context.WithoutCancel(ctx), updateState, reward)
	}()

	s.applyAction(s.policy.NextAction(ctx, s.state))

	attempt.Responses = append(attempt.Responses, response)
	attempt.Performance.Score = float64(attempt.CorrectCount()) / float64(len(attempt.Responses))
	s.phase = PhaseFeedback

	if s.onAttempt != nil {
		s.onAttempt(*attempt)
	}
	return nil
}

// NextQuestion advances to a fresh question. Allowed only after a completed
// submission (feedback shown); it re-queries the policy with the current
// state before loading, so topic adaptation happens again right before the
// move.
func (s *Session) NextQuestion(ctx context.Context) error {
	if s.feedback == "" {
		s.errMsg = "Submit an answer before moving on"
		return apierror.Validation("quiz.next-question", "no completed submission in this cycle")
	}

	s.busy = true
	s.applyAction(s.policy.NextAction(ctx, s.state))
	s.busy = false

	return s.LoadQuestion(ctx)
}

// Complete finalizes the attempt, persists it when a store is configured and
// returns the terminal record. The session can keep going afterwards; a new
// attempt starts on the next submission.
func (s *Session) Complete(ctx context.Context) (Attempt, error) {
	attempt := s.ensureAttempt()
	completedAt := s.now()
	attempt.CompletedAt = &completedAt
	attempt.Performance.TimeSpent = s.state.TimeSpent

	done := *attempt
	s.attempt = nil

	if s.store != nil {
		if err := s.store.SaveAttempt(ctx, done); err != nil {
			return done, err
		}
	}
	return done, nil
}

// AddTimeSpent bumps the learner's cumulative time counter. Negative deltas
// are ignored; the counter never decreases within a session.
func (s *Session) AddTimeSpent(seconds int) {
	if seconds > 0 {
		s.state.TimeSpent += seconds
	}
}

// Wait blocks until all detached policy updates have finished. Intended for
// shutdown and tests.
func (s *Session) Wait() {
	s.updates.Wait()
}

// Phase returns the session's current phase.
func (s *Session) Phase() Phase { return s.phase }

// Busy reports whether an operation is in flight. Callers use this to gate
// overlapping actions.
func (s *Session) Busy() bool { return s.busy }

// Question returns the current question text, empty while loading or after
// a failed load.
func (s *Session) Question() string { return s.question.Question }

// Feedback returns the feedback from the last completed submission.
func (s *Session) Feedback() string { return s.feedback }

// Hint returns the current hint, empty until requested or submitted.
func (s *Session) Hint() string { return s.hint }

// ErrMessage returns the user-facing message for the last failure, empty
// after a successful operation.
func (s *Session) ErrMessage() string { return s.errMsg }

// Topic returns the learner's current topic.
func (s *Session) Topic() string { return s.state.CurrentTopic }

// State returns a copy of the learner state.
func (s *Session) State() rl.State {
	state := s.state
	state.PerformanceHistory = append([]rl.PerformanceEntry(nil), s.state.PerformanceHistory...)
	return state
}

// Attempt returns a copy of the in-progress attempt, zero before the first
// submission.
func (s *Session) Attempt() Attempt {
	if s.attempt == nil {
		return Attempt{}
	}
	a := *s.attempt
	a.Responses = append([]QuestionResponse(nil), s.attempt.Responses...)
	return a
}

// applyAction installs the policy's decision as the current topic, mapping
// it through the resolver when one is configured.
func (s *Session) applyAction(action rl.Action) {
	topic := action.NextTopic
	if s.resolve != nil {
		topic = s.resolve(topic)
	}
	s.state.CurrentTopic = topic
}

func (s *Session) ensureAttempt() *Attempt {
	if s.attempt == nil {
		s.attempt = &Attempt{
			ID:        uuid.NewString(),
			LearnerID: s.state.LearnerID,
			Subject:   s.subject,
			Topic:     s.state.CurrentTopic,
			StartedAt: s.now(),
		}
	}
	return s.attempt
}

func (s *Session) resetCycle() {
	s.question = llm.Question{}
	s.answer = ""
	s.feedback = ""
	s.hint = ""
	s.errMsg = ""
}

// answerMatches compares answers case-insensitively after trimming
// surrounding whitespace.
func answerMatches(studentAnswer, correctAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(studentAnswer), strings.TrimSpace(correctAnswer))
}
