// Command study is the adaptive quiz CLI. It drives question/answer/feedback
// cycles against the learning platform, letting the policy service steer
// which topic comes next.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/p-n-ai/pai-study/internal/analytics"
	"github.com/p-n-ai/pai-study/internal/api"
	"github.com/p-n-ai/pai-study/internal/apierror"
	"github.com/p-n-ai/pai-study/internal/curriculum"
	"github.com/p-n-ai/pai-study/internal/dashboard"
	"github.com/p-n-ai/pai-study/internal/library"
	"github.com/p-n-ai/pai-study/internal/llm"
	"github.com/p-n-ai/pai-study/internal/platform/cache"
	"github.com/p-n-ai/pai-study/internal/platform/config"
	"github.com/p-n-ai/pai-study/internal/platform/database"
	"github.com/p-n-ai/pai-study/internal/quiz"
	"github.com/p-n-ai/pai-study/internal/rl"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app, err := newApp(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	switch os.Args[1] {
	case "quiz":
		err = app.runQuiz(ctx)
	case "plan":
		err = app.runPlan(ctx)
	case "report":
		path := "progress-report.xlsx"
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		err = app.runReport(ctx, path)
	case "courses":
		err = app.runCourses(ctx)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil && ctx.Err() == nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: study <command>

commands:
  quiz             interactive adaptive quiz session
  plan             fetch a suggested study plan for the configured subject
  report [path]    export the progress report workbook (default progress-report.xlsx)
  courses          list enrolled courses and uploaded resources`)
}

func setupLogger(logCfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logCfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if logCfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// app bundles the wired clients for one command invocation.
type app struct {
	cfg        *config.Config
	llm        *llm.Client
	policy     *rl.Client
	platform   dashboard.API
	store      quiz.AttemptStore
	curriculum *curriculum.Loader

	db    *database.DB
	cache *cache.Cache
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	transport := api.New(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)

	a := &app{
		cfg:      cfg,
		llm:      llm.NewClient(transport),
		policy:   rl.NewClient(transport),
		platform: dashboard.NewClient(transport),
		store:    quiz.NewMemoryStore(),
	}

	if cfg.Persistent() {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting database: %w", err)
		}
		if err := db.ApplySchema(ctx, quiz.Schema()); err != nil {
			db.Close()
			return nil, err
		}
		store, err := quiz.NewPostgresStore(db.Pool)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.store = store
	}

	if cfg.Cached() {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			// The cache is an accelerator; run without it.
			slog.Warn("cache unavailable, reads go straight to the platform", "error", err)
		} else {
			a.cache = c
			a.platform = dashboard.NewCachedClient(a.platform, c, cfg.Cache.TTL)
		}
	}

	loader, err := curriculum.NewLoader(cfg.CurriculumPath)
	if err != nil {
		slog.Warn("curriculum unavailable, topic names come from the policy only", "error", err)
	} else {
		a.curriculum = loader
	}

	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.cache != nil {
		a.cache.Close()
	}
}

// startingTopic picks the session's first topic: explicit config, then the
// curriculum's opening topic for the subject, then the subject itself.
func (a *app) startingTopic() string {
	if a.cfg.Session.Topic != "" {
		return a.cfg.Session.Topic
	}
	if a.curriculum != nil {
		if first, ok := a.curriculum.FirstTopic(subjectID(a.cfg.Session.Subject)); ok {
			return first.Name
		}
	}
	return a.cfg.Session.Subject
}

// resolveTopic maps the policy's advance signal to a concrete topic using the
// curriculum order. Without a catalog the signal's name is shown as-is.
func (a *app) resolveTopic(topic, previous string) string {
	if topic != rl.NextTopicSentinel {
		return topic
	}
	if a.curriculum != nil {
		if next, ok := a.curriculum.NextTopic(subjectID(a.cfg.Session.Subject), previous); ok {
			return next.Name
		}
	}
	return topic
}

func subjectID(subject string) string {
	return strings.ToLower(strings.ReplaceAll(subject, " ", "-"))
}

func (a *app) runQuiz(ctx context.Context) error {
	var session *quiz.Session
	session = quiz.NewSession(quiz.SessionConfig{
		LLM:           a.llm,
		Policy:        a.policy,
		Store:         a.store,
		LearnerID:     a.cfg.Session.StudentID,
		Subject:       a.cfg.Session.Subject,
		Topic:         a.startingTopic(),
		LearningStyle: a.cfg.Session.LearningStyle,
		ResolveTopic: func(topic string) string {
			// Runs before the new topic is applied, so Topic() is still
			// the one the learner just finished.
			return a.resolveTopic(topic, session.Topic())
		},
	})
	defer session.Wait()

	fmt.Printf("Subject: %s   Topic: %s\n", a.cfg.Session.Subject, session.Topic())
	fmt.Println("Type your answer, or: /hint, /next, /quit")

	if err := session.LoadQuestion(ctx); err != nil {
		fmt.Println(apierror.UserMessage(err))
	}
	started := time.Now()
	scanner := bufio.NewScanner(os.Stdin)

	for ctx.Err() == nil {
		if session.Phase() == quiz.PhaseReady {
			fmt.Println()
			fmt.Println("Q:", session.Question())
		}
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "/quit":
			return a.finishQuiz(ctx, session, started)
		case "/hint":
			if err := session.RequestHint(ctx); err != nil {
				fmt.Println(session.ErrMessage())
				continue
			}
			fmt.Println("Hint:", session.Hint())
		case "/next":
			if err := session.NextQuestion(ctx); err != nil {
				fmt.Println(session.ErrMessage())
				continue
			}
			fmt.Println("Topic:", session.Topic())
		default:
			session.SetAnswer(line)
			if err := session.Submit(ctx); err != nil {
				fmt.Println(session.ErrMessage())
				continue
			}
			fmt.Println("Feedback:", session.Feedback())
			if session.Hint() != "" {
				fmt.Println("Hint:", session.Hint())
			}
			fmt.Println("(/next for a new question)")
		}
	}
	return a.finishQuiz(ctx, session, started)
}

func (a *app) finishQuiz(ctx context.Context, session *quiz.Session, started time.Time) error {
	session.AddTimeSpent(int(time.Since(started).Seconds()))
	if len(session.Attempt().Responses) == 0 {
		return nil
	}

	// Persist with a fresh context so Ctrl-C on the prompt does not lose
	// the attempt.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	attempt, err := session.Complete(saveCtx)
	if err != nil {
		return fmt.Errorf("saving attempt: %w", err)
	}
	fmt.Printf("\nSaved attempt %s: %d/%d correct (%.0f%%)\n",
		attempt.ID, attempt.CorrectCount(), len(attempt.Responses), attempt.Performance.Score*100)
	return nil
}

func (a *app) runPlan(ctx context.Context) error {
	subject := a.cfg.Session.Subject

	var topics []string
	if a.curriculum != nil {
		if s, ok := a.curriculum.Subject(subjectID(subject)); ok {
			for _, t := range s.Topics {
				topics = append(topics, t.Name)
			}
		}
	}
	if len(topics) == 0 {
		topics = []string{a.startingTopic()}
	}

	plan, err := a.llm.SuggestStudyPlan(ctx, subject, topics, a.cfg.Session.LearningStyle)
	if err != nil {
		fmt.Println(apierror.UserMessage(err))
		return err
	}

	fmt.Printf("Study plan for %s (%s)\n", subject, plan.EstimatedDuration)
	for i, topic := range plan.RecommendedOrder {
		fmt.Printf("  %d. %s\n", i+1, topic)
	}
	if len(plan.FocusAreas) > 0 {
		fmt.Println("Focus areas:", strings.Join(plan.FocusAreas, ", "))
	}
	return nil
}

func (a *app) runReport(ctx context.Context, path string) error {
	studentID := a.cfg.Session.StudentID

	attempts, err := a.platform.GetQuizAttempts(ctx, studentID)
	if err != nil {
		slog.Warn("platform attempts unavailable, using local store", "error", err)
		attempts, err = a.store.ListAttempts(ctx, studentID)
		if err != nil {
			return err
		}
	}
	if len(attempts) == 0 {
		fmt.Println("No attempts recorded yet.")
		return nil
	}

	courses, err := a.platform.GetCourses(ctx)
	if err != nil {
		slog.Warn("courses unavailable, using default credits", "error", err)
	}

	progress := analytics.FromAttempts(attempts, courses)
	for _, c := range progress {
		fmt.Printf("%-24s %5.1f%%  %-2s  %s\n", c.Course, c.AverageScore, c.Grade, c.Trend)
	}
	fmt.Printf("CGPA: %.2f\n", analytics.CGPA(progress))

	if err := analytics.WriteReport(path, studentID, progress); err != nil {
		return err
	}
	fmt.Println("Report written to", path)
	return nil
}

func (a *app) runCourses(ctx context.Context) error {
	courses, err := a.platform.GetCourses(ctx)
	if err != nil {
		fmt.Println(apierror.UserMessage(err))
		return err
	}

	fmt.Println("Courses:")
	for _, c := range courses {
		fmt.Printf("  %-24s %s\n", c.Title, c.Instructor)
	}

	resources, err := a.platform.GetResources(ctx)
	if err != nil {
		fmt.Println(apierror.UserMessage(err))
		return err
	}
	if len(resources) == 0 {
		return nil
	}

	fmt.Println("Resources:")
	for _, r := range resources {
		course := r.Course
		if course == "" {
			course = library.SuggestCourse(r.Name)
		}
		fmt.Printf("  %-32s %-12s %-8s -> %s\n", r.Name, library.CategoryFor(r.Name), r.Size, course)
	}
	return nil
}
