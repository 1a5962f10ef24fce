package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/p-n-ai/pai-study/internal/platform/cache"
	"github.com/p-n-ai/pai-study/internal/quiz"
)

// CacheStore is the subset of the cache the decorator needs. Satisfied by
// *cache.Cache.
type CacheStore interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedClient is a read-through cache in front of another API
// implementation. Cache failures never fail a read; the origin is always the
// source of truth and writes invalidate the affected keys.
type CachedClient struct {
	origin API
	store  CacheStore
	ttl    time.Duration
}

var _ API = (*CachedClient)(nil)

// NewCachedClient wraps origin with a read-through cache. Entries expire
// after ttl.
func NewCachedClient(origin API, store CacheStore, ttl time.Duration) *CachedClient {
	return &CachedClient{origin: origin, store: store, ttl: ttl}
}

func (c *CachedClient) GetStudentProfile(ctx context.Context, studentID string) (*StudentProfile, error) {
	key := "dashboard:student:" + studentID
	profile := &StudentProfile{}
	if c.lookup(ctx, key, profile) {
		return profile, nil
	}

	profile, err := c.origin.GetStudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, profile)
	return profile, nil
}

func (c *CachedClient) CreateStudent(ctx context.Context, profile StudentProfile) (*StudentProfile, error) {
	created, err := c.origin.CreateStudent(ctx, profile)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, "dashboard:student:"+created.ID)
	return created, nil
}

func (c *CachedClient) UpdateStudent(ctx context.Context, profile StudentProfile) (*StudentProfile, error) {
	updated, err := c.origin.UpdateStudent(ctx, profile)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, "dashboard:student:"+profile.ID)
	return updated, nil
}

func (c *CachedClient) GetLearningProgress(ctx context.Context, studentID string) ([]LearningProgress, error) {
	key := "dashboard:progress:" + studentID
	var progress []LearningProgress
	if c.lookup(ctx, key, &progress) {
		return progress, nil
	}

	progress, err := c.origin.GetLearningProgress(ctx, studentID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, progress)
	return progress, nil
}

func (c *CachedClient) UpdateProgress(ctx context.Context, progress LearningProgress) error {
	if err := c.origin.UpdateProgress(ctx, progress); err != nil {
		return err
	}
	c.invalidate(ctx, "dashboard:progress:"+progress.StudentID)
	return nil
}

func (c *CachedClient) GetQuizAttempts(ctx context.Context, studentID string) ([]quiz.Attempt, error) {
	key := "dashboard:attempts:" + studentID
	var attempts []quiz.Attempt
	if c.lookup(ctx, key, &attempts) {
		return attempts, nil
	}

	attempts, err := c.origin.GetQuizAttempts(ctx, studentID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, attempts)
	return attempts, nil
}

func (c *CachedClient) GetCourses(ctx context.Context) ([]CourseContent, error) {
	var courses []CourseContent
	if c.lookup(ctx, "dashboard:courses", &courses) {
		return courses, nil
	}

	courses, err := c.origin.GetCourses(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, "dashboard:courses", courses)
	return courses, nil
}

func (c *CachedClient) GetAssessments(ctx context.Context, studentID string) ([]Assessment, error) {
	key := "dashboard:assessments:" + studentID
	var assessments []Assessment
	if c.lookup(ctx, key, &assessments) {
		return assessments, nil
	}

	assessments, err := c.origin.GetAssessments(ctx, studentID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, assessments)
	return assessments, nil
}

func (c *CachedClient) GetResources(ctx context.Context) ([]Resource, error) {
	var resources []Resource
	if c.lookup(ctx, "dashboard:resources", &resources) {
		return resources, nil
	}

	resources, err := c.origin.GetResources(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, "dashboard:resources", resources)
	return resources, nil
}

// lookup reports whether key was served from the cache. Miss and failure
// both fall through to the origin.
func (c *CachedClient) lookup(ctx context.Context, key string, out any) bool {
	err := c.store.GetJSON(ctx, key, out)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("cache lookup failed", "key", key, "error", err)
	}
	return false
}

func (c *CachedClient) fill(ctx context.Context, key string, value any) {
	if err := c.store.SetJSON(ctx, key, value, c.ttl); err != nil {
		slog.Warn("cache fill failed", "key", key, "error", err)
	}
}

func (c *CachedClient) invalidate(ctx context.Context, keys ...string) {
	if err := c.store.Delete(ctx, keys...); err != nil {
		slog.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
