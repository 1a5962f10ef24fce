package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/p-n-ai/pai-study/internal/dashboard"
	"github.com/p-n-ai/pai-study/internal/platform/cache"
	"github.com/p-n-ai/pai-study/internal/quiz"
)

// fakeStore is an in-memory CacheStore.
type fakeStore struct {
	entries map[string][]byte
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string][]byte)}
}

func (s *fakeStore) GetJSON(_ context.Context, key string, out any) error {
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.entries[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, out)
}

func (s *fakeStore) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = raw
	return nil
}

func (s *fakeStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

// fakeOrigin counts how often each read hits the backing API.
type fakeOrigin struct {
	profile      dashboard.StudentProfile
	profileCalls int
	courseCalls  int
}

func (o *fakeOrigin) GetStudentProfile(_ context.Context, _ string) (*dashboard.StudentProfile, error) {
	o.profileCalls++
	p := o.profile
	return &p, nil
}

func (o *fakeOrigin) CreateStudent(_ context.Context, p dashboard.StudentProfile) (*dashboard.StudentProfile, error) {
	return &p, nil
}

func (o *fakeOrigin) UpdateStudent(_ context.Context, p dashboard.StudentProfile) (*dashboard.StudentProfile, error) {
	o.profile = p
	return &p, nil
}

func (o *fakeOrigin) GetLearningProgress(_ context.Context, _ string) ([]dashboard.LearningProgress, error) {
	return nil, nil
}

func (o *fakeOrigin) UpdateProgress(_ context.Context, _ dashboard.LearningProgress) error {
	return nil
}

func (o *fakeOrigin) GetQuizAttempts(_ context.Context, _ string) ([]quiz.Attempt, error) {
	return nil, nil
}

func (o *fakeOrigin) GetCourses(_ context.Context) ([]dashboard.CourseContent, error) {
	o.courseCalls++
	return []dashboard.CourseContent{{ID: "crs-1", Title: "Linear Algebra"}}, nil
}

func (o *fakeOrigin) GetAssessments(_ context.Context, _ string) ([]dashboard.Assessment, error) {
	return nil, nil
}

func (o *fakeOrigin) GetResources(_ context.Context) ([]dashboard.Resource, error) {
	return nil, nil
}

func testProfile() dashboard.StudentProfile {
	return dashboard.StudentProfile{
		ID:            "stu-1",
		Name:          "Ada",
		Email:         "ada@example.com",
		LearningStyle: "visual",
	}
}

func TestCachedClient_ServesSecondReadFromCache(t *testing.T) {
	origin := &fakeOrigin{profile: testProfile()}
	store := newFakeStore()
	client := dashboard.NewCachedClient(origin, store, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		profile, err := client.GetStudentProfile(ctx, "stu-1")
		if err != nil {
			t.Fatalf("GetStudentProfile() #%d error = %v", i+1, err)
		}
		if profile.Name != "Ada" {
			t.Errorf("profile = %+v", profile)
		}
	}

	if origin.profileCalls != 1 {
		t.Errorf("origin calls = %d, want 1", origin.profileCalls)
	}
}

func TestCachedClient_FallsThroughOnCacheFailure(t *testing.T) {
	origin := &fakeOrigin{profile: testProfile()}
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	client := dashboard.NewCachedClient(origin, store, time.Minute)

	profile, err := client.GetStudentProfile(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("GetStudentProfile() error = %v", err)
	}
	if profile.Name != "Ada" {
		t.Errorf("profile = %+v", profile)
	}
	if origin.profileCalls != 1 {
		t.Errorf("origin calls = %d, want 1", origin.profileCalls)
	}
}

func TestCachedClient_UpdateInvalidatesProfile(t *testing.T) {
	origin := &fakeOrigin{profile: testProfile()}
	store := newFakeStore()
	client := dashboard.NewCachedClient(origin, store, time.Minute)
	ctx := context.Background()

	if _, err := client.GetStudentProfile(ctx, "stu-1"); err != nil {
		t.Fatalf("GetStudentProfile() error = %v", err)
	}

	updated := testProfile()
	updated.LearningStyle = "auditory"
	if _, err := client.UpdateStudent(ctx, updated); err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}

	profile, err := client.GetStudentProfile(ctx, "stu-1")
	if err != nil {
		t.Fatalf("GetStudentProfile() error = %v", err)
	}
	if profile.LearningStyle != "auditory" {
		t.Error("stale profile served after an update")
	}
	if origin.profileCalls != 2 {
		t.Errorf("origin calls = %d, want 2", origin.profileCalls)
	}
}

func TestCachedClient_CachesCourses(t *testing.T) {
	origin := &fakeOrigin{}
	client := dashboard.NewCachedClient(origin, newFakeStore(), time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		courses, err := client.GetCourses(ctx)
		if err != nil {
			t.Fatalf("GetCourses() error = %v", err)
		}
		if len(courses) != 1 {
			t.Errorf("courses = %+v", courses)
		}
	}

	if origin.courseCalls != 1 {
		t.Errorf("origin calls = %d, want 1", origin.courseCalls)
	}
}
