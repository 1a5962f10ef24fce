package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/p-n-ai/pai-study/internal/api"
	"github.com/p-n-ai/pai-study/internal/quiz"
)

// API is the read/write surface the rest of the application consumes. The
// plain Client implements it against the remote platform; CachedClient wraps
// any implementation with a read-through cache.
type API interface {
	GetStudentProfile(ctx context.Context, studentID string) (*StudentProfile, error)
	CreateStudent(ctx context.Context, profile StudentProfile) (*StudentProfile, error)
	UpdateStudent(ctx context.Context, profile StudentProfile) (*StudentProfile, error)
	GetLearningProgress(ctx context.Context, studentID string) ([]LearningProgress, error)
	UpdateProgress(ctx context.Context, progress LearningProgress) error
	GetQuizAttempts(ctx context.Context, studentID string) ([]quiz.Attempt, error)
	GetCourses(ctx context.Context) ([]CourseContent, error)
	GetAssessments(ctx context.Context, studentID string) ([]Assessment, error)
	GetResources(ctx context.Context) ([]Resource, error)
}

// Client talks to the platform's dashboard endpoints. Incoming payloads are
// schema-checked before they are handed to callers; a payload the backend
// mangled surfaces as a validation error instead of zero-valued fields.
type Client struct {
	api *api.Client
}

var _ API = (*Client)(nil)

// NewClient creates a dashboard client on top of the shared transport.
func NewClient(transport *api.Client) *Client {
	return &Client{api: transport}
}

func (c *Client) GetStudentProfile(ctx context.Context, studentID string) (*StudentProfile, error) {
	var raw json.RawMessage
	path := "/api/students/" + url.PathEscape(studentID)
	if err := c.api.GetJSON(ctx, "dashboard.get-student", path, &raw); err != nil {
		return nil, err
	}
	if err := api.StudentProfileValidator.Validate(raw); err != nil {
		return nil, err
	}

	profile := &StudentProfile{}
	if err := json.Unmarshal(raw, profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return profile, nil
}

func (c *Client) CreateStudent(ctx context.Context, profile StudentProfile) (*StudentProfile, error) {
	created := &StudentProfile{}
	if err := c.api.PostJSON(ctx, "dashboard.create-student", "/api/students", profile, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) UpdateStudent(ctx context.Context, profile StudentProfile) (*StudentProfile, error) {
	updated := &StudentProfile{}
	path := "/api/students/" + url.PathEscape(profile.ID)
	if err := c.api.PutJSON(ctx, "dashboard.update-student", path, profile, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) GetLearningProgress(ctx context.Context, studentID string) ([]LearningProgress, error) {
	var progress []LearningProgress
	path := "/api/students/" + url.PathEscape(studentID) + "/progress"
	if err := c.api.GetJSON(ctx, "dashboard.get-progress", path, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (c *Client) UpdateProgress(ctx context.Context, progress LearningProgress) error {
	path := "/api/students/" + url.PathEscape(progress.StudentID) + "/progress"
	return c.api.PutJSON(ctx, "dashboard.update-progress", path, progress, nil)
}

func (c *Client) GetQuizAttempts(ctx context.Context, studentID string) ([]quiz.Attempt, error) {
	var attempts []quiz.Attempt
	path := "/api/students/" + url.PathEscape(studentID) + "/quiz-attempts"
	if err := c.api.GetJSON(ctx, "dashboard.get-quiz-attempts", path, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (c *Client) GetCourses(ctx context.Context) ([]CourseContent, error) {
	var raws []json.RawMessage
	if err := c.api.GetJSON(ctx, "dashboard.get-courses", "/api/courses", &raws); err != nil {
		return nil, err
	}

	courses := make([]CourseContent, 0, len(raws))
	for _, raw := range raws {
		if err := api.CourseContentValidator.Validate(raw); err != nil {
			return nil, err
		}
		var course CourseContent
		if err := json.Unmarshal(raw, &course); err != nil {
			return nil, fmt.Errorf("unmarshal course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (c *Client) GetAssessments(ctx context.Context, studentID string) ([]Assessment, error) {
	var raws []json.RawMessage
	path := "/api/students/" + url.PathEscape(studentID) + "/assessments"
	if err := c.api.GetJSON(ctx, "dashboard.get-assessments", path, &raws); err != nil {
		return nil, err
	}

	assessments := make([]Assessment, 0, len(raws))
	for _, raw := range raws {
		if err := api.AssessmentValidator.Validate(raw); err != nil {
			return nil, err
		}
		var assessment Assessment
		if err := json.Unmarshal(raw, &assessment); err != nil {
			return nil, fmt.Errorf("unmarshal assessment: %w", err)
		}
		assessments = append(assessments, assessment)
	}
	return assessments, nil
}

func (c *Client) GetResources(ctx context.Context) ([]Resource, error) {
	var raws []json.RawMessage
	if err := c.api.GetJSON(ctx, "dashboard.get-resources", "/api/resources", &raws); err != nil {
		return nil, err
	}

	resources := make([]Resource, 0, len(raws))
	for _, raw := range raws {
		if err := api.ResourceValidator.Validate(raw); err != nil {
			return nil, err
		}
		var resource Resource
		if err := json.Unmarshal(raw, &resource); err != nil {
			return nil, fmt.Errorf("unmarshal resource: %w", err)
		}
		resources = append(resources, resource)
	}
	return resources, nil
}
