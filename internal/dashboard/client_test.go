package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/p-n-ai/pai-study/internal/api"
	"github.com/p-n-ai/pai-study/internal/apierror"
	"github.com/p-n-ai/pai-study/internal/dashboard"
)

const validProfile = `{
	"id": "stu-1",
	"name": "Ada",
	"email": "ada@example.com",
	"level": "undergraduate",
	"subjects": ["Mathematics"],
	"learningStyle": "visual",
	"progress": {"Mathematics": 0.4}
}`

func TestClient_GetStudentProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/students/stu-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validProfile))
	}))
	defer server.Close()

	client := dashboard.NewClient(api.New(server.URL))
	profile, err := client.GetStudentProfile(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("GetStudentProfile() error = %v", err)
	}
	if profile.Name != "Ada" || profile.LearningStyle != "visual" {
		t.Errorf("profile = %+v", profile)
	}
	if profile.Progress["Mathematics"] != 0.4 {
		t.Errorf("progress = %v", profile.Progress)
	}
}

func TestClient_GetStudentProfile_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing required fields.
		w.Write([]byte(`{"id": "stu-1"}`))
	}))
	defer server.Close()

	client := dashboard.NewClient(api.New(server.URL))
	_, err := client.GetStudentProfile(context.Background(), "stu-1")
	if err == nil {
		t.Fatal("GetStudentProfile() should reject a payload missing required fields")
	}
	if got := apierror.KindOf(err); got != apierror.KindValidation {
		t.Errorf("KindOf() = %v, want %v", got, apierror.KindValidation)
	}
}

func TestClient_GetStudentProfile_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such student", http.StatusNotFound)
	}))
	defer server.Close()

	client := dashboard.NewClient(api.New(server.URL))
	_, err := client.GetStudentProfile(context.Background(), "nobody")
	if got := apierror.KindOf(err); got != apierror.KindNotFound {
		t.Errorf("KindOf() = %v, want %v", got, apierror.KindNotFound)
	}
}

func TestClient_GetCourses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"id": "crs-1",
			"title": "Linear Algebra",
			"instructor": "Dr. Noether",
			"description": "Vector spaces and linear maps",
			"objectives": ["Understand vector spaces"],
			"schedule": [{"week": 1, "topic": "Vectors", "activity": "lecture"}]
		}]`))
	}))
	defer server.Close()

	client := dashboard.NewClient(api.New(server.URL))
	courses, err := client.GetCourses(context.Background())
	if err != nil {
		t.Fatalf("GetCourses() error = %v", err)
	}
	if len(courses) != 1 || courses[0].Title != "Linear Algebra" {
		t.Errorf("courses = %+v", courses)
	}
	if len(courses[0].Schedule) != 1 || courses[0].Schedule[0].Week != 1 {
		t.Errorf("schedule = %+v", courses[0].Schedule)
	}
}

func TestClient_GetAssessments_RejectsBadType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"id": "as-1", "title": "Midterm", "course": "crs-1",
			"type": "interview",
			"dueDate": "2026-09-10", "dueTime": "10:00", "duration": "90m",
			"status": "upcoming"
		}]`))
	}))
	defer server.Close()

	client := dashboard.NewClient(api.New(server.URL))
	_, err := client.GetAssessments(context.Background(), "stu-1")
	if got := apierror.KindOf(err); got != apierror.KindValidation {
		t.Errorf("KindOf() = %v, want %v", got, apierror.KindValidation)
	}
}

func TestClient_UpdateProgress(t *testing.T) {
	var got dashboard.LearningProgress
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/students/stu-1/progress" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := dashboard.NewClient(api.New(server.URL))
	err := client.UpdateProgress(context.Background(), dashboard.LearningProgress{
		StudentID:      "stu-1",
		Subject:        "Mathematics",
		CompletionRate: 0.5,
	})
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if got.Subject != "Mathematics" || got.CompletionRate != 0.5 {
		t.Errorf("request body = %+v", got)
	}
}

func TestClient_GetResources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"id": "res-1", "name": "notes.pdf", "type": "pdf", "size": "1.2 MB",
			"uploadDate": "2026-08-30", "uploadTime": "14:02",
			"course": "Linear Algebra", "category": "lecture-notes"
		}]`))
	}))
	defer server.Close()

	client := dashboard.NewClient(api.New(server.URL))
	resources, err := client.GetResources(context.Background())
	if err != nil {
		t.Fatalf("GetResources() error = %v", err)
	}
	if len(resources) != 1 || resources[0].Name != "notes.pdf" {
		t.Errorf("resources = %+v", resources)
	}
}
