package curriculum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/pai-study/internal/curriculum"
)

func setupTestCurriculum(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "mathematics.yaml"), `
id: mathematics
name: Mathematics
topics:
  - id: fractions
    name: Fractions
    difficulty: beginner
    objectives:
      - "Simplify proper fractions"
  - id: decimals
    name: Decimals
    difficulty: beginner
  - id: percentages
    name: Percentages
    difficulty: intermediate
`)

	writeFile(t, filepath.Join(dir, "physics.yaml"), `
id: physics
name: Physics
topics:
  - id: kinematics
    name: Kinematics
`)

	// Non-subject YAML is skipped, not fatal.
	writeFile(t, filepath.Join(dir, "notes.yaml"), `just: metadata`)
	writeFile(t, filepath.Join(dir, "broken.yaml"), `topics: [unclosed`)

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoader_LoadSubjects(t *testing.T) {
	loader, err := curriculum.NewLoader(setupTestCurriculum(t))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	subjects := loader.Subjects()
	if len(subjects) != 2 {
		t.Fatalf("subjects = %d, want 2", len(subjects))
	}
	if subjects[0].ID != "mathematics" || subjects[1].ID != "physics" {
		t.Errorf("subjects not sorted by ID: %+v", subjects)
	}
}

func TestLoader_Subject(t *testing.T) {
	loader, err := curriculum.NewLoader(setupTestCurriculum(t))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	subject, found := loader.Subject("mathematics")
	if !found {
		t.Fatal("Subject(mathematics) not found")
	}
	if len(subject.Topics) != 3 {
		t.Errorf("topics = %d, want 3", len(subject.Topics))
	}
	if subject.Topics[0].Objectives[0] != "Simplify proper fractions" {
		t.Errorf("objectives = %+v", subject.Topics[0].Objectives)
	}

	if _, found := loader.Subject("chemistry"); found {
		t.Error("Subject(chemistry) should not be found")
	}
}

func TestLoader_FirstTopic(t *testing.T) {
	loader, err := curriculum.NewLoader(setupTestCurriculum(t))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	first, ok := loader.FirstTopic("mathematics")
	if !ok || first.ID != "fractions" {
		t.Errorf("FirstTopic() = %+v, %v", first, ok)
	}

	if _, ok := loader.FirstTopic("chemistry"); ok {
		t.Error("FirstTopic() should fail for an unknown subject")
	}
}

func TestLoader_NextTopic(t *testing.T) {
	loader, err := curriculum.NewLoader(setupTestCurriculum(t))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	tests := []struct {
		subject string
		current string
		wantID  string
		wantOK  bool
	}{
		{"mathematics", "fractions", "decimals", true},
		{"mathematics", "Fractions", "decimals", true}, // display name match
		{"mathematics", "decimals", "percentages", true},
		{"mathematics", "percentages", "", false}, // last topic
		{"mathematics", "unknown", "", false},
		{"chemistry", "fractions", "", false},
	}
	for _, tt := range tests {
		got, ok := loader.NextTopic(tt.subject, tt.current)
		if ok != tt.wantOK || got.ID != tt.wantID {
			t.Errorf("NextTopic(%s, %s) = %q, %v; want %q, %v",
				tt.subject, tt.current, got.ID, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestLoader_MissingDir(t *testing.T) {
	// A missing root yields an empty catalog rather than an error; the walk
	// reports the root error and moves on.
	loader, err := curriculum.NewLoader(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	if len(loader.Subjects()) != 0 {
		t.Errorf("subjects = %+v, want empty", loader.Subjects())
	}
}
