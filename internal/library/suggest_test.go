package library_test

import (
	"testing"

	"github.com/p-n-ai/pai-study/internal/library"
)

func TestSuggestCourse(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"psych-101-notes.pdf", "Psychology"},
		{"Cognitive_Biases.docx", "Psychology"},
		{"calculus-week3.pdf", "Mathematics"},
		{"Linear_Algebra_HW.pdf", "Mathematics"},
		{"machine-learning-intro.pptx", "Machine Learning"},
		{"neural-nets.pdf", "Machine Learning"},
		{"quantum-mechanics.pdf", "Physics"},
		{"algorithm-design.md", "Computer Science"},
		{"holiday-photos.zip", library.DefaultCourse},
		{"", library.DefaultCourse},
	}
	for _, tt := range tests {
		if got := library.SuggestCourse(tt.filename); got != tt.want {
			t.Errorf("SuggestCourse(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestSuggestCourse_ShortTokenDoesNotOvermatch(t *testing.T) {
	// "html" contains "ml" as a substring; the short token is anchored with
	// a dash so plain web files stay uncategorized.
	if got := library.SuggestCourse("index.html"); got != library.DefaultCourse {
		t.Errorf("SuggestCourse(index.html) = %q, want %q", got, library.DefaultCourse)
	}
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.PDF", "document"},
		{"slides.pptx", "presentation"},
		{"lecture.mp4", "video"},
		{"diagram.svg", "image"},
		{"grades.csv", "spreadsheet"},
		{"archive.zip", "other"},
	}
	for _, tt := range tests {
		if got := library.CategoryFor(tt.filename); got != tt.want {
			t.Errorf("CategoryFor(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{1572864, "1.5 MB"},
		{2147483648, "2.0 GB"},
	}
	for _, tt := range tests {
		if got := library.FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
