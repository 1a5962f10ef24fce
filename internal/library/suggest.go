// Package library handles uploaded study materials: it suggests which course
// a file belongs to from its name so uploads land in the right shelf without
// the learner filing them by hand.
package library

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultCourse is suggested when no keyword group matches.
const DefaultCourse = "General Studies"

type keywordGroup struct {
	course   string
	keywords []string
}

// Groups are checked in order; the first hit wins. "ml" style short tokens
// sit behind longer ones so "html" never matches machine learning.
var keywordGroups = []keywordGroup{
	{"Psychology", []string{"psych", "cognitive", "behavior"}},
	{"Machine Learning", []string{"machine-learning", "machine_learning", "neural", "deep-learning", "ml-"}},
	{"Mathematics", []string{"math", "calculus", "algebra", "geometry", "statistics"}},
	{"Physics", []string{"physics", "quantum", "mechanics", "thermodynamics"}},
	{"Computer Science", []string{"programming", "algorithm", "data-structures", "compiler", "cs-"}},
}

// SuggestCourse proposes a course for an uploaded file from its name.
func SuggestCourse(filename string) string {
	name := strings.ToLower(filename)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(name, kw) {
				return g.course
			}
		}
	}
	return DefaultCourse
}

// CategoryFor buckets a file by extension.
func CategoryFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".doc", ".docx", ".txt", ".md":
		return "document"
	case ".ppt", ".pptx", ".key":
		return "presentation"
	case ".mp4", ".mov", ".webm":
		return "video"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg":
		return "image"
	case ".xls", ".xlsx", ".csv":
		return "spreadsheet"
	default:
		return "other"
	}
}

// FormatSize renders a byte count the way the dashboard displays it.
func FormatSize(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
