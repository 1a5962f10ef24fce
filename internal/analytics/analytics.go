// Package analytics derives grades, trends and the cumulative GPA from
// persisted quiz attempts.
package analytics

import (
	"sort"
	"strings"

	"github.com/p-n-ai/pai-study/internal/dashboard"
	"github.com/p-n-ai/pai-study/internal/quiz"
)

// DefaultCredits is assumed when a course does not declare credit hours.
const DefaultCredits = 3

// Trend labels for a course's recent performance.
const (
	TrendImproving      = "improving"
	TrendStable         = "stable"
	TrendNeedsAttention = "needs_attention"
)

// CourseProgress is the derived standing in one course.
type CourseProgress struct {
	Course       string  `json:"course"`
	AverageScore float64 `json:"averageScore"` // percentage, 0..100
	Grade        string  `json:"grade"`
	GradePoints  float64 `json:"gradePoints"`
	Credits      int     `json:"credits"`
	Trend        string  `json:"trend"`
	Attempts     int     `json:"attempts"`
}

// GradeFor maps a percentage score to a letter grade and its point value.
func GradeFor(score float64) (string, float64) {
	switch {
	case score >= 90:
		return "A", 4.0
	case score >= 80:
		return "B+", 3.7
	case score >= 70:
		return "B", 3.3
	case score >= 60:
		return "C+", 2.7
	default:
		return "C", 2.0
	}
}

// TrendFor labels a percentage score.
func TrendFor(score float64) string {
	switch {
	case score >= 80:
		return TrendImproving
	case score >= 60:
		return TrendStable
	default:
		return TrendNeedsAttention
	}
}

// CGPA is the credit-weighted mean of grade points. Zero when no course has
// credits.
func CGPA(courses []CourseProgress) float64 {
	var points, credits float64
	for _, c := range courses {
		points += c.GradePoints * float64(c.Credits)
		credits += float64(c.Credits)
	}
	if credits == 0 {
		return 0
	}
	return points / credits
}

// FromAttempts groups attempts by subject and derives per-course standing.
// Credits come from the matching course's declaration when available,
// DefaultCredits otherwise. Courses are returned in subject order.
func FromAttempts(attempts []quiz.Attempt, courses []dashboard.CourseContent) []CourseProgress {
	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, a := range attempts {
		b := buckets[a.Subject]
		if b == nil {
			b = &bucket{}
			buckets[a.Subject] = b
		}
		b.total += a.Performance.Score
		b.count++
	}

	creditsByTitle := make(map[string]int, len(courses))
	for _, c := range courses {
		if c.Credits > 0 {
			creditsByTitle[strings.ToLower(c.Title)] = c.Credits
		}
	}

	progress := make([]CourseProgress, 0, len(buckets))
	for subject, b := range buckets {
		avg := b.total / float64(b.count) * 100
		grade, points := GradeFor(avg)
		credits := DefaultCredits
		if c, ok := creditsByTitle[strings.ToLower(subject)]; ok {
			credits = c
		}
		progress = append(progress, CourseProgress{
			Course:       subject,
			AverageScore: avg,
			Grade:        grade,
			GradePoints:  points,
			Credits:      credits,
			Trend:        TrendFor(avg),
			Attempts:     b.count,
		})
	}

	sort.Slice(progress, func(i, j int) bool {
		return progress[i].Course < progress[j].Course
	})
	return progress
}
