// Package dashboard is the client for the learning platform's student-facing
// REST API: profiles, progress, courses, assessments and uploaded resources.
package dashboard

import (
	"github.com/p-n-ai/pai-study/internal/quiz"
)

// StudentProfile describes a registered learner.
type StudentProfile struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Level         string             `json:"level"`
	Subjects      []string           `json:"subjects"`
	LearningStyle string             `json:"learningStyle"`
	Progress      map[string]float64 `json:"progress"` // subject -> completion fraction
}

// LearningProgress is a per-subject progress snapshot.
type LearningProgress struct {
	StudentID       string  `json:"studentId"`
	Subject         string  `json:"subject"`
	Topic           string  `json:"topic"`
	CompletionRate  float64 `json:"completionRate"`
	MasteryLevel    float64 `json:"masteryLevel"`
	LastActivity    string  `json:"lastActivity"`
	TotalTimeSpent  int     `json:"totalTimeSpent"`
	QuizzesAttended int     `json:"quizzesAttended"`
}

// ScheduleItem is one session in a course schedule.
type ScheduleItem struct {
	Week     int    `json:"week"`
	Topic    string `json:"topic"`
	Activity string `json:"activity"`
}

// CourseContent describes a course the learner is enrolled in.
type CourseContent struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Instructor  string         `json:"instructor"`
	Description string         `json:"description"`
	Credits     int            `json:"credits,omitempty"`
	Objectives  []string       `json:"objectives"`
	Schedule    []ScheduleItem `json:"schedule"`
}

// Assessment is a scheduled piece of graded work.
type Assessment struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Course   string `json:"course"`
	Type     string `json:"type"` // quiz, assignment, exam, project
	DueDate  string `json:"dueDate"`
	DueTime  string `json:"dueTime"`
	Duration string `json:"duration"`
	Status   string `json:"status"` // upcoming, in-progress, completed, overdue
	Score    *int   `json:"score,omitempty"`
}

// Resource is an uploaded study material.
type Resource struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	UploadDate string `json:"uploadDate"`
	UploadTime string `json:"uploadTime"`
	Course     string `json:"course"`
	Category   string `json:"category"`
}

// QuizHistory pairs a learner with their persisted attempts.
type QuizHistory struct {
	StudentID string         `json:"studentId"`
	Attempts  []quiz.Attempt `json:"attempts"`
}
