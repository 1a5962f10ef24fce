// Package curriculum loads subject catalogs from YAML and answers ordering
// questions: which topic a subject starts with and which one follows the
// current topic when the policy signals an advance.
package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader loads and caches subject catalogs from the filesystem.
type Loader struct {
	rootDir  string
	subjects map[string]Subject
	mu       sync.RWMutex
}

// NewLoader creates a loader and reads every subject file under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir:  rootDir,
		subjects: make(map[string]Subject),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	slog.Info("curriculum loaded", "subjects", len(l.subjects))
	return l, nil
}

// Subject returns a subject by ID.
func (l *Loader) Subject(id string) (Subject, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.subjects[id]
	return s, ok
}

// Subjects returns all loaded subjects sorted by ID.
func (l *Loader) Subjects() []Subject {
	l.mu.RLock()
	defer l.mu.RUnlock()
	subjects := make([]Subject, 0, len(l.subjects))
	for _, s := range l.subjects {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].ID < subjects[j].ID
	})
	return subjects
}

// FirstTopic returns the opening topic of a subject.
func (l *Loader) FirstTopic(subjectID string) (Topic, bool) {
	s, ok := l.Subject(subjectID)
	if !ok || len(s.Topics) == 0 {
		return Topic{}, false
	}
	return s.Topics[0], true
}

// NextTopic returns the topic following current in the subject's teaching
// order. The current topic matches by ID or by name, since the policy
// service reports display names. The second return is false when the subject
// or topic is unknown, or when current is the last topic.
func (l *Loader) NextTopic(subjectID, current string) (Topic, bool) {
	s, ok := l.Subject(subjectID)
	if !ok {
		return Topic{}, false
	}
	for i, t := range s.Topics {
		if (t.ID == current || t.Name == current) && i+1 < len(s.Topics) {
			return s.Topics[i+1], true
		}
	}
	return Topic{}, false
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return l.loadSubject(path)
	})
}

func (l *Loader) loadSubject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var subject Subject
	if err := yaml.Unmarshal(data, &subject); err != nil {
		slog.Warn("skipping invalid subject YAML", "path", path, "error", err)
		return nil
	}

	if subject.ID == "" {
		return nil // Not a subject file
	}

	l.mu.Lock()
	l.subjects[subject.ID] = subject
	l.mu.Unlock()

	return nil
}
