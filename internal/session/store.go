package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	apierrors "github.com/Rithvik-katakamm/llama-utils/internal/errors"
	"github.com/Rithvik-katakamm/llama-utils/internal/logger"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

// DefaultProject is the directory segment used when no project is set.
const DefaultProject = "default"

// Store manages session persistence for one project directory at a time.
type Store struct {
	baseDir string
	project string
	mu      sync.RWMutex
}

// Descriptor describes a stored session for listings and selection.
type Descriptor struct {
	Filename string
	Meta     Metadata
	Preview  string
}

// NewStore creates a store rooted at baseDir with the given project. The
// project directory is created immediately.
func NewStore(baseDir, project string) (*Store, error) {
	s := &Store{
		baseDir: baseDir,
		project: project,
	}
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create conversations directory: %w", err)
	}
	return s, nil
}

// Project returns the effective project name.
func (s *Store) Project() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return effectiveProject(s.project)
}

// Dir returns the active project directory.
func (s *Store) Dir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirLocked()
}

func (s *Store) dirLocked() string {
	return filepath.Join(s.baseDir, effectiveProject(s.project))
}

// SwitchProject rebinds the store to another project directory, creating it
// if needed. The caller is responsible for discarding any active session;
// nothing is saved implicitly.
func (s *Store) SwitchProject(project string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.project = project
	if err := os.MkdirAll(s.dirLocked(), 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	return nil
}

// List returns session filenames in the active project, newest first by the
// timestamp-derived names. A missing directory yields an empty list.
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dirLocked())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// ListWithMeta returns session descriptors sorted by last_modified
// descending. Unreadable files still appear, with an explanatory preview,
// and sort last.
func (s *Store) ListWithMeta() ([]Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dirLocked())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}

	var descriptors []Descriptor
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		doc, err := s.readDocumentLocked(entry.Name())
		if err != nil {
			descriptors = append(descriptors, Descriptor{
				Filename: entry.Name(),
				Preview:  "Unable to load preview",
			})
			continue
		}

		descriptors = append(descriptors, Descriptor{
			Filename: entry.Name(),
			Meta:     doc.Metadata,
			Preview:  previewOf(doc.Messages),
		})
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Meta.LastModified.After(descriptors[j].Meta.LastModified)
	})

	return descriptors, nil
}

// NewSession starts a fresh session. The backing file is named from the
// current timestamp unless name is given, and is written immediately; an
// optional system prompt becomes the first message.
func (s *Store) NewSession(model, systemPrompt, name string) (*Session, error) {
	s.mu.RLock()
	dir := s.dirLocked()
	project := effectiveProject(s.project)
	s.mu.RUnlock()

	now := time.Now()
	sess := &Session{
		Model:    model,
		Project:  project,
		Created:  now,
		Messages: []models.Message{},
		path:     filepath.Join(dir, sessionFilename(name, now)),
		store:    s,
	}

	if systemPrompt != "" {
		sess.Messages = append(sess.Messages, models.SystemMessage(systemPrompt))
	}

	if err := sess.Save(); err != nil {
		return nil, err
	}

	logger.Debug("started session", "file", sess.Filename(), "project", sess.Project)
	return sess, nil
}

// Load reads a session file and returns the populated session. Missing
// files and malformed JSON both fail without partial state.
func (s *Store) Load(filename string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filename = normalizeFilename(filename)
	doc, err := s.readDocumentLocked(filename)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Model:    doc.Metadata.Model,
		Project:  effectiveProject(s.project),
		Created:  doc.Metadata.Created,
		Messages: doc.Messages,
		Context:  doc.Metadata.ContextData,
		path:     filepath.Join(s.dirLocked(), filename),
		store:    s,
	}
	if sess.Messages == nil {
		sess.Messages = []models.Message{}
	}

	return sess, nil
}

// Import copies a session file from outside the store into the active
// project. The source may be a full session document or a bare message
// array; either way the result is saved as a new session file named after
// the source.
func (s *Store) Import(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		var messages []models.Message
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse import file: %w", err)
		}
		doc = document{Messages: messages}
	}
	if len(doc.Messages) == 0 {
		return nil, fmt.Errorf("import file contains no messages")
	}
	for _, msg := range doc.Messages {
		if !models.ValidRole(msg.Role) {
			return nil, fmt.Errorf("%w: %s", apierrors.ErrInvalidRole, msg.Role)
		}
	}

	s.mu.RLock()
	dir := s.dirLocked()
	project := effectiveProject(s.project)
	s.mu.RUnlock()

	now := time.Now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sess := &Session{
		Model:    doc.Metadata.Model,
		Project:  project,
		Created:  doc.Metadata.Created,
		Messages: doc.Messages,
		Context:  doc.Metadata.ContextData,
		path:     filepath.Join(dir, sessionFilename(name, now)),
		store:    s,
	}

	if err := sess.Save(); err != nil {
		return nil, err
	}

	logger.Debug("imported session", "file", sess.Filename(), "from", path)
	return sess, nil
}

// Delete removes a session file.
func (s *Store) Delete(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filename = normalizeFilename(filename)
	if err := os.Remove(filepath.Join(s.dirLocked(), filename)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", apierrors.ErrSessionNotFound, filename)
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Clear deletes every session file in the active project.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dirLocked())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read project directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dirLocked(), entry.Name())); err != nil {
			return fmt.Errorf("failed to delete %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Projects lists the project directories under the conversations root.
func (s *Store) Projects() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read conversations directory: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		if entry.IsDir() {
			projects = append(projects, entry.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

// Internal methods

func (s *Store) readDocumentLocked(filename string) (*document, error) {
	data, err := os.ReadFile(filepath.Join(s.dirLocked(), filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", apierrors.ErrSessionNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", filename, err)
	}
	return &doc, nil
}

func (s *Store) saveSession(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if sess.Created.IsZero() {
		sess.Created = now
	}

	doc := document{
		Metadata: Metadata{
			Model:        sess.Model,
			Project:      sess.Project,
			Created:      sess.Created,
			LastModified: now,
			MessageCount: len(sess.Messages),
			ContextData:  sess.Context,
		},
		Messages: sess.Messages,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sess.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// sessionFilename derives the backing filename: the custom name when given,
// otherwise the timestamp form 20060102_150405.json.
func sessionFilename(name string, now time.Time) string {
	if name != "" {
		return normalizeFilename(filepath.Base(name))
	}
	return now.Format("20060102_150405") + ".json"
}

func normalizeFilename(filename string) string {
	if !strings.HasSuffix(filename, ".json") {
		return filename + ".json"
	}
	return filename
}

func effectiveProject(project string) string {
	if project == "" {
		return DefaultProject
	}
	return project
}
