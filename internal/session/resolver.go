package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver resolves user-friendly references to session filenames
type Resolver struct {
	store *Store
}

// NewResolver creates a new alias resolver
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve converts a user-friendly reference to a session filename
//
// Supported references:
//   - "@last" - most recently modified session
//   - "@first" - oldest session
//   - "1", "2", "3" - by index (1-based, from most recent)
//   - "20250114_093045.json" - exact filename (.json optional)
//   - "substring" - fuzzy match on filename (error if multiple matches)
func (r *Resolver) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	if ref == "" {
		return "", fmt.Errorf("empty reference")
	}

	sessions, err := r.store.ListWithMeta()
	if err != nil {
		return "", fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		return "", fmt.Errorf("no sessions found in project %s", r.store.Project())
	}

	// Sorted by LastModified descending
	switch strings.ToLower(ref) {
	case "@last":
		return sessions[0].Filename, nil
	case "@first":
		return sessions[len(sessions)-1].Filename, nil
	}

	// Numeric index (1-based)
	if index, err := strconv.Atoi(ref); err == nil {
		if index < 1 || index > len(sessions) {
			return "", fmt.Errorf("index %d out of range (1-%d)", index, len(sessions))
		}
		return sessions[index-1].Filename, nil
	}

	// Exact filename, with or without the .json extension
	normalized := normalizeFilename(ref)
	for _, s := range sessions {
		if s.Filename == normalized {
			return s.Filename, nil
		}
	}

	// Substring match on filename (case-insensitive)
	refLower := strings.ToLower(ref)
	var matches []string
	for _, s := range sessions {
		if strings.Contains(strings.ToLower(s.Filename), refLower) {
			matches = append(matches, s.Filename)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no session matching '%s'", ref)
	case 1:
		return matches[0], nil
	default:
		var quoted []string
		for _, m := range matches {
			quoted = append(quoted, fmt.Sprintf("'%s'", m))
		}
		return "", fmt.Errorf("multiple sessions match '%s': %s. Use the full filename or be more specific",
			ref, strings.Join(quoted, ", "))
	}
}

// ResolveAndLoad resolves a reference and loads the session it names
func (r *Resolver) ResolveAndLoad(ref string) (*Session, error) {
	filename, err := r.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return r.store.Load(filename)
}

// ListAliases returns information about supported references
func ListAliases() string {
	return `Supported references:
  @last          Most recently modified session
  @first         Oldest session
  1, 2, 3        By index (1-based, from most recent)
  "text"         Search by filename substring
  name.json      Exact filename (.json optional)`
}
