package session

import "strings"

// Match is one search hit inside a session's message list.
type Match struct {
	Index   int
	Role    string
	Content string
	Snippet string
}

// FileMatch groups search hits per session file for cross-session search.
type FileMatch struct {
	Filename string
	Matches  []Match
}

// Search performs a case-insensitive substring search over message content.
// An empty role searches all roles.
func (s *Session) Search(query, role string) []Match {
	var results []Match
	queryLower := strings.ToLower(query)

	for i, msg := range s.Messages {
		if role != "" && msg.Role != role {
			continue
		}
		if strings.Contains(strings.ToLower(msg.Content), queryLower) {
			results = append(results, Match{
				Index:   i,
				Role:    msg.Role,
				Content: msg.Content,
				Snippet: searchSnippet(msg.Content, query, 100),
			})
		}
	}
	return results
}

// Search scans every readable session in the active project for the query.
// Corrupted files are skipped.
func (s *Store) Search(query string) ([]FileMatch, error) {
	files, err := s.List()
	if err != nil {
		return nil, err
	}

	var results []FileMatch
	for _, filename := range files {
		sess, err := s.Load(filename)
		if err != nil {
			continue
		}
		if matches := sess.Search(query, ""); len(matches) > 0 {
			results = append(results, FileMatch{
				Filename: filename,
				Matches:  matches,
			})
		}
	}
	return results, nil
}

// searchSnippet windows the content around the first match, half the
// context on each side, with ellipses marking truncation.
func searchSnippet(text, query string, contextChars int) string {
	pos := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if pos == -1 {
		if len(text) > contextChars {
			return text[:contextChars] + "..."
		}
		return text
	}

	start := pos - contextChars/2
	if start < 0 {
		start = 0
	}
	end := pos + contextChars/2
	if end > len(text) {
		end = len(text)
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}
	return snippet
}
