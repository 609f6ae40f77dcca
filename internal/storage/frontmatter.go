// ABOUTME: YAML frontmatter splitting and timestamp helpers for markdown posts.
// ABOUTME: Separates the leading --- block from the markdown body.
package storage

import (
	"strings"
	"time"
)

const fence = "---"

// ParseFrontmatter splits content into its YAML frontmatter and body.
// If content does not open with a --- fence, yamlStr is empty and body is
// the whole input.
func ParseFrontmatter(content string) (yamlStr, body string) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(content, fence+"\n") {
		return "", content
	}
	rest := content[len(fence)+1:]

	// Closing fence may be the very first line (empty frontmatter).
	if strings.HasPrefix(rest, fence+"\n") || rest == fence {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, fence), "\n")
	}

	idx := strings.Index(rest, "\n"+fence+"\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n"+fence) {
			return rest[:len(rest)-len(fence)-1], ""
		}
		return "", content
	}
	return rest[:idx], rest[idx+len(fence)+2:]
}

// ParseTime accepts RFC 3339 timestamps and plain dates.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
