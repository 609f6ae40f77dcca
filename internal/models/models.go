// ABOUTME: Core data model for blog posts and the input used to create them.
// ABOUTME: Provides the post constructor and comma-separated tag parsing.
package models

import (
	"strings"
	"time"
)

// Post is a single blog post held by the post list store.
type Post struct {
	ID         int
	Title      string
	Content    string
	Tags       []string
	Likes      int
	IsEditing  bool
	IsFavorite bool
	CreatedAt  time.Time
}

// NewPostInput is what a caller supplies to create a post.
// Tags is a single comma-separated string, e.g. "go, cli".
type NewPostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// Valid reports whether both title and content are non-blank after trimming.
func (in NewPostInput) Valid() bool {
	return strings.TrimSpace(in.Title) != "" && strings.TrimSpace(in.Content) != ""
}

// NewPost builds a post from input with zeroed counters and flags.
// It does not validate; callers check Valid first.
func NewPost(id int, in NewPostInput, createdAt time.Time) Post {
	return Post{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      ParseTags(in.Tags),
		CreatedAt: createdAt,
	}
}

// ParseTags splits s on commas and trims every piece.
// Empty pieces are kept, so "a,,b" yields ["a" "" "b"] and "" yields [""].
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// HasTag reports whether the post carries tag exactly.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy of p that shares no slice memory with it.
func (p Post) Clone() Post {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}
