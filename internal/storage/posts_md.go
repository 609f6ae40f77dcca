// ABOUTME: Read-only markdown post source for seeding the post list store.
// ABOUTME: Parses posts from markdown files with YAML frontmatter in a directory tree.
package storage

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/postboard/internal/models"
)

// PostsMDSource reads posts from markdown files under a directory.
// Nothing is ever written back.
type PostsMDSource struct {
	dir    string // root directory holding *.md post files
	logger *slog.Logger
}

// postFrontmatter is the YAML frontmatter for post files.
type postFrontmatter struct {
	ID        int      `yaml:"id"`
	Title     string   `yaml:"title"`
	Tags      []string `yaml:"tags,omitempty"`
	Likes     int      `yaml:"likes"`
	Favorite  bool     `yaml:"favorite"`
	CreatedAt string   `yaml:"created_at"`
}

// NewPostsMDSource creates a source rooted at dir. A nil logger uses slog.Default.
func NewPostsMDSource(dir string, logger *slog.Logger) (*PostsMDSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDir)
	}
	return &PostsMDSource{
		dir:    dir,
		logger: logger,
	}, nil
}

// Dir returns the root directory of the source.
func (s *PostsMDSource) Dir() string {
	return s.dir
}

// ListPosts parses every post file under the root. Files that fail to parse
// are logged and skipped. A missing root yields no posts. Posts come back
// ordered by created_at ascending, with path order breaking ties; posts
// without an id are numbered after the highest explicit id.
func (s *PostsMDSource) ListPosts() ([]models.Post, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil, nil
	}

	var all []models.Post
	walkErr := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsPostFile(path) {
			return nil
		}

		data, err := os.ReadFile(path) //nolint:gosec // Seed directory is user-configured
		if err != nil {
			s.logger.Warn("storage: skipping unreadable post", "path", path, "err", err)
			return nil
		}

		post, err := parsePost(string(data))
		if err != nil {
			s.logger.Warn("storage: skipping invalid post", "path", path, "err", err)
			return nil
		}

		all = append(all, post)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to read seed directory: %w", walkErr)
	}

	// Oldest first, so later additions append in chronological order.
	slices.SortStableFunc(all, func(a, b models.Post) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	maxID := 0
	for _, p := range all {
		maxID = max(maxID, p.ID)
	}
	for i := range all {
		if all[i].ID == 0 {
			maxID++
			all[i].ID = maxID
		}
	}

	s.logger.Debug("storage: loaded posts", "dir", s.dir, "count", len(all))
	return all, nil
}

// Close releases any resources held by the source.
func (s *PostsMDSource) Close() error {
	return nil
}

// IsPostFile reports whether path names a post file.
func IsPostFile(path string) bool {
	return strings.HasSuffix(path, ".md") && !strings.HasPrefix(filepath.Base(path), ".")
}

// parsePost parses a markdown file into a Post.
func parsePost(content string) (models.Post, error) {
	yamlStr, body := ParseFrontmatter(content)
	if yamlStr == "" {
		return models.Post{}, fmt.Errorf("no frontmatter found")
	}

	var fm postFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return models.Post{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	body = strings.TrimSpace(body)
	if strings.TrimSpace(fm.Title) == "" || body == "" {
		return models.Post{}, fmt.Errorf("title and content are required")
	}
	if fm.ID < 0 {
		return models.Post{}, fmt.Errorf("invalid id %d", fm.ID)
	}

	post := models.Post{
		ID:         fm.ID,
		Title:      fm.Title,
		Content:    body,
		Tags:       trimTags(fm.Tags),
		Likes:      fm.Likes,
		IsFavorite: fm.Favorite,
	}

	if fm.CreatedAt != "" {
		createdAt, err := ParseTime(fm.CreatedAt)
		if err != nil {
			return models.Post{}, fmt.Errorf("invalid date: %w", err)
		}
		post.CreatedAt = createdAt
	}

	return post, nil
}

// trimTags trims every tag, matching tags parsed from comma-separated input.
func trimTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.TrimSpace(t)
	}
	return out
}
