// ABOUTME: In-memory post list store with memoized filtered and tag views.
// ABOUTME: Holds the post collection, query state, and sort-mode toggles.
package posts

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/2389-research/postboard/internal/models"
)

// SortMode names the active ordering of the filtered view.
type SortMode string

const (
	SortNone  SortMode = "none"
	SortLikes SortMode = "likes"
	SortDate  SortMode = "date"
)

// Query is the full set of parameters the filtered view depends on.
type Query struct {
	Search      string
	Tag         string
	SortByLikes bool
	SortByDate  bool
}

// Mode returns the sort mode implied by the two flags. Like-sort wins if
// both are somehow set.
func (q Query) Mode() SortMode {
	switch {
	case q.SortByLikes:
		return SortLikes
	case q.SortByDate:
		return SortDate
	default:
		return SortNone
	}
}

// Store is a single-threaded post list state container. Derived views are
// recomputed on read, and only when the collection or query changed since
// the previous read. Callers sharing a Store across goroutines must
// serialize access themselves.
type Store struct {
	posts  []models.Post
	query  Query
	nextID int

	postsVersion uint64
	queryVersion uint64

	tagsCache   []string
	tagsVersion uint64
	tagsValid   bool
	viewCache   []models.Post
	viewPosts   uint64
	viewQuery   uint64
	viewValid   bool
	recomputes  int

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp new posts.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store over a copy of initial. Sorting starts by date.
func New(initial []models.Post, opts ...Option) *Store {
	s := &Store{
		posts:  make([]models.Post, 0, len(initial)),
		query:  Query{SortByDate: true},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range initial {
		s.posts = append(s.posts, p.Clone())
		if p.ID > s.nextID {
			s.nextID = p.ID
		}
	}
	return s
}

// AddPost appends a post built from in. It is a silent no-op, returning
// false, when the trimmed title or content is empty.
func (s *Store) AddPost(in models.NewPostInput) (models.Post, bool) {
	if !in.Valid() {
		s.logger.Debug("posts: add ignored, blank title or content")
		return models.Post{}, false
	}
	s.nextID++
	post := models.NewPost(s.nextID, in, s.now())
	s.posts = append(s.posts, post)
	s.postsChanged()
	s.logger.Debug("posts: added", "id", post.ID, "tags", len(post.Tags))
	return post.Clone(), true
}

// DeletePost removes every post whose id matches and returns how many
// were removed. Unknown ids are ignored.
func (s *Store) DeletePost(id int) int {
	before := len(s.posts)
	s.posts = slices.DeleteFunc(s.posts, func(p models.Post) bool {
		return p.ID == id
	})
	removed := before - len(s.posts)
	if removed > 0 {
		s.postsChanged()
		s.logger.Debug("posts: deleted", "id", id, "removed", removed)
	}
	return removed
}

// Like increments the like counter of the post with the given id.
func (s *Store) Like(id int) bool {
	return s.update(id, func(p *models.Post) bool {
		p.Likes++
		return true
	})
}

// ToggleFavorite flips the favorite flag of the post with the given id.
func (s *Store) ToggleFavorite(id int) bool {
	return s.update(id, func(p *models.Post) bool {
		p.IsFavorite = !p.IsFavorite
		return true
	})
}

// SetEditing sets the editing flag of the post with the given id.
func (s *Store) SetEditing(id int, editing bool) bool {
	return s.update(id, func(p *models.Post) bool {
		if p.IsEditing == editing {
			return false
		}
		p.IsEditing = editing
		return true
	})
}

// update applies fn to every post with the given id. It reports whether
// any post matched.
func (s *Store) update(id int, fn func(*models.Post) bool) bool {
	found, changed := false, false
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		found = true
		if fn(&s.posts[i]) {
			changed = true
		}
	}
	if changed {
		s.postsChanged()
	}
	return found
}

// ToggleSortByLikes flips like-sort and always turns date-sort off.
func (s *Store) ToggleSortByLikes() {
	s.query.SortByLikes = !s.query.SortByLikes
	s.query.SortByDate = false
	s.queryChanged()
}

// ToggleSortByDate flips date-sort and always turns like-sort off.
func (s *Store) ToggleSortByDate() {
	s.query.SortByDate = !s.query.SortByDate
	s.query.SortByLikes = false
	s.queryChanged()
}

// SetSearchQuery sets the case-insensitive search text.
func (s *Store) SetSearchQuery(q string) {
	if s.query.Search == q {
		return
	}
	s.query.Search = q
	s.queryChanged()
}

// SetSelectedTag sets the exact-match tag filter. Empty clears it.
func (s *Store) SetSelectedTag(tag string) {
	if s.query.Tag == tag {
		return
	}
	s.query.Tag = tag
	s.queryChanged()
}

// SetSortMode selects a sort mode directly.
func (s *Store) SetSortMode(mode SortMode) {
	s.SetQuery(Query{
		Search:      s.query.Search,
		Tag:         s.query.Tag,
		SortByLikes: mode == SortLikes,
		SortByDate:  mode == SortDate,
	})
}

// SetQuery replaces the whole query state. If both sort flags are set,
// like-sort wins.
func (s *Store) SetQuery(q Query) {
	if q.SortByLikes {
		q.SortByDate = false
	}
	if s.query == q {
		return
	}
	s.query = q
	s.queryChanged()
}

// Query returns a snapshot of the current query state.
func (s *Store) Query() Query {
	return s.query
}

func (s *Store) SearchQuery() string { return s.query.Search }

func (s *Store) SelectedTag() string { return s.query.Tag }

func (s *Store) SortByLikes() bool { return s.query.SortByLikes }

func (s *Store) SortByDate() bool { return s.query.SortByDate }

func (s *Store) SortMode() SortMode { return s.query.Mode() }

// Len returns the number of posts in the collection.
func (s *Store) Len() int { return len(s.posts) }

// Posts returns a copy of the raw collection in insertion order.
func (s *Store) Posts() []models.Post {
	return clonePosts(s.posts)
}

// Get returns the first post with the given id.
func (s *Store) Get(id int) (models.Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Post{}, false
}

// Tags returns the distinct tags across all posts in first-occurrence order.
func (s *Store) Tags() []string {
	if !s.tagsValid || s.tagsVersion != s.postsVersion {
		s.tagsCache = distinctTags(s.posts)
		s.tagsVersion = s.postsVersion
		s.tagsValid = true
	}
	return slices.Clone(s.tagsCache)
}

// Filtered returns the posts matching the current query, in the current
// sort order.
func (s *Store) Filtered() []models.Post {
	if !s.viewValid || s.viewPosts != s.postsVersion || s.viewQuery != s.queryVersion {
		s.viewCache = Filter(s.posts, s.query)
		s.viewPosts = s.postsVersion
		s.viewQuery = s.queryVersion
		s.viewValid = true
		s.recomputes++
	}
	return clonePosts(s.viewCache)
}

func (s *Store) postsChanged() { s.postsVersion++ }
func (s *Store) queryChanged() { s.queryVersion++ }

// Filter applies q to posts and returns the matching posts sorted by q's
// mode. The input slice is not modified.
func Filter(posts []models.Post, q Query) []models.Post {
	needle := strings.ToLower(q.Search)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if !Matches(p, needle) {
			continue
		}
		if q.Tag != "" && !p.HasTag(q.Tag) {
			continue
		}
		out = append(out, p)
	}

	switch q.Mode() {
	case SortLikes:
		slices.SortStableFunc(out, func(a, b models.Post) int {
			return cmp.Compare(b.Likes, a.Likes)
		})
	case SortDate:
		slices.SortStableFunc(out, func(a, b models.Post) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return out
}

// Matches reports whether the lowercase needle occurs in the post's title,
// content, or any tag, ignoring case. An empty needle matches every post.
func Matches(p models.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func distinctTags(posts []models.Post) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}
