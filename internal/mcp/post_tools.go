// ABOUTME: MCP tool implementations for post list operations.
// ABOUTME: Registers add, delete, list, tag, sort toggle, and like tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/config"
	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/posts"
	"github.com/2389-research/postboard/internal/ui"
)

func (s *Server) registerPostTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_post",
		Description: "Add a new post. Title and content must not be blank.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Post title."},
				"content": {"type": "string", "description": "Post body."},
				"tags": {"type": "string", "description": "Comma-separated tags, e.g. \"go, cli\"."}
			},
			"required": ["title", "content"]
		}`),
	}, s.handleAddPost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete every post with the given id.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Id of the post to delete."}
			},
			"required": ["id"]
		}`),
	}, s.handleDeletePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_posts",
		Description: "List posts matching the current filters. Any filter given here replaces the current one.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Case-insensitive text matched against title, content, and tags. Empty clears."},
				"tag": {"type": "string", "description": "Exact tag to filter by. Empty clears."},
				"sort": {"type": "string", "enum": ["likes", "date", "none"], "description": "Sort order."},
				"limit": {"type": "number", "description": "Maximum number of posts to return (default all)."}
			}
		}`),
	}, s.handleListPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_tags",
		Description: "List every distinct tag in first-seen order with post counts.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "toggle_sort",
		Description: "Toggle sorting by likes or by date. Turning one on turns the other off.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"by": {"type": "string", "enum": ["likes", "date"], "description": "Which sort to toggle."}
			},
			"required": ["by"]
		}`),
	}, s.handleToggleSort)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "like_post",
		Description: "Add one like to the post with the given id.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "Id of the post to like."}
			},
			"required": ["id"]
		}`),
	}, s.handleLikePost)
}

func (s *Server) handleAddPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var in models.NewPostInput
	if err := decodeArgs(req.Params.Arguments, &in); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	var (
		post models.Post
		ok   bool
	)
	s.withStore(func(store *posts.Store) {
		post, ok = store.AddPost(in)
	})
	if !ok {
		return toolError("title and content must not be blank"), nil
	}

	s.logger.Info("mcp: post added", "id", post.ID)
	return textResult(fmt.Sprintf("Post created (ID: %d)", post.ID)), nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID *int `json:"id"`
	}
	if err := decodeArgs(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == nil {
		return toolError("id is required"), nil
	}

	var removed int
	s.withStore(func(store *posts.Store) {
		removed = store.DeletePost(*args.ID)
	})

	if removed == 0 {
		return textResult(fmt.Sprintf("No post with ID %d", *args.ID)), nil
	}
	s.logger.Info("mcp: post deleted", "id", *args.ID, "removed", removed)
	return textResult(fmt.Sprintf("Deleted %d post(s) with ID %d", removed, *args.ID)), nil
}

func (s *Server) handleListPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Search *string `json:"search"`
		Tag    *string `json:"tag"`
		Sort   *string `json:"sort"`
		Limit  int     `json:"limit"`
	}
	if err := decodeArgs(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	var mode posts.SortMode
	if args.Sort != nil {
		m, err := config.ParseSortMode(*args.Sort)
		if err != nil {
			return toolError("%v", err), nil
		}
		mode = m
	}

	var (
		view []models.Post
		q    posts.Query
	)
	s.withStore(func(store *posts.Store) {
		if args.Search != nil {
			store.SetSearchQuery(*args.Search)
		}
		if args.Tag != nil {
			store.SetSelectedTag(*args.Tag)
		}
		if args.Sort != nil {
			store.SetSortMode(mode)
		}
		view = store.Filtered()
		q = store.Query()
	})

	if args.Limit > 0 && len(view) > args.Limit {
		view = view[:args.Limit]
	}

	if len(view) == 0 {
		return textResult("No posts found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("sort: %s", q.Mode()))
	if q.Search != "" {
		sb.WriteString(fmt.Sprintf(", search: %q", q.Search))
	}
	if q.Tag != "" {
		sb.WriteString(fmt.Sprintf(", tag: %q", q.Tag))
	}
	sb.WriteString("\n")
	for _, post := range view {
		sb.WriteString(fmt.Sprintf("---\n#%d %s [%s] likes=%d", post.ID, post.Title,
			post.CreatedAt.Format("2006-01-02 15:04:05"), post.Likes))
		if post.IsFavorite {
			sb.WriteString(" *")
		}
		if len(post.Tags) > 0 {
			sb.WriteString(fmt.Sprintf(" tags=%s", strings.Join(post.Tags, ",")))
		}
		sb.WriteString(fmt.Sprintf("\n%s\n", post.Content))
	}

	return textResult(sb.String()), nil
}

func (s *Server) handleListTags(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var (
		tags []string
		all  []models.Post
	)
	s.withStore(func(store *posts.Store) {
		tags = store.Tags()
		all = store.Posts()
	})

	if len(tags) == 0 {
		return textResult("No tags found."), nil
	}

	var sb strings.Builder
	for _, tc := range ui.CountTags(tags, all) {
		sb.WriteString(fmt.Sprintf("%q (%d)\n", tc.Name, tc.Count))
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleToggleSort(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		By string `json:"by"`
	}
	if err := decodeArgs(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	var mode posts.SortMode
	switch args.By {
	case "likes":
		s.withStore(func(store *posts.Store) {
			store.ToggleSortByLikes()
			mode = store.SortMode()
		})
	case "date":
		s.withStore(func(store *posts.Store) {
			store.ToggleSortByDate()
			mode = store.SortMode()
		})
	default:
		return toolError("by must be \"likes\" or \"date\", got %q", args.By), nil
	}

	return textResult(fmt.Sprintf("Sort is now: %s", mode)), nil
}

func (s *Server) handleLikePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID *int `json:"id"`
	}
	if err := decodeArgs(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == nil {
		return toolError("id is required"), nil
	}

	var (
		post  models.Post
		found bool
	)
	s.withStore(func(store *posts.Store) {
		if store.Like(*args.ID) {
			post, found = store.Get(*args.ID)
		}
	})
	if !found {
		return toolError("no post with ID %d", *args.ID), nil
	}

	return textResult(fmt.Sprintf("Liked post %d (%d likes)", post.ID, post.Likes)), nil
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as zero values.
func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
