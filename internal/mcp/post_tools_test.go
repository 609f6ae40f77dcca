// ABOUTME: Tests for post MCP tool handlers.
// ABOUTME: Covers add, delete, list, tags, sort toggle, and like tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/posts"
	"github.com/2389-research/postboard/internal/ui"
)

func makePostServer(t *testing.T) *Server {
	t.Helper()
	store := posts.New([]models.Post{
		{ID: 1, Title: "Learning Go", Content: "goroutines", Tags: []string{"go", "dev"}, Likes: 5,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Rust notes", Content: "lifetimes", Tags: []string{"rust", "dev"}, Likes: 10,
			CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	})
	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server
}

// callTool invokes a tool handler directly by name.
func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}

	handlers := map[string]func(context.Context, *gomcp.CallToolRequest) (*gomcp.CallToolResult, error){
		"add_post":    s.handleAddPost,
		"delete_post": s.handleDeletePost,
		"list_posts":  s.handleListPosts,
		"list_tags":   s.handleListTags,
		"toggle_sort": s.handleToggleSort,
		"like_post":   s.handleLikePost,
	}
	handler, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestAddPostValid(t *testing.T) {
	s := makePostServer(t)

	result := callTool(t, s, "add_post", map[string]string{
		"title":   "Hello",
		"content": "From MCP",
		"tags":    "a, b ,c",
	})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "ID: 3") {
		t.Errorf("expected new id 3, got: %s", getTextContent(result))
	}

	post, ok := s.store.Get(3)
	if !ok {
		t.Fatal("expected post 3 in store")
	}
	if strings.Join(post.Tags, "|") != "a|b|c" {
		t.Errorf("expected tags [a b c], got %q", post.Tags)
	}
}

func TestAddPostBlankTitle(t *testing.T) {
	s := makePostServer(t)

	result := callTool(t, s, "add_post", map[string]string{
		"title":   " ",
		"content": "body",
	})

	if !result.IsError {
		t.Error("expected error for blank title")
	}
	if s.store.Len() != 2 {
		t.Errorf("expected store unchanged, got %d posts", s.store.Len())
	}
}

func TestDeletePost(t *testing.T) {
	s := makePostServer(t)

	result := callTool(t, s, "delete_post", map[string]int{"id": 1})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if s.store.Len() != 1 {
		t.Errorf("expected 1 post left, got %d", s.store.Len())
	}

	result = callTool(t, s, "delete_post", map[string]int{"id": 99})
	if result.IsError {
		t.Error("expected unknown id to be a no-op, not an error")
	}
	if !strings.Contains(getTextContent(result), "No post") {
		t.Errorf("expected 'No post' message, got: %s", getTextContent(result))
	}
	if s.store.Len() != 1 {
		t.Errorf("expected store unchanged, got %d posts", s.store.Len())
	}
}

func TestDeletePostRequiresID(t *testing.T) {
	s := makePostServer(t)

	result := callTool(t, s, "delete_post", map[string]string{})
	if !result.IsError {
		t.Error("expected error when id is missing")
	}
}

func TestListPostsDefaultDateSort(t *testing.T) {
	s := makePostServer(t)

	text := getTextContent(callTool(t, s, "list_posts", map[string]string{}))

	if !strings.Contains(text, "sort: date") {
		t.Errorf("expected date sort header, got: %s", text)
	}
	if strings.Index(text, "Rust notes") > strings.Index(text, "Learning Go") {
		t.Errorf("expected newest post first, got: %s", text)
	}
}

func TestListPostsSearchAndSort(t *testing.T) {
	s := makePostServer(t)

	result := callTool(t, s, "list_posts", map[string]string{"search": "GO"})
	text := getTextContent(result)
	if !strings.Contains(text, "Learning Go") || strings.Contains(text, "Rust notes") {
		t.Errorf("expected only the Go post, got: %s", text)
	}

	// Search persists between calls until cleared.
	text = getTextContent(callTool(t, s, "list_posts", map[string]string{"sort": "likes"}))
	if strings.Contains(text, "Rust notes") {
		t.Errorf("expected search to persist, got: %s", text)
	}

	text = getTextContent(callTool(t, s, "list_posts", map[string]string{"search": ""}))
	if strings.Index(text, "Rust notes") > strings.Index(text, "Learning Go") {
		t.Errorf("expected like sort with Rust first, got: %s", text)
	}
}

func TestListPostsTagAndLimit(t *testing.T) {
	s := makePostServer(t)

	text := getTextContent(callTool(t, s, "list_posts", map[string]interface{}{"tag": "dev", "limit": 1}))
	if strings.Count(text, "---") != 1 {
		t.Errorf("expected 1 post with limit, got: %s", text)
	}

	text = getTextContent(callTool(t, s, "list_posts", map[string]string{"tag": "nope"}))
	if text != "No posts found." {
		t.Errorf("expected no posts, got: %s", text)
	}
}

func TestListPostsInvalidSort(t *testing.T) {
	s := makePostServer(t)

	result := callTool(t, s, "list_posts", map[string]string{"sort": "random"})
	if !result.IsError {
		t.Error("expected error for invalid sort")
	}
}

func TestListTags(t *testing.T) {
	s := makePostServer(t)

	text := getTextContent(callTool(t, s, "list_tags", map[string]string{}))

	want := "\"go\" (1)\n\"dev\" (2)\n\"rust\" (1)\n"
	if text != want {
		t.Errorf("list_tags = %q, want %q", text, want)
	}
}

func TestListTagsMatchesCLICounts(t *testing.T) {
	s := makePostServer(t)
	callTool(t, s, "add_post", map[string]string{"title": "T", "content": "C", "tags": "dev, , go"})

	text := getTextContent(callTool(t, s, "list_tags", map[string]string{}))

	for _, tc := range ui.CountTags(s.store.Tags(), s.store.Posts()) {
		line := fmt.Sprintf("%q (%d)", tc.Name, tc.Count)
		if !strings.Contains(text, line) {
			t.Errorf("expected %s in list_tags output, got: %s", line, text)
		}
	}
	if !strings.Contains(text, `"dev" (3)`) || !strings.Contains(text, `"" (1)`) {
		t.Errorf("unexpected counts: %s", text)
	}
}

func TestToggleSort(t *testing.T) {
	s := makePostServer(t)

	text := getTextContent(callTool(t, s, "toggle_sort", map[string]string{"by": "likes"}))
	if !strings.Contains(text, "likes") {
		t.Errorf("expected likes sort, got: %s", text)
	}
	if s.store.SortByDate() {
		t.Error("expected date sort off after enabling likes")
	}

	text = getTextContent(callTool(t, s, "toggle_sort", map[string]string{"by": "likes"}))
	if !strings.Contains(text, "none") {
		t.Errorf("expected no sort after second toggle, got: %s", text)
	}

	result := callTool(t, s, "toggle_sort", map[string]string{"by": "title"})
	if !result.IsError {
		t.Error("expected error for unknown sort field")
	}
}

func TestLikePost(t *testing.T) {
	s := makePostServer(t)

	result := callTool(t, s, "like_post", map[string]int{"id": 1})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "6 likes") {
		t.Errorf("expected 6 likes, got: %s", getTextContent(result))
	}

	result = callTool(t, s, "like_post", map[string]int{"id": 42})
	if !result.IsError {
		t.Error("expected error for unknown id")
	}
}

func TestConcurrentToolCalls(t *testing.T) {
	s := makePostServer(t)

	like := &gomcp.CallToolRequest{Params: &gomcp.CallToolParamsRaw{Name: "like_post", Arguments: json.RawMessage(`{"id": 2}`)}}
	list := &gomcp.CallToolRequest{Params: &gomcp.CallToolParamsRaw{Name: "list_posts", Arguments: json.RawMessage(`{}`)}}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.handleLikePost(context.Background(), like)
			_, _ = s.handleListPosts(context.Background(), list)
		}()
	}
	wg.Wait()

	post, _ := s.store.Get(2)
	if post.Likes != 30 {
		t.Errorf("expected 30 likes, got %d", post.Likes)
	}
}
