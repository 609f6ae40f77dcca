// ABOUTME: Tests for the read-only markdown post source.
// ABOUTME: Covers parsing, ordering, id assignment, skipping bad files, and empty dirs.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("mkdir error: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write error: %v", err)
	}
}

func TestListPostsRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	writePost(t, tmpDir, "hello.md", `---
id: 3
title: Hello
tags: [go, cli]
likes: 4
favorite: true
created_at: 2026-01-02T15:04:05Z
---
Hello from postboard!
`)

	src, err := NewPostsMDSource(tmpDir, nil)
	if err != nil {
		t.Fatalf("NewPostsMDSource error: %v", err)
	}
	defer func() { _ = src.Close() }()

	posts, err := src.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}

	got := posts[0]
	if got.ID != 3 {
		t.Errorf("ID: got %d, want 3", got.ID)
	}
	if got.Title != "Hello" {
		t.Errorf("Title: got %q, want %q", got.Title, "Hello")
	}
	if got.Content != "Hello from postboard!" {
		t.Errorf("Content: got %q", got.Content)
	}
	if !reflect.DeepEqual(got.Tags, []string{"go", "cli"}) {
		t.Errorf("Tags: got %v, want [go cli]", got.Tags)
	}
	if got.Likes != 4 || !got.IsFavorite {
		t.Errorf("expected likes=4 favorite=true, got %+v", got)
	}
	want := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	if !got.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, want)
	}
}

func TestListPostsTrimsTags(t *testing.T) {
	tmpDir := t.TempDir()
	writePost(t, tmpDir, "padded.md", "---\ntitle: Padded\ntags: [\" go \", \"cli \"]\n---\nbody\n")

	src, _ := NewPostsMDSource(tmpDir, nil)
	posts, err := src.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if !reflect.DeepEqual(posts[0].Tags, []string{"go", "cli"}) {
		t.Errorf("Tags: got %q, want [go cli]", posts[0].Tags)
	}
	if !posts[0].HasTag("go") {
		t.Error("expected trimmed tag to match exact filter")
	}
}

func TestListPostsOrderAndIDAssignment(t *testing.T) {
	tmpDir := t.TempDir()
	writePost(t, tmpDir, "b.md", "---\ntitle: Newer\ncreated_at: 2026-02-01\n---\nbody\n")
	writePost(t, tmpDir, "2026/a.md", "---\nid: 5\ntitle: Older\ncreated_at: 2026-01-01\n---\nbody\n")
	writePost(t, tmpDir, "c.md", "---\ntitle: Newest\ncreated_at: 2026-03-01\n---\nbody\n")

	src, _ := NewPostsMDSource(tmpDir, nil)
	posts, err := src.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}

	wantTitles := []string{"Older", "Newer", "Newest"}
	wantIDs := []int{5, 6, 7}
	for i, p := range posts {
		if p.Title != wantTitles[i] {
			t.Errorf("posts[%d].Title = %q, want %q", i, p.Title, wantTitles[i])
		}
		if p.ID != wantIDs[i] {
			t.Errorf("posts[%d].ID = %d, want %d", i, p.ID, wantIDs[i])
		}
	}
}

func TestListPostsSkipsInvalidFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writePost(t, tmpDir, "good.md", "---\ntitle: Good\n---\nbody\n")
	writePost(t, tmpDir, "nofm.md", "just text\n")
	writePost(t, tmpDir, "badyaml.md", "---\ntitle: [unclosed\n---\nbody\n")
	writePost(t, tmpDir, "blank.md", "---\ntitle: \"  \"\n---\nbody\n")
	writePost(t, tmpDir, "nobody.md", "---\ntitle: Empty\n---\n\n")
	writePost(t, tmpDir, "baddate.md", "---\ntitle: Date\ncreated_at: yesterday\n---\nbody\n")
	writePost(t, tmpDir, "notes.txt", "---\ntitle: Text\n---\nbody\n")
	writePost(t, tmpDir, ".hidden/skip.md", "---\ntitle: Hidden\n---\nbody\n")

	src, _ := NewPostsMDSource(tmpDir, nil)
	posts, err := src.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected only the valid post, got %d", len(posts))
	}
	if posts[0].Title != "Good" {
		t.Errorf("expected 'Good', got %q", posts[0].Title)
	}
}

func TestListPostsMissingDir(t *testing.T) {
	src, err := NewPostsMDSource(filepath.Join(t.TempDir(), "absent"), nil)
	if err != nil {
		t.Fatalf("NewPostsMDSource error: %v", err)
	}

	posts, err := src.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected 0 posts from missing dir, got %d", len(posts))
	}
}

func TestNewPostsMDSourceRejectsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.md")
	writePost(t, tmpDir, "file.md", "x")

	_, err := NewPostsMDSource(path, nil)
	if !errors.Is(err, ErrNotDir) {
		t.Errorf("expected ErrNotDir, got %v", err)
	}
}
