// ABOUTME: Terminal output formatting for postboard commands.
// ABOUTME: Uses glamour for post bodies and fatih/color for styling.

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/2389-research/postboard/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

const timeLayout = "2006-01-02 15:04"

// SetColor turns colored output on or off for every formatter.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// TagCount pairs a tag with the number of posts carrying it.
type TagCount struct {
	Name  string
	Count int
}

// CountTags counts posts per tag, keeping the order of tags.
func CountTags(tags []string, posts []models.Post) []TagCount {
	out := make([]TagCount, 0, len(tags))
	for _, tag := range tags {
		n := 0
		for _, p := range posts {
			if p.HasTag(tag) {
				n++
			}
		}
		out = append(out, TagCount{Name: tag, Count: n})
	}
	return out
}

func FormatPostListItem(post models.Post) string {
	var sb strings.Builder

	star := " "
	if post.IsFavorite {
		star = yellow("*")
	}
	sb.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		star,
		faint(fmt.Sprintf("#%-4d", post.ID)),
		bold(post.Title),
		faint(fmt.Sprintf("(%d likes)", post.Likes))))

	if len(post.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("         %s %s\n",
			faint("Tags:"),
			cyan(FormatTags(post.Tags))))
	}

	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Created:"),
		faint(post.CreatedAt.Format(timeLayout))))

	return sb.String()
}

func FormatPostList(posts []models.Post) string {
	if len(posts) == 0 {
		return faint("No posts found.") + "\n"
	}
	var sb strings.Builder
	for _, p := range posts {
		sb.WriteString(FormatPostListItem(p))
	}
	return sb.String()
}

// FormatTags joins tags for display. Empty tags show as quoted blanks.
func FormatTags(tags []string) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = DisplayTag(t)
	}
	return strings.Join(names, ", ")
}

// DisplayTag renders a tag, quoting the empty tag so it stays visible.
func DisplayTag(tag string) string {
	if tag == "" {
		return strconv.Quote(tag)
	}
	return tag
}

func FormatPostContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatPostHeader(post models.Post) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(post.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(strconv.Itoa(post.ID))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(post.CreatedAt.Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %d\n", faint("Likes:"), post.Likes))
	if post.IsFavorite {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Favorite:"), yellow("yes")))
	}

	if len(post.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(FormatTags(post.Tags))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func FormatTagList(tags []TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			cyan(DisplayTag(t.Name)),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
