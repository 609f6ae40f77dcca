// ABOUTME: CLI commands for reading the post board.
// ABOUTME: Provides list, tags, and show subcommands over the seeded store.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/config"
	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List posts",
	Long:    "List posts matching a search and tag filter, in the chosen sort order.",
	RunE:    runList,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	Long:  "List every distinct tag in first-seen order with post counts.",
	RunE:  runTags,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a post",
	Long:  "Show a single post with rendered markdown content.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// Flags
var (
	listSearch    string
	listTag       string
	listSort      string
	listFavorites bool
	listLimit     int
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(showCmd)

	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive text to match in title, content, or tags")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only show posts with this exact tag")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: likes, date, or none (default from config)")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Only show favorite posts")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of posts to show (0 for all)")
}

func runList(cmd *cobra.Command, args []string) error {
	globalStore.SetSearchQuery(listSearch)
	globalStore.SetSelectedTag(listTag)
	if cmd.Flags().Changed("sort") {
		mode, err := config.ParseSortMode(listSort)
		if err != nil {
			return err
		}
		globalStore.SetSortMode(mode)
	}

	view := globalStore.Filtered()
	if listFavorites {
		favorites := make([]models.Post, 0, len(view))
		for _, p := range view {
			if p.IsFavorite {
				favorites = append(favorites, p)
			}
		}
		view = favorites
	}
	if listLimit > 0 && len(view) > listLimit {
		view = view[:listLimit]
	}

	fmt.Print(ui.FormatPostList(view))
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	tags := globalStore.Tags()
	if len(tags) == 0 {
		fmt.Println("No tags found.")
		return nil
	}
	fmt.Print(ui.FormatTagList(ui.CountTags(tags, globalStore.Posts())))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q: %w", args[0], err)
	}

	post, ok := globalStore.Get(id)
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}

	content, err := ui.FormatPostContent(post.Content)
	if err != nil {
		return err
	}

	fmt.Print(ui.FormatPostHeader(post))
	fmt.Print(content)
	return nil
}
