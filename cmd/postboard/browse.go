// ABOUTME: Cobra command for the interactive post browser.
// ABOUTME: Runs the bubbletea browser and feeds it seed reloads from the file watcher.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse posts interactively",
	Long: `Open an interactive browser over the post board.

Search, filter by tag, sort by likes or date, like, favorite, add, and delete
posts. Edits to the seed directory are picked up live unless --no-watch is set.`,
	RunE: runBrowse,
}

var browseNoWatch bool

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().BoolVar(&browseNoWatch, "no-watch", false, "Do not reload when seed files change")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	model := tui.NewBrowseModel(globalStore, globalLogger, globalStoreOpts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if !browseNoWatch {
		src := globalSource
		go func() {
			err := src.Watch(ctx, func(seed []models.Post) {
				p.Send(tui.SeedReloadedMsg{Posts: seed})
			})
			switch {
			case errors.Is(err, fs.ErrNotExist):
				globalLogger.Debug("seed directory missing, not watching", "dir", src.Dir())
			case err != nil:
				globalLogger.Warn("seed watcher stopped", "err", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
