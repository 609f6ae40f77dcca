// ABOUTME: Root Cobra command and global flags for postboard CLI.
// ABOUTME: Sets up lifecycle hooks for config, logging, and seeding the post store.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/config"
	"github.com/2389-research/postboard/internal/posts"
	"github.com/2389-research/postboard/internal/storage"
	"github.com/2389-research/postboard/internal/ui"
)

var globalConfig *config.Config
var globalLogger *slog.Logger
var globalSource *storage.PostsMDSource
var globalStore *posts.Store
var globalStoreOpts []posts.Option

// Flags
var (
	flagSeedDir  string
	flagLogLevel string
	flagNoColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "Browse, filter, and sort a board of posts",
	Long: `postboard keeps a board of posts in memory and lets you search,
filter by tag, and sort by likes or date.

Posts are seeded from a directory of markdown files with YAML frontmatter.
The seed is read-only: changes made while browsing or through MCP live only
for the session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		// Config commands must work on a broken file so it can be repaired.
		load := config.Load
		if isConfigCommand(cmd) {
			load = config.LoadUnvalidated
		}
		cfg, err := load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		level := cfg.LogLevel()
		if flagLogLevel != "" {
			level, err = config.ParseLogLevel(flagLogLevel)
			if err != nil {
				return err
			}
		}
		globalLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(globalLogger)

		ui.SetColor(cfg.ColorEnabled() && !flagNoColor)

		if isConfigCommand(cmd) {
			return nil
		}

		seedDir := flagSeedDir
		if seedDir == "" {
			seedDir, err = cfg.GetSeedDir()
			if err != nil {
				return fmt.Errorf("failed to resolve seed dir: %w", err)
			}
		} else {
			seedDir, err = config.ExpandPath(seedDir)
			if err != nil {
				return err
			}
		}

		source, err := storage.NewPostsMDSource(seedDir, globalLogger)
		if err != nil {
			return fmt.Errorf("failed to open seed: %w", err)
		}
		globalSource = source

		seed, err := source.ListPosts()
		if err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}

		globalStoreOpts = []posts.Option{posts.WithLogger(globalLogger)}
		globalStore = posts.New(seed, globalStoreOpts...)
		cfg.ApplySort(globalStore)

		globalLogger.Debug("store ready", "seed", seedDir, "posts", globalStore.Len(), "sort", globalStore.SortMode())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalSource != nil {
			_ = globalSource.Close()
			globalSource = nil
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSeedDir, "seed", "", "Directory of markdown posts to load (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}
