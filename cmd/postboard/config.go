// ABOUTME: Cobra commands for inspecting and writing the postboard config file.
// ABOUTME: Provides config show and config init subcommands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/config"
	"github.com/2389-research/postboard/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write configuration",
	Long:  "Inspect the effective configuration or write a config file.",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file",
	Long:  "Write the config file, keeping existing values not given as flags.",
	RunE:  runConfigInit,
}

// Flags
var (
	configSeedDir  string
	configSort     string
	configLogLevel string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVar(&configSeedDir, "seed-dir", "", "Directory of markdown posts")
	configInitCmd.Flags().StringVar(&configSort, "sort", "", "Default sort: likes, date, or none")
	configInitCmd.Flags().StringVar(&configLogLevel, "level", "", "Default log level: debug, info, warn, error")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	seedDir, err := globalConfig.GetSeedDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config:    %s\n", path)
	fmt.Printf("Seed dir:  %s\n", seedDir)
	fmt.Printf("Sort:      %s\n", globalConfig.SortMode())
	fmt.Printf("Color:     %t\n", globalConfig.ColorEnabled())
	fmt.Printf("Log level: %s\n", globalConfig.LogLevel())
	if err := globalConfig.Validate(); err != nil {
		fmt.Println(ui.Error(fmt.Sprintf("Config is invalid: %v (run 'postboard config init' to fix)", err)))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := globalConfig
	if cmd.Flags().Changed("seed-dir") {
		cfg.Seed.Dir = configSeedDir
	}
	if cmd.Flags().Changed("sort") {
		cfg.View.Sort = configSort
	}
	if cmd.Flags().Changed("level") {
		cfg.Log.Level = configLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("Config saved to %s", path)))
	return nil
}
