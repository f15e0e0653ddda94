package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kastheco/chartdesk/app"
	cmd2 "github.com/kastheco/chartdesk/cmd"
	"github.com/kastheco/chartdesk/config"
	sentrypkg "github.com/kastheco/chartdesk/internal/sentry"
	"github.com/kastheco/chartdesk/internal/setup"
	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	layoutFlag string
	rootCmd    = &cobra.Command{
		Use:   "chartdesk",
		Short: "chartdesk - EMR console navigation shell with an adaptive top bar.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize(cfg.IsTelemetryEnabled())
			defer log.Close()

			// Layout flag overrides config
			layout := cfg.Layout()
			if layoutFlag != "" {
				mode, err := nav.ParseLayoutMode(layoutFlag)
				if err != nil {
					return err
				}
				layout = mode
			}

			if err := app.Run(ctx, cfg, layout); err != nil {
				sentrypkg.CaptureError(err)
				return err
			}
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			navPath, err := cfg.NavigationPath()
			if err != nil {
				return err
			}
			historyPath, err := config.HistoryPath()
			if err != nil {
				return err
			}
			fmt.Printf("Navigation: %s\n", navPath)
			fmt.Printf("History: %s\n", historyPath)
			fmt.Printf("Log: %s\n", log.Path())

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chartdesk",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chartdesk version %s\n", version)
			fmt.Printf("https://github.com/kastheco/chartdesk/releases/tag/v%s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&layoutFlag, "layout", "l", "",
		"Navigation layout to start in: sidebar or topbar (default from config)")

	var cleanFlag bool

	setupCmd := &cobra.Command{
		Use:     "setup",
		Aliases: []string{"init"},
		Short:   "Configure layout, timing and history preferences",
		Long: `Run an interactive wizard to:
  1. Pick the starting layout (sidebar or top bar)
  2. Tune the resize debounce and dropdown close grace
  3. Choose the navigation file and history/telemetry settings
  4. Write ~/.config/chartdesk/config.json and, if missing, a default navigation.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setup.Run(setup.Options{Clean: cleanFlag})
		},
	}
	setupCmd.Flags().BoolVar(&cleanFlag, "clean", false, "Ignore existing config, start with factory defaults")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(cmd2.NewNavCmd())
	rootCmd.AddCommand(cmd2.NewHistoryCmd())
	rootCmd.AddCommand(newCheckCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUnhealthy) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
