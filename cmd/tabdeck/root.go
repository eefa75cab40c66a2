package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/b/tabdeck/pkg/catalog"
	"github.com/b/tabdeck/pkg/config"
	"github.com/b/tabdeck/pkg/logging"
	"github.com/b/tabdeck/pkg/paths"
	"github.com/b/tabdeck/pkg/perf"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	// cfgFile is the path to the config file (set via --config flag)
	cfgFile string

	// session selects the daemon socket; empty falls back to daemon.session from config
	session string

	cfg *config.Config
	log *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tabdeck",
	Short: "Terminal dashboard with split and quad tab panes",
	Long: `tabdeck opens dashboard menus as tabs in a single, dual-split or quad-split
workspace. Without a subcommand it starts the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.LoadOrDefault(cfgFile)
		if err != nil {
			return err
		}
		if session == "" {
			session = cfg.Daemon.Session
		}

		logCfg := cfg.Log
		// the dashboard owns the terminal, so its logs go to a file
		if cmd.Name() == "tui" || cmd == cmd.Root() {
			logCfg.Output = ""
			if logCfg.FilePath == "" {
				if _, err := paths.EnsureStateDir(); err != nil {
					return err
				}
				logCfg.FilePath = config.DefaultLogPath()
			}
		}
		log, err = logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if perf.IsEnabled() {
			log.Debug("timing log enabled")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			return log.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVarP(&session, "session", "s", "", "daemon session name")

	rootCmd.AddCommand(tuiCmd, serveCmd, sendCmd, watchCmd, catalogCmd, groupCmd, versionCmd)
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(c *config.Config) (*catalog.Catalog, error) {
	if c.CatalogPath == "" {
		return catalog.Default(), nil
	}
	var (
		cat *catalog.Catalog
		err error
	)
	perf.Track("catalog.Load", func() {
		cat, err = catalog.Load(c.CatalogPath)
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", c.CatalogPath, err)
	}
	return cat, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "tabdeck", version)
	},
}
