package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/config"
	"github.com/cwarden/planer/internal/logger"
	"github.com/cwarden/planer/internal/planner"
	"github.com/cwarden/planer/internal/storage"
	"github.com/cwarden/planer/internal/ui"
)

var (
	cfgFile   string
	storeFile string
	viewName  string
	debug     bool
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "planer",
	Short: "A terminal appointment planner",
	Long: `Planer keeps appointments in a single file and shows them in year,
month and week views. Run without a subcommand to start the interactive
planner.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: first planerrc found)")
	rootCmd.PersistentFlags().StringVarP(&storeFile, "file", "f", "", "Appointments file to use")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&viewName, "view", "", "Startup view: year, month or week")
}

func initConfig() {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if storeFile != "" {
		cfg.AppointmentsFile = storeFile
	}
	if viewName != "" {
		cfg.StartupView = viewName
	}
	if debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
}

// openStore loads the configured appointments file. A missing file is an
// empty store.
func openStore() (*appointment.Store, appointment.Persister, error) {
	persister, err := storage.Open(cfg.AppointmentsFile, cfg.StoreFormat)
	if err != nil {
		return nil, nil, err
	}
	store := appointment.NewStore(persister)
	if err := store.Load(); err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", cfg.AppointmentsFile, err)
	}
	logger.Info("appointments loaded", "file", cfg.AppointmentsFile, "count", store.Len())
	return store, persister, nil
}

func newPlanner(store *appointment.Store) (*planner.Planner, error) {
	depth, err := planner.ParseDepth(cfg.StartupView)
	if err != nil {
		return nil, err
	}
	return planner.New(store, planner.Options{
		Depth:           depth,
		DefaultPriority: cfg.DefaultPriority,
		WarningDays:     cfg.WarningDays,
	}), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	store, persister, err := openStore()
	if err != nil {
		return err
	}
	p, err := newPlanner(store)
	if err != nil {
		return err
	}

	var watcher *storage.FileWatcher
	if cfg.AutoReload {
		if err := os.MkdirAll(filepath.Dir(cfg.AppointmentsFile), 0o700); err != nil {
			return err
		}
		watcher, err = storage.NewFileWatcher(cfg.AppointmentsFile)
		if err != nil {
			// Reload still works by hand.
			logger.Warn("watching appointments file failed", "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	model := ui.NewModel(cfg, p, ui.Options{Load: persister.Load, Watcher: watcher})
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
