package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dm/filtro-go/internal/client"
	"github.com/dm/filtro-go/internal/config"
	"github.com/dm/filtro-go/internal/tui"
)

// cli holds the persistent flags and the state built from them before a
// command runs.
type cli struct {
	configPath string
	sourceURIs []string
	logFile    string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "filtro",
		Short: "Aquarium filter recommender",
		Long: `filtro recommends aquarium filters for a tank.

Enter the tank volume (or its inner dimensions) and the filter catalog is
split into recommended, adequate and not adequate units, plus two-unit
combinations of the same model for large tanks.

Run without a subcommand to start the terminal UI.

Examples:
  filtro --source https://abc.supabase.co
  filtro --source sqlite:///var/lib/filtro/catalog.db
  filtro classify --source catalog.yaml --volume 240
  filtro classify --length 100 --width 40 --height 50 --json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "filtro.yaml", "config file path")
	root.PersistentFlags().StringArrayVarP(&c.sourceURIs, "source", "s", nil,
		"catalog source URI, repeatable (https://..., sqlite:///path.db, file:///path.yaml)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "write logs to this file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newClassifyCmd(c), newCatalogCmd(c), newSourcesCmd(c), newTipCmd())
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
// The terminal UI owns stdout, so without a log file it gets a no-op logger.
func (c *cli) setup(tui bool) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	if len(c.sourceURIs) > 0 {
		cfg.Sources = make([]config.SourceConfig, 0, len(c.sourceURIs))
		for _, uri := range c.sourceURIs {
			sc, err := parseSourceURI(uri)
			if err != nil {
				return fmt.Errorf("--source: %w", err)
			}
			cfg.Sources = append(cfg.Sources, sc)
		}
	}
	if c.logFile != "" {
		cfg.Logging.File = c.logFile
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(cfg, tui)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.cfg = cfg
	c.log = log
	return nil
}

func newLogger(cfg *config.Config, tui bool) (*zap.Logger, error) {
	if tui && cfg.Logging.File == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	if cfg.Logging.File != "" {
		zc.OutputPaths = []string{cfg.Logging.File}
		zc.ErrorOutputPaths = []string{cfg.Logging.File}
	}
	return zc.Build()
}

func (c *cli) runTUI(ctx context.Context) error {
	if err := c.setup(true); err != nil {
		return err
	}
	sources, closeSources, err := buildSources(c.cfg.Sources)
	if err != nil {
		return err
	}
	defer closeSources()

	c.log.Info("starting terminal UI", zap.Int("sources", len(sources)))
	p := tea.NewProgram(tui.NewApp(sources, c.cfg.UI, c.log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

// catalogSources is the setup shared by the non-interactive commands.
func (c *cli) catalogSources() ([]client.CatalogSource, func(), error) {
	if err := c.setup(false); err != nil {
		return nil, nil, err
	}
	return buildSources(c.cfg.Sources)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
