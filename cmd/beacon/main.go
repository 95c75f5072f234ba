package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"beacon/internal/debug"
	"beacon/internal/version"
	"beacon/pkg/analytics"
	"beacon/pkg/config"
	"beacon/pkg/onboarding"
	"beacon/pkg/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	storage    string
	noColor    bool
}

// runtime bundles what every command needs once configuration is loaded.
type runtime struct {
	cfg    *config.Config
	kv     storage.KV
	store  *onboarding.Store
	logger *debug.DebugLogger
}

// openStorage opens the configured backend. Tests swap it to observe the KV.
var openStorage = storage.Open

func openRuntime(opts *options) (*runtime, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.storage != "" {
		cfg.Storage.Backend = strings.ToLower(opts.storage)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if err := config.EnsureDir(cfg.StateDir); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	logger := debug.InitDebugLogger(cfg.DebugLogPath(), cfg.Logging.Level)

	kv, err := openStorage(cfg)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	// NewStore loads the persisted state.
	store := onboarding.NewStore(kv, debug.Named("onboarding"))

	return &runtime{cfg: cfg, kv: kv, store: store, logger: logger}, nil
}

func (r *runtime) Close() {
	if err := r.kv.Close(); err != nil {
		r.logger.Logger().Warn("failed to close storage", zap.Error(err))
	}
	r.logger.Close()
}

// seed returns the configured mock data seed, or the clock when unset.
func (r *runtime) seed() int64 {
	if r.cfg.Dashboard.Seed != 0 {
		return r.cfg.Dashboard.Seed
	}
	return time.Now().UnixNano()
}

func runDashboard(cmd *cobra.Command, opts *options) error {
	rt, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	// Without a terminal there is nothing to draw; report the gate instead.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return printStatus(cmd.OutOrStdout(), rt.store.State())
	}

	if opts.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := rt.logger.Logger()
	unsubscribe := rt.store.Subscribe(func(s onboarding.State) {
		logger.Info("onboarding state changed",
			zap.Bool("completed", s.IsCompleted),
			zap.Int("completed_steps", len(s.CompletedSteps)))
	})
	defer unsubscribe()

	rng := rand.New(rand.NewSource(rt.seed()))
	data := analytics.NewDataset(rng, rt.cfg.Dashboard.Products, rt.cfg.Dashboard.SalesDays, time.Now())

	p := tea.NewProgram(initialModel(rt.store, data, logger), tea.WithAltScreen())

	if rt.cfg.Storage.Backend == config.BackendFile && rt.cfg.Storage.Watch {
		stop, err := watchStorage(cmd.Context(), rt, p)
		if err != nil {
			logger.Warn("storage watcher disabled", zap.Error(err))
		} else {
			defer stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// watchStorage reloads the store when another process rewrites the storage
// file. The callback runs on the watcher goroutine, so it hands the change to
// the program with Send instead of touching the model.
func watchStorage(ctx context.Context, rt *runtime, p *tea.Program) (func(), error) {
	w, err := storage.NewWatcher(rt.cfg.StoragePath(), func() {
		if rt.store.Reload() {
			p.Send(storeReloadedMsg{})
		}
	}, debug.Named("watcher"))
	if err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	if err := w.Start(ctx); err != nil {
		cancel()
		return nil, err
	}

	return func() {
		cancel()
		w.Stop()
	}, nil
}

func printStatus(out io.Writer, s onboarding.State) error {
	if s.IsCompleted {
		fmt.Fprintln(out, "Onboarding: completed")
	} else {
		fmt.Fprintln(out, "Onboarding: not completed")
	}

	steps := make([]string, 0, len(s.CompletedSteps))
	for _, id := range s.CompletedSteps {
		steps = append(steps, string(id))
	}
	if len(steps) == 0 {
		fmt.Fprintln(out, "Completed steps: none")
	} else {
		fmt.Fprintf(out, "Completed steps: %s\n", strings.Join(steps, ", "))
	}
	if s.LastCompletedStep != nil {
		fmt.Fprintf(out, "Last step: %s\n", *s.LastCompletedStep)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "beacon",
		Short: "A terminal analytics dashboard for your store",
		Long: `Beacon shows store analytics (sales, revenue, products and ad
performance) in a terminal dashboard.

Analytics pages stay locked until the four-step setup wizard is finished.
Progress is saved locally, so the wizard only has to be completed once.

Press ? for help once running.

Examples:
  beacon                        # Launch the dashboard
  beacon --storage sqlite       # Keep state in SQLite
  beacon onboarding status      # Show setup progress`,
		Version:       version.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, opts)
		},
	}
	rootCmd.SetVersionTemplate(version.Long() + "\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (default ~/.config/beacon/config.yaml)")
	flags.StringVar(&opts.storage, "storage", "", "storage backend: file, sqlite or memory")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colors")

	rootCmd.AddCommand(newOnboardingCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
