package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kpi_tracker/backend/internal/config"
	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/service"
)

// app is the state shared by every subcommand. It is populated in the root
// command's pre-run hook and released by run.
type app struct {
	seedFile string
	logLevel string

	svc   *service.KPIService
	close func()
}

// run executes the command line against a. The repository is closed on
// every exit path; cobra skips post-run hooks when RunE fails.
func run(a *app, args []string, stdout, stderr io.Writer) error {
	defer a.shutdown()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "kpictl",
		Short:        "Generate, preview and export monthly developer KPIs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.seedFile, "seed", "", "JSON seed file for the in-memory store (overrides SEED_FILE)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newPreviewCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newExportCmd(a))
	return root
}

func (a *app) open(ctx context.Context, logOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.seedFile != "" {
		cfg.SeedFile = a.seedFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("service", "kpictl").Logger()

	scoring, err := cfg.Scoring()
	if err != nil {
		return err
	}
	repo, closeRepo, err := service.OpenRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	a.close = closeRepo
	a.svc = &service.KPIService{
		Repo:    repo,
		Config:  scoring,
		Logger:  logger,
		Workers: cfg.Workers,
	}
	return nil
}

func (a *app) shutdown() {
	if a.close != nil {
		a.close()
		a.close = nil
	}
}

// periodFlags binds --month and --year. Zero values mean the current month.
type periodFlags struct {
	month int
	year  int
}

func (f *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.month, "month", 0, "month (1-12), defaults to the current month")
	cmd.Flags().IntVar(&f.year, "year", 0, "year, defaults to the current year")
}

func (f *periodFlags) period() (kpi.Period, error) {
	cur := kpi.CurrentPeriod(time.Now())
	p := kpi.Period{Month: f.month, Year: f.year}
	if p.Month == 0 {
		p.Month = cur.Month
	}
	if p.Year == 0 {
		p.Year = cur.Year
	}
	return p, p.Validate()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
