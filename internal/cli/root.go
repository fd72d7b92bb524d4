// Package cli wires configuration, logging, metrics and the codec into the
// digipin command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohammed-shakir/digipin/internal/cache/memo"
	"github.com/mohammed-shakir/digipin/internal/core/config"
	"github.com/mohammed-shakir/digipin/internal/core/executor"
	"github.com/mohammed-shakir/digipin/internal/core/observability"
	"github.com/mohammed-shakir/digipin/internal/logger"
	digipinmapper "github.com/mohammed-shakir/digipin/internal/mapper/digipin"
	"github.com/mohammed-shakir/digipin/internal/metrics"
	"github.com/mohammed-shakir/digipin/internal/render"
)

const (
	ExitOK           = 0
	ExitInvalidInput = 1
	ExitUsage        = 2
)

// errRejected marks a command whose input was rejected after the failed
// result has already been printed.
var errRejected = errors.New("input rejected")

// App holds the streams and per-run state shared by all commands.
type App struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Version string

	cfgFile string
	cfg     config.Config
	log     *slog.Logger
	exec    *executor.Executor
	metrics *metrics.Provider
}

func NewApp(version string) *App {
	return &App{In: os.Stdin, Out: os.Stdout, Err: os.Stderr, Version: version}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	err := root.ExecuteContext(ctx)

	if ferr := app.metrics.Flush(); ferr != nil {
		fmt.Fprintf(app.Err, "Error: %v\n", ferr)
		if err == nil {
			return ExitUsage
		}
	}

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errRejected):
		return ExitInvalidInput
	default:
		fmt.Fprintf(app.Err, "Error: %v\n", err)
		return ExitUsage
	}
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "digipin",
		Short: "Encode coordinates to DIGIPIN codes and back",
		Long: `DIGIPIN addresses a ~4m x 4m cell inside India's bounding box
(latitude 2.5..38.5, longitude 63.5..99.5) with a 10-symbol code such as 39J-49L-L8T4.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.cfgFile, "config", "", "config file (default ./digipin.yaml or ./configs/digipin.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Bool("log-console", false, "human readable logs")
	pf.StringP("output", "o", "text", "output format: text, json, table")
	pf.String("metrics-file", "", "write Prometheus textfile metrics to this path on exit")
	pf.Int("memo-size", 4096, "entries per memo cache (0 disables)")
	pf.Int("h3-res", -1, "add the H3 index at this resolution to decoded centers (-1 disables)")
	pf.Int("h3-parent-res", -1, "also add the ancestor of that H3 index at this coarser resolution (-1 disables)")

	root.AddCommand(
		newEncodeCmd(app),
		newDecodeCmd(app),
		newCellCmd(app),
		newBatchCmd(app),
		newInteractiveCmd(app),
		newVersionCmd(app),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		SampleN:   cfg.LogSampleN,
		Component: "digipin",
	}, a.Err)
	a.log = logger.NewSlog(&zl)

	if cfg.MetricsEnabled() {
		a.metrics = metrics.Init(metrics.Config{
			Enabled: true,
			Path:    cfg.MetricsFile,
			Build:   metrics.BuildInfo{Version: a.Version},
		})
		observability.Init(a.metrics.Registerer(), true)
	} else {
		observability.Init(nil, false)
	}

	m, err := memo.New(digipinmapper.New(), cfg.MemoSize)
	if err != nil {
		return fmt.Errorf("memo cache: %w", err)
	}
	opts := executor.Options{H3Res: -1, H3ParentRes: -1}
	if cfg.H3Enabled() {
		opts.H3Res, opts.H3ParentRes = cfg.H3Res, cfg.H3ParentRes
	}
	a.exec = executor.New(a.log, m, opts)

	ctx := logger.WithRunID(cmd.Context(), "")
	ctx = logger.WithComponent(ctx, "cli")
	cmd.SetContext(ctx)

	a.log.DebugContext(ctx, "configured",
		"command", cmd.Name(),
		"output", cfg.Output,
		"memo_size", cfg.MemoSize,
		"h3_res", cfg.H3Res,
		"h3_parent_res", cfg.H3ParentRes,
		"metrics", cfg.MetricsEnabled())
	return nil
}

func (a *App) writer(opts render.Options) (render.Writer, error) {
	return render.New(a.cfg.Output, a.Out, opts)
}
