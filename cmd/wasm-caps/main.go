package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-caps/capability"
	"github.com/wippyai/wasm-caps/errors"
	"github.com/wippyai/wasm-caps/policy"
	"github.com/wippyai/wasm-caps/report"
	"github.com/wippyai/wasm-caps/verify"
	"github.com/wippyai/wasm-caps/wasm"
)

const envPrefix = "WASMCAPS"

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitViolation = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, &errors.PolicyViolationError{}) {
			return exitViolation
		}
		return exitError
	}
	return exitOK
}

type app struct {
	logger *zap.Logger
	policy *policy.Policy
	stdout io.Writer
	format string
	opts   report.Options
	verify bool
	titled bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "wasm-caps <file.wasm>",
		Short: "Report the system capabilities a WebAssembly module imports",
		Long: `Decodes the import section of a core WebAssembly module and groups every
import by the system resource it touches: file system, environment, process,
network, unrecognized WASI symbols, and foreign namespaces.

Flags can also be set through WASMCAPS_* environment variables,
e.g. WASMCAPS_FORMAT=json.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(v.GetBool("debug"))
			if err != nil {
				return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "build logger")
			}
			defer logger.Sync() //nolint:errcheck
			wasm.SetLogger(logger.Named("wasm"))

			path := args[0]

			if v.GetBool("interactive") {
				return runInteractive(path)
			}

			a := &app{
				logger: logger,
				stdout: stdout,
				format: v.GetString("format"),
				verify: v.GetBool("verify"),
				opts: report.Options{
					Verbose: v.GetBool("verbose"),
					Compact: v.GetBool("compact"),
				},
			}
			if _, err := report.Get(a.format); err != nil {
				e := errors.InvalidInput(errors.PhaseConfig, "invalid --format")
				e.Cause = err
				return e
			}
			a.opts.Color = a.format == "text" && isTerminal(stdout)

			if p := v.GetString("policy"); p != "" {
				pol, err := policy.Load(p)
				if err != nil {
					return err
				}
				a.policy = pol
			}

			if v.GetBool("watch") {
				a.titled = true
				return watch(cmd.Context(), path, logger, func() error {
					return a.run(cmd.Context(), path)
				})
			}
			return a.run(cmd.Context(), path)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.BoolP("verbose", "v", false, "List the symbols of every resource type")
	flags.StringP("format", "f", "text", "Output format ("+strings.Join(report.Names(), ", ")+")")
	flags.Bool("compact", false, "Compact structured output")
	flags.StringP("policy", "p", "", "Policy file (yaml, toml or json)")
	flags.Bool("verify", false, "Cross-check decoded imports against wazero")
	flags.BoolP("watch", "w", false, "Re-inspect whenever the file changes")
	flags.BoolP("interactive", "i", false, "Interactive mode with TUI")
	flags.Bool("debug", false, "Development logging to stderr")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

// run inspects the file once and renders the report. Policy violations are
// rendered first and then returned as a *errors.PolicyViolationError.
func (a *app) run(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Read(path, err)
	}

	imports, err := wasm.DecodeImports(data)
	if err != nil {
		return err
	}
	summary := capability.Classify(imports)
	a.logger.Debug("inspected",
		zap.String("path", path),
		zap.Int("imports", summary.Total()),
		zap.Int("wasi", summary.WASICount()))

	if a.verify {
		if err := verify.Check(ctx, data, imports); err != nil {
			return err
		}
		a.logger.Debug("verified", zap.String("path", path))
	}

	r := &report.Report{Summary: summary}
	if a.titled {
		r.Source = path
	}
	if a.policy != nil {
		r.Violations = a.policy.Evaluate(summary)
	}

	if err := report.Render(a.stdout, a.format, r, a.opts); err != nil {
		return errors.Wrap(errors.PhaseReport, errors.KindInvalidData, err, "render "+a.format)
	}

	if len(r.Violations) > 0 {
		return &errors.PolicyViolationError{Violations: r.Violations}
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
