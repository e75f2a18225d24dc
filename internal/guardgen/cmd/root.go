package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"guardgen/internal/codegen"
	"guardgen/internal/config"
	"guardgen/internal/guardgen/log"
	"guardgen/internal/idmap"
	"guardgen/internal/logging"
	"guardgen/internal/sleigh"
	"guardgen/internal/ui/colorize"
)

func init() {
	rootCmd.PersistentFlags().StringP("config", "C", "guardgen.yaml", "Config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().StringSlice("select", nil, "Mnemonics to emit (default: the V850 FPU subset)")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Constructors rendered concurrently")
	rootCmd.PersistentFlags().BoolP("keep-going", "k", false, "Skip constructors that fail instead of aborting")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file, - for stdout")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().Bool("no-color", false, "Never highlight the generated code")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
}

var rootCmd = &cobra.Command{
	Use:   "guardgen [model]",
	Short: "Generate C decoder guards from a SLEIGH model",
	Long: `Guardgen reads a parsed SLEIGH instruction-set model and emits one C guard
block per selected constructor of the instruction table. Each block tests the
constructor's constraint pattern, sets the instruction id and prints the
mnemonic and operands through the disassembler's macros.`,
	Example: `
# Generate the V850 FPU guards to stdout
guardgen v850.yaml

# Write to a file using four workers
guardgen -j 4 -o fpu.inc v850.yaml

# Emit a few mnemonics only
guardgen --select addf.s,subf.s v850.yaml
  `,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.Setup(debug || logging.IsDebug())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
		if cpuprofile != "" {
			f, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %v", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %v", err)
			}
			defer pprof.StopCPUProfile()
		}

		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor {
			cfg.Color = false
		}

		logger := logging.NewLogger()
		defer logger.Close()

		code, _, genErr := generate(cmd.Context(), cfg, logger)
		if len(code) > 0 {
			if err := writeOutput(cmd.OutOrStdout(), cfg, code); err != nil {
				return err
			}
		}
		return genErr
	},
}

// loadConfig reads the config file and applies the model argument and the
// flags that were set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("select") {
		cfg.Select, _ = flags.GetStringSlice("select")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing, _ = flags.GetBool("keep-going")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Loaded config", "config", path, "model", cfg.Model, "select", len(cfg.Select))
	return cfg, nil
}

// generate runs the generator over the configured model and returns the
// emitted code followed by the target trailer. Under keep-going the code of
// the constructors that succeeded is returned together with the error.
func generate(ctx context.Context, cfg *config.Config, logger *logging.LoggerCloser) ([]byte, *codegen.Report, error) {
	model, err := sleigh.Load(cfg.Model)
	if err != nil {
		return nil, nil, err
	}

	g := codegen.New(model, idmap.V850For(cfg.Target.Inst),
		codegen.WithTarget(cfg.CodegenTarget()),
		codegen.WithLogger(logger.Logger),
	)

	var buf bytes.Buffer
	report, err := g.Generate(ctx, &buf, cfg.Selection(), cfg.Options())
	if report == nil {
		return nil, nil, err
	}
	if cfg.Target.Trailer != "" {
		buf.WriteString(cfg.Target.Trailer)
		buf.WriteByte('\n')
	}
	logger.Info("generated", "constructors", len(report.Results),
		"placeholders", report.Placeholders(), "failed", len(report.Failures))
	return buf.Bytes(), report, err
}

// writeOutput writes code to the configured output file, or to out when
// the output is stdout. Terminal output is highlighted.
func writeOutput(out io.Writer, cfg *config.Config, code []byte) error {
	if cfg.Output != "" && cfg.Output != "-" {
		if err := os.WriteFile(cfg.Output, code, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		slog.Info("Wrote guards", "file", cfg.Output, "bytes", len(code))
		return nil
	}

	text := string(code)
	if cfg.Color && out == os.Stdout && term.IsTerminal(os.Stdout.Fd()) {
		colored, err := colorize.ColorizeC(text)
		if err != nil {
			slog.Debug("Highlighting failed", "error", err)
		}
		text = colored
	}
	_, err := io.WriteString(out, text)
	return err
}

func Execute() {
	// Piped output and schema dumps bypass fang's rendering
	plain := !term.IsTerminal(os.Stdout.Fd())
	for _, arg := range os.Args[1:] {
		if arg == "schema" || strings.HasPrefix(arg, "--no-color") {
			plain = true
			break
		}
	}

	if plain {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
