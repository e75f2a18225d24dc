package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"guardgen/internal/config"
	"guardgen/internal/guardgen/styles"
	"guardgen/internal/logging"
)

var reportCmd = &cobra.Command{
	Use:   "report [model]",
	Short: "Show which guards need manual review",
	Long: `Run the generator without writing code and print a coverage report:
how many constructors were generated, which conditions were left as
placeholders and which constructors failed.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")
		width, _ := cmd.Flags().GetInt("width")

		logger := logging.NewLogger()
		defer logger.Close()

		out := cmd.OutOrStdout()
		render := !raw && out == os.Stdout && term.IsTerminal(os.Stdout.Fd())
		return coverageReport(cmd.Context(), out, cfg, logger, render, width)
	},
}

// coverageReport writes the markdown report of a keep-going run. Constructor
// failures are part of the report, not an error of the command.
func coverageReport(ctx context.Context, w io.Writer, cfg *config.Config, logger *logging.LoggerCloser, render bool, width int) error {
	cfg.KeepGoing = true
	_, report, err := generate(ctx, cfg, logger)
	if report == nil {
		return err
	}

	md := report.Markdown()
	if render {
		md = styles.RenderMarkdown(md, width)
	}
	_, err = io.WriteString(w, md)
	return err
}

func init() {
	reportCmd.Flags().Bool("raw", false, "Print markdown without rendering")
	reportCmd.Flags().Int("width", 100, "Word wrap width")
	rootCmd.AddCommand(reportCmd)
}
