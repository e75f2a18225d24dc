package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"guardgen/internal/config"
	"guardgen/internal/guardgen/styles"
	"guardgen/internal/sleigh"
)

var listCmd = &cobra.Command{
	Use:   "list [model]",
	Short: "List the constructors of the instruction table",
	Long: `List every constructor of the model's instruction table in enumeration
order. Selected constructors are marked, and selected mnemonics the model does
not define are reported at the end.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		model, err := sleigh.Load(cfg.Model)
		if err != nil {
			return err
		}
		selectedOnly, _ := cmd.Flags().GetBool("selected")
		return listConstructors(cmd.OutOrStdout(), model, cfg, selectedOnly)
	},
}

func listConstructors(w io.Writer, model *sleigh.Sleigh, cfg *config.Config, selectedOnly bool) error {
	tbl, err := model.Instructions()
	if err != nil {
		return err
	}
	sel := cfg.Selection()

	seen := make(map[string]bool)
	for i := range tbl.Constructors {
		m := tbl.Constructors[i].Mnemonic()
		selected := m != "" && sel.Contains(m)
		if selected {
			seen[m] = true
		} else if selectedOnly {
			continue
		}
		fmt.Fprintln(w, styles.ListLine(i, m, selected))
	}

	for _, m := range sel.Sorted() {
		if !seen[m] {
			fmt.Fprintln(w, styles.MissingLine(m))
		}
	}
	return nil
}

func init() {
	listCmd.Flags().BoolP("selected", "s", false, "Only show selected constructors")
	rootCmd.AddCommand(listCmd)
}
