package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"guardgen/internal/config"
	"guardgen/internal/sleigh"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [config|model]",
	Short:     "Generate JSON schema for configuration or models",
	Long:      "Generate JSON schema for the guardgen configuration file or the instruction-set model",
	Hidden:    true,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"config", "model"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var v any = &config.Config{}
		if len(args) > 0 && args[0] == "model" {
			v = &sleigh.Sleigh{}
		}

		reflector := new(jsonschema.Reflector)
		bts, err := json.MarshalIndent(reflector.Reflect(v), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
