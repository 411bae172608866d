package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/pkg/models"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-dir> <output-dir>",
	Short: "Convert Pydantic models from input directory to TypeScript interfaces",
	Long: `Convert Pydantic models found under the input directory into TypeScript
interface files under the output directory.

Each matching Python file produces one TypeScript file at the same relative
path, with the .py extension replaced by the output suffix (default .type.ts).
Files without Pydantic models or Enum classes are skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("pattern", "", "File pattern to match Python files (default \"**/*.py\")")
	convertCmd.Flags().Bool("no-enum", false, "Convert enums to union types instead of TypeScript enums")
	convertCmd.Flags().Bool("no-null", false, "Don't generate | null for optional fields")
	convertCmd.Flags().String("suffix", "", "Output file suffix (default \".type.ts\")")
	convertCmd.Flags().Bool("dry-run", false, "Report what would be generated without writing files")

	rootCmd.AddCommand(convertCmd)
}

// convertOptionsFromFlags merges configuration defaults with flag overrides.
// Flags shared by convert and watch follow the same rules.
func convertOptionsFromFlags(cmd *cobra.Command) (core.ConvertOptions, error) {
	opts, err := loadConfigOptions()
	if err != nil {
		return core.ConvertOptions{}, err
	}

	if cmd.Flags().Changed("pattern") {
		opts.Pattern, _ = cmd.Flags().GetString("pattern")
	}
	if cmd.Flags().Changed("suffix") {
		opts.Suffix, _ = cmd.Flags().GetString("suffix")
	}
	if noEnum, _ := cmd.Flags().GetBool("no-enum"); noEnum {
		opts.EnumStyle = models.EnumStyleUnion
	}
	if noNull, _ := cmd.Flags().GetBool("no-null"); noNull {
		opts.NoNull = true
		opts.EmitNull = false
	}
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		opts.DryRun = true
	}
	return opts, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if Converter == nil {
		return fmt.Errorf("converter not initialized")
	}

	opts, err := convertOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	if _, err := Converter.ConvertDir(args[0], args[1], opts); err != nil {
		return err
	}
	return nil
}
