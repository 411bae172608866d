package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var checkCmd = &cobra.Command{
	Use:   "check <input-dir>",
	Short: "List Pydantic models and enums found in a directory",
	Long: `Scan the input directory for Pydantic models and Enum classes without
writing any output.

Shows every model with its fields mapped to TypeScript types, which makes it
easy to verify what a convert run would produce.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("pattern", "", "File pattern to match Python files (default \"**/*.py\")")
	checkCmd.Flags().Bool("yaml", false, "Print the scan report as YAML")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if Converter == nil {
		return fmt.Errorf("converter not initialized")
	}

	opts, err := loadConfigOptions()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("pattern") {
		opts.Pattern, _ = cmd.Flags().GetString("pattern")
	}

	report, err := Converter.ScanDir(args[0], opts)
	if err != nil {
		return err
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		cmd.Print(string(data))
		return nil
	}

	if len(report.Files) == 0 {
		cmd.Printf("No Pydantic models found matching pattern %q in %s\n", report.Pattern, report.InputDir)
		return nil
	}

	for _, file := range report.Files {
		cmd.Printf("%s\n", file.Path)
		for _, e := range file.Enums {
			cmd.Printf("  enum %s (%d members)\n", e.Name, len(e.Members))
		}
		for _, m := range file.Models {
			cmd.Printf("  model %s (%d fields)\n", m.Name, len(m.Fields))
			for _, f := range m.Fields {
				marker := ""
				if f.Optional {
					marker = "?"
				}
				cmd.Printf("    %s%s: %s\n", f.Name, marker, f.Type)
			}
		}
	}
	cmd.Printf("\nFound %d models and %d enums in %d files\n",
		report.TotalModels, report.TotalEnums, len(report.Files))
	return nil
}
