package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MarkZakelj/pytoty/internal/core"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .pytotyrc configuration file",
	Long: `Write a .pytotyrc file with the default configuration to the current
directory. Edit it to change the file pattern, output suffix, enum style,
null emission, or exclude globs for all pytoty runs in this tree.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .pytotyrc")

	rootCmd.AddCommand(initCmd)
}

const configHeader = `# pytoty configuration.
# pattern:    glob for Python files, ** matches any number of directories
# suffix:     output file suffix appended in place of .py
# enum_style: "enum" for TypeScript enums, "union" for type aliases
# emit_null:  append "| null" to Optional[...] field types
# exclude:    glob patterns to skip, e.g. ["**/test_*.py"]
`

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	path := filepath.Join(dir, core.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(core.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}
