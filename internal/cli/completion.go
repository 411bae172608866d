package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var completionInstall bool

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Set up shell completions for pytoty",
	Long: `Set up shell tab-completions for pytoty commands, flags, and arguments.

Supported shells: bash, zsh, fish, powershell

Quick install (writes the completion script to your shell's completion dir):

  pytoty completion bash --install
  pytoty completion zsh --install
  pytoty completion fish --install

Or print the completion script to stdout (for manual setup):

  pytoty completion bash
  pytoty completion zsh
  pytoty completion fish
  pytoty completion powershell`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions into your shell profile")

	// Replace Cobra's default completion command with ours.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	shell := args[0]

	if completionInstall {
		return installCompletion(shell)
	}

	// Print script to stdout; usage hints go to stderr so they don't
	// interfere with piping (e.g., eval "$(pytoty completion bash)").
	switch shell {
	case "bash":
		printHints(cmd,
			"# To load completions in your current session:",
			`#   eval "$(pytoty completion bash)"`,
			"#",
		)
		return rootCmd.GenBashCompletionV2(cmd.OutOrStdout(), true)
	case "zsh":
		printHints(cmd,
			"# To load completions in your current session:",
			`#   eval "$(pytoty completion zsh)"`,
			"#",
		)
		return rootCmd.GenZshCompletion(cmd.OutOrStdout())
	case "fish":
		printHints(cmd,
			"# To load completions in your current session:",
			"#   pytoty completion fish | source",
			"#",
		)
		return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
	case "powershell":
		printHints(cmd,
			"# To load completions in your current session:",
			"#   pytoty completion powershell | Out-String | Invoke-Expression",
			"#",
		)
		return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", shell)
	}
}

// printHints writes usage hints to stderr so they don't interfere with
// piping the completion script from stdout.
func printHints(cmd *cobra.Command, lines ...string) {
	w := cmd.OutOrStderr()
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}

func installCompletion(shell string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("detecting home directory: %w", err)
	}

	var target string
	var gen func(*os.File) error
	switch shell {
	case "bash":
		target = filepath.Join(home, ".local", "share", "bash-completion", "completions", "pytoty")
		gen = func(f *os.File) error { return rootCmd.GenBashCompletionV2(f, true) }
	case "zsh":
		target = filepath.Join(home, ".zsh", "completions", "_pytoty")
		gen = func(f *os.File) error { return rootCmd.GenZshCompletion(f) }
	case "fish":
		target = filepath.Join(home, ".config", "fish", "completions", "pytoty.fish")
		gen = func(f *os.File) error { return rootCmd.GenFishCompletion(f, true) }
	case "powershell":
		return fmt.Errorf("automatic install is not supported for PowerShell; run 'pytoty completion powershell' and add the output to your profile")
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating completion directory: %w", err)
	}
	if err := writeCompletionFile(target, gen); err != nil {
		return err
	}
	fmt.Printf("Installed %s completions to %s\n", shell, target)
	if shell == "zsh" {
		fmt.Println("Make sure ~/.zsh/completions is in your fpath before compinit runs.")
	}
	return nil
}

// writeCompletionFile creates target, writes the completion script into it,
// and propagates close errors.
func writeCompletionFile(target string, genFn func(*os.File) error) error {
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating completion file %s: %w", target, err)
	}

	writeErr := genFn(f)
	closeErr := f.Close()

	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing completion file %s: %w", target, closeErr)
	}
	return nil
}
