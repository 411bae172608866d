package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MarkZakelj/pytoty/internal/core"
)

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := executeCommand(t, "init")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Wrote ") {
		t.Errorf("output: %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, core.ConfigFileName))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# pytoty configuration.") {
		t.Errorf("missing header:\n%s", content)
	}
	for _, want := range []string{
		`pattern: '**/*.py'`,
		"suffix: .type.ts",
		"enum_style: enum",
		"emit_null: true",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("config missing %q:\n%s", want, content)
		}
	}

	// The generated file must load back cleanly.
	cfg, err := core.NewConfigManager(dir).Load()
	if err != nil {
		t.Fatalf("loading generated config: %v", err)
	}
	if cfg.Pattern != "**/*.py" || cfg.Suffix != ".type.ts" {
		t.Errorf("round trip: %#v", cfg)
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, core.ConfigFileName)
	if err := os.WriteFile(path, []byte("pattern: custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := executeCommand(t, "init")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "pattern: custom\n" {
		t.Error("existing file must not be touched")
	}
}

func TestInitCommand_Force(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, core.ConfigFileName)
	if err := os.WriteFile(path, []byte("pattern: custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := executeCommand(t, "init", "--force"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "# pytoty configuration.") {
		t.Errorf("file not overwritten:\n%s", data)
	}
}
