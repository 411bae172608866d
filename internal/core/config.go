// Package core contains the business logic of pytoty: configuration
// loading, source file discovery, and the conversion pipeline that turns
// Python files with Pydantic models into TypeScript declaration files.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/MarkZakelj/pytoty/pkg/models"
)

// ConfigFileName is the configuration file pytoty looks for, walking up
// from the working directory.
const ConfigFileName = ".pytotyrc"

// ConfigManager loads and validates pytoty configuration.
type ConfigManager interface {
	// Load reads the .pytotyrc file from the base path. When the file does
	// not exist, defaults are returned.
	Load() (*models.Config, error)
	// Validate checks a configuration for invalid values.
	Validate(cfg *models.Config) error
}

// viperConfigManager implements ConfigManager using Viper for reading the
// YAML configuration file.
type viperConfigManager struct {
	basePath string
}

// NewConfigManager creates a ConfigManager that reads .pytotyrc from basePath.
func NewConfigManager(basePath string) ConfigManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a Config populated with defaults: the original
// tool's CLI defaults plus null emission for Optional fields.
func DefaultConfig() *models.Config {
	return &models.Config{
		Pattern:   "**/*.py",
		Suffix:    ".type.ts",
		EnumStyle: models.EnumStyleEnum,
		EmitNull:  true,
	}
}

func (cm *viperConfigManager) Load() (*models.Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("pattern", cfg.Pattern)
	v.SetDefault("suffix", cfg.Suffix)
	v.SetDefault("enum_style", string(cfg.EnumStyle))
	v.SetDefault("emit_null", cfg.EmitNull)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	cfg.Pattern = v.GetString("pattern")
	cfg.Suffix = v.GetString("suffix")
	cfg.EnumStyle = models.EnumStyle(v.GetString("enum_style"))
	cfg.EmitNull = v.GetBool("emit_null")
	cfg.Exclude = v.GetStringSlice("exclude")

	if err := cm.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

func (cm *viperConfigManager) Validate(cfg *models.Config) error {
	if cfg.Pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if !strings.HasPrefix(cfg.Suffix, ".") || !strings.HasSuffix(cfg.Suffix, ".ts") {
		return fmt.Errorf("suffix %q must start with '.' and end with '.ts'", cfg.Suffix)
	}
	switch cfg.EnumStyle {
	case models.EnumStyleEnum, models.EnumStyleUnion:
	default:
		return fmt.Errorf("enum_style %q must be %q or %q", cfg.EnumStyle, models.EnumStyleEnum, models.EnumStyleUnion)
	}
	return nil
}
