package models

// EnumStyle selects how Python Enum classes are rendered in TypeScript.
type EnumStyle string

const (
	// EnumStyleEnum renders "export enum Name { ... }".
	EnumStyleEnum EnumStyle = "enum"
	// EnumStyleUnion renders "export type Name = ... | ...;".
	EnumStyleUnion EnumStyle = "union"
)

// Config holds settings read from a .pytotyrc file via Viper. Zero values
// are filled with defaults by the configuration manager.
type Config struct {
	Pattern   string    `yaml:"pattern" mapstructure:"pattern"`
	Suffix    string    `yaml:"suffix" mapstructure:"suffix"`
	EnumStyle EnumStyle `yaml:"enum_style" mapstructure:"enum_style"`
	EmitNull  bool      `yaml:"emit_null" mapstructure:"emit_null"`
	Exclude   []string  `yaml:"exclude,omitempty" mapstructure:"exclude"`
}
