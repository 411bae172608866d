package models

import "time"

// FileConversion records the outcome of converting one Python file.
type FileConversion struct {
	Source     string `json:"source" yaml:"source"`           // path relative to the input directory
	Output     string `json:"output,omitempty" yaml:"output,omitempty"` // path relative to the output directory
	Interfaces int    `json:"interfaces" yaml:"interfaces"`
	Enums      int    `json:"enums" yaml:"enums"`
	Skipped    bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Reason     string `json:"reason,omitempty" yaml:"reason,omitempty"` // why the file was skipped
}

// ConversionResult aggregates a full ConvertDir run.
type ConversionResult struct {
	InputDir        string           `json:"input_dir" yaml:"input_dir"`
	OutputDir       string           `json:"output_dir" yaml:"output_dir"`
	Pattern         string           `json:"pattern" yaml:"pattern"`
	Files           []FileConversion `json:"files" yaml:"files"`
	FilesScanned    int              `json:"files_scanned" yaml:"files_scanned"`
	FilesWritten    int              `json:"files_written" yaml:"files_written"`
	TotalInterfaces int              `json:"total_interfaces" yaml:"total_interfaces"`
	TotalEnums      int              `json:"total_enums" yaml:"total_enums"`
	Duration        time.Duration    `json:"duration" yaml:"duration"`
	DryRun          bool             `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// FieldSummary is the scan-time view of a model field.
type FieldSummary struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"` // mapped TypeScript type
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// ModelSummary is the scan-time view of one Pydantic model.
type ModelSummary struct {
	Name   string         `json:"name" yaml:"name"`
	Bases  []string       `json:"bases,omitempty" yaml:"bases,omitempty"`
	Fields []FieldSummary `json:"fields" yaml:"fields"`
}

// EnumSummary is the scan-time view of one Enum class.
type EnumSummary struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
}

// FileScan lists what was found in one Python file.
type FileScan struct {
	Path   string         `json:"path" yaml:"path"`
	Models []ModelSummary `json:"models,omitempty" yaml:"models,omitempty"`
	Enums  []EnumSummary  `json:"enums,omitempty" yaml:"enums,omitempty"`
}

// ScanReport is the result of a read-only scan of an input tree.
type ScanReport struct {
	InputDir    string     `json:"input_dir" yaml:"input_dir"`
	Pattern     string     `json:"pattern" yaml:"pattern"`
	Files       []FileScan `json:"files" yaml:"files"`
	TotalModels int        `json:"total_models" yaml:"total_models"`
	TotalEnums  int        `json:"total_enums" yaml:"total_enums"`
}
