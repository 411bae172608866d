package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MarkZakelj/pytoty/internal/pyparse"
	"github.com/MarkZakelj/pytoty/internal/tsgen"
	"github.com/MarkZakelj/pytoty/pkg/models"
)

// EventLogger is implemented by the observability layer. It is declared here
// so core does not import that package directly.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any)
}

// ConvertOptions control one conversion or scan run. Zero values fall back
// to the configuration defaults.
type ConvertOptions struct {
	Pattern   string
	Suffix    string
	EnumStyle models.EnumStyle
	EmitNull  bool
	NoNull    bool // explicit override: suppress "| null" even though EmitNull defaults on
	Exclude   []string
	DryRun    bool
}

func (o ConvertOptions) withDefaults() ConvertOptions {
	def := DefaultConfig()
	if o.Pattern == "" {
		o.Pattern = def.Pattern
	}
	if o.Suffix == "" {
		o.Suffix = def.Suffix
	}
	if o.EnumStyle == "" {
		o.EnumStyle = def.EnumStyle
	}
	if o.NoNull {
		o.EmitNull = false
	}
	return o
}

// FromConfig builds ConvertOptions from a loaded configuration.
func FromConfig(cfg *models.Config) ConvertOptions {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return ConvertOptions{
		Pattern:   cfg.Pattern,
		Suffix:    cfg.Suffix,
		EnumStyle: cfg.EnumStyle,
		EmitNull:  cfg.EmitNull,
		Exclude:   cfg.Exclude,
	}
}

// Converter is the conversion service: it discovers Python files, parses
// them, and writes TypeScript declaration files.
type Converter interface {
	// ConvertDir converts every matching file under inputDir, writing
	// results under outputDir with the source tree layout preserved.
	ConvertDir(inputDir, outputDir string, opts ConvertOptions) (*models.ConversionResult, error)
	// ConvertSource converts a single in-memory Python source.
	ConvertSource(src string, opts ConvertOptions) (string, error)
	// ScanDir parses matching files without writing anything and reports
	// the models and enums found.
	ScanDir(inputDir string, opts ConvertOptions) (*models.ScanReport, error)
}

type converter struct {
	echo   io.Writer
	parser pyparse.Parser
	events EventLogger
}

// NewConverter creates a Converter. echo receives human-readable progress
// output (pass io.Discard to silence it); events may be nil.
func NewConverter(echo io.Writer, parser pyparse.Parser, events EventLogger) Converter {
	if echo == nil {
		echo = io.Discard
	}
	if parser == nil {
		parser = pyparse.New()
	}
	return &converter{echo: echo, parser: parser, events: events}
}

func (c *converter) logEvent(eventType string, data map[string]any) {
	if c.events != nil {
		c.events.LogEvent(eventType, data)
	}
}

func (c *converter) ConvertDir(inputDir, outputDir string, opts ConvertOptions) (*models.ConversionResult, error) {
	opts = opts.withDefaults()
	start := time.Now()

	if err := checkInputDir(inputDir); err != nil {
		return nil, err
	}

	c.logEvent("run.started", map[string]any{
		"input":   inputDir,
		"output":  outputDir,
		"pattern": opts.Pattern,
		"dry_run": opts.DryRun,
	})

	files, err := DiscoverFiles(inputDir, opts.Pattern, opts.Exclude)
	if err != nil {
		c.logEvent("run.failed", map[string]any{"error": err.Error()})
		return nil, err
	}

	result := &models.ConversionResult{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Pattern:   opts.Pattern,
		DryRun:    opts.DryRun,
	}

	if len(files) == 0 {
		fmt.Fprintf(c.echo, "No Python files found matching pattern %q in %s\n", opts.Pattern, inputDir)
		result.Duration = time.Since(start)
		c.logEvent("run.completed", map[string]any{"files": 0, "interfaces": 0, "enums": 0})
		return result, nil
	}

	if !opts.DryRun {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			c.logEvent("run.failed", map[string]any{"error": err.Error()})
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	fmt.Fprintf(c.echo, "Found %d Python files to process\n", len(files))

	genOpts := tsgen.Options{EnumStyle: opts.EnumStyle, EmitNull: opts.EmitNull, Suffix: opts.Suffix}
	for _, rel := range files {
		result.FilesScanned++
		fmt.Fprintf(c.echo, "Processing %s...\n", rel)

		fc, err := c.convertFile(inputDir, outputDir, rel, genOpts, opts.DryRun)
		if err != nil {
			fmt.Fprintf(c.echo, "  Error processing %s: %v\n", rel, err)
			result.Files = append(result.Files, models.FileConversion{Source: rel, Skipped: true, Reason: err.Error()})
			c.logEvent("file.skipped", map[string]any{"source": rel, "reason": err.Error()})
			continue
		}
		result.Files = append(result.Files, *fc)
		if fc.Skipped {
			fmt.Fprintf(c.echo, "  No Pydantic models found in %s\n", filepath.Base(rel))
			c.logEvent("file.skipped", map[string]any{"source": rel, "reason": fc.Reason})
			continue
		}

		result.FilesWritten++
		result.TotalInterfaces += fc.Interfaces
		result.TotalEnums += fc.Enums
		if fc.Enums > 0 {
			fmt.Fprintf(c.echo, "  Generated %d enums + %d interfaces -> %s\n", fc.Enums, fc.Interfaces, fc.Output)
		} else {
			fmt.Fprintf(c.echo, "  Generated %d interfaces -> %s\n", fc.Interfaces, fc.Output)
		}
		c.logEvent("file.converted", map[string]any{
			"source":     rel,
			"output":     fc.Output,
			"interfaces": fc.Interfaces,
			"enums":      fc.Enums,
		})
	}

	result.Duration = time.Since(start)
	fmt.Fprintf(c.echo, "\nConversion complete. Generated %d TypeScript interfaces in %s\n",
		result.TotalInterfaces, outputDir)
	c.logEvent("run.completed", map[string]any{
		"files":       result.FilesWritten,
		"interfaces":  result.TotalInterfaces,
		"enums":       result.TotalEnums,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return result, nil
}

func (c *converter) convertFile(inputDir, outputDir, rel string, genOpts tsgen.Options, dryRun bool) (*models.FileConversion, error) {
	mod, err := c.parser.ParseFile(filepath.Join(inputDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}

	gen := tsgen.GenerateModule(mod, genOpts)
	if gen.Interfaces == 0 && gen.Enums == 0 {
		return &models.FileConversion{Source: rel, Skipped: true, Reason: "no models"}, nil
	}

	outRel := outputName(rel, genOpts.Suffix)
	if !dryRun {
		outPath := filepath.Join(outputDir, filepath.FromSlash(outRel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, []byte(gen.Content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	return &models.FileConversion{
		Source:     rel,
		Output:     outRel,
		Interfaces: gen.Interfaces,
		Enums:      gen.Enums,
	}, nil
}

func (c *converter) ConvertSource(src string, opts ConvertOptions) (string, error) {
	opts = opts.withDefaults()
	mod, err := c.parser.ParseSource(src, "")
	if err != nil {
		return "", err
	}
	gen := tsgen.GenerateModule(mod, tsgen.Options{
		EnumStyle: opts.EnumStyle,
		EmitNull:  opts.EmitNull,
		Suffix:    opts.Suffix,
	})
	return gen.Content, nil
}

func (c *converter) ScanDir(inputDir string, opts ConvertOptions) (*models.ScanReport, error) {
	opts = opts.withDefaults()
	if err := checkInputDir(inputDir); err != nil {
		return nil, err
	}

	files, err := DiscoverFiles(inputDir, opts.Pattern, opts.Exclude)
	if err != nil {
		return nil, err
	}

	report := &models.ScanReport{InputDir: inputDir, Pattern: opts.Pattern}
	for _, rel := range files {
		mod, err := c.parser.ParseFile(filepath.Join(inputDir, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		scan := scanModule(mod, rel, opts.EmitNull)
		if len(scan.Models) == 0 && len(scan.Enums) == 0 {
			continue
		}
		report.Files = append(report.Files, scan)
		report.TotalModels += len(scan.Models)
		report.TotalEnums += len(scan.Enums)
	}
	return report, nil
}

func scanModule(mod *models.PythonModule, rel string, emitNull bool) models.FileScan {
	scan := models.FileScan{Path: rel}
	pkg := ""
	if mod.Path != "" {
		pkg = filepath.Base(filepath.Dir(mod.Path))
	}
	known := mod.LocalNames()
	for name := range mod.SiblingImports(pkg) {
		known[name] = true
	}
	mapper := tsgen.NewTypeMapper(emitNull, known)

	for _, cls := range mod.Classes {
		switch {
		case cls.IsEnum:
			summary := models.EnumSummary{Name: cls.Name}
			for _, m := range cls.Members {
				summary.Members = append(summary.Members, m.Name)
			}
			scan.Enums = append(scan.Enums, summary)
		case cls.IsModel:
			summary := models.ModelSummary{Name: cls.Name, Bases: cls.Bases}
			for _, f := range cls.Fields {
				summary.Fields = append(summary.Fields, models.FieldSummary{
					Name:     f.Name,
					Type:     mapper.Map(f.Annotation),
					Optional: f.Optional,
				})
			}
			scan.Models = append(scan.Models, summary)
		}
	}
	return scan
}

// outputName converts a relative source path to its output path:
// api/user.py -> api/user.type.ts.
func outputName(rel, suffix string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + suffix
}

func checkInputDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("checking input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
