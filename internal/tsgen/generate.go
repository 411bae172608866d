package tsgen

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/MarkZakelj/pytoty/pkg/models"
)

// Options control TypeScript generation for one file.
type Options struct {
	EnumStyle models.EnumStyle
	EmitNull  bool
	Suffix    string // output file suffix, e.g. ".type.ts"; used for import specifiers
}

// FileOutput is the generated TypeScript for one Python module.
type FileOutput struct {
	Content    string
	Interfaces int
	Enums      int
}

// GenerateModule renders all enums and models of a parsed module as a single
// TypeScript file: import statements first, then enums, then interfaces,
// blank-line separated and in source order.
func GenerateModule(mod *models.PythonModule, opts Options) *FileOutput {
	if opts.EnumStyle == "" {
		opts.EnumStyle = models.EnumStyleEnum
	}

	pkg := ""
	if mod.Path != "" {
		pkg = filepath.Base(filepath.Dir(mod.Path))
	}
	sibling := mod.SiblingImports(pkg)
	local := mod.LocalNames()

	known := make(map[string]bool, len(local)+len(sibling))
	for name := range local {
		known[name] = true
	}
	for name := range sibling {
		known[name] = true
	}
	mapper := NewTypeMapper(opts.EmitNull, known)

	out := &FileOutput{}
	var enums, interfaces []string
	for i := range mod.Classes {
		cls := &mod.Classes[i]
		switch {
		case cls.IsEnum:
			enums = append(enums, GenerateEnum(cls, opts.EnumStyle))
			out.Enums++
		case cls.IsModel:
			interfaces = append(interfaces, generateInterface(cls, mapper, local, sibling))
			out.Interfaces++
		}
	}

	var parts []string
	if imports := generateImports(mapper.Used, local, sibling, opts.Suffix); imports != "" {
		parts = append(parts, imports)
	}
	if len(enums) > 0 {
		parts = append(parts, strings.Join(enums, "\n\n"))
	}
	if len(interfaces) > 0 {
		parts = append(parts, strings.Join(interfaces, "\n\n"))
	}
	if len(parts) == 0 {
		return out
	}
	out.Content = strings.Join(parts, "\n\n") + "\n"
	return out
}

// GenerateEnum renders one Enum class, either as a TypeScript enum or as a
// union type alias.
func GenerateEnum(cls *models.Class, style models.EnumStyle) string {
	if style == models.EnumStyleUnion {
		values := make([]string, 0, len(cls.Members))
		for _, m := range cls.Members {
			values = append(values, renderEnumValue(m))
		}
		if len(values) == 0 {
			values = append(values, "never")
		}
		return "export type " + cls.Name + " = " + strings.Join(values, " | ") + ";"
	}

	var b strings.Builder
	b.WriteString("export enum " + cls.Name + " {\n")
	for _, m := range cls.Members {
		b.WriteString("  " + m.Name + " = " + renderEnumValue(m) + ",\n")
	}
	b.WriteString("}")
	return b.String()
}

func renderEnumValue(m models.EnumMember) string {
	if m.IsString {
		return `"` + m.Value + `"`
	}
	return m.Value
}

// generateInterface renders one model class. Bases that are local models or
// sibling imports become extends clauses; sibling bases are recorded as used
// so the import block picks them up.
func generateInterface(cls *models.Class, mapper *TypeMapper, local map[string]bool, sibling map[string]string) string {
	var bases []string
	for _, base := range cls.Bases {
		if local[base] {
			bases = append(bases, base)
		} else if sibling[base] != "" {
			mapper.Used[base] = true
			bases = append(bases, base)
		}
	}

	var b strings.Builder
	b.WriteString("export interface " + cls.Name)
	if len(bases) > 0 {
		b.WriteString(" extends " + strings.Join(bases, ", "))
	}
	if len(cls.Fields) == 0 {
		b.WriteString(" {}")
		return b.String()
	}

	b.WriteString(" {\n")
	for _, f := range cls.Fields {
		marker := ""
		if f.Optional {
			marker = "?"
		}
		b.WriteString("  " + f.Name + marker + ": " + mapper.Map(f.Annotation) + ";\n")
	}
	b.WriteString("}")
	return b.String()
}

// generateImports renders import statements for used names that came from
// sibling modules, grouped by module. Output is sorted for determinism.
func generateImports(used, local map[string]bool, sibling map[string]string, suffix string) string {
	byModule := make(map[string][]string)
	for name := range used {
		if local[name] {
			continue
		}
		if module := sibling[name]; module != "" {
			byModule[module] = append(byModule[module], name)
		}
	}
	if len(byModule) == 0 {
		return ""
	}

	modules := make([]string, 0, len(byModule))
	for module := range byModule {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	stmts := make([]string, 0, len(modules))
	for _, module := range modules {
		names := byModule[module]
		sort.Strings(names)
		stmts = append(stmts, "import { "+strings.Join(names, ", ")+" } from './"+module+importSuffix(suffix)+"';")
	}
	return strings.Join(stmts, "\n")
}

// importSuffix turns an output suffix into the part kept in import
// specifiers: ".type.ts" imports from "./module.type".
func importSuffix(suffix string) string {
	return strings.TrimSuffix(suffix, ".ts")
}
