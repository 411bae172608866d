package pyparse

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MarkZakelj/pytoty/pkg/models"
)

// enumBases are the enum.Enum subclasses whose descendants are treated as enums.
var enumBases = map[string]bool{
	"Enum":     true,
	"IntEnum":  true,
	"StrEnum":  true,
	"Flag":     true,
	"IntFlag":  true,
	"ReprEnum": true,
}

// modelBases are the Pydantic roots whose descendants are treated as models.
var modelBases = map[string]bool{
	"BaseModel":    true,
	"GenericModel": true,
	"BaseSettings": true,
}

// Parser extracts Pydantic models and Enum classes from Python source.
type Parser interface {
	// ParseFile parses the Python file at path.
	ParseFile(path string) (*models.PythonModule, error)
	// ParseSource parses in-memory source text. path may be empty; when set
	// it is used for sibling-import resolution and error messages.
	ParseSource(src, path string) (*models.PythonModule, error)
}

type parser struct{}

// New creates a Parser.
func New() Parser {
	return &parser{}
}

func (p *parser) ParseFile(path string) (*models.PythonModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.ParseSource(string(data), path)
}

func (p *parser) ParseSource(src, path string) (*models.PythonModule, error) {
	mod := &models.PythonModule{Path: path}
	lines := scanLogicalLines(src)

	i := 0
	for i < len(lines) {
		ln := lines[i]
		if ln.Indent != 0 {
			i++
			continue
		}
		switch {
		case strings.HasPrefix(ln.Text, "from "):
			if imp, ok := parseFromImport(ln.Text); ok {
				mod.Imports = append(mod.Imports, imp)
			}
			i++
		case strings.HasPrefix(ln.Text, "class "):
			cls, next := parseClass(lines, i)
			if cls != nil {
				mod.Classes = append(mod.Classes, *cls)
			}
			i = next
		default:
			i++
		}
	}

	classify(mod)
	return mod, nil
}

// parseFromImport parses "from MOD import a, b as c". Star imports and
// malformed statements are ignored.
func parseFromImport(text string) (models.Import, bool) {
	rest := strings.TrimPrefix(text, "from ")
	idx := strings.Index(rest, " import ")
	if idx < 0 {
		return models.Import{}, false
	}
	module := strings.TrimSpace(rest[:idx])
	namesPart := strings.TrimSpace(rest[idx+len(" import "):])
	namesPart = strings.Trim(namesPart, "()")
	if module == "" || namesPart == "" || strings.Contains(namesPart, "*") {
		return models.Import{}, false
	}

	imp := models.Import{Module: module, Relative: strings.HasPrefix(module, ".")}
	if imp.Relative {
		imp.Module = strings.TrimLeft(module, ".")
	}
	for _, part := range strings.Split(namesPart, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, alias := part, ""
		if j := strings.Index(part, " as "); j >= 0 {
			name = strings.TrimSpace(part[:j])
			alias = strings.TrimSpace(part[j+len(" as "):])
		}
		imp.Names = append(imp.Names, models.ImportedName{Name: name, Alias: alias})
	}
	if len(imp.Names) == 0 {
		return models.Import{}, false
	}
	return imp, true
}

// parseClass parses a top-level class definition starting at lines[start].
// It returns the class (nil when the header is malformed) and the index of
// the first line after the class body.
func parseClass(lines []logicalLine, start int) (*models.Class, int) {
	header := lines[start]
	name, bases, ok := parseClassHeader(header.Text)
	if !ok {
		return nil, start + 1
	}
	cls := &models.Class{Name: name, Bases: bases, Line: header.Line}

	bodyIndent := -1
	i := start + 1
	for i < len(lines) {
		ln := lines[i]
		if ln.Indent <= header.Indent {
			break
		}
		if bodyIndent == -1 {
			bodyIndent = ln.Indent
		}
		if ln.Indent > bodyIndent {
			i++ // inside a method or nested class body
			continue
		}
		parseClassStatement(cls, ln)
		i++
	}

	finishEnumMembers(cls)
	return cls, i
}

// parseClassHeader extracts the class name and base names from
// "class Name(Base1, pkg.Base2, metaclass=M):". Keyword arguments and
// subscripted bases keep only their head identifier.
func parseClassHeader(text string) (string, []string, bool) {
	rest := strings.TrimPrefix(text, "class ")
	end := strings.IndexAny(rest, "(:")
	if end < 0 {
		return "", nil, false
	}
	name := strings.TrimSpace(rest[:end])
	if !isIdentifier(name) {
		return "", nil, false
	}
	if rest[end] == ':' {
		return name, nil, true
	}

	close := strings.LastIndex(rest, ")")
	if close < end {
		return "", nil, false
	}
	var bases []string
	for _, part := range splitTopLevel(rest[end+1:close], ',') {
		part = strings.TrimSpace(part)
		if part == "" || strings.Contains(part, "=") {
			continue // metaclass=... and other keyword arguments
		}
		if j := strings.Index(part, "["); j >= 0 {
			part = part[:j] // Generic[T] -> Generic
		}
		if j := strings.LastIndex(part, "."); j >= 0 {
			part = part[j+1:] // pydantic.BaseModel -> BaseModel
		}
		if isIdentifier(part) {
			bases = append(bases, part)
		}
	}
	return name, bases, true
}

// parseClassStatement handles one direct statement of a class body:
// either an annotated field or a bare NAME = value assignment (a potential
// enum member). Everything else is ignored.
func parseClassStatement(cls *models.Class, ln logicalLine) {
	text := ln.Text
	switch {
	case text == "pass" || text == "...":
		return
	case strings.HasPrefix(text, "def ") || strings.HasPrefix(text, "async def "):
		return
	case strings.HasPrefix(text, "@") || strings.HasPrefix(text, "class "):
		return
	case strings.HasPrefix(text, "\"") || strings.HasPrefix(text, "'"):
		return // docstring
	}

	colon := indexTopLevel(text, ':')
	eq := indexTopLevelAssign(text)

	if colon >= 0 && (eq < 0 || colon < eq) {
		// Annotated field: name: annotation [= default]
		name := strings.TrimSpace(text[:colon])
		if !isIdentifier(name) || strings.HasPrefix(name, "_") || name == "model_config" {
			return
		}
		rest := text[colon+1:]
		annotation := rest
		hasDefault := false
		defaultText := ""
		if j := indexTopLevelAssign(rest); j >= 0 {
			annotation = rest[:j]
			defaultText = strings.TrimSpace(rest[j+1:])
			hasDefault = true
		}
		annotation = strings.TrimSpace(annotation)
		if annotation == "" || strings.HasPrefix(annotation, "ClassVar") {
			return
		}

		field := models.Field{
			Name:     name,
			RawType:  annotation,
			Optional: hasDefault && defaultMakesOptional(defaultText),
			Line:     ln.Line,
		}
		if expr, err := ParseTypeExpr(annotation); err == nil {
			field.Annotation = expr
		}
		cls.Fields = append(cls.Fields, field)
		return
	}

	if eq >= 0 {
		// Bare assignment: candidate enum member.
		name := strings.TrimSpace(text[:eq])
		if !isIdentifier(name) || strings.HasPrefix(name, "_") {
			return
		}
		value := strings.TrimSpace(text[eq+1:])
		if value == "" {
			return
		}
		member := models.EnumMember{Name: name, Value: value}
		if unq, ok := unquote(value); ok {
			member.Value = unq
			member.IsString = true
		}
		cls.Members = append(cls.Members, member)
	}
}

// finishEnumMembers resolves auto() members to sequential integers starting
// at 1, matching enum.auto.
func finishEnumMembers(cls *models.Class) {
	for i := range cls.Members {
		if cls.Members[i].Value == "auto()" {
			cls.Members[i].Value = strconv.Itoa(i + 1)
			cls.Members[i].IsString = false
		}
	}
}

// defaultMakesOptional reports whether a field default makes the field
// non-required under Pydantic v2 semantics. "..." and Field(...) without a
// default keep the field required.
func defaultMakesOptional(def string) bool {
	if def == "..." {
		return false
	}
	inner, ok := fieldCallArgs(def)
	if !ok {
		return true // plain default value
	}
	args := splitTopLevel(inner, ',')
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if strings.HasPrefix(arg, "default=") || strings.HasPrefix(arg, "default_factory=") {
			return true
		}
		if i == 0 && !strings.Contains(arg, "=") {
			return arg != "..." // positional default
		}
	}
	return false // Field(...) or Field(gt=0): constraint-only, still required
}

// fieldCallArgs returns the argument text of a Field(...) call, or ok=false
// when the default is not a Field call.
func fieldCallArgs(def string) (string, bool) {
	for _, prefix := range []string{"Field(", "pydantic.Field("} {
		if strings.HasPrefix(def, prefix) && strings.HasSuffix(def, ")") {
			return def[len(prefix) : len(def)-1], true
		}
	}
	return "", false
}

// classify marks each class as a model or an enum. Classification iterates
// to a fixpoint so that models inheriting from local models (and enums from
// local enums) are picked up regardless of declaration order. Bases imported
// from sibling modules are assumed to be models.
func classify(mod *models.PythonModule) {
	pkg := ""
	if mod.Path != "" {
		pkg = filepath.Base(filepath.Dir(mod.Path))
	}
	sibling := mod.SiblingImports(pkg)

	localModel := make(map[string]bool)
	localEnum := make(map[string]bool)

	for changed := true; changed; {
		changed = false
		for i := range mod.Classes {
			cls := &mod.Classes[i]
			if cls.IsModel || cls.IsEnum {
				continue
			}
			for _, base := range cls.Bases {
				switch {
				case enumBases[base] || localEnum[base]:
					cls.IsEnum = true
				case modelBases[base] || localModel[base]:
					cls.IsModel = true
				case sibling[base] != "":
					cls.IsModel = true
				}
			}
			if cls.IsEnum {
				cls.IsModel = false
				cls.Fields = nil
				localEnum[cls.Name] = true
				changed = true
			} else if cls.IsModel {
				cls.Members = nil
				localModel[cls.Name] = true
				changed = true
			}
		}
	}
}

// --- small text helpers ---

// isIdentifier reports whether s is a valid Python identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
			continue
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return true
}

// splitTopLevel splits s on sep occurrences outside brackets and strings.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '\'', '"':
			i = skipString(s, i)
		default:
			if c == sep && depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

// indexTopLevel returns the index of the first sep outside brackets and
// strings, or -1.
func indexTopLevel(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '\'', '"':
			i = skipString(s, i)
		default:
			if c == sep && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexTopLevelAssign returns the index of the first top-level '=' that is a
// plain assignment (not ==, !=, <=, >=), or -1.
func indexTopLevelAssign(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '\'', '"':
			i = skipString(s, i)
		case '=':
			if depth != 0 {
				continue
			}
			if i+1 < len(s) && s[i+1] == '=' {
				i++
				continue
			}
			if i > 0 && (s[i-1] == '=' || s[i-1] == '!' || s[i-1] == '<' || s[i-1] == '>') {
				continue
			}
			return i
		}
	}
	return -1
}

// skipString returns the index of the closing quote of the string starting
// at s[i], or the last index when unterminated.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == '\\' {
			j++
			continue
		}
		if s[j] == quote {
			return j
		}
	}
	return len(s) - 1
}

// unquote strips matching single or double quotes from a string literal.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return "", false
	}
	body := s[1 : len(s)-1]
	if strings.ContainsRune(body, rune(q)) {
		return "", false // concatenation or embedded quotes: keep raw
	}
	return strings.ReplaceAll(body, "\\"+string(q), string(q)), true
}
