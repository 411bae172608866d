package models

// TypeKind discriminates nodes of a parsed type annotation expression.
type TypeKind string

const (
	KindName     TypeKind = "name"     // bare or dotted identifier, e.g. str, typing.Optional
	KindGeneric  TypeKind = "generic"  // subscripted identifier, e.g. List[int]
	KindUnion    TypeKind = "union"    // PEP 604 union, e.g. int | None
	KindString   TypeKind = "string"   // string literal: forward reference or Literal member
	KindNumber   TypeKind = "number"   // numeric literal inside Literal[...]
	KindNone     TypeKind = "none"     // the None singleton
	KindEllipsis TypeKind = "ellipsis" // the ... placeholder (Tuple[X, ...])
)

// TypeExpr is one node of a type annotation tree. Name holds the unqualified
// head identifier for name/generic nodes (the last dotted segment), Args the
// subscript arguments or union members, and Value the literal text for
// string/number nodes.
type TypeExpr struct {
	Kind  TypeKind
	Name  string
	Args  []TypeExpr
	Value string
}

// IsNone reports whether the node is the None singleton.
func (t *TypeExpr) IsNone() bool {
	return t != nil && t.Kind == KindNone
}

// Field is a single annotated attribute of a Pydantic model class.
type Field struct {
	Name       string
	Annotation *TypeExpr
	RawType    string // annotation text as written in the source
	Optional   bool   // true when the field carries a non-required default
	Line       int
}

// EnumMember is one NAME = value assignment inside an Enum class.
type EnumMember struct {
	Name     string
	Value    string // rendered value text, without quotes for strings
	IsString bool
}

// Class is a top-level Python class definition. Exactly one of IsModel and
// IsEnum is set for classes the converter emits; both are false for classes
// it ignores.
type Class struct {
	Name    string
	Bases   []string // unqualified base class names, source order
	Fields  []Field
	Members []EnumMember
	IsModel bool
	IsEnum  bool
	Line    int
}

// ImportedName is one name bound by a from-import, with its optional alias.
type ImportedName struct {
	Name  string
	Alias string
}

// Import is a single from-import statement.
type Import struct {
	Module   string // module path as written, e.g. "app.models" or ".models"
	Names    []ImportedName
	Relative bool // true for "from .x import ..." style imports
}

// PythonModule is the parsed view of one Python source file: the pieces
// pytoty needs, not a full AST.
type PythonModule struct {
	Path    string // source path, empty for in-memory sources
	Classes []Class
	Imports []Import
}

// LocalNames returns the set of class names defined in the module.
func (m *PythonModule) LocalNames() map[string]bool {
	names := make(map[string]bool, len(m.Classes))
	for _, c := range m.Classes {
		names[c.Name] = true
	}
	return names
}

// SiblingImports maps each name imported from a sibling module (a relative
// import or an import from within the same package directory) to the
// unqualified module it came from. packageName is the directory name of the
// source file; pass "" to only consider relative imports.
func (m *PythonModule) SiblingImports(packageName string) map[string]string {
	out := make(map[string]string)
	for _, imp := range m.Imports {
		mod := imp.Module
		switch {
		case imp.Relative:
			// from .models import X
		case packageName != "" && hasModulePrefix(mod, packageName):
			mod = mod[len(packageName)+1:]
		default:
			continue
		}
		parts := splitModulePath(mod)
		if len(parts) == 0 {
			continue
		}
		leaf := parts[len(parts)-1]
		for _, n := range imp.Names {
			bound := n.Name
			if n.Alias != "" {
				bound = n.Alias
			}
			out[bound] = leaf
		}
	}
	return out
}

func hasModulePrefix(module, pkg string) bool {
	return len(module) > len(pkg)+1 && module[:len(pkg)] == pkg && module[len(pkg)] == '.'
}

func splitModulePath(module string) []string {
	var parts []string
	cur := ""
	for _, r := range module {
		if r == '.' {
			if cur != "" {
				parts = append(parts, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		parts = append(parts, cur)
	}
	return parts
}
