// Package tsgen renders parsed Python modules as TypeScript declarations:
// a type mapping from Python annotations to TypeScript types, and emitters
// for interfaces, enums, and import statements.
package tsgen

import (
	"strings"

	"github.com/MarkZakelj/pytoty/pkg/models"
)

// scalarTypes maps Python scalar type names to TypeScript types. Pydantic's
// constrained string types and stdlib value types all serialize as strings.
var scalarTypes = map[string]string{
	"str":           "string",
	"bytes":         "string",
	"int":           "number",
	"float":         "number",
	"complex":       "number",
	"Decimal":       "number",
	"bool":          "boolean",
	"datetime":      "string",
	"date":          "string",
	"time":          "string",
	"timedelta":     "string",
	"UUID":          "string",
	"Path":          "string",
	"FilePath":      "string",
	"DirectoryPath": "string",
	"EmailStr":      "string",
	"NameEmail":     "string",
	"HttpUrl":       "string",
	"AnyUrl":        "string",
	"AnyHttpUrl":    "string",
	"PostgresDsn":   "string",
	"SecretStr":     "string",
	"SecretBytes":   "string",
	"Json":          "any",
	"Any":           "any",
	"object":        "any",
	"None":          "null",
}

// sequenceTypes are subscripted containers rendered as TypeScript arrays.
var sequenceTypes = map[string]bool{
	"List":       true,
	"list":       true,
	"Sequence":   true,
	"Set":        true,
	"set":        true,
	"FrozenSet":  true,
	"frozenset":  true,
	"Iterable":   true,
	"Collection": true,
}

// mappingTypes are subscripted containers rendered as TypeScript Records.
var mappingTypes = map[string]bool{
	"Dict":           true,
	"dict":           true,
	"Mapping":        true,
	"MutableMapping": true,
	"OrderedDict":    true,
	"DefaultDict":    true,
}

// TypeMapper converts TypeExpr trees to TypeScript type strings. Known holds
// custom type names that are in scope (local classes and sibling imports);
// every reference to one of them is recorded in Used so the caller can emit
// import statements.
type TypeMapper struct {
	EmitNull bool
	Known    map[string]bool
	Used     map[string]bool
}

// NewTypeMapper creates a TypeMapper. known may be nil.
func NewTypeMapper(emitNull bool, known map[string]bool) *TypeMapper {
	return &TypeMapper{
		EmitNull: emitNull,
		Known:    known,
		Used:     make(map[string]bool),
	}
}

// Map renders a type expression as a TypeScript type. A nil expression maps
// to "any".
func (m *TypeMapper) Map(t *models.TypeExpr) string {
	if t == nil {
		return "any"
	}
	switch t.Kind {
	case models.KindNone:
		return "null"
	case models.KindEllipsis:
		return "any"
	case models.KindNumber:
		return t.Value
	case models.KindString:
		// Forward reference: "User" behaves like the bare name User.
		return m.mapName(t.Value)
	case models.KindName:
		return m.mapName(t.Name)
	case models.KindUnion:
		return m.mapUnion(t.Args)
	case models.KindGeneric:
		return m.mapGeneric(t)
	}
	return "any"
}

func (m *TypeMapper) mapName(name string) string {
	if ts, ok := scalarTypes[name]; ok {
		return ts
	}
	// Unsubscripted containers fall back to their widest form.
	if sequenceTypes[name] {
		return "any[]"
	}
	if mappingTypes[name] {
		return "Record<string, any>"
	}
	if name == "Tuple" || name == "tuple" {
		return "any[]"
	}
	if m.Known[name] {
		m.Used[name] = true
		return name
	}
	switch strings.ToLower(name) {
	case "string", "number", "boolean":
		return strings.ToLower(name)
	}
	// Reference to a class the converter has not seen: keep the name, the
	// declaration may live in a file converted separately.
	return name
}

func (m *TypeMapper) mapUnion(args []models.TypeExpr) string {
	// The common Optional shape: exactly one None member alongside one type.
	if len(args) == 2 {
		if args[0].IsNone() || args[1].IsNone() {
			inner := &args[0]
			if args[0].IsNone() {
				inner = &args[1]
			}
			return m.nullable(m.Map(inner))
		}
	}
	parts := make([]string, 0, len(args))
	for i := range args {
		parts = append(parts, m.Map(&args[i]))
	}
	return strings.Join(parts, " | ")
}

func (m *TypeMapper) mapGeneric(t *models.TypeExpr) string {
	switch {
	case sequenceTypes[t.Name]:
		if len(t.Args) == 0 {
			return "any[]"
		}
		return arrayOf(m.Map(&t.Args[0]))
	case mappingTypes[t.Name]:
		if len(t.Args) == 2 {
			return "Record<" + m.Map(&t.Args[0]) + ", " + m.Map(&t.Args[1]) + ">"
		}
		return "Record<string, any>"
	case t.Name == "Tuple" || t.Name == "tuple":
		return m.mapTuple(t.Args)
	case t.Name == "Optional":
		if len(t.Args) == 0 {
			return "any"
		}
		return m.nullable(m.Map(&t.Args[0]))
	case t.Name == "Union":
		return m.mapUnion(t.Args)
	case t.Name == "Literal":
		return m.mapLiteral(t.Args)
	case t.Name == "Annotated":
		if len(t.Args) == 0 {
			return "any"
		}
		return m.Map(&t.Args[0])
	case t.Name == "Callable", t.Name == "Type", t.Name == "type", t.Name == "":
		return "any"
	}
	// Custom generic: reference by name, dropping the parameters.
	return m.mapName(t.Name)
}

func (m *TypeMapper) mapTuple(args []models.TypeExpr) string {
	if len(args) == 0 {
		return "any[]"
	}
	// Tuple[X, ...] is a homogeneous variadic tuple.
	if len(args) == 2 && args[1].Kind == models.KindEllipsis {
		return arrayOf(m.Map(&args[0]))
	}
	parts := make([]string, 0, len(args))
	for i := range args {
		parts = append(parts, m.Map(&args[i]))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (m *TypeMapper) mapLiteral(args []models.TypeExpr) string {
	if len(args) == 0 {
		return "any"
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		switch a.Kind {
		case models.KindString:
			parts = append(parts, `"`+a.Value+`"`)
		case models.KindNumber:
			parts = append(parts, a.Value)
		case models.KindNone:
			parts = append(parts, "null")
		case models.KindName:
			// True/False and enum member references.
			switch a.Name {
			case "True":
				parts = append(parts, "true")
			case "False":
				parts = append(parts, "false")
			default:
				parts = append(parts, "any")
			}
		default:
			parts = append(parts, "any")
		}
	}
	return strings.Join(parts, " | ")
}

// nullable appends "| null" when null emission is enabled.
func (m *TypeMapper) nullable(ts string) string {
	if !m.EmitNull {
		return ts
	}
	return ts + " | null"
}

// arrayOf renders an element type as an array, parenthesizing unions so
// "string | null" becomes "(string | null)[]".
func arrayOf(elem string) string {
	if strings.Contains(elem, " | ") {
		return "(" + elem + ")[]"
	}
	return elem + "[]"
}
