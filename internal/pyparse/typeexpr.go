package pyparse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MarkZakelj/pytoty/pkg/models"
)

// ParseTypeExpr parses a Python type annotation into a TypeExpr tree.
// The grammar covers what appears in Pydantic model annotations: dotted
// names, subscripts, PEP 604 unions, string forward references, and the
// literal values allowed inside Literal[...].
func ParseTypeExpr(s string) (*models.TypeExpr, error) {
	lx := &typeLexer{src: s}
	expr, err := lx.parseUnion()
	if err != nil {
		return nil, err
	}
	lx.skipSpace()
	if lx.pos < len(lx.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d in annotation %q", lx.src[lx.pos], lx.pos, s)
	}
	return expr, nil
}

type typeLexer struct {
	src string
	pos int
}

func (lx *typeLexer) skipSpace() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c != ' ' && c != '\t' && c != '\n' {
			return
		}
		lx.pos++
	}
}

func (lx *typeLexer) peek() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

// parseUnion parses atom ('|' atom)*.
func (lx *typeLexer) parseUnion() (*models.TypeExpr, error) {
	first, err := lx.parseAtom()
	if err != nil {
		return nil, err
	}
	lx.skipSpace()
	if lx.peek() != '|' {
		return first, nil
	}

	members := []models.TypeExpr{*first}
	for {
		lx.skipSpace()
		if lx.peek() != '|' {
			break
		}
		lx.pos++
		next, err := lx.parseAtom()
		if err != nil {
			return nil, err
		}
		if next.Kind == models.KindUnion {
			members = append(members, next.Args...)
		} else {
			members = append(members, *next)
		}
	}
	return &models.TypeExpr{Kind: models.KindUnion, Args: members}, nil
}

func (lx *typeLexer) parseAtom() (*models.TypeExpr, error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return nil, fmt.Errorf("annotation %q ends unexpectedly", lx.src)
	}

	c := lx.src[lx.pos]
	switch {
	case c == '\'' || c == '"':
		return lx.parseString(c)
	case c == '[':
		// Bare bracketed list, e.g. the argument list of Callable[[int], str].
		args, err := lx.parseBracketed()
		if err != nil {
			return nil, err
		}
		return &models.TypeExpr{Kind: models.KindGeneric, Name: "", Args: args}, nil
	case strings.HasPrefix(lx.src[lx.pos:], "..."):
		lx.pos += 3
		return &models.TypeExpr{Kind: models.KindEllipsis}, nil
	case c == '-' || c == '+' || unicode.IsDigit(rune(c)):
		return lx.parseNumber()
	case isIdentStart(rune(c)):
		return lx.parseName()
	}
	return nil, fmt.Errorf("unexpected %q at offset %d in annotation %q", c, lx.pos, lx.src)
}

func (lx *typeLexer) parseString(quote byte) (*models.TypeExpr, error) {
	lx.pos++ // opening quote
	var b strings.Builder
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '\\' && lx.pos+1 < len(lx.src) {
			b.WriteByte(lx.src[lx.pos+1])
			lx.pos += 2
			continue
		}
		if c == quote {
			lx.pos++
			return &models.TypeExpr{Kind: models.KindString, Value: b.String()}, nil
		}
		b.WriteByte(c)
		lx.pos++
	}
	return nil, fmt.Errorf("unterminated string in annotation %q", lx.src)
}

func (lx *typeLexer) parseNumber() (*models.TypeExpr, error) {
	start := lx.pos
	if c := lx.src[lx.pos]; c == '-' || c == '+' {
		lx.pos++
	}
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if unicode.IsDigit(rune(c)) || c == '.' || c == '_' || c == 'e' || c == 'E' || c == 'x' ||
			(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			lx.pos++
			continue
		}
		break
	}
	if lx.pos == start {
		return nil, fmt.Errorf("malformed number at offset %d in annotation %q", start, lx.src)
	}
	return &models.TypeExpr{Kind: models.KindNumber, Value: lx.src[start:lx.pos]}, nil
}

func (lx *typeLexer) parseName() (*models.TypeExpr, error) {
	name := lx.ident()
	// Keep only the last dotted segment: typing.Optional -> Optional.
	for lx.peek() == '.' {
		lx.pos++
		name = lx.ident()
		if name == "" {
			return nil, fmt.Errorf("trailing dot in annotation %q", lx.src)
		}
	}

	lx.skipSpace()
	if lx.peek() == '[' {
		args, err := lx.parseBracketed()
		if err != nil {
			return nil, err
		}
		return &models.TypeExpr{Kind: models.KindGeneric, Name: name, Args: args}, nil
	}
	if name == "None" {
		return &models.TypeExpr{Kind: models.KindNone}, nil
	}
	return &models.TypeExpr{Kind: models.KindName, Name: name}, nil
}

// parseBracketed parses '[' expr (',' expr)* ']' and returns the arguments.
func (lx *typeLexer) parseBracketed() ([]models.TypeExpr, error) {
	lx.pos++ // '['
	var args []models.TypeExpr
	for {
		lx.skipSpace()
		if lx.peek() == ']' {
			lx.pos++
			return args, nil
		}
		arg, err := lx.parseUnion()
		if err != nil {
			return nil, err
		}
		args = append(args, *arg)
		lx.skipSpace()
		switch lx.peek() {
		case ',':
			lx.pos++
		case ']':
			lx.pos++
			return args, nil
		default:
			return nil, fmt.Errorf("expected ',' or ']' at offset %d in annotation %q", lx.pos, lx.src)
		}
	}
}

func (lx *typeLexer) ident() string {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(rune(lx.src[lx.pos])) {
		lx.pos++
	}
	return lx.src[start:lx.pos]
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
