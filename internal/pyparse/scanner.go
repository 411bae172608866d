// Package pyparse extracts Pydantic model and Enum definitions from Python
// source files without executing them. It is a narrow static front end: it
// understands imports, top-level classes, annotated fields, and enum member
// assignments, and parses type annotations into a small expression tree.
package pyparse

import "strings"

// logicalLine is one Python logical line: physical lines joined across
// bracket nesting, backslash continuations, and triple-quoted strings,
// with comments stripped.
type logicalLine struct {
	Text   string
	Indent int // indentation width of the first physical line, tabs expand to 8
	Line   int // 1-based number of the first physical line
}

// scanLogicalLines splits source text into logical lines. Blank lines are
// dropped. String literals are preserved verbatim, including their quotes.
func scanLogicalLines(src string) []logicalLine {
	var (
		out       []logicalLine
		pending   strings.Builder
		indent    int
		startLine int
		joining   bool
		depth     int
		triple    string // open triple-quote delimiter, "" when closed
	)

	flush := func() {
		text := strings.TrimSpace(pending.String())
		pending.Reset()
		joining = false
		if text != "" {
			out = append(out, logicalLine{Text: text, Indent: indent, Line: startLine})
		}
	}

	lines := strings.Split(src, "\n")
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")

		if !joining {
			if strings.TrimSpace(line) == "" {
				continue
			}
			indent = indentWidth(line)
			startLine = i + 1
			joining = true
		} else {
			pending.WriteByte('\n')
		}

		stripped, cont := consumeLine(line, &depth, &triple)
		pending.WriteString(stripped)

		if depth > 0 || triple != "" || cont {
			continue // logical line not finished
		}
		flush()
	}
	flush()
	return out
}

// indentWidth returns the indentation of a physical line with tabs expanded
// to the next multiple of 8, matching CPython's tokenizer.
func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w = (w/8 + 1) * 8
		default:
			return w
		}
	}
	return w
}

// consumeLine scans one physical line, updating bracket depth and
// triple-quote state, and returns the line with any trailing comment removed.
// cont is true when the line ends with a backslash continuation.
func consumeLine(line string, depth *int, triple *string) (stripped string, cont bool) {
	var b strings.Builder
	i := 0
	n := len(line)

	for i < n {
		if *triple != "" {
			// Inside a triple-quoted string: copy until the closing delimiter.
			if strings.HasPrefix(line[i:], *triple) {
				b.WriteString(*triple)
				i += len(*triple)
				*triple = ""
				continue
			}
			b.WriteByte(line[i])
			i++
			continue
		}

		c := line[i]
		switch c {
		case '#':
			return strings.TrimRight(b.String(), " \t"), false
		case '(', '[', '{':
			*depth++
			b.WriteByte(c)
			i++
		case ')', ']', '}':
			if *depth > 0 {
				*depth--
			}
			b.WriteByte(c)
			i++
		case '\'', '"':
			q := string(c)
			if strings.HasPrefix(line[i:], q+q+q) {
				*triple = q + q + q
				b.WriteString(q + q + q)
				i += 3
				continue
			}
			// Single-quoted string: copy through the closing quote,
			// honoring backslash escapes.
			b.WriteByte(c)
			i++
			for i < n {
				if line[i] == '\\' && i+1 < n {
					b.WriteByte(line[i])
					b.WriteByte(line[i+1])
					i += 2
					continue
				}
				b.WriteByte(line[i])
				i++
				if line[i-1] == c {
					break
				}
			}
		case '\\':
			if i == n-1 {
				return b.String() + " ", true
			}
			b.WriteByte(c)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), false
}
