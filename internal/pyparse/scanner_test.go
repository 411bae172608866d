package pyparse

import "testing"

func TestScanLogicalLines_Basic(t *testing.T) {
	src := "import os\n\nclass A:\n    x: int\n"
	lines := scanLogicalLines(src)

	if len(lines) != 3 {
		t.Fatalf("expected 3 logical lines, got %d: %#v", len(lines), lines)
	}
	if lines[0].Text != "import os" || lines[0].Indent != 0 || lines[0].Line != 1 {
		t.Errorf("unexpected first line: %#v", lines[0])
	}
	if lines[2].Text != "x: int" || lines[2].Indent != 4 {
		t.Errorf("unexpected field line: %#v", lines[2])
	}
}

func TestScanLogicalLines_CommentsStripped(t *testing.T) {
	lines := scanLogicalLines("x: int  # the count\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "x: int" {
		t.Errorf("expected comment stripped, got %q", lines[0].Text)
	}
}

func TestScanLogicalLines_HashInsideString(t *testing.T) {
	lines := scanLogicalLines(`color = "#ff0000"` + "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != `color = "#ff0000"` {
		t.Errorf("hash inside string must not start a comment, got %q", lines[0].Text)
	}
}

func TestScanLogicalLines_BracketContinuation(t *testing.T) {
	src := "tags: List[\n    str,\n]\nname: str\n"
	lines := scanLogicalLines(src)
	if len(lines) != 2 {
		t.Fatalf("expected 2 logical lines, got %d: %#v", len(lines), lines)
	}
	if lines[0].Line != 1 {
		t.Errorf("joined line should keep the first physical line number, got %d", lines[0].Line)
	}
	if lines[1].Text != "name: str" {
		t.Errorf("unexpected second line: %q", lines[1].Text)
	}
}

func TestScanLogicalLines_BackslashContinuation(t *testing.T) {
	lines := scanLogicalLines("x = 1 + \\\n    2\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 logical line, got %d: %#v", len(lines), lines)
	}
}

func TestScanLogicalLines_TripleQuotedDocstring(t *testing.T) {
	src := "class A:\n    \"\"\"Multi\n    line\n    docstring.\"\"\"\n    x: int\n"
	lines := scanLogicalLines(src)
	if len(lines) != 3 {
		t.Fatalf("expected 3 logical lines, got %d: %#v", len(lines), lines)
	}
	if lines[2].Text != "x: int" {
		t.Errorf("field after docstring lost: %#v", lines[2])
	}
}

func TestIndentWidth_TabsExpandTo8(t *testing.T) {
	if got := indentWidth("\tx"); got != 8 {
		t.Errorf("expected tab indent 8, got %d", got)
	}
	if got := indentWidth("    x"); got != 4 {
		t.Errorf("expected space indent 4, got %d", got)
	}
}
