package tsgen

import (
	"strings"
	"testing"

	"github.com/MarkZakelj/pytoty/internal/pyparse"
	"github.com/MarkZakelj/pytoty/pkg/models"
)

func generateFrom(t *testing.T, src, path string, opts Options) *FileOutput {
	t.Helper()
	mod, err := pyparse.New().ParseSource(src, path)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	return GenerateModule(mod, opts)
}

func TestGenerateModule_Full(t *testing.T) {
	src := `from enum import Enum
from typing import Optional, List
from pydantic import BaseModel


class Color(str, Enum):
    RED = "red"
    GREEN = "green"


class User(BaseModel):
    id: int
    name: str
    email: Optional[str] = None
    tags: List[str] = []
    color: Color = Color.RED
`
	out := generateFrom(t, src, "pkg/user.py", Options{EmitNull: true, Suffix: ".type.ts"})

	if out.Interfaces != 1 || out.Enums != 1 {
		t.Errorf("counts: %d interfaces, %d enums", out.Interfaces, out.Enums)
	}

	want := `export enum Color {
  RED = "red",
  GREEN = "green",
}

export interface User {
  id: number;
  name: string;
  email?: string | null;
  tags?: string[];
  color?: Color;
}
`
	if out.Content != want {
		t.Errorf("generated content:\n%s\nwant:\n%s", out.Content, want)
	}
}

func TestGenerateModule_SiblingImports(t *testing.T) {
	src := `from .base import Timestamped
from .shared import Address
from pydantic import BaseModel


class Event(Timestamped):
    name: str
    location: Address
`
	out := generateFrom(t, src, "pkg/event.py", Options{EmitNull: true, Suffix: ".type.ts"})

	wantImports := "import { Timestamped } from './base.type';\nimport { Address } from './shared.type';"
	if !strings.HasPrefix(out.Content, wantImports) {
		t.Errorf("imports block:\n%s\nwant prefix:\n%s", out.Content, wantImports)
	}
	if !strings.Contains(out.Content, "export interface Event extends Timestamped {") {
		t.Errorf("missing extends clause:\n%s", out.Content)
	}
	if !strings.Contains(out.Content, "location: Address;") {
		t.Errorf("missing sibling-typed field:\n%s", out.Content)
	}
}

func TestGenerateModule_ImportSpecifierTracksSuffix(t *testing.T) {
	// The specifier keeps the output suffix minus ".ts" so generated files
	// reference the sibling files this tool writes, not bare module names.
	src := `from .base import Timestamped


class Event(Timestamped):
    name: str
`
	out := generateFrom(t, src, "pkg/event.py", Options{EmitNull: true, Suffix: ".d.ts"})
	if !strings.HasPrefix(out.Content, "import { Timestamped } from './base.d';") {
		t.Errorf("specifier should track the suffix stem:\n%s", out.Content)
	}
}

func TestGenerateModule_LocalExtendsNoImport(t *testing.T) {
	src := `from pydantic import BaseModel


class Base(BaseModel):
    id: int


class Derived(Base):
    extra: str
`
	out := generateFrom(t, src, "pkg/m.py", Options{EmitNull: true, Suffix: ".type.ts"})

	if strings.Contains(out.Content, "import {") {
		t.Errorf("local bases must not produce imports:\n%s", out.Content)
	}
	if !strings.Contains(out.Content, "export interface Derived extends Base {") {
		t.Errorf("missing extends for local base:\n%s", out.Content)
	}
}

func TestGenerateModule_EmptyWhenNoModels(t *testing.T) {
	src := "import os\n\ndef helper():\n    pass\n"
	out := generateFrom(t, src, "pkg/util.py", Options{EmitNull: true, Suffix: ".type.ts"})
	if out.Content != "" || out.Interfaces != 0 || out.Enums != 0 {
		t.Errorf("expected empty output, got %#v", out)
	}
}

func TestGenerateModule_EmptyModel(t *testing.T) {
	src := "from pydantic import BaseModel\n\nclass Marker(BaseModel):\n    pass\n"
	out := generateFrom(t, src, "pkg/m.py", Options{EmitNull: true, Suffix: ".type.ts"})
	if want := "export interface Marker {}\n"; out.Content != want {
		t.Errorf("empty model: got %q, want %q", out.Content, want)
	}
}

func TestGenerateEnum_Styles(t *testing.T) {
	cls := &models.Class{
		Name: "Status",
		Members: []models.EnumMember{
			{Name: "ACTIVE", Value: "active", IsString: true},
			{Name: "RETIRED", Value: "2"},
		},
	}

	wantEnum := "export enum Status {\n  ACTIVE = \"active\",\n  RETIRED = 2,\n}"
	if got := GenerateEnum(cls, models.EnumStyleEnum); got != wantEnum {
		t.Errorf("enum style:\n%s\nwant:\n%s", got, wantEnum)
	}

	wantUnion := `export type Status = "active" | 2;`
	if got := GenerateEnum(cls, models.EnumStyleUnion); got != wantUnion {
		t.Errorf("union style: got %q, want %q", got, wantUnion)
	}
}

func TestGenerateEnum_Empty(t *testing.T) {
	cls := &models.Class{Name: "Void"}
	if got := GenerateEnum(cls, models.EnumStyleUnion); got != "export type Void = never;" {
		t.Errorf("empty union enum: %q", got)
	}
	if got := GenerateEnum(cls, models.EnumStyleEnum); got != "export enum Void {\n}" {
		t.Errorf("empty enum: %q", got)
	}
}

func TestGenerateModule_UnionEnumStyle(t *testing.T) {
	src := `from enum import Enum

class Color(str, Enum):
    RED = "red"
`
	out := generateFrom(t, src, "pkg/c.py", Options{
		EnumStyle: models.EnumStyleUnion,
		EmitNull:  true,
		Suffix:    ".type.ts",
	})
	if want := "export type Color = \"red\";\n"; out.Content != want {
		t.Errorf("got %q, want %q", out.Content, want)
	}
}

func TestImportSuffix(t *testing.T) {
	cases := map[string]string{
		".type.ts": ".type",
		".d.ts":    ".d",
		".ts":      "",
	}
	for in, want := range cases {
		if got := importSuffix(in); got != want {
			t.Errorf("importSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}
