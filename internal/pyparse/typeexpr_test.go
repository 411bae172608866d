package pyparse

import (
	"reflect"
	"testing"

	"github.com/MarkZakelj/pytoty/pkg/models"
)

func name(n string) models.TypeExpr {
	return models.TypeExpr{Kind: models.KindName, Name: n}
}

func generic(n string, args ...models.TypeExpr) models.TypeExpr {
	return models.TypeExpr{Kind: models.KindGeneric, Name: n, Args: args}
}

func union(args ...models.TypeExpr) models.TypeExpr {
	return models.TypeExpr{Kind: models.KindUnion, Args: args}
}

func TestParseTypeExpr(t *testing.T) {
	none := models.TypeExpr{Kind: models.KindNone}

	cases := []struct {
		in   string
		want models.TypeExpr
	}{
		{"str", name("str")},
		{"None", none},
		{"typing.Optional[int]", generic("Optional", name("int"))},
		{"List[str]", generic("List", name("str"))},
		{"Dict[str, int]", generic("Dict", name("str"), name("int"))},
		{"int | None", union(name("int"), none)},
		{"int | str | None", union(name("int"), name("str"), none)},
		{"Optional[List[int]]", generic("Optional", generic("List", name("int")))},
		{"Literal['a', 'b']", generic("Literal",
			models.TypeExpr{Kind: models.KindString, Value: "a"},
			models.TypeExpr{Kind: models.KindString, Value: "b"})},
		{"Literal[1, 2]", generic("Literal",
			models.TypeExpr{Kind: models.KindNumber, Value: "1"},
			models.TypeExpr{Kind: models.KindNumber, Value: "2"})},
		{"Tuple[int, ...]", generic("Tuple", name("int"),
			models.TypeExpr{Kind: models.KindEllipsis})},
		{"'User'", models.TypeExpr{Kind: models.KindString, Value: "User"}},
		{"Callable[[int, str], bool]", generic("Callable",
			generic("", name("int"), name("str")), name("bool"))},
		{"Annotated[int, 'meta']", generic("Annotated", name("int"),
			models.TypeExpr{Kind: models.KindString, Value: "meta"})},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTypeExpr(tc.in)
			if err != nil {
				t.Fatalf("ParseTypeExpr(%q): %v", tc.in, err)
			}
			if !reflect.DeepEqual(*got, tc.want) {
				t.Errorf("ParseTypeExpr(%q) = %#v, want %#v", tc.in, *got, tc.want)
			}
		})
	}
}

func TestParseTypeExpr_ParensRejected(t *testing.T) {
	// Parenthesized groups are not part of the annotation grammar.
	if _, err := ParseTypeExpr("int | (str)"); err == nil {
		t.Error("expected error for parenthesized annotation")
	}
}

func TestParseTypeExpr_DottedNameKeepsLeaf(t *testing.T) {
	got, err := ParseTypeExpr("datetime.datetime")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != models.KindName || got.Name != "datetime" {
		t.Errorf("got %#v", got)
	}
}

func TestParseTypeExpr_Errors(t *testing.T) {
	for _, in := range []string{"", "List[", "'unterminated", "List[int] extra", "int |"} {
		if _, err := ParseTypeExpr(in); err == nil {
			t.Errorf("ParseTypeExpr(%q): expected error", in)
		}
	}
}
