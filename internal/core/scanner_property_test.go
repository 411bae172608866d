package core

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

var genSegment = rapid.StringMatching(`[a-z][a-z0-9_]{0,7}`)

func genRelPath(t *rapid.T) []string {
	n := rapid.IntRange(1, 5).Draw(t, "depth")
	segs := make([]string, n)
	for i := range segs {
		segs[i] = genSegment.Draw(t, "segment")
	}
	return segs
}

func TestMatchPattern_DefaultPatternMatchesPyFiles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		segs := genRelPath(t)
		ext := rapid.SampledFrom([]string{".py", ".ts", ".txt", ""}).Draw(t, "ext")
		segs[len(segs)-1] += ext
		path := strings.Join(segs, "/")

		want := ext == ".py"
		if got := MatchPattern("**/*.py", path); got != want {
			t.Fatalf("MatchPattern(**/*.py, %q) = %v, want %v", path, got, want)
		}
	})
}

func TestMatchPattern_LiteralPathMatchesItself(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		path := strings.Join(genRelPath(t), "/")
		if !MatchPattern(path, path) {
			t.Fatalf("path %q should match itself", path)
		}
	})
}

func TestMatchPattern_DoubleStarPrefixAlwaysMatchesSuffix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := genRelPath(t)
		leaf := genSegment.Draw(t, "leaf") + ".py"
		path := strings.Join(append(prefix, leaf), "/")
		if !MatchPattern("**/"+leaf, path) {
			t.Fatalf("MatchPattern(**/%s, %q) should match", leaf, path)
		}
	})
}
