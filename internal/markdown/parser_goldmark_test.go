package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-digest/pkg/interfaces"
)

func TestGoldmarkParserExtraBundle(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: []string{"extra"},
		HardWraps:  true,
	})

	t.Run("footnotes", func(t *testing.T) {
		html, err := parser.Parse([]byte("Here is a note.[^1]\n\n[^1]: the footnote body\n"))
		if err != nil {
			t.Fatalf("Parse error = %v", err)
		}
		if !strings.Contains(string(html), "<sup") {
			t.Fatalf("expected footnote reference markup, got:\n%s", html)
		}
		if !strings.Contains(string(html), "the footnote body") {
			t.Fatalf("footnote body missing, got:\n%s", html)
		}
	})

	t.Run("definition lists", func(t *testing.T) {
		html, err := parser.Parse([]byte("Term\n: definition body\n"))
		if err != nil {
			t.Fatalf("Parse error = %v", err)
		}
		if !strings.Contains(string(html), "<dl>") || !strings.Contains(string(html), "<dd>") {
			t.Fatalf("expected definition list markup, got:\n%s", html)
		}
	})

	t.Run("tables", func(t *testing.T) {
		html, err := parser.Parse([]byte("| a | b |\n| - | - |\n| 1 | 2 |\n"))
		if err != nil {
			t.Fatalf("Parse error = %v", err)
		}
		if !strings.Contains(string(html), "<table>") {
			t.Fatalf("expected table markup, got:\n%s", html)
		}
	})
}

func TestGoldmarkParserDefaultsMatchExtra(t *testing.T) {
	// An empty extension list falls back to the same bundle "extra" selects.
	fallback := NewGoldmarkParser(interfaces.ParseOptions{})
	extra := NewGoldmarkParser(interfaces.ParseOptions{Extensions: []string{"extra"}})

	src := []byte("Note.[^1]\n\n[^1]: body\n\nTerm\n: def\n")

	got, err := fallback.Parse(src)
	if err != nil {
		t.Fatalf("fallback Parse error = %v", err)
	}
	want, err := extra.Parse(src)
	if err != nil {
		t.Fatalf("extra Parse error = %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("fallback output diverges from extra bundle:\n%s\nvs\n%s", got, want)
	}
}

func TestGoldmarkParserHardWraps(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: []string{"extra"},
		HardWraps:  true,
	})

	html, err := parser.Parse([]byte("line one\nline two\n"))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if !strings.Contains(string(html), "<br") {
		t.Fatalf("expected hard line break, got:\n%s", html)
	}
}
