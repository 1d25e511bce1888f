package render

import (
	"strings"
	"testing"
)

func TestApplyInlineStylesAddsMissing(t *testing.T) {
	in := `<p>hello</p><ul><li>a</li></ul><strong>b</strong><blockquote><p>q</p></blockquote>`
	out := ApplyInlineStyles(in)

	for _, want := range []string{
		`<p style="margin: 0 0 12px 0;`,
		`<ul style="margin: 12px 0;`,
		`<li style="margin: 6px 0;`,
		`<strong style="font-weight: 600;`,
		`<blockquote style="margin: 16px 0;`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestApplyInlineStylesKeepsExisting(t *testing.T) {
	in := `<p style="color: red;">styled</p>`
	out := ApplyInlineStyles(in)

	if out != in {
		t.Fatalf("styled tag must stay untouched, got %q", out)
	}
}

func TestApplyInlineStylesHeadings(t *testing.T) {
	in := `<h1>a</h1><h2>b</h2><h3>c</h3><h4>d</h4>`
	out := ApplyInlineStyles(in)

	if !strings.Contains(out, `<h1 style="font-size: 26px;`) {
		t.Fatal("h1 style missing")
	}
	if !strings.Contains(out, `<h3 style="font-size: 20px;`) {
		t.Fatal("h3 style missing")
	}
	if !strings.Contains(out, `<h4 style="font-size: 18px;`) {
		t.Fatal("h4 style missing")
	}
	if !strings.Contains(out, `<h2>b</h2>`) {
		t.Fatal("h2 must stay untouched")
	}
}

func TestApplyInlineStylesTagBoundaries(t *testing.T) {
	in := `<pre>code</pre><link rel="stylesheet"><ulx></ulx>`
	out := ApplyInlineStyles(in)

	if out != in {
		t.Fatalf("lookalike tags must stay untouched, got %q", out)
	}
}

func TestApplyInlineStylesWithAttributes(t *testing.T) {
	in := `<h1 id="intro">a</h1>`
	out := ApplyInlineStyles(in)

	want := `<h1 style="font-size: 26px; font-weight: 600; margin: 24px 0 16px 0; color: #2C5F8D; line-height: 1.4;" id="intro">a</h1>`
	if out != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}
