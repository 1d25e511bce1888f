package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-digest/feed"
	"github.com/goliatone/go-digest/internal/markdown"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()

	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{HardWraps: true})
	r, err := New(parser, Config{}, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r
}

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	at := time.Date(2025, time.March, 9, 8, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestRenderBannerAndFooter(t *testing.T) {
	r := newTestRenderer(t, WithClock(fixedClock(t)))

	out, err := r.Render(context.Background(), feed.Feed{
		{Title: "OpenAI 发布新模型", Summary: "**重点**更新说明", URL: "https://example.com/post"},
	}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "03月09日 · 新闻资讯") {
		t.Fatalf("banner headline missing, got:\n%s", html)
	}
	if !strings.Contains(html, "Daily AI News") {
		t.Fatal("banner subtitle missing")
	}
	if !strings.Contains(html, ">END<") {
		t.Fatal("footer divider missing")
	}
	if !strings.Contains(html, "font-family: -apple-system") {
		t.Fatal("wrapper font stack missing")
	}
}

func TestRenderHeaderOverrides(t *testing.T) {
	r := newTestRenderer(t, WithClock(fixedClock(t)))

	out, err := r.Render(context.Background(), feed.Feed{
		{Title: "Weekly recap", Summary: "plain"},
	}, interfaces.RenderOptions{
		HeaderTitle:    "Weekly Digest",
		HeaderSubtitle: "Hand picked",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "Weekly Digest") {
		t.Fatal("custom headline missing")
	}
	if strings.Contains(html, "新闻资讯") {
		t.Fatal("default banner label should be replaced")
	}
	if !strings.Contains(html, "Hand picked") {
		t.Fatal("custom subtitle missing")
	}
}

func TestRenderPaletteRotation(t *testing.T) {
	r := newTestRenderer(t)

	articles := make(feed.Feed, 5)
	for i := range articles {
		articles[i] = feed.Article{Title: "item", Summary: "text"}
	}

	out, err := r.Render(context.Background(), articles, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	palettes := DefaultPalettes()
	for _, p := range palettes {
		if !strings.Contains(html, "background-color: "+p.Background) {
			t.Errorf("palette background %s not used", p.Background)
		}
		if !strings.Contains(html, "background-color: "+p.Dot) {
			t.Errorf("palette dot %s not used", p.Dot)
		}
	}

	// the fifth card wraps back to the first palette
	if got := strings.Count(html, "background-color: "+palettes[0].Background); got != 2 {
		t.Fatalf("expected first palette twice, got %d", got)
	}
}

func TestRenderWeChatLink(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(context.Background(), feed.Feed{
		{Title: "one", Summary: "a", URL: "https://MP.WEIXIN.QQ.COM/s/abc123"},
		{Title: "two", Summary: "b", URL: "https://example.com/article"},
		{Title: "three", Summary: "c"},
	}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, `<a href="https://MP.WEIXIN.QQ.COM/s/abc123"`) {
		t.Fatal("wechat url should render as anchor")
	}
	if !strings.Contains(html, "查看原文") {
		t.Fatal("wechat anchor label missing")
	}
	if strings.Contains(html, `<a href="https://example.com/article"`) {
		t.Fatal("external url must not render as anchor")
	}
	if !strings.Contains(html, "[原文链接]: https://example.com/article") {
		t.Fatal("external url should render as plain text")
	}
}

func TestRenderEscapesTitleAndURL(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(context.Background(), feed.Feed{
		{Title: `<script>alert("x")</script>`, Summary: "safe", URL: `https://example.com/?a=1&b="2"`},
	}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatal("title must be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("escaped title missing")
	}
	if !strings.Contains(html, "a=1&amp;b=") {
		t.Fatal("url must be escaped")
	}
}

func TestRenderCardAnchors(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(context.Background(), feed.Feed{
		{Title: "Hello World Update", Summary: "a"},
		{Title: "纯中文标题", Summary: "b"},
	}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, `id="hello-world-update"`) {
		t.Fatal("slug anchor missing for latin title")
	}
	if !strings.Contains(html, `id="`) {
		t.Fatal("cards must carry anchors")
	}
}

func TestRenderDuplicateTitleAnchorsStayUnique(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(context.Background(), feed.Feed{
		{Title: "Weekly Recap", Summary: "a"},
		{Title: "Weekly Recap", Summary: "b"},
		{Title: "Weekly Recap", Summary: "c"},
	}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if strings.Count(html, `id="weekly-recap"`) != 1 {
		t.Fatalf("expected a single weekly-recap anchor, got:\n%s", html)
	}
	if !strings.Contains(html, `id="weekly-recap-2"`) {
		t.Fatal("second duplicate anchor missing suffix")
	}
	if !strings.Contains(html, `id="weekly-recap-3"`) {
		t.Fatal("third duplicate anchor missing suffix")
	}
}

func TestRenderEmptyFeed(t *testing.T) {
	r := newTestRenderer(t)

	if _, err := r.Render(context.Background(), nil, interfaces.RenderOptions{}); err == nil {
		t.Fatal("expected error for empty feed")
	}
}

func TestRenderMissingParser(t *testing.T) {
	if _, err := New(nil, Config{}); err == nil {
		t.Fatal("expected error for nil parser")
	}
}

func TestRenderSummaryMarkdown(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Render(context.Background(), feed.Feed{
		{Title: "markdown", Summary: "first line\nsecond line\n\n- a\n- b"},
	}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<br") {
		t.Fatal("hard wraps should produce <br>")
	}
	if !strings.Contains(html, "<ul style=") {
		t.Fatal("lists should carry inline styles")
	}
}
