package markdown

import (
	"testing"

	"github.com/goliatone/go-digest/pkg/interfaces"
)

func TestFeedFromDocuments(t *testing.T) {
	docs := []*interfaces.Document{
		{
			FrontMatter: interfaces.FrontMatter{Title: "First", URL: "https://mp.weixin.qq.com/s/abc"},
			Body:        []byte("Body **markdown** one."),
		},
		{
			FrontMatter: interfaces.FrontMatter{Title: "Second", Summary: "Explicit summary."},
			Body:        []byte("Ignored body."),
		},
		{
			FrontMatter: interfaces.FrontMatter{Title: "Draft", Draft: true},
			Body:        []byte("Hidden."),
		},
		{
			FrontMatter: interfaces.FrontMatter{},
			Body:        []byte("No title."),
		},
		nil,
	}

	articles := FeedFromDocuments(docs)
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "First" || articles[0].Summary != "Body **markdown** one." {
		t.Fatalf("unexpected first article: %+v", articles[0])
	}
	if !articles[0].IsWeChatURL() {
		t.Fatalf("expected first article to carry a wechat url")
	}
	if articles[1].Summary != "Explicit summary." {
		t.Fatalf("frontmatter summary should win over body, got %q", articles[1].Summary)
	}
}
