package markdown

import (
	"strings"

	"github.com/goliatone/go-digest/feed"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// FeedFromDocuments builds a digest feed from Markdown-authored articles.
// Frontmatter supplies the title and source URL; the document body becomes
// the Markdown summary unless the frontmatter carries an explicit summary.
// Drafts and documents without a title are skipped.
func FeedFromDocuments(docs []*interfaces.Document) feed.Feed {
	articles := make(feed.Feed, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || doc.FrontMatter.Draft {
			continue
		}
		title := strings.TrimSpace(doc.FrontMatter.Title)
		if title == "" {
			continue
		}
		summary := strings.TrimSpace(doc.FrontMatter.Summary)
		if summary == "" {
			summary = strings.TrimSpace(string(doc.Body))
		}
		articles = append(articles, feed.Article{
			Title:   title,
			Summary: summary,
			URL:     strings.TrimSpace(doc.FrontMatter.URL),
		})
	}
	return articles
}
