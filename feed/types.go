package feed

import "strings"

const wechatArticleHost = "mp.weixin.qq.com"

// Article is a single digest entry: a headline, a Markdown summary, and the
// URL of the source article.
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Feed is an ordered collection of articles rendered into one digest.
type Feed []Article

// IsWeChatURL reports whether the article links back to a WeChat official
// account post. WeChat links render as in-app buttons; everything else is
// shown as a plain text reference because external links are not clickable
// inside published articles.
func (a Article) IsWeChatURL() bool {
	return IsWeChatURL(a.URL)
}

// IsWeChatURL reports whether url points at a WeChat official account post.
func IsWeChatURL(url string) bool {
	if url == "" {
		return false
	}
	return strings.Contains(strings.ToLower(url), wechatArticleHost)
}

// Validate checks the invariants the renderer relies on. Summaries and URLs
// may be empty; titles may not.
func (f Feed) Validate() error {
	if len(f) == 0 {
		return ErrFeedEmpty
	}
	for i, article := range f {
		if strings.TrimSpace(article.Title) == "" {
			return &ArticleInvalidError{Index: i, Reason: "title is required"}
		}
	}
	return nil
}
