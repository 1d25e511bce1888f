package render

import (
	"regexp"
	"strings"
)

// styleRule injects an inline style into opening tags of one element kind.
type styleRule struct {
	tag   string
	style string
	re    *regexp.Regexp
}

func newStyleRule(tag, style string) styleRule {
	return styleRule{
		tag:   tag,
		style: style,
		re:    regexp.MustCompile(`<` + tag + `(\s[^>]*)?>`),
	}
}

// inlineStyleRules covers the elements goldmark emits inside article
// summaries. h2 is left alone and card headings carry their own styles, so
// the has-style guard in ApplyInlineStyles skips them.
var inlineStyleRules = []styleRule{
	newStyleRule("p", "margin: 0 0 12px 0; line-height: 1.75; color: #4A5568;"),
	newStyleRule("ul", "margin: 12px 0; padding-left: 24px; line-height: 1.75; color: #4A5568;"),
	newStyleRule("ol", "margin: 12px 0; padding-left: 24px; line-height: 1.75; color: #4A5568;"),
	newStyleRule("li", "margin: 6px 0; color: #4A5568;"),
	newStyleRule("strong", "font-weight: 600; color: #2C5F8D;"),
	newStyleRule("blockquote", "margin: 16px 0; padding: 16px 20px; background: linear-gradient(135deg, #E8F4FD 0%, #E0F7F4 100%); border-left: 4px solid #4A90E2; border-radius: 8px; color: #4A5568; font-style: normal;"),
	newStyleRule("h1", "font-size: 26px; font-weight: 600; margin: 24px 0 16px 0; color: #2C5F8D; line-height: 1.4;"),
	newStyleRule("h3", "font-size: 20px; font-weight: 600; margin: 20px 0 12px 0; color: #2C5F8D; line-height: 1.4;"),
	newStyleRule("h4", "font-size: 18px; font-weight: 600; margin: 16px 0 10px 0; color: #2C5F8D; line-height: 1.4;"),
}

// ApplyInlineStyles rewrites opening tags that carry no style attribute so
// the markup survives the WeChat editor, which drops stylesheet blocks and
// most classes. Tags that already declare a style keep it untouched.
func ApplyInlineStyles(html string) string {
	for _, rule := range inlineStyleRules {
		html = rule.re.ReplaceAllStringFunc(html, func(tag string) string {
			if strings.Contains(tag, "style=") {
				return tag
			}
			open := "<" + rule.tag
			return open + ` style="` + rule.style + `"` + tag[len(open):]
		})
	}
	return html
}
