package render

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-digest/feed"
	"github.com/goliatone/go-digest/internal/logging"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// DefaultDateLayout renders the banner date as month and day in the
// 公众号 house style, for example "08月27日".
const DefaultDateLayout = "01月02日"

const (
	defaultBannerLabel = "新闻资讯"
	defaultSubtitle    = "Daily AI News"
)

// Config controls the digest renderer.
type Config struct {
	// Palettes is the card color rotation. Defaults to DefaultPalettes.
	Palettes []Palette
	// BannerLabel follows the date in the banner headline.
	BannerLabel string
	// Subtitle is the small line under the banner headline.
	Subtitle string
	// DateLayout formats the banner date. Defaults to DefaultDateLayout.
	DateLayout string
	// Parser holds default markdown options for article summaries.
	Parser interfaces.ParseOptions
}

// Renderer turns a feed into a WeChat-ready HTML fragment.
type Renderer struct {
	parser   interfaces.MarkdownParser
	palettes []Palette
	banner   string
	subtitle string
	layout   string
	parseOpt interfaces.ParseOptions
	logger   interfaces.Logger
	now      func() time.Time
}

// Option mutates the renderer during construction.
type Option func(*Renderer)

// WithLogger attaches a logger. A nil logger is ignored.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source used for the banner date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New builds a Renderer around the given markdown parser.
func New(parser interfaces.MarkdownParser, cfg Config, opts ...Option) (*Renderer, error) {
	if parser == nil {
		return nil, feed.ErrRendererMissing
	}

	r := &Renderer{
		parser:   parser,
		palettes: cfg.Palettes,
		banner:   cfg.BannerLabel,
		subtitle: cfg.Subtitle,
		layout:   cfg.DateLayout,
		parseOpt: cfg.Parser,
		logger:   logging.NoOp(),
		now:      time.Now,
	}

	if len(r.palettes) == 0 {
		r.palettes = DefaultPalettes()
	}
	if r.banner == "" {
		r.banner = defaultBannerLabel
	}
	if r.subtitle == "" {
		r.subtitle = defaultSubtitle
	}
	if r.layout == "" {
		r.layout = DefaultDateLayout
	}
	if len(r.parseOpt.Extensions) == 0 && !r.parseOpt.HardWraps && !r.parseOpt.Sanitize && !r.parseOpt.SafeMode {
		// Summaries keep single newlines as <br> like the editor preview.
		r.parseOpt = interfaces.ParseOptions{HardWraps: true}
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Render produces the full digest fragment: banner, one card per article,
// END divider, wrapped in the font and background container. The output
// already has inline styles applied and is safe to paste into the WeChat
// editor.
func (r *Renderer) Render(ctx context.Context, articles feed.Feed, opts interfaces.RenderOptions) ([]byte, error) {
	if err := articles.Validate(); err != nil {
		return nil, err
	}

	parseOpts := mergeParseOptions(r.parseOpt, opts.Parser)

	var cards strings.Builder
	anchors := map[string]struct{}{}
	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		anchor := uniqueAnchor(anchors, cardAnchor(article.Title, i))
		card, err := r.renderCard(i, anchor, article, parseOpts)
		if err != nil {
			return nil, fmt.Errorf("render article %d: %w", i, err)
		}
		cards.WriteString(card)
	}

	now := opts.Now
	if now.IsZero() {
		now = r.now()
	}

	headline := opts.HeaderTitle
	if headline == "" {
		headline = now.Format(r.layout) + " · " + r.banner
	}
	subtitle := opts.HeaderSubtitle
	if subtitle == "" {
		subtitle = r.subtitle
	}

	var doc strings.Builder
	doc.WriteString(fmt.Sprintf(wrapperOpen, headerHTML(headline, subtitle)))
	doc.WriteString(cards.String())
	doc.WriteString(footerHTML)
	doc.WriteString(wrapperClose)

	styled := ApplyInlineStyles(doc.String())

	r.logger.Debug("digest rendered", "articles", len(articles), "bytes", len(styled))

	return []byte(styled), nil
}

func (r *Renderer) renderCard(index int, anchor string, article feed.Article, opts interfaces.ParseOptions) (string, error) {
	summaryHTML, err := r.parser.ParseWithOptions([]byte(article.Summary), opts)
	if err != nil {
		return "", fmt.Errorf("parse summary: %w", err)
	}

	palette := r.palettes[index%len(r.palettes)]

	return fmt.Sprintf(cardTemplate,
		anchor,
		palette.Background,
		palette.Dot,
		palette.Title,
		html.EscapeString(article.Title),
		strings.TrimSpace(string(summaryHTML)),
		linkHTML(article.URL),
	), nil
}

// linkHTML renders the article link. WeChat editor keeps anchors that point
// at mp.weixin.qq.com and strips everything else, so external links are
// shown as plain text instead.
func linkHTML(url string) string {
	if url == "" {
		return ""
	}
	escaped := html.EscapeString(url)
	if feed.IsWeChatURL(url) {
		return fmt.Sprintf(wechatLinkTemplate, escaped)
	}
	return fmt.Sprintf(externalLinkTemplate, escaped)
}

func cardAnchor(title string, index int) string {
	if slug, err := feed.NormalizeSlug(title); err == nil && slug != "" && feed.IsValidSlug(slug) {
		return slug
	}
	return fmt.Sprintf("article-%d", index+1)
}

// uniqueAnchor keeps card ids unique when two articles slug to the same
// anchor, suffixing repeats with a counter.
func uniqueAnchor(seen map[string]struct{}, anchor string) string {
	candidate := anchor
	for n := 2; ; n++ {
		if _, ok := seen[candidate]; !ok {
			seen[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", anchor, n)
	}
}

func headerHTML(headline, subtitle string) string {
	return fmt.Sprintf(headerTemplate, html.EscapeString(headline), html.EscapeString(subtitle))
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	merged := base
	if len(override.Extensions) > 0 {
		merged.Extensions = override.Extensions
	}
	if override.Sanitize {
		merged.Sanitize = true
	}
	if override.HardWraps {
		merged.HardWraps = true
	}
	if override.SafeMode {
		merged.SafeMode = true
	}
	return merged
}

const cardTemplate = `
<div id="%s" style="margin: 25px auto; max-width: 600px; background-color: %s; border-radius: 16px; padding: 25px; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.08);">
    <table width="100%%" cellspacing="0" cellpadding="0" border="0" style="border-collapse: collapse; border: none;">
        <tr>
            <td width="30" valign="top" style="width: 30px; vertical-align: top; padding-top: 4px; border: none;">
                <div style="width: 12px; height: 12px; background-color: %s; border-radius: 50%%; box-shadow: 0 2px 6px rgba(0, 0, 0, 0.15);"></div>
            </td>
            <td valign="top" style="vertical-align: top; padding-left: 18px; border: none;">
                <h3 style="color: %s; font-size: 22px; font-weight: 600; margin-top: 0; margin-bottom: 16px; line-height: 1.4;">
                    %s
                </h3>
                <div style="color: #4A5568; font-size: 15px; line-height: 1.75; margin-top: 0; margin-bottom: 0;">
                    %s
                </div>
                %s
            </td>
        </tr>
    </table>
</div>
`

const wechatLinkTemplate = `<div style="margin-top: 18px;"><a href="%s" target="_blank" style="display: inline-block; color: #7B8FA1; text-decoration: none; font-size: 14px; padding: 8px 18px; border-radius: 8px; font-weight: 400; box-shadow: 0 1px 3px rgba(107, 182, 255, 0.2);">查看原文 →</a></div>`

const externalLinkTemplate = `<div style="margin-top: 18px;"><span style="display: inline-block; color: #7B8FA1; font-size: 14px; background-color: #F0F4F8; padding: 8px 16px; border-radius: 8px;">[原文链接]: %s</span></div>`

const headerTemplate = `
<div style="text-align: center; margin-bottom: 40px; padding: 30px 20px;">
    <div style="display: inline-block; background: linear-gradient(135deg, #E8F4FD 0%%, #E0F7F4 50%%, #FFF4ED 100%%); padding: 20px 40px; border-radius: 24px; box-shadow: 0 4px 16px rgba(74, 144, 226, 0.1);">
        <h1 style="color: #2C5F8D; font-size: 28px; font-weight: 600; margin: 0; letter-spacing: 1px;">%s</h1>
        <div style="color: #7B8FA1; font-size: 14px; margin-top: 8px; font-weight: 400;">%s</div>
    </div>
</div>
`

const footerHTML = `
<div style="margin-top: 50px; text-align: center; padding: 20px;">
    <table width="100%" cellspacing="0" cellpadding="0" border="0" style="border-collapse: collapse; border: none;">
        <tr>
            <td align="center" style="text-align: center; border: none;">
                <table cellspacing="0" cellpadding="0" border="0" style="border-collapse: collapse; margin: 0 auto; border: none;">
                    <tr>
                        <td style="width: 40px; height: 2px; background: linear-gradient(90deg, transparent, #4A90E2, transparent); border: none;"></td>
                        <td style="padding: 0 12px; color: #7B8FA1; font-size: 14px; font-weight: 400; white-space: nowrap; border: none;">END</td>
                        <td style="width: 40px; height: 2px; background: linear-gradient(90deg, transparent, #4A90E2, transparent); border: none;"></td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</div>
`

const wrapperOpen = `
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Microsoft YaHei', 'PingFang SC', sans-serif; padding: 30px 20px; background: linear-gradient(180deg, #FAFBFC 0%%, #F5F7FA 100%%); min-height: 100vh;">
%s
`

const wrapperClose = `
</div>
`
