package emailhtml

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
)

var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "div": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"ol": true, "p": true, "section": true, "table": true, "tr": true,
	"ul": true,
}

// Renderer builds report previews. The server's markup is never trusted:
// Safe goes through a sanitizing policy that keeps email layout but strips
// scripts, event handlers and unsafe URLs.
type Renderer struct {
	policy *bluemonday.Policy
}

var _ ports.ReportRenderer = (*Renderer)(nil)

// NewRenderer wires the email sanitizing policy.
func NewRenderer() *Renderer {
	p := bluemonday.UGCPolicy()
	p.AllowStyles(
		"color", "background-color", "font-family", "font-size", "font-weight",
		"font-style", "text-align", "text-decoration", "line-height",
		"margin", "margin-top", "margin-bottom", "padding", "border",
		"border-bottom", "width", "max-width",
	).Globally()
	p.AllowAttrs("align", "valign", "bgcolor", "width", "height", "cellpadding", "cellspacing", "border").
		OnElements("table", "thead", "tbody", "tr", "td", "th", "img")
	p.AllowElements("center")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &Renderer{policy: p}
}

// Render sanitizes the report and extracts its plain-text form and links.
func (r *Renderer) Render(raw string) (domain.ReportPreview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return domain.ReportPreview{}, fmt.Errorf("parse report: %w", err)
	}
	doc.Find("head, script, style, noscript").Remove()

	var text string
	if len(doc.Nodes) > 0 {
		text = plainText(doc.Nodes[0])
	}

	return domain.ReportPreview{
		Raw:   raw,
		Safe:  r.policy.Sanitize(raw),
		Text:  text,
		Links: extractLinks(doc),
	}, nil
}

func extractLinks(doc *goquery.Document) []domain.ReportLink {
	var links []domain.ReportLink
	seen := map[string]struct{}{}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		u, err := url.Parse(href)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}

		title := strings.Join(strings.Fields(a.Text()), " ")
		if title == "" {
			title = href
		}
		links = append(links, domain.ReportLink{Title: title, URL: href})
	})

	return links
}

// plainText flattens the document the way a mail client's text part would
// read it: one line per block, list items dashed, no blank lines.
func plainText(root *html.Node) string {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
		case html.ElementNode:
			switch {
			case n.Data == "br":
				b.WriteString("\n")
			case n.Data == "td" || n.Data == "th":
				b.WriteString(" ")
			case blockElements[n.Data]:
				b.WriteString("\n")
				if n.Data == "li" {
					b.WriteString("- ")
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteString("\n")
		}
	}
	walk(root)

	var out []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}
