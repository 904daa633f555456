package audit

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParsedPage holds the SEO signals extracted from a generated page.
type ParsedPage struct {
	Title     string
	Lang      string
	Canonical string
	// Hreflangs maps hreflang values to their href.
	Hreflangs map[string]string
	WordCount int
}

// ParsePage extracts title, canonical, hreflang alternates and the visible
// word count from raw HTML.
func ParsePage(content string) (*ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	parsed := &ParsedPage{
		Hreflangs: make(map[string]string),
	}

	parsed.Title = strings.TrimSpace(doc.Find("title").First().Text())
	parsed.Lang, _ = doc.Find("html").First().Attr("lang")

	doc.Find("link[rel='canonical']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if href, exists := s.Attr("href"); exists {
			parsed.Canonical = strings.TrimSpace(href)
			return false
		}
		return true
	})

	doc.Find("link[rel='alternate'][hreflang]").Each(func(i int, s *goquery.Selection) {
		lang, _ := s.Attr("hreflang")
		href, _ := s.Attr("href")
		lang = strings.TrimSpace(lang)
		if lang != "" {
			parsed.Hreflangs[lang] = strings.TrimSpace(href)
		}
	})

	var body string
	if main := doc.Find("main"); main.Length() > 0 {
		body, _ = main.Html()
	} else {
		body, _ = doc.Find("body").Html()
	}
	parsed.WordCount = len(strings.Fields(visibleText(body)))

	return parsed, nil
}

// visibleText returns the text of content with scripts, styles and comments
// removed.
func visibleText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		case html.CommentNode:
			return
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
