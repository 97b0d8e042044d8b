package evaluator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageSnapshot is the rendered state of the agent's current browser tab.
type PageSnapshot struct {
	URL     string `json:"url"`
	Content string `json:"content"`

	doc    *goquery.Document
	parsed bool
}

// NewPageSnapshot builds a snapshot from a URL and its rendered HTML.
func NewPageSnapshot(url, content string) *PageSnapshot {
	return &PageSnapshot{URL: url, Content: content}
}

// Document parses Content once and caches the result. A nil document means
// the page has no usable content; callers treat that as "no match".
func (p *PageSnapshot) Document() *goquery.Document {
	if p == nil {
		return nil
	}
	if p.parsed {
		return p.doc
	}
	p.parsed = true
	if strings.TrimSpace(p.Content) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Content))
	if err != nil {
		return nil
	}
	p.doc = doc
	return p.doc
}

// Text returns the visible text of the page, or "" without content.
func (p *PageSnapshot) Text() string {
	doc := p.Document()
	if doc == nil {
		return ""
	}
	return doc.Find("body").Text()
}

func (p *PageSnapshot) currentURL() string {
	if p == nil {
		return ""
	}
	return p.URL
}
