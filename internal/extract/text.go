// Package extract turns page content into candidate claims: a text
// extractor walks the HTML tree, a pattern detector flags sentence-like
// units that look checkable, and a session registry suppresses duplicates.
package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// MinSegmentLength is the minimum text length (in runes) worth analyzing.
// Shorter fragments are navigation chrome and noise.
const MinSegmentLength = 20

// Segment is one text run found in a content container. Start/End are
// rune offsets within the concatenated document text.
type Segment struct {
	Text  string
	Start int
	End   int
}

// TextExtractor walks a content container and yields text segments at or
// above a minimum length. It never deduplicates; that is the registry's job.
type TextExtractor struct {
	minLength int
}

// NewTextExtractor creates an extractor with the default length floor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{minLength: MinSegmentLength}
}

// Extract walks container's text-bearing descendants and returns the
// qualifying segments. Safe to re-run on any subtree after a mutation.
func (e *TextExtractor) Extract(container *html.Node) []Segment {
	var segments []Segment
	offset := 0

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				length := utf8.RuneCountInString(text)
				if length >= e.minLength {
					segments = append(segments, Segment{
						Text:  text,
						Start: offset,
						End:   offset + length,
					})
				}
				offset += length + 1 // Account for the joining space
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(container)
	return segments
}

// ExtractHTML parses raw HTML and extracts segments from the document root
func (e *TextExtractor) ExtractHTML(htmlContent string) ([]Segment, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}
	return e.Extract(doc), nil
}
