package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sentinel values substituted for absent metadata so prompt formatting
// never has to deal with missing fields.
const (
	NoTitle       = "No title found"
	NoDescription = "No meta description found"
	NoKeywords    = "No keywords found"
)

// PageContent holds the textual projections of one fetched page. Title,
// MetaDescription and Keywords are always non-empty (sentinel when absent);
// MainText may be empty and it is the prompt builder's job to substitute
// its sentinel.
type PageContent struct {
	Title           string
	MetaDescription string
	Keywords        string
	MainText        string
}

// Empty returns a PageContent with every metadata field set to its
// sentinel, used when the page could not be fetched at all.
func Empty() PageContent {
	return PageContent{
		Title:           NoTitle,
		MetaDescription: NoDescription,
		Keywords:        NoKeywords,
	}
}

// Extract parses body as HTML and derives all four fields from a single
// document. Malformed markup never fails: the HTML parser repairs what it
// can and missing elements simply degrade to sentinels or empty text.
func Extract(body []byte) PageContent {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Empty()
	}

	pc := PageContent{
		Title:           NoTitle,
		MetaDescription: NoDescription,
		Keywords:        NoKeywords,
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		pc.Title = title
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && desc != "" {
		pc.MetaDescription = desc
	}
	if kw, ok := doc.Find(`meta[name="keywords"]`).First().Attr("content"); ok && kw != "" {
		pc.Keywords = kw
	}
	pc.MainText = mainText(doc)

	return pc
}

// mainText concatenates the visible text of paragraphs, spans and list
// items (under ul/ol) in document order, segments joined by a single
// space. Paragraphs and spans carry the narrative; list items pick up
// bullet content like FAQs and feature lists.
func mainText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p, span, ul li, ol li").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.TrimSpace(strings.Join(parts, " "))
}
