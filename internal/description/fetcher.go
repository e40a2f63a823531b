// Package description scrapes a short project description from a homepage.
package description

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jakoblorz/go-builderdata/internal/webclient"
)

const htmlAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Paragraph fallbacks outside this length range are navigation crumbs or
// whole articles rather than descriptions.
const (
	minParagraphLength = 20
	maxParagraphLength = 500
)

// metaSelectors are tried in order; the first non-empty content wins.
var metaSelectors = []struct {
	source   Source
	selector string
}{
	{SourceMetaDescription, `meta[name="description"]`},
	{SourceOpenGraph, `meta[property="og:description"]`},
	{SourceTwitterCard, `meta[name="twitter:description"]`},
}

// Source names where a description was found.
type Source string

const (
	SourceNone            Source = ""
	SourceMetaDescription Source = "meta:description"
	SourceOpenGraph       Source = "meta:og:description"
	SourceTwitterCard     Source = "meta:twitter:description"
	SourceParagraph       Source = "paragraph"
)

// Result of a description lookup. An empty Text is a normal outcome.
type Result struct {
	Text   string
	Source Source

	// Attempted is true when a network request was made
	Attempted bool

	// Reason explains why Text is empty
	Reason string
}

// Found reports whether a description was extracted.
func (r Result) Found() bool {
	return r.Text != ""
}

// Fetcher retrieves homepages and extracts their description.
type Fetcher struct {
	client *webclient.Client
}

// NewFetcher creates a Fetcher.
func NewFetcher(client *webclient.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads homepageURL and extracts its description. It never fails;
// every error path returns an empty Text with a Reason.
func (f *Fetcher) Fetch(ctx context.Context, homepageURL string) Result {
	if homepageURL == "" {
		return Result{Reason: "no homepage"}
	}

	target, err := webclient.NormalizeURL(homepageURL)
	if err != nil {
		return Result{Reason: err.Error()}
	}

	resp, err := f.client.Get(ctx, target, htmlAccept)
	if err != nil {
		return Result{Attempted: true, Reason: err.Error()}
	}

	text, source, err := Extract(resp.Body)
	if err != nil {
		return Result{Attempted: true, Reason: fmt.Sprintf("parse html: %v", err)}
	}
	if text == "" {
		return Result{Attempted: true, Reason: "no description found"}
	}

	return Result{Text: text, Source: source, Attempted: true}
}

// Extract looks up the description meta tags of an HTML document, falling
// back to the first paragraph of reasonable length.
func Extract(html []byte) (string, Source, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", SourceNone, err
	}

	for _, m := range metaSelectors {
		var content string
		doc.Find(m.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			content = strings.TrimSpace(s.AttrOr("content", ""))
			return content == ""
		})
		if content != "" {
			return content, m.source, nil
		}
	}

	if p := firstParagraph(doc); p != "" {
		return p, SourceParagraph, nil
	}

	return "", SourceNone, nil
}

func firstParagraph(doc *goquery.Document) string {
	text := strings.Join(strings.Fields(doc.Find("p").First().Text()), " ")
	n := utf8.RuneCountInString(text)
	if n <= minParagraphLength || n >= maxParagraphLength {
		return ""
	}
	return text
}
