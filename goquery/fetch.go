package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dictscrape"
)

// ParseDocument parses an HTML page.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, dictscrape.Errorf(dictscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// FetchDocument fetches url and parses the body. Transport and parse
// failures are returned alike; sources report both as a network error.
func FetchDocument(ctx context.Context, f dictscrape.Fetcher, url string, opts dictscrape.FetchOptions) (*goquery.Document, error) {
	body, err := f.Fetch(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
