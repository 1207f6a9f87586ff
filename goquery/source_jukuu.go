package goquery

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dictscrape"
)

var _ dictscrape.Source = (*Jukuu)(nil)

const jukuuHost = "http://www.jukuu.com"

// leadingDashes matches the "-- " prefix Jukuu puts before sentence sources.
var leadingDashes = regexp.MustCompile(`^[\s-]*`)

// jukuuPair is a Jukuu language pair and the script that serves it.
type jukuuPair struct {
	code   string
	script string
}

// Jukuu wraps the Jukuu bilingual example sentence search.
//
// Each result row is a tr.e holding the translated sentence, followed by a
// tr.c with the original and an optional tr.s naming where it came from.
type Jukuu struct {
	fetcher    dictscrape.Fetcher
	pairs      map[dictscrape.Language]jukuuPair
	fallback   jukuuPair
	classifier *Classifier
}

// NewJukuu creates a Jukuu source that fetches pages through fetcher.
func NewJukuu(fetcher dictscrape.Fetcher) *Jukuu {
	j := &Jukuu{
		fetcher: fetcher,
		pairs: map[dictscrape.Language]jukuuPair{
			dictscrape.LangEnglish:         {code: "zheng", script: "search.php"},
			dictscrape.LangJapanese:        {code: "zhjp", script: "jcsearch.php"},
			dictscrape.LangEnglishJapanese: {code: "engjp", script: "jsearch.php"},
		},
		fallback: jukuuPair{code: "zheng", script: "search.php"},
	}

	j.classifier = NewClassifier(PanesRule("sentences", PaneSet{
		Count: func(doc *goquery.Document) int {
			return doc.Find("tr.e").Length()
		},
		Extract: j.sentences,
		Layout:  PaneLayout{Class: "jukuu-sentence", ActiveClass: "jukuu-sentence-active"},
	}))
	return j
}

// Name returns the source's identifier.
func (j *Jukuu) Name() string {
	return "jukuu"
}

// SourceURL returns the Chinese-English search page for query.
func (j *Jukuu) SourceURL(query string) string {
	return j.searchURL(query, j.fallback)
}

// pair resolves a language selector. Unsupported selectors fall back to
// Chinese-English, the site's default.
func (j *Jukuu) pair(lang dictscrape.Language) jukuuPair {
	if p, ok := j.pairs[lang]; ok {
		return p
	}
	return j.fallback
}

func (j *Jukuu) searchURL(query string, p jukuuPair) string {
	return jukuuHost + "/" + p.script + "?q=" + url.QueryEscape(dictscrape.NormalizeQuery(query))
}

// Search fetches the sentence page for query and extracts one pane per
// sentence pair.
func (j *Jukuu) Search(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
	if dictscrape.NormalizeQuery(query) == "" {
		return nil, dictscrape.Errorf(dictscrape.EINVALID, "query required")
	}
	p := j.pair(cfg.Lang)

	doc, err := FetchDocument(ctx, j.fetcher, j.searchURL(query, p), dictscrape.FetchOptions{})
	if err != nil {
		return &dictscrape.NetworkError{Err: err}, nil
	}
	return withLangCode(j.classifier.Classify(doc), p.code), nil
}

// sentences extracts the sentence pairs in document order. Rows without an
// original or with an empty translation are skipped.
func (j *Jukuu) sentences(doc *goquery.Document) ([]Pane, error) {
	var panes []Pane
	var err error
	doc.Find("tr.e").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cell := row.Children().Last()
		if cell.Length() == 0 {
			return true
		}
		original := row.Next()
		if !original.HasClass("c") {
			return true
		}

		var trans dictscrape.Markup
		if trans, err = Fragment(jukuuHost, cell, WithRemoved("img")); err != nil {
			return false
		}
		if strings.TrimSpace(string(trans)) == "" {
			return true
		}

		var source string
		if s := original.Next(); s.HasClass("s") {
			source = leadingDashes.ReplaceAllString(strings.TrimSpace(s.Text()), "")
		}

		panes = append(panes, Pane{Parts: []Part{
			{Class: "jukuu-trans", HTML: trans},
			{Class: "jukuu-original", HTML: dictscrape.Markup(html.EscapeString(strings.TrimSpace(original.Text())))},
			{Class: "jukuu-src", HTML: dictscrape.Markup(html.EscapeString(source))},
		}})
		return true
	})
	if err != nil {
		return nil, err
	}
	return panes, nil
}
