package goquery

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dictscrape"
)

var _ dictscrape.Source = (*Hjdict)(nil)

// Hujiang endpoints. Result pages are served from dict.hujiang.com while
// relative resources resolve against hjdict.com.
const (
	hjdictHost      = "https://www.hjdict.com"
	hjdictSourceURL = "https://www.dict.hujiang.com/w/"
	hjdictSearchURL = "https://dict.hujiang.com/"
)

// Hjdict wraps the Hujiang online dictionary.
//
// Hujiang serves real results only to requests that look like an existing
// browser session, so every search sends a fresh set of session cookies.
// Result pages are classified as:
//   - .word-notfound for an explicit miss
//   - .word-suggestions for "did you mean" lists
//   - .word-details-pane for one pane per entry, with the tab strip from
//     .word-details-multi .word-details-header as the header
type Hjdict struct {
	fetcher    dictscrape.Fetcher
	tokens     *dictscrape.TokenGenerator
	now        func() time.Time
	langs      map[dictscrape.Language]string
	classifier *Classifier
}

// HjdictOption configures a Hjdict source.
type HjdictOption func(*Hjdict)

// WithTokenGenerator sets the generator used for session cookies.
func WithTokenGenerator(g *dictscrape.TokenGenerator) HjdictOption {
	return func(h *Hjdict) {
		h.tokens = g
	}
}

// WithClock sets the clock used for the session timestamp cookie.
func WithClock(now func() time.Time) HjdictOption {
	return func(h *Hjdict) {
		h.now = now
	}
}

// NewHjdict creates a Hjdict source that fetches pages through fetcher.
func NewHjdict(fetcher dictscrape.Fetcher, opts ...HjdictOption) *Hjdict {
	h := &Hjdict{
		fetcher: fetcher,
		tokens:  dictscrape.NewTokenGenerator(nil),
		now:     time.Now,
		langs: map[dictscrape.Language]string{
			dictscrape.LangEnglish:  "w",
			dictscrape.LangJapanese: "jp/jc",
			dictscrape.LangKorean:   "kr",
			dictscrape.LangFrench:   "fr",
			dictscrape.LangGerman:   "de",
			dictscrape.LangSpanish:  "es",
		},
	}
	for _, opt := range opts {
		opt(h)
	}

	speaker := WithStaticSpeaker(".word-audio", "data-src")
	panes := SectionPanes(hjdictHost, ".word-details-pane", []PartSelector{
		{Class: "word-details-pane-header", Selector: ".word-details-pane-header"},
		{Class: "word-details-pane-content", Selector: ".word-details-pane-content"},
	}, speaker)
	panes.Header = func(doc *goquery.Document) (dictscrape.Markup, error) {
		return Fragment(hjdictHost, doc.Find(".word-details-multi .word-details-header"),
			WithIndexedChildren(".word-details-tab", "data-categories"), speaker)
	}
	panes.Layout = PaneLayout{Class: "word-details-pane", ActiveClass: "word-details-pane-active"}

	h.classifier = NewClassifier(
		NotFoundRule(".word-notfound"),
		SuggestionsRule(".word-suggestions", hjdictHost, speaker),
		PanesRule("panes", panes),
	)
	return h
}

// Name returns the source's identifier.
func (h *Hjdict) Name() string {
	return "hjdict"
}

// SourceURL returns the public English entry page for query.
func (h *Hjdict) SourceURL(query string) string {
	return hjdictSourceURL + url.PathEscape(dictscrape.NormalizeQuery(query))
}

// LangCode maps a language selector to Hujiang's path segment.
// An empty selector means English.
func (h *Hjdict) LangCode(lang dictscrape.Language) (string, error) {
	if lang == "" {
		lang = dictscrape.LangEnglish
	}
	code, ok := h.langs[lang]
	if !ok {
		return "", dictscrape.Errorf(dictscrape.EINVALID, "hjdict does not support language %q", lang)
	}
	return code, nil
}

// SearchURL returns the page fetched for query in the given language code.
func (h *Hjdict) SearchURL(query, code string) string {
	return hjdictSearchURL + code + "/" + url.PathEscape(dictscrape.NormalizeQuery(query))
}

// Search fetches the result page for query and classifies it.
func (h *Hjdict) Search(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
	if dictscrape.NormalizeQuery(query) == "" {
		return nil, dictscrape.Errorf(dictscrape.EINVALID, "query required")
	}
	code, err := h.LangCode(cfg.Lang)
	if err != nil {
		return nil, err
	}

	doc, err := FetchDocument(ctx, h.fetcher, h.SearchURL(query, code), dictscrape.FetchOptions{
		Cookies: h.sessionCookies(),
	})
	if err != nil {
		return &dictscrape.NetworkError{Err: err}, nil
	}
	return withLangCode(h.classifier.Classify(doc), code), nil
}

// sessionCookies returns the cookies of a freshly started browser session.
func (h *Hjdict) sessionCookies() []dictscrape.Cookie {
	return []dictscrape.Cookie{
		{Name: "HJ_SITEID", Value: "3"},
		{Name: "HJ_UID", Value: h.tokens.UUID()},
		{Name: "HJ_SID", Value: h.tokens.UUID()},
		{Name: "HJ_SSID", Value: h.tokens.UUID()},
		{Name: "HJID", Value: "0"},
		{Name: "HJ_VT", Value: "2"},
		{Name: "HJ_SST", Value: "1"},
		{Name: "HJ_CSST", Value: "1"},
		{Name: "HJ_ST", Value: "1"},
		{Name: "HJ_CST", Value: "1"},
		{Name: "HJ_T", Value: strconv.FormatInt(h.now().UnixMilli(), 10)},
		{Name: "_", Value: h.tokens.Random(16)},
	}
}
