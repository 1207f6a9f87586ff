package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dictscrape"
)

// Rule pairs a structural check with the extraction that applies when the
// check passes.
type Rule struct {
	Name    string
	Match   func(doc *goquery.Document) bool
	Extract func(doc *goquery.Document) (dictscrape.Outcome, error)
}

// Classifier maps a parsed result page to an outcome by evaluating its rules
// in order. The first matching rule wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier. Rules are evaluated in the order given.
func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// Classify returns the outcome of the first matching rule. When no rule
// matches, or the matching rule fails to extract, the page degrades to the
// no-result outcome.
func (c *Classifier) Classify(doc *goquery.Document) dictscrape.Outcome {
	o, _ := c.ClassifyRule(doc)
	return o
}

// ClassifyRule is like Classify but also reports the name of the rule that
// produced the outcome, or "" for the degraded outcome.
func (c *Classifier) ClassifyRule(doc *goquery.Document) (dictscrape.Outcome, string) {
	for _, r := range c.rules {
		if !r.Match(doc) {
			continue
		}
		o, err := r.Extract(doc)
		if err != nil || o == nil {
			return dictscrape.NoResult(), ""
		}
		return o, r.Name
	}
	return dictscrape.NoResult(), ""
}

// hasMatch reports whether the document contains an element matching selector.
func hasMatch(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// NotFoundRule classifies pages carrying an explicit not-found marker.
func NotFoundRule(selector string) Rule {
	return Rule{
		Name:  "notfound",
		Match: func(doc *goquery.Document) bool { return hasMatch(doc, selector) },
		Extract: func(*goquery.Document) (dictscrape.Outcome, error) {
			return &dictscrape.NotFound{}, nil
		},
	}
}

// SuggestionsRule classifies pages offering alternative queries. The
// suggestion block is serialized as the related content; a blank block
// degrades to no result.
func SuggestionsRule(selector, host string, opts ...FragmentOption) Rule {
	return Rule{
		Name:  "suggestions",
		Match: func(doc *goquery.Document) bool { return hasMatch(doc, selector) },
		Extract: func(doc *goquery.Document) (dictscrape.Outcome, error) {
			content, err := Fragment(host, doc.Find(selector), opts...)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(string(content)) == "" {
				return dictscrape.NoResult(), nil
			}
			return &dictscrape.Related{Content: content, Reason: dictscrape.RelatedSuggestions}, nil
		},
	}
}

// PanesRule classifies pages holding one or more content panes as a lexical
// entry. A page whose panes all turn out empty degrades to no result.
func PanesRule(name string, set PaneSet) Rule {
	return Rule{
		Name:  name,
		Match: func(doc *goquery.Document) bool { return set.Count(doc) > 0 },
		Extract: func(doc *goquery.Document) (dictscrape.Outcome, error) {
			panes, err := set.Extract(doc)
			if err != nil {
				return nil, err
			}
			if len(panes) == 0 {
				return dictscrape.NoResult(), nil
			}

			var header dictscrape.Markup
			if set.Header != nil {
				if header, err = set.Header(doc); err != nil {
					return nil, err
				}
			}
			return &dictscrape.LexicalEntry{
				Header:  header,
				Entries: set.Layout.Render(panes),
			}, nil
		},
	}
}

// withLangCode stamps the resolved source language code on outcomes that
// carry one.
func withLangCode(o dictscrape.Outcome, code string) dictscrape.Outcome {
	switch v := o.(type) {
	case *dictscrape.Related:
		v.LangCode = code
	case *dictscrape.LexicalEntry:
		v.LangCode = code
	}
	return o
}
