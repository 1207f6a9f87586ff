package goquery

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dictscrape"
)

// Part is one section of a content pane, such as its header or body.
type Part struct {
	Class string
	HTML  dictscrape.Markup
}

// Pane is one dictionary entry or sense extracted from a result page.
type Pane struct {
	Parts []Part
}

// PaneLayout describes the wrapper markup a source's panes are rendered in.
type PaneLayout struct {
	Class       string
	ActiveClass string
}

// Render wraps each pane in a div carrying the layout class, with one div
// per part. Only the first pane carries ActiveClass.
func (l PaneLayout) Render(panes []Pane) []dictscrape.Markup {
	entries := make([]dictscrape.Markup, 0, len(panes))
	for i, p := range panes {
		class := l.Class
		if i == 0 && l.ActiveClass != "" {
			class += " " + l.ActiveClass
		}

		var b strings.Builder
		fmt.Fprintf(&b, `<div class="%s">`, html.EscapeString(class))
		for _, part := range p.Parts {
			fmt.Fprintf(&b, `<div class="%s">%s</div>`, html.EscapeString(part.Class), part.HTML)
		}
		b.WriteString(`</div>`)
		entries = append(entries, dictscrape.Markup(b.String()))
	}
	return entries
}

// PaneSet tells PanesRule how to find and render a source's panes.
type PaneSet struct {
	// Count returns the number of candidate panes on the page.
	Count func(doc *goquery.Document) int

	// Extract returns the panes in document order.
	Extract func(doc *goquery.Document) ([]Pane, error)

	// Header returns the block shown above the panes. Optional.
	Header func(doc *goquery.Document) (dictscrape.Markup, error)

	Layout PaneLayout
}

// PartSelector selects one part of a pane. An empty Selector selects the
// pane element itself.
type PartSelector struct {
	Class    string
	Selector string
}

// SectionPanes builds a PaneSet for pages whose panes are elements matching
// paneSelector, each split into parts found by child selectors. A part
// missing from a pane serializes as empty. Header and Layout are left for
// the caller to fill in.
func SectionPanes(host, paneSelector string, parts []PartSelector, opts ...FragmentOption) PaneSet {
	return PaneSet{
		Count: func(doc *goquery.Document) int {
			return doc.Find(paneSelector).Length()
		},
		Extract: func(doc *goquery.Document) ([]Pane, error) {
			var panes []Pane
			var err error
			doc.Find(paneSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				pane := Pane{Parts: make([]Part, 0, len(parts))}
				for _, ps := range parts {
					target := s
					if ps.Selector != "" {
						target = s.Find(ps.Selector)
					}
					var markup dictscrape.Markup
					if markup, err = Fragment(host, target, opts...); err != nil {
						return false
					}
					pane.Parts = append(pane.Parts, Part{Class: ps.Class, HTML: markup})
				}
				panes = append(panes, pane)
				return true
			})
			if err != nil {
				return nil, err
			}
			return panes, nil
		},
	}
}
