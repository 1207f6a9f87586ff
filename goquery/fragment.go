package goquery

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dictscrape"
)

// resourceAttrs are the attributes that may carry a resource reference.
var resourceAttrs = []string{"src", "href", "data-src", "data-src-mp3", "poster"}

// SpeakerClass marks the static audio placeholder produced by WithStaticSpeaker.
const SpeakerClass = "dictscrape-speaker"

// FragmentOption transforms the cloned subtree before it is serialized.
type FragmentOption func(sel *goquery.Selection)

// WithRemoved drops every descendant matching selector.
func WithRemoved(selector string) FragmentOption {
	return func(sel *goquery.Selection) {
		sel.Find(selector).Remove()
	}
}

// WithIndexedChildren sets attr on every descendant matching selector to its
// zero-based position among the matches.
func WithIndexedChildren(selector, attr string) FragmentOption {
	return func(sel *goquery.Selection) {
		sel.Find(selector).Each(func(i int, s *goquery.Selection) {
			s.SetAttr(attr, strconv.Itoa(i))
		})
	}
}

// WithSubstitution replaces every descendant matching selector with the
// markup returned by fn. An empty string removes the element.
func WithSubstitution(selector string, fn func(s *goquery.Selection) string) FragmentOption {
	return func(sel *goquery.Selection) {
		sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
			markup := fn(s)
			if markup == "" {
				s.Remove()
				return
			}
			s.ReplaceWithHtml(markup)
		})
	}
}

// WithStaticSpeaker replaces live audio controls matching selector with a
// static placeholder that carries the audio path (read from srcAttr) as data.
// Controls without a path are dropped.
func WithStaticSpeaker(selector, srcAttr string) FragmentOption {
	return WithSubstitution(selector, func(s *goquery.Selection) string {
		src := strings.TrimSpace(s.AttrOr(srcAttr, ""))
		return StaticSpeaker(src)
	})
}

// StaticSpeaker returns the audio placeholder for src, or "" when src is empty.
func StaticSpeaker(src string) string {
	if src == "" {
		return ""
	}
	return fmt.Sprintf(`<a class="%s" data-src-mp3="%s" href="javascript:void(0)"></a>`,
		SpeakerClass, html.EscapeString(src))
}

// Fragment serializes the inner HTML of the first element in sel with every
// resource reference resolved against host. The subtree is cloned first, so
// the options never touch the source document. An empty selection yields an
// empty fragment.
func Fragment(host string, sel *goquery.Selection, opts ...FragmentOption) (dictscrape.Markup, error) {
	base, err := url.Parse(host)
	if err != nil || !base.IsAbs() {
		return "", dictscrape.Errorf(dictscrape.EINVALID, "invalid resource host %q", host)
	}
	if sel == nil || sel.Length() == 0 {
		return "", nil
	}

	clone := sel.First().Clone()
	for _, opt := range opts {
		opt(clone)
	}
	rewriteReferences(base, clone)

	out, err := clone.Html()
	if err != nil {
		return "", fmt.Errorf("serialize fragment: %w", err)
	}
	return dictscrape.Markup(out), nil
}

// rewriteReferences makes every resource reference below sel absolute.
// References that do not parse are removed.
func rewriteReferences(base *url.URL, sel *goquery.Selection) {
	for _, attr := range resourceAttrs {
		sel.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			v, _ := s.Attr(attr)
			resolved, ok := resolveReference(base, v)
			if !ok {
				s.RemoveAttr(attr)
				return
			}
			s.SetAttr(attr, resolved)
		})
	}
}

// resolveReference resolves ref against base. References that already carry
// a scheme are returned unchanged.
func resolveReference(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" {
		return ref, true
	}
	return base.ResolveReference(u).String(), true
}
