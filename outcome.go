package dictscrape

import (
	"encoding/json"
	"strings"
)

// Markup is an HTML fragment whose resource references are all absolute.
// It renders identically regardless of the page it was extracted from.
type Markup string

// NoResultHTML is the placeholder shown when a lookup has nothing to show.
const NoResultHTML Markup = `<p style="text-align:center;">No Result</p>`

// OutcomeKind identifies an Outcome variant.
type OutcomeKind string

// Outcome kinds.
const (
	KindNotFound     OutcomeKind = "notfound"
	KindRelated      OutcomeKind = "related"
	KindLex          OutcomeKind = "lex"
	KindNetworkError OutcomeKind = "network_error"
)

// Outcome is the result of a single search. Exactly one of NotFound,
// Related, LexicalEntry or NetworkError is returned per search.
type Outcome interface {
	Kind() OutcomeKind
	outcome()
}

// NotFound reports that the source explicitly has no entry for the query.
type NotFound struct{}

// RelatedReason tells why a Related outcome was produced.
type RelatedReason string

// Related reasons.
const (
	// RelatedSuggestions means the source offered alternatives.
	RelatedSuggestions RelatedReason = "suggestions"

	// RelatedNoResult means the page parsed but had no extractable content.
	RelatedNoResult RelatedReason = "no_result"
)

// Related is a fallback fragment: a suggestion list, a disambiguation, or
// the no-result placeholder.
type Related struct {
	Content  Markup        `json:"content"`
	Reason   RelatedReason `json:"reason"`
	LangCode string        `json:"langCode,omitempty"`
}

// LexicalEntry holds one or more content panes in document order.
// The first pane carries the source's active marker.
type LexicalEntry struct {
	Header   Markup   `json:"header,omitempty"`
	Entries  []Markup `json:"entries"`
	LangCode string   `json:"langCode,omitempty"`
}

// NetworkError reports that the page could not be fetched or parsed.
// It is produced before classification and never retried.
type NetworkError struct {
	Err error `json:"-"`
}

func (*NotFound) Kind() OutcomeKind     { return KindNotFound }
func (*Related) Kind() OutcomeKind      { return KindRelated }
func (*LexicalEntry) Kind() OutcomeKind { return KindLex }
func (*NetworkError) Kind() OutcomeKind { return KindNetworkError }

func (*NotFound) outcome()     {}
func (*Related) outcome()      {}
func (*LexicalEntry) outcome() {}
func (*NetworkError) outcome() {}

// NoResult returns the degraded outcome used when a page loaded but no
// extraction rule matched.
func NoResult() *Related {
	return &Related{Content: NoResultHTML, Reason: RelatedNoResult}
}

// OutcomeHTML presents any outcome as a single fragment. NotFound, the
// degraded no-result and network failures all present as NoResultHTML.
func OutcomeHTML(o Outcome) Markup {
	switch v := o.(type) {
	case *Related:
		return v.Content
	case *LexicalEntry:
		var b strings.Builder
		b.WriteString(string(v.Header))
		for _, e := range v.Entries {
			b.WriteString(string(e))
		}
		return Markup(b.String())
	default:
		return NoResultHTML
	}
}

// outcomeJSON is the tagged wire form of an Outcome.
type outcomeJSON struct {
	Type     OutcomeKind   `json:"type"`
	Header   Markup        `json:"header,omitempty"`
	Entries  []Markup      `json:"entries,omitempty"`
	Content  Markup        `json:"content,omitempty"`
	Reason   RelatedReason `json:"reason,omitempty"`
	LangCode string        `json:"langCode,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// MarshalOutcome encodes an outcome as tagged JSON.
func MarshalOutcome(o Outcome) ([]byte, error) {
	if o == nil {
		return nil, Errorf(EINVALID, "outcome required")
	}

	w := outcomeJSON{Type: o.Kind()}
	switch v := o.(type) {
	case *Related:
		w.Content, w.Reason, w.LangCode = v.Content, v.Reason, v.LangCode
	case *LexicalEntry:
		w.Header, w.Entries, w.LangCode = v.Header, v.Entries, v.LangCode
	case *NetworkError:
		if v.Err != nil {
			w.Error = v.Err.Error()
		}
	}
	return json.Marshal(w)
}

// UnmarshalOutcome decodes tagged JSON produced by MarshalOutcome.
func UnmarshalOutcome(data []byte) (Outcome, error) {
	var w outcomeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, Errorf(EINVALID, "invalid outcome JSON: %v", err)
	}

	switch w.Type {
	case KindNotFound:
		return &NotFound{}, nil
	case KindRelated:
		return &Related{Content: w.Content, Reason: w.Reason, LangCode: w.LangCode}, nil
	case KindLex:
		return &LexicalEntry{Header: w.Header, Entries: w.Entries, LangCode: w.LangCode}, nil
	case KindNetworkError:
		var err error
		if w.Error != "" {
			err = Errorf(EINTERNAL, "%s", w.Error)
		}
		return &NetworkError{Err: err}, nil
	default:
		return nil, Errorf(EINVALID, "unknown outcome type %q", w.Type)
	}
}
