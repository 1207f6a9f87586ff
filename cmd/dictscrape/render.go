package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/dictscrape"
)

// Output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// record is the JSON form of one lookup on stdout.
type record struct {
	ID        string          `json:"id,omitempty"`
	Source    string          `json:"source"`
	Query     string          `json:"query"`
	SourceURL string          `json:"sourceUrl"`
	Outcome   json.RawMessage `json:"outcome"`
}

// writeOutcome prints one outcome. JSON is written as a single line so
// several lookups form a JSON Lines stream; the text formats are framed by
// a "==> source: query <==" header when framed is set.
func writeOutcome(w io.Writer, conv dictscrape.Converter, format string, rec record, outcome dictscrape.Outcome, framed bool) error {
	switch format {
	case FormatJSON:
		data, err := dictscrape.MarshalOutcome(outcome)
		if err != nil {
			return err
		}
		rec.Outcome = data
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", line)
		return err
	case FormatMarkdown, FormatHTML, "":
		body := string(dictscrape.OutcomeHTML(outcome))
		if format == FormatMarkdown {
			md, err := conv.Convert(body)
			if err != nil {
				return err
			}
			body = md
		}
		if framed {
			if _, err := fmt.Fprintf(w, "==> %s: %s <==\n", rec.Source, rec.Query); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, body)
		return err
	default:
		return dictscrape.Errorf(dictscrape.EINVALID, "unknown format %q", format)
	}
}

// exportNote renders an outcome as Markdown and hands it to the note store.
func exportNote(deps *Dependencies, source, query, sourceURL string, outcome dictscrape.Outcome) error {
	md, err := deps.Converter.Convert(string(dictscrape.OutcomeHTML(outcome)))
	if err != nil {
		return err
	}
	return deps.Notes.Save(deps.Ctx, &dictscrape.Note{
		Source:    source,
		Query:     query,
		SourceURL: sourceURL,
		Markdown:  md,
	})
}

// sourceNames returns the sources named on the command line, falling back
// to the configured ones.
func sourceNames(deps *Dependencies, flag []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return deps.Config.Sources
}

// sourceConfig builds the per-search settings from a --lang flag and the
// configured default.
func sourceConfig(deps *Dependencies, lang string) dictscrape.SourceConfig {
	if lang == "" {
		return dictscrape.SourceConfig{Lang: deps.Config.Lang}
	}
	return dictscrape.SourceConfig{Lang: dictscrape.Language(lang)}
}

// networkCause returns the transport error behind a network failure, or
// nil for any other outcome.
func networkCause(outcome dictscrape.Outcome) error {
	o, ok := outcome.(*dictscrape.NetworkError)
	if !ok {
		return nil
	}
	if o.Err == nil {
		return errors.New("network error")
	}
	return o.Err
}
