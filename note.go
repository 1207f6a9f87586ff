package dictscrape

import "context"

// Note is a lookup rendered as Markdown for export.
type Note struct {
	Source    string
	Query     string
	SourceURL string
	Markdown  string
}

// Validate returns an error if the note contains invalid fields.
func (n *Note) Validate() error {
	if n.Source == "" {
		return Errorf(EINVALID, "note source required")
	}
	if NormalizeQuery(n.Query) == "" {
		return Errorf(EINVALID, "note query required")
	}
	return nil
}

// NoteStore persists notes with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type NoteStore interface {
	Save(ctx context.Context, note *Note) error
	Commit() error
	Abort() error
}
