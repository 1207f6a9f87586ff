package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/dictscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ dictscrape.LookupService = (*LookupService)(nil)

const lookupColumns = "id, source, query, source_url, kind, outcome, content_hash, created_at"

// LookupService implements dictscrape.LookupService using SQLite.
type LookupService struct {
	db *DB
}

// NewLookupService creates a new LookupService.
func NewLookupService(db *DB) *LookupService {
	return &LookupService{db: db}
}

// hashContent computes xxHash of content and returns it as 16 hex digits.
func hashContent(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// CreateLookup records a lookup. The outcome is stored as tagged JSON.
func (s *LookupService) CreateLookup(ctx context.Context, lookup *dictscrape.Lookup) error {
	if err := lookup.Validate(); err != nil {
		return err
	}

	data, err := dictscrape.MarshalOutcome(lookup.Outcome)
	if err != nil {
		return err
	}

	lookup.ID = uuid.New().String()
	lookup.Kind = lookup.Outcome.Kind()
	lookup.ContentHash = hashContent(data)
	lookup.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lookups (`+lookupColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, lookup.ID, lookup.Source, lookup.Query, lookup.SourceURL, string(lookup.Kind),
		string(data), lookup.ContentHash, lookup.CreatedAt.Format(time.RFC3339))

	return err
}

// FindLookupByID retrieves a lookup by ID.
func (s *LookupService) FindLookupByID(ctx context.Context, id string) (*dictscrape.Lookup, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+lookupColumns+" FROM lookups WHERE id = ?", id)

	lookup, err := scanLookup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dictscrape.Errorf(dictscrape.ENOTFOUND, "lookup not found")
	}
	if err != nil {
		return nil, err
	}
	return lookup, nil
}

// FindLookups retrieves lookups matching the filter, newest first.
func (s *LookupService) FindLookups(ctx context.Context, filter dictscrape.LookupFilter) ([]*dictscrape.Lookup, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + lookupColumns + " FROM lookups WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Query != nil {
		query.WriteString(" AND query = ?")
		args = append(args, *filter.Query)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []*dictscrape.Lookup
	for rows.Next() {
		lookup, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, lookup)
	}

	return lookups, rows.Err()
}

// DeleteLookup permanently removes a lookup.
func (s *LookupService) DeleteLookup(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM lookups WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return dictscrape.Errorf(dictscrape.ENOTFOUND, "lookup not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLookup(row scanner) (*dictscrape.Lookup, error) {
	var lookup dictscrape.Lookup
	var kind, outcome, createdAt string

	if err := row.Scan(&lookup.ID, &lookup.Source, &lookup.Query, &lookup.SourceURL,
		&kind, &outcome, &lookup.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	lookup.Kind = dictscrape.OutcomeKind(kind)

	var err error
	lookup.Outcome, err = dictscrape.UnmarshalOutcome([]byte(outcome))
	if err != nil {
		return nil, fmt.Errorf("failed to decode outcome of lookup %s: %w", lookup.ID, err)
	}

	lookup.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &lookup, nil
}
