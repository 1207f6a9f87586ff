// Package dictscrape normalizes dictionary lookup pages from third-party
// websites into a small set of structured outcomes: a full lexical entry,
// a related/suggestions fallback, or an explicit not-found marker.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package dictscrape
