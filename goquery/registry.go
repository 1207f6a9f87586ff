package goquery

import "github.com/fwojciec/dictscrape"

// NewRegistry creates a registry holding every source this package
// implements, all fetching through fetcher.
func NewRegistry(fetcher dictscrape.Fetcher, opts ...HjdictOption) *dictscrape.Registry {
	return dictscrape.NewRegistry(
		NewHjdict(fetcher, opts...),
		NewJukuu(fetcher),
	)
}
