package dictscrape

import "context"

// Header is a single request header.
type Header struct {
	Name  string
	Value string
}

// Cookie is a single request cookie.
type Cookie struct {
	Name  string
	Value string
}

// FetchOptions carries request metadata some sources expect.
// Order is preserved when the request is built.
type FetchOptions struct {
	Headers []Header
	Cookies []Cookie
}

// Fetcher retrieves the HTML of a lookup page.
type Fetcher interface {
	// Fetch requests the URL and returns the page body decoded as UTF-8.
	// Any transport failure (DNS, TLS, timeout, non-2xx status) is an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, opts FetchOptions) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
