// Package urls provides centralized constants for the external URLs the
// application prints.
//
// Usage:
//
//	import "github.com/muurk/jeopardy/internal/urls"
//
//	fmt.Printf("Run your own API: %s\n", urls.SelfHostedAPI)
package urls
