// Package trivia is an HTTP client for jService-compatible trivia APIs.
//
// Two endpoints are used:
//
//	GET <base>/categories?count=<n>   -> [{"id": 11531, "title": "mixed bag"}, ...]
//	GET <base>/category?id=<id>       -> {"title": "...", "clues": [{"question": "...", "answer": "..."}]}
//
// # Usage Example
//
//	client := trivia.NewClient(trivia.DefaultBaseURL)
//
//	ids, err := client.FetchCategoryIDs(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, id := range ids {
//	    cat, err := client.FetchCategory(ctx, id)
//	    ...
//	}
//
// FetchCategoryIDs samples board.NumCategories distinct ids. FetchCategory
// cleans the clue text (markup, entities, escaped quotes), drops unusable
// and duplicate clues, and samples board.NumClues of them, all hidden.
//
// # Caching
//
// The cleaned clue list of each category is cached for CacheDuration, so a
// restart that draws the same category costs no request. The sampled subset
// is never cached: each deal is fresh.
//
// # Errors
//
// All failures are *Error values. IsNetworkError covers transport failures,
// timeouts and HTTP 429. AlertMessage produces the player-facing text and
// Troubleshooting the longer CLI hint.
package trivia
