package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muurk/jeopardy/internal/board"
	"github.com/muurk/jeopardy/internal/logging"
	"github.com/muurk/jeopardy/internal/urls"
)

const (
	// DefaultBaseURL is the public jService API
	DefaultBaseURL = urls.TriviaAPI + "api/"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultPoolSize is the count parameter of the category id request
	DefaultPoolSize = board.NumCategories

	// DefaultMaxRetries is zero: a failed request surfaces immediately
	DefaultMaxRetries = 0

	// DefaultRetryDelay is the delay before the first retry when retries are enabled
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 30 * time.Second

	// DefaultCacheDuration is how long fetched clue lists are reused
	DefaultCacheDuration = 10 * time.Minute
)

// Client fetches categories and clues from a jService-compatible API
type Client struct {
	// BaseURL is the API root (e.g., "https://jservice.io/api/")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// PoolSize is how many categories the id request asks for
	PoolSize int

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// CacheDuration is how long to cache clue lists (negative = no cache)
	CacheDuration time.Duration

	// Rand is the sampling source
	Rand *rand.Rand

	randMutex sync.Mutex

	cache      map[int]cachedCategory
	cacheMutex sync.RWMutex
}

type cachedCategory struct {
	category apiCategory
	fetched  time.Time
}

// Options configures NewClientWithOptions. Zero fields take defaults.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	PoolSize      int
	MaxRetries    int
	RetryDelay    time.Duration
	CacheDuration time.Duration
	Seed          int64
	HTTPClient    *http.Client
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string) *Client {
	return NewClientWithOptions(Options{BaseURL: baseURL})
}

// NewClientWithOptions creates a client with explicit settings
func NewClientWithOptions(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.CacheDuration == 0 {
		opts.CacheDuration = DefaultCacheDuration
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		BaseURL:       opts.BaseURL,
		HTTPClient:    httpClient,
		PoolSize:      opts.PoolSize,
		MaxRetries:    opts.MaxRetries,
		RetryDelay:    opts.RetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
		CacheDuration: opts.CacheDuration,
		Rand:          rand.New(rand.NewSource(opts.Seed)),
		cache:         make(map[int]cachedCategory),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// ClearCache drops every cached clue list
func (c *Client) ClearCache() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cache = make(map[int]cachedCategory)
}

// wire formats of the two endpoints
type apiCategorySummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type apiClue struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type apiCategory struct {
	ID    int       `json:"id"`
	Title string    `json:"title"`
	Clues []apiClue `json:"clues"`
}

// endpoint joins a path onto BaseURL and attaches a query
func (c *Client) endpoint(path string, query url.Values) string {
	base := strings.TrimRight(c.BaseURL, "/")
	u := base + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Ping checks that the API answers an id request
func (c *Client) Ping(ctx context.Context) error {
	u := c.endpoint("categories", url.Values{"count": {"1"}})
	_, err := c.getOnce(ctx, u)
	return err
}

// FetchCategoryIDs requests PoolSize categories and returns NumCategories
// distinct ids sampled from them.
func (c *Client) FetchCategoryIDs(ctx context.Context) ([]int, error) {
	u := c.endpoint("categories", url.Values{"count": {strconv.Itoa(c.PoolSize)}})

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var summaries []apiCategorySummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, NewParseError("failed to parse categories response", err)
	}

	seen := make(map[int]bool, len(summaries))
	ids := make([]int, 0, len(summaries))
	for _, s := range summaries {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		ids = append(ids, s.ID)
	}

	if len(ids) < board.NumCategories {
		return nil, &Error{
			Type:    ErrTypeShortPool,
			Message: fmt.Sprintf("API returned %d unique categories, need %d", len(ids), board.NumCategories),
		}
	}

	picked := make([]int, 0, board.NumCategories)
	for _, i := range c.sample(len(ids), board.NumCategories) {
		picked = append(picked, ids[i])
	}
	return picked, nil
}

// FetchCategory retrieves a category and deals NumClues hidden clues from it.
func (c *Client) FetchCategory(ctx context.Context, id int) (*board.Category, error) {
	raw, err := c.category(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(raw.Clues) < board.NumClues {
		return nil, &Error{
			Type:       ErrTypeShortCategory,
			Message:    fmt.Sprintf("category %d has %d usable clues, need %d", id, len(raw.Clues), board.NumClues),
			CategoryID: id,
		}
	}

	cat := &board.Category{
		Title: TitleCase(raw.Title),
		Clues: make([]board.Clue, 0, board.NumClues),
	}
	for _, i := range c.sample(len(raw.Clues), board.NumClues) {
		cat.Clues = append(cat.Clues, board.NewClue(raw.Clues[i].Question, raw.Clues[i].Answer))
	}
	return cat, nil
}

// category returns the cleaned clue list for id, from cache when fresh
func (c *Client) category(ctx context.Context, id int) (apiCategory, error) {
	if c.CacheDuration > 0 {
		c.cacheMutex.RLock()
		cached, ok := c.cache[id]
		c.cacheMutex.RUnlock()
		if ok && time.Since(cached.fetched) < c.CacheDuration {
			logging.Debug("Category served from cache")
			return cached.category, nil
		}
	}

	u := c.endpoint("category", url.Values{"id": {strconv.Itoa(id)}})
	body, err := c.get(ctx, u)
	if err != nil {
		if e, ok := asError(err); ok {
			e.CategoryID = id
		}
		return apiCategory{}, err
	}

	var raw apiCategory
	if err := json.Unmarshal(body, &raw); err != nil {
		e := NewParseError("failed to parse category response", err)
		e.CategoryID = id
		return apiCategory{}, e
	}

	cleaned := apiCategory{ID: raw.ID, Title: CleanText(raw.Title)}
	seen := make(map[apiClue]bool, len(raw.Clues))
	for _, clue := range raw.Clues {
		q, a := CleanText(clue.Question), CleanText(clue.Answer)
		if q == "" || a == "" {
			continue
		}
		key := apiClue{Question: q, Answer: a}
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned.Clues = append(cleaned.Clues, key)
	}

	if c.CacheDuration > 0 {
		c.cacheMutex.Lock()
		c.cache[id] = cachedCategory{category: cleaned, fetched: time.Now()}
		c.cacheMutex.Unlock()
	}
	return cleaned, nil
}

// get performs a GET with the configured retry policy
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var lastErr error
	currentDelay := c.RetryDelay

	// Retry loop with exponential backoff
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, NewNetworkError("request cancelled", ctx.Err())
			case <-time.After(currentDelay):
			}

			currentDelay *= 2
			if c.MaxRetryDelay > 0 && currentDelay > c.MaxRetryDelay {
				currentDelay = c.MaxRetryDelay
			}
		}

		body, err := c.getOnce(ctx, u)
		if err == nil {
			return body, nil
		}

		lastErr = err

		// Don't retry non-retryable errors
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// getOnce performs a single GET and returns the body of a 200 response
func (c *Client) getOnce(ctx context.Context, u string) (body []byte, err error) {
	start := time.Now()
	status := 0
	defer func() { logging.LogFetch(u, status, time.Since(start), err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("GET request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}
	return body, nil
}

// sample returns k distinct indices from [0, n) in random order
func (c *Client) sample(n, k int) []int {
	c.randMutex.Lock()
	defer c.randMutex.Unlock()
	return sampleIndices(c.Rand, n, k)
}

// sampleIndices is a partial Fisher-Yates shuffle
func sampleIndices(r *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
