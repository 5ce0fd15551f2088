package trivia

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/muurk/jeopardy/internal/urls"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates the request never got a response
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeRateLimit indicates the API rejected the request (HTTP 429)
	ErrTypeRateLimit
	// ErrTypeHTTP indicates any other non-200 status code
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeShortPool indicates fewer unique categories than a board needs
	ErrTypeShortPool
	// ErrTypeShortCategory indicates a category with too few usable clues
	ErrTypeShortCategory
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeRateLimit:
		return "Rate Limited"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeShortPool:
		return "Not Enough Categories"
	case ErrTypeShortCategory:
		return "Not Enough Clues"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error represents a failure talking to the trivia API
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	CategoryID int       // Category being fetched (0 for the id request)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// classifyNetworkError separates timeouts from other transport failures
func classifyNetworkError(message string, err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &Error{Type: ErrTypeTimeout, Message: message, Err: err, Retryable: true}
	}
	var netErr net.Error
	if os.IsTimeout(err) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Type: ErrTypeTimeout, Message: message, Err: err, Retryable: true}
	}
	return &Error{Type: ErrTypeNetwork, Message: message, Err: err, Retryable: true}
}

// NewNetworkError creates a transport-level error with timeout classification
func NewNetworkError(message string, err error) *Error {
	return classifyNetworkError(message, err)
}

// NewHTTPError creates an error for a non-200 response. 429 becomes a
// rate-limit error.
func NewHTTPError(statusCode int, message string) *Error {
	if statusCode == 429 {
		return &Error{
			Type:       ErrTypeRateLimit,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  true,
		}
	}
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNetworkError reports whether the request failed or was rejected by the
// API: transport failures, timeouts and rate limiting.
func IsNetworkError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Type == ErrTypeNetwork ||
			e.Type == ErrTypeTimeout ||
			e.Type == ErrTypeRateLimit
	}
	return false
}

// IsRateLimited checks if the API rejected the request with HTTP 429
func IsRateLimited(err error) bool {
	if e, ok := asError(err); ok {
		return e.Type == ErrTypeRateLimit
	}
	return false
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if e, ok := asError(err); ok {
		return e.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

const (
	throttledAdvice = ": Too many requests. Please wait a minute and try again"
	retryAdvice     = ". Please try again in a moment"
)

// AlertMessage is the text shown to the player when a setup fails. Only
// failures to get a response blame the request rate.
func AlertMessage(err error) string {
	msg := err.Error()
	if e, ok := asError(err); ok {
		msg = ShortMessage(e)
	}
	if IsNetworkError(err) {
		return msg + throttledAdvice
	}
	return msg + retryAdvice
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Trivia API not responding (timeout)"
	case ErrTypeNetwork:
		return "Trivia API unreachable"
	case ErrTypeRateLimit:
		return "Trivia API rate limit hit (HTTP 429)"
	case ErrTypeHTTP:
		return fmt.Sprintf("Trivia API error (HTTP %d)", e.StatusCode)
	case ErrTypeParse:
		return "Failed to parse trivia API response"
	default:
		return e.Message
	}
}

// Troubleshooting returns user-friendly advice for an error
func Troubleshooting(err error) string {
	e, ok := asError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch e.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The trivia API did not respond in time.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • Try a longer --timeout",
		}, "\n")

	case ErrTypeNetwork:
		return strings.Join([]string{
			"Could not reach the trivia API.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • Verify the API URL (--api-url or JEOPARDY_API_URL)",
			"  • Self-hosted jService instances must be running",
			"  • To run your own copy see " + urls.SelfHostedAPI,
		}, "\n")

	case ErrTypeRateLimit:
		return strings.Join([]string{
			"The trivia API is throttling requests.",
			"Troubleshooting:",
			"  • Wait a minute and try again",
			"  • Increase the delay between requests (--pacing-delay)",
			"  • Switch to adaptive pacing (--pacing adaptive)",
		}, "\n")

	case ErrTypeHTTP:
		if e.StatusCode >= 500 {
			return fmt.Sprintf("The trivia API returned a server error (HTTP %d). Try again later.", e.StatusCode)
		}
		return fmt.Sprintf("The trivia API returned HTTP %d. Check the API URL.", e.StatusCode)

	case ErrTypeParse:
		return "The trivia API answered with something that isn't jService JSON. Check the API URL."

	case ErrTypeShortPool, ErrTypeShortCategory:
		return "The trivia API returned too little data for a full board. Try again."

	default:
		return "An error occurred. Please check the error message for details."
	}
}
