// Package logging provides structured logging for the jeopardy commands.
//
// This package wraps zap logger with convenience functions for common logging
// patterns: setup progress, trivia API requests, and browser board traffic.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (every API request, WebSocket frames)
//   - Info: Normal operations (setup finished, clients connecting)
//   - Warn: Non-fatal issues (a failed fetch, a dropped client)
//   - Error: Fatal issues (startup failures)
//
// # Silent by Default
//
// Logging is off unless JEOPARDY_LOG_LEVEL (or --log-level) is set. The
// terminal board owns stdout, so `jeopardy play` sends logs to a file:
//
//	if err := logging.InitializeWithOutput("debug", "/tmp/jeopardy.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
//	logging.LogFetch(url, resp.StatusCode, time.Since(start), err)
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogWebSocketMessage(remoteAddr, "received", msgType, payload)
//	logging.LogHTTPRequest(remoteAddr, r.Method, r.URL.Path, status, elapsed)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once the logger has been
// initialized.
package logging
