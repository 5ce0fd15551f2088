// Package pacing decides how long to pause before each request to the
// trivia API. Public jService instances throttle bursts, so a board setup
// waits on a Pacer before every category fetch.
//
// Fixed is the default: one second, always. Adaptive starts at the same
// base delay and doubles it (via cenkalti/backoff) while requests come back
// throttled, dropping back to the base after the first success.
package pacing
