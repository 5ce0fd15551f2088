// Package game drives a trivia board: it runs setups against the trivia
// API, owns the board store, and turns cell clicks into reveal steps.
//
// A Controller moves between three states:
//
//	Idle --Start--> Loading --ok--> Ready --Start--> Loading ...
//	                   \--fail--> Idle, or Ready when an older board exists
//
// Rendering is delegated to a View. The terminal board and the browser hub
// both implement it. Surfaces report clicks by cell id through Dispatch and
// read nothing from the store themselves.
package game
