// Package server implements the browser board.
//
// A Hub is the browser surface of a game: it implements game.View, keeps the
// rendered grid, and pushes every change to all connected browsers over a
// WebSocket. The Server serves an embedded page that draws the board and
// sends clicks back.
//
// # Endpoints
//
//	GET /           board page (button#start, div#loading-container, table#board-table)
//	GET /healthz    {"ok":true,"status":"ready"}
//	GET /api/board  current grid snapshot
//	GET /ws         WebSocket
//
// # WebSocket Messages
//
// Browsers send:
//
//	{"type":"start"}
//	{"type":"click","cell":"2-3"}
//
// The server sends "snapshot" on connect, then "loading", "progress",
// "board", "cell" and "alert" as the game changes. Requests the server
// cannot apply get an "error" reply sent to that browser only.
//
// Every tab shows the same game.
//
// # Usage Example
//
//	hub := server.NewHub()
//	ctrl := game.NewController(client, pacer, hub)
//
//	srv, err := server.New(&server.Config{Addr: ":8080"}, ctrl, hub)
//	if err != nil {
//	    return err
//	}
//
//	// Serve blocks until ctx is cancelled, then shuts down gracefully
//	return srv.Serve(ctx)
//
// # Graceful Shutdown
//
// On shutdown the server stops accepting requests, cancels a setup started
// from a browser, closes every WebSocket and waits for the connection
// goroutines to finish.
package server
