// Package tui implements the terminal board: a full-screen Bubble Tea
// program showing six category columns of five clues.
//
// The screen is driven by a game.Controller and renders through View, the
// controller's terminal surface. View only records state under a mutex; the
// model reads it back on every redraw, so controller calls made from inside
// Update (reveals) never block on the program.
//
// # Keys
//
//	arrows / hjkl   move the cursor
//	enter / space   reveal the selected clue (question, then answer)
//	s               start, or restart with a fresh board
//	?               more keys
//	q               quit
//
// While a setup runs the board is hidden and a spinner with a progress bar
// takes its place. A failed setup raises an alert that stays until it is
// dismissed with enter or esc.
//
// # Usage Example
//
//	view := tui.NewView()
//	ctrl := game.NewController(client, pacer, view)
//	model := tui.NewModel(ctx, ctrl, view, tui.Options{})
//
//	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
//	    return err
//	}
package tui
