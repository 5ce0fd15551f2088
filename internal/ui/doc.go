// Package ui provides terminal UI components for the jeopardy CLI.
//
// This package uses Lipgloss (and the Bubbles progress bar) to render
// polished terminal output. The components follow a "run once and exit"
// pattern; the interactive board lives in package tui and borrows the
// styles and board table defined here.
//
// # Components
//
//   - Header: command banner showing operation name and parameters
//   - Progress: progress bar with a step list, one step per category fetch
//   - Result: success, failure and warning boxes
//   - RenderBoard: the 6x5 board as a table, shared with the TUI
//   - RenderSheet: every clue with its answer, for the host
//   - Confirm: yes/no prompt behind a warning box
//
// # Usage Pattern
//
// Non-interactive commands wrap their work in a Runner:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:      "Host Sheet",
//	    Command:    "jeopardy deal",
//	    Params:     map[string]string{"API": apiURL},
//	    TotalSteps: 6,
//	})
//
//	err := runner.Run(func(onStep ui.StepCallback) (map[string]string, error) {
//	    onStep(1, "Fetching category 11531", ui.StepRunning, "")
//	    // ... do work ...
//	    onStep(1, "World Capitals", ui.StepComplete, "")
//	    return nil, nil
//	})
//
// # Logging Integration
//
// Logging is controlled via the JEOPARDY_LOG_LEVEL environment variable.
// When unset or empty, zap logging is silent, so the curated UI output is
// displayed cleanly.
package ui
