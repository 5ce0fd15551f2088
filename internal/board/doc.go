// Package board holds the trivia board model and its rendered grid.
//
// A board is always NumCategories categories of NumClues clues. Every clue
// starts hidden and moves through a three-step reveal cycle, one step per
// click:
//
//	hidden ("?") -> question -> answer
//
// The answer state is terminal. Clicking an answered cell changes nothing.
//
// # Store and Grid
//
// The Store owns the game state. Replace installs a freshly fetched board
// only if it passes Validate, so a half-built board is never visible.
// Reveal is the single mutation applied to a clue.
//
// The Grid is the display side. It is written through RenderBoard and
// RenderCell and never consults the Store, which keeps rendering surfaces
// (terminal, browser) independent of game state.
//
// Cells are addressed by Coord and keyed by Coord.ID, "<category>-<clue>",
// for example "2-3" for the fourth clue of the third category.
package board
