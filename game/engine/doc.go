// Package engine provides the core game logic for the Color Lines game.
//
// The engine package implements the game mechanics including:
//   - Board management and ball placement
//   - Line detection along rows, columns and both diagonals
//   - Breadth-first path finding through empty cells
//   - Cascade resolution, scoring and spawn rounds
//   - Game state snapshots for persistence
//   - Rule validation with per-field fallbacks
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by Game. GameState is the serializable snapshot used for API
// responses and session persistence, while Rules holds the tunable
// parameters (palette, line length, board size, spawn count).
//
// Usage:
//
//	game := engine.NewGame(engine.DefaultRules())
//
//	// Click a ball, then click an empty destination cell.
//	game.SelectOrMove(4, 4)
//	action := game.SelectOrMove(4, 7)
//	state := game.GetState()
//
// Game Rules:
//
// Balls of random colors appear on a square board. Each turn the player
// moves one ball along an orthogonal path of empty cells. Completing a
// straight run of minimum length along any of the four axes removes it and
// scores points; otherwise a new round of balls spawns. The game ends when
// the board can no longer take a spawn round or has no empty cell left.
package engine
