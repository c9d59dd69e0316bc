// Package config provides rule preset management for the Color Lines game.
//
// The config package handles:
//   - Loading rule presets from JSON files
//   - Preset validation and verification
//   - Default rules persisted in the key/value store
//   - Preset discovery and listing
//
// Preset Format:
//
// Rule presets are stored as JSON files in the configs directory.
// Each preset defines:
//   - The color palette (at least two distinct color identifiers)
//   - Minimum line length required to clear
//   - Board size (square, per side)
//   - Balls spawned per round
//
// Available Presets:
//
// A fresh configs directory is seeded with three bundled presets:
//   - classic: 9x9 board, 7 colors, lines of 5
//   - compact: 7x7 board, 5 colors, lines of 4
//   - grand: 12x12 board, 7 colors, 5 balls per round
//
// Usage:
//
//	manager, err := config.NewManager("configs", store)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific preset
//	preset, err := manager.LoadConfig("compact")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get the default rules
//	rules := manager.GetDefault()
//
//	// List available presets
//	presets := manager.ListConfigs()
//
// Validation:
//
// All presets are validated for:
//   - Palette size and distinct color identifiers
//   - Line length, board size, and spawn count bounds
//   - A board large enough to hold a minimum-length line
//
// The default rules round-trip through the store's "settings" key. Corrupt
// or out-of-range stored fields fall back to their defaults one field at a
// time, so a damaged record never takes the game down with it.
package config
