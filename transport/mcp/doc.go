// Package mcp provides a Model Context Protocol interface for the Color
// Lines game server.
//
// The mcp package implements:
//   - MCP server exposing the game as agent-callable tools
//   - Thin HTTP proxying to the REST API (no game logic of its own)
//   - Client-side decision aids derived from the served game state
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current board, score, status and next spawn colors
//   - click: Single cell click (select, move, deselect)
//   - move_ball: Select a ball and move it to a target in one call
//   - reset_game: Reset the session to a fresh board
//   - turn_history: Retrieve turn history with pagination
//   - create_session: Create new game session with preset selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - configure: Change the rules of a running session
//   - list_configs: List available rule presets
//   - top_scores: Show the persistent leaderboard
//   - game_instructions: Full rules and strategy reference
//   - describe_cell: Inspect one cell, including reachability from the
//     current selection
//
// Decision Aids:
//
// Tool output goes beyond the raw API responses. The client rebuilds a
// board from each state snapshot and annotates it with color tallies,
// the longest current run, spawn pressure, and path reachability so an
// agent can sanity-check a move before committing to it.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the game
//   - Verify move legality before acting
//   - Analyze board states and make decisions
//   - Manage multiple game sessions
//   - Learn from turn history
package mcp
