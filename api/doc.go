// Package api provides the HTTP REST surface for the Color Lines server.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Preset listing, loading and saving
//   - Leaderboard access
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST   /api/sessions           - Create new session (body: {"preset": "classic"})
//   - GET    /api/sessions           - List sessions (sort, order and limit query params)
//   - GET    /api/sessions/unified   - Multi-board view (sessionIds or preset query params)
//   - GET    /api/sessions/{id}      - Get specific session
//   - DELETE /api/sessions/{id}      - Delete session
//
// Game Operations:
//   - GET  /api/sessions/{id}/state     - Current board snapshot
//   - POST /api/sessions/{id}/click     - Click a cell (body: {"row": 3, "col": 4})
//   - POST /api/sessions/{id}/reset     - Start a fresh game
//   - POST /api/sessions/{id}/configure - Patch the rules (body: partial rule set)
//   - GET  /api/sessions/{id}/history   - Turn history with pagination
//
// Presets:
//   - GET  /api/configs        - List available presets
//   - POST /api/configs        - Save a preset (body: {"name", "description", "rules"})
//   - GET  /api/configs/{name} - Load a single preset
//
// Leaderboard:
//   - GET    /api/leaderboard - Top scores, best first
//   - DELETE /api/leaderboard - Wipe the board
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A click responds with the full
// outcome of the turn:
//
//	{
//	  "action": "moved",
//	  "message": "Moved ball to (2,7)",
//	  "game_state": { ... },
//	  "events": [
//	    {"type": "ball_moved", ...},
//	    {"type": "ball_removed", ...},
//	    {"type": "score_changed", "score": 50, ...}
//	  ]
//	}
//
// The configure body is a partial rule set. Absent and out-of-range
// fields both keep their current values:
//
//	{
//	  "board_size": 7,
//	  "min_line_length": 4,
//	  "balls_per_round": 3,
//	  "colors": [1, 2, 3, 4, 5]
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// WebSocket:
//
// GET /ws?session={id} upgrades to a WebSocket that streams board
// snapshots and per-turn event batches for the session. See the
// transport/websocket package for the message envelope.
package api
