// Package websocket provides real-time game updates for Color Lines boards.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Broadcasting of board snapshots and turn event batches
//   - Connection lifecycle management with ping/pong keep-alive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// goroutines (readPump and writePump) that manage reading, writing, and
// cleanup. All hub state is owned by the Run loop, so broadcasts from
// HTTP handlers go through channels.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded envelopes:
//
//	{
//	  "session_id": "ab12",
//	  "event": "turn",
//	  "game_state": { ... },          // full board snapshot
//	  "events": [                      // what happened this turn, in order
//	    {"type": "ball_moved", "pos": {...}, "path": [...], "message": "..."},
//	    {"type": "ball_removed", ...},
//	    {"type": "score_changed", "score": 120, ...}
//	  ]
//	}
//
// The event field is "state_update" for plain snapshots (for example the
// one pushed right after a client connects), "turn" for click, reset and
// configure outcomes, and a free-form name for auxiliary notifications
// such as "session_deleted".
//
// Incoming messages from clients are not interpreted. Clients act through
// the REST API and use the socket purely as a live feed.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12)
// when establishing the connection. Updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a click is applied:
//	hub.BroadcastTurn(sessionID, result.GameState, result.Events)
package websocket
