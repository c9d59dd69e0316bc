// Package service provides the business logic layer for the Color Lines server.
//
// The service package implements:
//   - Multi-session game management
//   - Rule preset management and loading
//   - Click processing with event collection
//   - Session lifecycle management
//   - Turn history tracking
//   - Best-score list access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages rule preset loading and the default rules.
// ScoreKeeper maintains the persistent best-score list.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, rule management, and business
// logic orchestration. Each session maintains its own game engine instance
// with independent state, plus an event recorder so every command can report
// exactly what it caused on the board.
//
// Usage:
//
//	store, _ := storage.NewFileStore("data")
//	scores := leaderboard.New(store)
//	sessionMgr := session.NewManager(scores)
//	configMgr, _ := config.NewManager("configs", store)
//	gameService := service.NewGameService(sessionMgr, configMgr, scores)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Click cells to select and move balls
//	result, err := gameService.Click(ctx, sessionInfo.ID, 4, 4)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different rules.
// Sessions track creation time, last access time, and turn history for
// analytics and debugging.
package service
