// Package session provides session management for the Color Lines server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - File-based session persistence and restore
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// FilePersistence stores each session as a self-contained JSON file whose
// game state snapshot carries the rules it was played under.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager keeps
// lookups case-insensitive and generates IDs with cryptographic
// randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManager(scores)
//
//	// Create a new session
//	sess, err := manager.Create("", engine.DefaultRules())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active sessions
//	sessions := manager.List()
//
// Cleanup:
//
// Sessions can be explicitly deleted or expire from memory after
// inactivity. Persisted session files survive cleanup, so an expired
// session transparently reloads on its next access.
package session
