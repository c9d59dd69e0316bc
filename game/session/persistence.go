package session

import (
	"time"

	"github.com/colorlines/colorlines/game/engine"
	"github.com/colorlines/colorlines/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted
// sessions. The game state snapshot carries the rules, so a session file
// is self-contained and restorable without any preset lookup.
type PersistedSessionData struct {
	ID             string            `json:"id"`
	Preset         string            `json:"preset"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}
