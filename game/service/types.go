package service

import (
	"time"

	"github.com/colorlines/colorlines/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	Preset         string            `json:"preset"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// CommandResult contains the result of a gameplay command. Events lists
// everything the command caused on the board, in the order it happened.
type CommandResult struct {
	Action    string            `json:"action"`
	Message   string            `json:"message,omitempty"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events"`
}

// GameEvent is an engine event stamped with a human-readable message and
// the time it was observed.
type GameEvent struct {
	engine.Event
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a stored rule preset
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	BoardSize     int    `json:"board_size"`
	MinLine       int    `json:"min_line_length"`
	BallsPerRound int    `json:"balls_per_round"`
	Colors        int    `json:"colors"`
}

// ScoreEntry is one leaderboard row as reported by the service
type ScoreEntry struct {
	Rank  int       `json:"rank"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}
