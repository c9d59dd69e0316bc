package service

import (
	"context"
	"time"

	"github.com/colorlines/colorlines/game/engine"
	"github.com/colorlines/colorlines/game/leaderboard"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, presetName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Click(ctx context.Context, sessionID string, row, col int) (*CommandResult, error)
	Reset(ctx context.Context, sessionID string) (*CommandResult, error)
	Configure(ctx context.Context, sessionID string, patch engine.RulePatch) (*CommandResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Leaderboard
	TopScores(ctx context.Context) ([]ScoreEntry, error)
	ClearScores(ctx context.Context) error

	// Rule Presets
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, presetName string) (engine.Rules, error)
	SaveConfig(ctx context.Context, presetName, description string, rules engine.Rules) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, rules engine.Rules) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, rules engine.Rules) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles rule preset loading and the default rules used
// for new sessions
type ConfigManager interface {
	LoadRules(name string) (engine.Rules, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() engine.Rules
	StoreDefault(rules engine.Rules)
	SavePreset(name, description string, rules engine.Rules) error
}

// ScoreKeeper maintains the persistent best-score list
type ScoreKeeper interface {
	Add(score int) bool
	Top() []leaderboard.Entry
	Best() int
	Clear()
}

// Session represents an active game session. The Recorder is wired into
// the engine as its observer so each command's events can be collected.
type Session struct {
	ID             string
	Preset         string
	Engine         *engine.Game
	Recorder       *engine.Recorder
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
