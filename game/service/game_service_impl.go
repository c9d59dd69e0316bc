package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/colorlines/colorlines/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	scores   ScoreKeeper
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, scores ScoreKeeper) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		scores:   scores,
	}
}

// CreateSession creates a new game session, dealt and ready to play
func (s *gameServiceImpl) CreateSession(ctx context.Context, presetName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rules engine.Rules
	if presetName != "" {
		loaded, err := s.configs.LoadRules(presetName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				available, listErr := s.configs.ListConfigs()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, cfg := range available {
						ids = append(ids, cfg.ConfigID)
					}
					return nil, fmt.Errorf("preset '%s' not found. Available presets: %v", presetName, ids)
				}
				return nil, fmt.Errorf("preset '%s' not found. Use /api/configs to list available presets", presetName)
			}
			return nil, fmt.Errorf("failed to load preset %s: %w", presetName, err)
		}
		rules = loaded
	} else {
		presetName = "default"
		rules = s.configs.GetDefault()
	}

	// Let the session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.Preset = presetName

	// The opening deal already happened inside the engine constructor;
	// drop those events so the first command starts from a clean slate.
	sess.Recorder.Drain()

	if err := s.sessions.Save(sess.ID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after create: %v\n", sess.ID, err)
	}

	return &SessionInfo{
		ID:             sess.ID,
		Preset:         sess.Preset,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             sess.ID,
		Preset:         sess.Preset,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			Preset:         sess.Preset,
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Click applies a cell click to a session. The engine decides whether the
// click selects, deselects, moves or is ignored; the result carries the
// outcome plus every board event the click caused.
func (s *gameServiceImpl) Click(ctx context.Context, sessionID string, row, col int) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	action := sess.Engine.SelectOrMove(row, col)
	events := s.drainEvents(sess)
	state := sess.Engine.GetState()

	result := &CommandResult{
		Action:    string(action),
		Message:   describeAction(action, row, col),
		GameState: state,
		Events:    events,
	}

	// Auto-save session after each command
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after click: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset starts a session over on a freshly dealt board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.Reset()
	events := s.drainEvents(sess)

	result := &CommandResult{
		Action:    "reset",
		Message:   "Game reset to a fresh board",
		GameState: state,
		Events:    events,
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return result, nil
}

// Configure applies a rule patch to a session. Fields that fail
// validation keep their prior values. The resulting rules also become
// the server default for future sessions.
func (s *gameServiceImpl) Configure(ctx context.Context, sessionID string, patch engine.RulePatch) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	sess.Engine.Configure(patch)
	events := s.drainEvents(sess)
	state := sess.Engine.GetState()

	rules := sess.Engine.GetRules()
	s.configs.StoreDefault(rules)

	result := &CommandResult{
		Action: "configured",
		Message: fmt.Sprintf("Rules now: %dx%d board, %d colors, lines of %d, %d balls per round",
			rules.BoardSize, rules.BoardSize, len(rules.Colors), rules.MinLine, rules.BallsPerRound),
		GameState: state,
		Events:    events,
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after configure: %v\n", sessionID, err)
	}

	return result, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetTurnHistory returns paginated turn history
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var turns []engine.TurnRecord
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			turns = append(turns, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			turns = history[start:end]
		}
	}

	if turns == nil {
		turns = []engine.TurnRecord{}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// TopScores returns the best-score list, ranked from first place down
func (s *gameServiceImpl) TopScores(ctx context.Context) ([]ScoreEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	top := s.scores.Top()
	result := make([]ScoreEntry, 0, len(top))
	for i, entry := range top {
		result = append(result, ScoreEntry{
			Rank:  i + 1,
			Score: entry.Score,
			Date:  entry.Date,
		})
	}
	return result, nil
}

// ClearScores empties the best-score list
func (s *gameServiceImpl) ClearScores(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores.Clear()
	return nil
}

// ListConfigs returns available rule presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads the rules of a specific preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, presetName string) (engine.Rules, error) {
	return s.configs.LoadRules(presetName)
}

// SaveConfig stores a rule preset under the given name
func (s *gameServiceImpl) SaveConfig(ctx context.Context, presetName, description string, rules engine.Rules) error {
	return s.configs.SavePreset(presetName, description, rules)
}

// drainEvents empties the session's recorder and stamps each event with
// a message and timestamp
func (s *gameServiceImpl) drainEvents(sess *Session) []GameEvent {
	events := []GameEvent{}
	if sess.Recorder == nil {
		return events
	}
	now := time.Now()
	for _, ev := range sess.Recorder.Drain() {
		events = append(events, GameEvent{
			Event:     ev,
			Message:   describeEvent(ev),
			Timestamp: now,
		})
	}
	return events
}

// describeAction renders a click outcome as a short sentence
func describeAction(action engine.Action, row, col int) string {
	switch action {
	case engine.ActionSelected:
		return fmt.Sprintf("Selected ball at (%d,%d)", row, col)
	case engine.ActionReselected:
		return fmt.Sprintf("Selection moved to (%d,%d)", row, col)
	case engine.ActionDeselected:
		return "Selection cleared"
	case engine.ActionMoved:
		return fmt.Sprintf("Moved ball to (%d,%d)", row, col)
	case engine.ActionBlocked:
		return fmt.Sprintf("No open path to (%d,%d), selection kept", row, col)
	default:
		return fmt.Sprintf("Nothing to do at (%d,%d)", row, col)
	}
}

// describeEvent renders an engine event as a short sentence
func describeEvent(ev engine.Event) string {
	switch ev.Type {
	case engine.EventBallPlaced:
		if ev.Pos != nil && ev.Color != nil {
			return fmt.Sprintf("Ball of color %d placed at (%d,%d)", *ev.Color, ev.Pos.Row, ev.Pos.Col)
		}
	case engine.EventBallRemoved:
		if ev.Pos != nil {
			return fmt.Sprintf("Ball removed from (%d,%d)", ev.Pos.Row, ev.Pos.Col)
		}
	case engine.EventBallMoved:
		if n := len(ev.Path); n >= 2 {
			from, to := ev.Path[0], ev.Path[n-1]
			return fmt.Sprintf("Ball moved from (%d,%d) to (%d,%d) in %d steps",
				from.Row, from.Col, to.Row, to.Col, n-1)
		}
	case engine.EventScoreChanged:
		if ev.Score != nil {
			return fmt.Sprintf("Score is now %d", *ev.Score)
		}
	case engine.EventNextBallsChanged:
		return fmt.Sprintf("Next balls: %v", ev.Colors)
	case engine.EventGameOver:
		if ev.Score != nil {
			if ev.HighScore {
				return fmt.Sprintf("Game over with a new top score of %d", *ev.Score)
			}
			return fmt.Sprintf("Game over with a final score of %d", *ev.Score)
		}
	}
	return ""
}
