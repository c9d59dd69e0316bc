package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Commands
	SelectOrMove(row, col int) Action
	Reset() *GameState
	Configure(patch RulePatch)

	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	IsGameOver() bool
	GetScore() int
	GetStatus() Status
	GetSelection() *Position
	GetNextColors() []Color
	GetRules() Rules

	// History
	GetHistory() []TurnRecord
	GetLastTurn() *TurnRecord
}

// ScoreRecorder accepts final scores when games end. Add reports whether
// the score entered the recorded list.
type ScoreRecorder interface {
	Add(score int) bool
}

// Game implements the Engine interface. It is a single-threaded state
// machine; the service layer serializes access per session.
type Game struct {
	rules     Rules
	board     *Board
	next      []Color
	score     int
	status    Status
	selection *Position
	turn      int
	history   []TurnRecord
	rng       Rand
	observer  Observer
	scores    ScoreRecorder
}

var _ Engine = (*Game)(nil)

// NewGame creates a game with a time-seeded randomness source, no
// observer and no score recording.
func NewGame(rules Rules) *Game {
	return NewGameWith(rules, nil, nil, nil)
}

// NewGameWith wires the game's collaborators explicitly. A nil rng falls
// back to a time-seeded source, a nil observer to a no-op one, and a nil
// scores recorder disables high-score reporting. Invalid rule fields are
// replaced with their defaults. The opening round is dealt before the
// constructor returns, so the observer sees its events.
func NewGameWith(rules Rules, rng Rand, observer Observer, scores ScoreRecorder) *Game {
	if rng == nil {
		rng = NewRand()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	g := &Game{
		rules:    rules.Sanitize(),
		rng:      rng,
		observer: observer,
		scores:   scores,
	}
	g.start()
	return g
}

// start initializes a fresh board under the current rules and deals the
// opening round through the normal spawn path.
func (g *Game) start() {
	g.board = NewBoard(g.rules.BoardSize)
	g.score = 0
	g.selection = nil
	g.turn = 0
	g.history = nil
	g.status = StatusResolving
	g.refillNext()
	g.spawnRound()
	if g.status != StatusGameOver {
		g.finishResolution()
	}
}

// SelectOrMove handles a click on the cell at row, col and reports what
// the click did. Clicks are ignored while a resolution is in flight,
// after game over, on out-of-bounds cells and on empty cells when nothing
// is selected.
func (g *Game) SelectOrMove(row, col int) Action {
	p := Position{Row: row, Col: col}
	if g.status == StatusResolving || g.status == StatusGameOver {
		return ActionIgnored
	}
	if !g.board.InBounds(p) {
		return ActionIgnored
	}

	switch g.status {
	case StatusIdle:
		if g.board.IsEmpty(p) {
			return ActionIgnored
		}
		g.selection = &p
		g.status = StatusSelected
		g.record(ActionSelected, nil, &p, 0, 0)
		return ActionSelected

	case StatusSelected:
		from := *g.selection
		if p == from {
			g.selection = nil
			g.status = StatusIdle
			g.record(ActionDeselected, &from, nil, 0, 0)
			return ActionDeselected
		}
		if !g.board.IsEmpty(p) {
			g.selection = &p
			g.record(ActionReselected, &from, &p, 0, 0)
			return ActionReselected
		}
		path := ShortestPath(g.board, from, p)
		if len(path) == 0 {
			g.record(ActionBlocked, &from, &p, 0, 0)
			return ActionBlocked
		}
		g.moveBall(path)
		return ActionMoved
	}
	return ActionIgnored
}

// moveBall relocates the selected ball along path and runs the resolution
// cycle: cascade removals first, then a spawn round only when the move
// removed nothing.
func (g *Game) moveBall(path []Position) {
	from, to := path[0], path[len(path)-1]
	color, _ := g.board.ColorAt(from)
	g.board.Remove(from)
	g.board.Place(to, color)
	g.selection = nil
	g.status = StatusResolving
	g.turn++
	g.observer.BallMoved(append([]Position(nil), path...))

	removed := g.cascade()
	spawned := 0
	if removed == 0 {
		var also int
		spawned, also = g.spawnRound()
		removed += also
	}
	g.record(ActionMoved, &from, &to, removed, spawned)
	if g.status != StatusGameOver {
		g.finishResolution()
	}
}

// cascade removes completed lines until none remain, crediting the score
// once per pass, and returns the total number of balls removed.
func (g *Game) cascade() int {
	total := 0
	for {
		lines := FindLines(g.board, g.rules.MinLine)
		if len(lines) == 0 {
			return total
		}
		for _, p := range lines {
			g.board.Remove(p)
			g.observer.BallRemoved(p)
		}
		total += len(lines)
		g.score += len(lines) * PointsPerBall
		g.observer.ScoreChanged(g.score)
	}
}

// spawnRound places the queued next balls on random empty cells, cascading
// after each placement, then deals a fresh queue. When fewer empty cells
// remain than balls to place, no ball is placed and the game ends.
func (g *Game) spawnRound() (spawned, removed int) {
	if g.board.EmptyCount() < g.rules.BallsPerRound {
		g.endGame()
		return 0, 0
	}
	for _, color := range g.next {
		empty := g.board.EmptyCells()
		if len(empty) == 0 {
			break
		}
		p := empty[g.rng.Intn(len(empty))]
		g.board.Place(p, color)
		g.observer.BallPlaced(p, color)
		spawned++
		removed += g.cascade()
	}
	g.refillNext()
	return spawned, removed
}

// refillNext deals the next-balls queue from the color palette.
func (g *Game) refillNext() {
	next := make([]Color, g.rules.BallsPerRound)
	for i := range next {
		next[i] = g.rules.Colors[g.rng.Intn(len(g.rules.Colors))]
	}
	g.next = next
	g.observer.NextBallsChanged(append([]Color(nil), next...))
}

// finishResolution ends the resolving phase: a full board ends the game,
// otherwise play returns to idle.
func (g *Game) finishResolution() {
	if g.board.EmptyCount() == 0 {
		g.endGame()
		return
	}
	g.status = StatusIdle
}

// endGame moves to the terminal state and reports the final score to the
// score recorder.
func (g *Game) endGame() {
	g.status = StatusGameOver
	high := false
	if g.scores != nil {
		high = g.scores.Add(g.score)
	}
	g.observer.GameOver(g.score, high)
}

// record appends an entry to the per-game action log.
func (g *Game) record(action Action, from, to *Position, removed, spawned int) {
	g.history = append(g.history, TurnRecord{
		Turn:      g.turn,
		Action:    action,
		From:      from,
		To:        to,
		Removed:   removed,
		Spawned:   spawned,
		Score:     g.score,
		Timestamp: time.Now().Unix(),
	})
}

// Reset abandons the current game and starts a new one under the current
// rules. The abandoned score is discarded, not recorded.
func (g *Game) Reset() *GameState {
	g.start()
	return g.GetState()
}

// Configure applies a partial rules update. A board size change
// reinitializes the game; a palette or spawn-count change redeals the
// next queue; invalid fields keep their previous values. Updates arriving
// while a resolution is in flight are ignored.
func (g *Game) Configure(patch RulePatch) {
	if g.status == StatusResolving {
		return
	}
	next := g.rules.Apply(patch)
	sizeChanged := next.BoardSize != g.rules.BoardSize
	redeal := next.BallsPerRound != g.rules.BallsPerRound || !sameColors(next.Colors, g.rules.Colors)
	g.rules = next
	if sizeChanged {
		g.start()
		return
	}
	if g.status == StatusGameOver {
		return
	}
	if redeal {
		g.refillNext()
	}
}

// GetState returns a snapshot of the full game state.
func (g *Game) GetState() *GameState {
	return &GameState{
		BoardSize:  g.board.Size(),
		Cells:      g.board.Cells(),
		NextColors: g.GetNextColors(),
		Score:      g.score,
		Status:     g.status,
		Selection:  g.GetSelection(),
		Rules:      g.rules,
		Turn:       g.turn,
		History:    g.GetHistory(),
	}
}

// SetState restores a snapshot, used when loading persisted sessions. The
// snapshot's rules are sanitized, its board must be square and within the
// size bounds, and a mid-resolution status is normalized to idle.
func (g *Game) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	size := len(state.Cells)
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("board size %d out of range", size)
	}
	for i, row := range state.Cells {
		if len(row) != size {
			return fmt.Errorf("board row %d has %d cells, want %d", i, len(row), size)
		}
	}

	rules := state.Rules.Sanitize()
	rules.BoardSize = size

	board := NewBoard(size)
	for row := range state.Cells {
		for col, cell := range state.Cells[row] {
			if cell.Occupied {
				board.Place(Position{Row: row, Col: col}, cell.Color)
			}
		}
	}

	g.rules = rules
	g.board = board
	g.score = state.Score
	g.turn = state.Turn
	g.history = append([]TurnRecord(nil), state.History...)

	g.next = append([]Color(nil), state.NextColors...)
	if len(g.next) != rules.BallsPerRound {
		// Redeal silently; restoring must not emit events.
		next := make([]Color, rules.BallsPerRound)
		for i := range next {
			next[i] = rules.Colors[g.rng.Intn(len(rules.Colors))]
		}
		g.next = next
	}

	g.selection = nil
	switch state.Status {
	case StatusGameOver:
		g.status = StatusGameOver
	case StatusSelected:
		g.status = StatusIdle
		if p := state.Selection; p != nil && board.InBounds(*p) && !board.IsEmpty(*p) {
			sel := *p
			g.selection = &sel
			g.status = StatusSelected
		}
	default:
		g.status = StatusIdle
	}
	return nil
}

// IsGameOver reports whether the game has ended.
func (g *Game) IsGameOver() bool {
	return g.status == StatusGameOver
}

// GetScore returns the current score.
func (g *Game) GetScore() int {
	return g.score
}

// GetStatus returns the current turn-cycle state.
func (g *Game) GetStatus() Status {
	return g.status
}

// GetSelection returns the selected position, or nil when nothing is
// selected.
func (g *Game) GetSelection() *Position {
	if g.selection == nil {
		return nil
	}
	p := *g.selection
	return &p
}

// GetNextColors returns the queued colors for the next spawn round.
func (g *Game) GetNextColors() []Color {
	return append([]Color(nil), g.next...)
}

// GetRules returns the rules currently in force.
func (g *Game) GetRules() Rules {
	rules := g.rules
	rules.Colors = append([]Color(nil), g.rules.Colors...)
	return rules
}

// GetHistory returns the per-game action log.
func (g *Game) GetHistory() []TurnRecord {
	return append([]TurnRecord(nil), g.history...)
}

// GetLastTurn returns the most recent log entry, or nil for a fresh game.
func (g *Game) GetLastTurn() *TurnRecord {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}

// GetBoard exposes the live board for read-only inspection.
func (g *Game) GetBoard() *Board {
	return g.board
}
