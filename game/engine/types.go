package engine

// Color identifies a ball color. Values come from the configured palette;
// the engine compares them for equality and never interprets them.
type Color int

// Position addresses a board cell, zero-based from the top-left corner.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one board square. Color is meaningful only when Occupied is set.
type Cell struct {
	Color    Color `json:"color"`
	Occupied bool  `json:"occupied"`
}

// Status is the engine's turn-cycle state.
type Status string

const (
	// StatusIdle means no cell is selected; clicking a ball selects it.
	StatusIdle Status = "idle"
	// StatusSelected means a source ball is chosen; clicking an empty
	// cell attempts a move.
	StatusSelected Status = "selected"
	// StatusResolving is the transient state while removals and spawns
	// settle. Commands arriving in this state are ignored.
	StatusResolving Status = "resolving"
	// StatusGameOver is terminal until the game is reset.
	StatusGameOver Status = "game_over"
)

// Action reports what a click command did.
type Action string

const (
	ActionIgnored    Action = "ignored"
	ActionSelected   Action = "selected"
	ActionReselected Action = "reselected"
	ActionDeselected Action = "deselected"
	ActionMoved      Action = "moved"
	ActionBlocked    Action = "blocked"
)

// Validation bounds for rule parameters.
const (
	MinBoardSize     = 3
	MaxBoardSize     = 12
	MinLineLength    = 3
	MaxLineLength    = 8
	MinBallsPerRound = 1
	MaxBallsPerRound = 5
	MinColors        = 2
)

// PointsPerBall is the score credited for each removed ball.
const PointsPerBall = 10

// GameState is the serializable snapshot of a game, used for API
// responses and session persistence.
type GameState struct {
	BoardSize  int          `json:"board_size"`
	Cells      [][]Cell     `json:"cells"`
	NextColors []Color      `json:"next_colors"`
	Score      int          `json:"score"`
	Status     Status       `json:"status"`
	Selection  *Position    `json:"selection,omitempty"`
	Rules      Rules        `json:"rules"`
	Turn       int          `json:"turn"`
	History    []TurnRecord `json:"history,omitempty"`
}

// TurnRecord is one entry of the per-game action log.
type TurnRecord struct {
	Turn      int       `json:"turn"`
	Action    Action    `json:"action"`
	From      *Position `json:"from,omitempty"`
	To        *Position `json:"to,omitempty"`
	Removed   int       `json:"removed"`
	Spawned   int       `json:"spawned"`
	Score     int       `json:"score"`
	Timestamp int64     `json:"timestamp"`
}
