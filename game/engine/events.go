package engine

// Observer receives game events in the order they occur. The engine calls
// it synchronously from inside command handling, so implementations must
// not call back into the engine.
type Observer interface {
	BallPlaced(pos Position, color Color)
	BallRemoved(pos Position)
	BallMoved(path []Position)
	ScoreChanged(score int)
	NextBallsChanged(colors []Color)
	GameOver(finalScore int, highScore bool)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) BallPlaced(Position, Color) {}
func (NopObserver) BallRemoved(Position)       {}
func (NopObserver) BallMoved([]Position)       {}
func (NopObserver) ScoreChanged(int)           {}
func (NopObserver) NextBallsChanged([]Color)   {}
func (NopObserver) GameOver(int, bool)         {}

// Event type names used by Recorder.
const (
	EventBallPlaced       = "ball_placed"
	EventBallRemoved      = "ball_removed"
	EventBallMoved        = "ball_moved"
	EventScoreChanged     = "score_changed"
	EventNextBallsChanged = "next_balls_changed"
	EventGameOver         = "game_over"
)

// Event is the serialized form of one Observer callback. Only the fields
// relevant to the event's type are set.
type Event struct {
	Type      string     `json:"type"`
	Pos       *Position  `json:"pos,omitempty"`
	Color     *Color     `json:"color,omitempty"`
	Path      []Position `json:"path,omitempty"`
	Colors    []Color    `json:"colors,omitempty"`
	Score     *int       `json:"score,omitempty"`
	HighScore bool       `json:"high_score,omitempty"`
}

// Recorder is an Observer that appends each event to a list so callers
// can collect everything a single command produced.
type Recorder struct {
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BallPlaced(pos Position, color Color) {
	r.events = append(r.events, Event{Type: EventBallPlaced, Pos: &pos, Color: &color})
}

func (r *Recorder) BallRemoved(pos Position) {
	r.events = append(r.events, Event{Type: EventBallRemoved, Pos: &pos})
}

func (r *Recorder) BallMoved(path []Position) {
	r.events = append(r.events, Event{Type: EventBallMoved, Path: path})
}

func (r *Recorder) ScoreChanged(score int) {
	r.events = append(r.events, Event{Type: EventScoreChanged, Score: &score})
}

func (r *Recorder) NextBallsChanged(colors []Color) {
	r.events = append(r.events, Event{Type: EventNextBallsChanged, Colors: colors})
}

func (r *Recorder) GameOver(finalScore int, highScore bool) {
	r.events = append(r.events, Event{Type: EventGameOver, Score: &finalScore, HighScore: highScore})
}

// Drain returns the recorded events and clears the list.
func (r *Recorder) Drain() []Event {
	events := r.events
	r.events = nil
	return events
}

// Pending returns the number of events recorded since the last Drain.
func (r *Recorder) Pending() int {
	return len(r.events)
}
