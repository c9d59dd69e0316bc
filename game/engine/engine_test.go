package engine

import (
	"testing"
)

// testRules is a small deterministic ruleset for scenario tests.
func testRules() Rules {
	return Rules{
		Colors:        []Color{1, 2},
		MinLine:       5,
		BoardSize:     9,
		BallsPerRound: 3,
	}
}

// zeroRand always picks index 0: spawns land on the first empty cell in
// row-major order and every dealt color is the first palette entry.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

// fakeScores records every reported final score.
type fakeScores struct {
	added []int
	high  bool
}

func (f *fakeScores) Add(score int) bool {
	f.added = append(f.added, score)
	return f.high
}

// clearBoard empties the board so scenarios can lay out exact positions.
func clearBoard(g *Game) {
	for row := 0; row < g.board.Size(); row++ {
		for col := 0; col < g.board.Size(); col++ {
			g.board.Remove(Position{Row: row, Col: col})
		}
	}
	g.status = StatusIdle
	g.selection = nil
}

func TestNewGameOpeningRound(t *testing.T) {
	game := NewGameWith(testRules(), zeroRand{}, nil, nil)

	if game.GetStatus() != StatusIdle {
		t.Errorf("Expected idle status after opening, got %s", game.GetStatus())
	}
	if game.GetScore() != 0 {
		t.Errorf("Expected score 0, got %d", game.GetScore())
	}
	if got := game.GetBoard().BallCount(); got != 3 {
		t.Errorf("Expected 3 balls after opening round, got %d", got)
	}
	if got := len(game.GetNextColors()); got != 3 {
		t.Errorf("Expected next queue of 3, got %d", got)
	}
	if game.GetSelection() != nil {
		t.Error("Expected no selection on a fresh game")
	}
}

func TestNewGameSanitizesRules(t *testing.T) {
	game := NewGame(Rules{})

	rules := game.GetRules()
	def := DefaultRules()
	if rules.BoardSize != def.BoardSize || rules.MinLine != def.MinLine || rules.BallsPerRound != def.BallsPerRound {
		t.Errorf("Expected zero rules replaced with defaults, got %+v", rules)
	}
	if got := game.GetBoard().BallCount(); got != def.BallsPerRound {
		t.Errorf("Expected %d balls after opening round, got %d", def.BallsPerRound, got)
	}
}

func TestOpeningRoundEvents(t *testing.T) {
	recorder := NewRecorder()
	NewGameWith(testRules(), zeroRand{}, recorder, nil)

	events := recorder.Drain()
	// Queue dealt, three placements, queue redealt.
	if len(events) != 5 {
		t.Fatalf("Expected 5 opening events, got %d", len(events))
	}
	if events[0].Type != EventNextBallsChanged {
		t.Errorf("Expected first event %s, got %s", EventNextBallsChanged, events[0].Type)
	}
	for i := 1; i <= 3; i++ {
		if events[i].Type != EventBallPlaced {
			t.Errorf("Expected event %d to be %s, got %s", i, EventBallPlaced, events[i].Type)
		}
	}
	if events[4].Type != EventNextBallsChanged {
		t.Errorf("Expected last event %s, got %s", EventNextBallsChanged, events[4].Type)
	}
}

func TestSelectionCycle(t *testing.T) {
	game := NewGameWith(testRules(), zeroRand{}, nil, nil)
	clearBoard(game)
	game.GetBoard().Place(Position{Row: 2, Col: 2}, 1)
	game.GetBoard().Place(Position{Row: 3, Col: 3}, 2)

	if action := game.SelectOrMove(2, 2); action != ActionSelected {
		t.Fatalf("Expected select, got %s", action)
	}
	if game.GetStatus() != StatusSelected {
		t.Errorf("Expected selected status, got %s", game.GetStatus())
	}
	if sel := game.GetSelection(); sel == nil || *sel != (Position{Row: 2, Col: 2}) {
		t.Errorf("Expected selection (2,2), got %v", sel)
	}

	if action := game.SelectOrMove(2, 2); action != ActionDeselected {
		t.Fatalf("Expected deselect on same cell, got %s", action)
	}
	if game.GetStatus() != StatusIdle || game.GetSelection() != nil {
		t.Error("Expected idle with no selection after deselect")
	}

	game.SelectOrMove(2, 2)
	if action := game.SelectOrMove(3, 3); action != ActionReselected {
		t.Fatalf("Expected reselect on another ball, got %s", action)
	}
	if sel := game.GetSelection(); sel == nil || *sel != (Position{Row: 3, Col: 3}) {
		t.Errorf("Expected selection (3,3), got %v", sel)
	}
}

func TestClickIgnoredCases(t *testing.T) {
	game := NewGameWith(testRules(), zeroRand{}, nil, nil)
	clearBoard(game)
	game.GetBoard().Place(Position{Row: 4, Col: 4}, 1)

	t.Run("empty cell while idle", func(t *testing.T) {
		if action := game.SelectOrMove(0, 0); action != ActionIgnored {
			t.Errorf("Expected ignored, got %s", action)
		}
		if game.GetStatus() != StatusIdle {
			t.Errorf("Expected idle, got %s", game.GetStatus())
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		if action := game.SelectOrMove(-1, 0); action != ActionIgnored {
			t.Errorf("Expected ignored, got %s", action)
		}
		if action := game.SelectOrMove(9, 9); action != ActionIgnored {
			t.Errorf("Expected ignored, got %s", action)
		}
	})
}

func TestBlockedMoveKeepsSelection(t *testing.T) {
	game := NewGameWith(testRules(), zeroRand{}, nil, nil)
	clearBoard(game)
	// Ball in the corner, enclosed by its orthogonal neighbors.
	game.GetBoard().Place(Position{Row: 0, Col: 0}, 1)
	game.GetBoard().Place(Position{Row: 0, Col: 1}, 2)
	game.GetBoard().Place(Position{Row: 1, Col: 0}, 2)

	game.SelectOrMove(0, 0)
	if action := game.SelectOrMove(5, 5); action != ActionBlocked {
		t.Fatalf("Expected blocked move, got %s", action)
	}
	if game.GetStatus() != StatusSelected {
		t.Errorf("Expected to stay selected after blocked move, got %s", game.GetStatus())
	}
	if sel := game.GetSelection(); sel == nil || *sel != (Position{Row: 0, Col: 0}) {
		t.Errorf("Expected selection kept at (0,0), got %v", sel)
	}
	if !game.GetBoard().IsEmpty(Position{Row: 5, Col: 5}) {
		t.Error("Expected destination untouched after blocked move")
	}
}

func TestMoveCompletesLine(t *testing.T) {
	recorder := NewRecorder()
	game := NewGameWith(testRules(), zeroRand{}, recorder, nil)
	clearBoard(game)
	placeAll(game.GetBoard(), 1,
		Position{Row: 0, Col: 0},
		Position{Row: 0, Col: 1},
		Position{Row: 0, Col: 2},
		Position{Row: 0, Col: 3},
		Position{Row: 2, Col: 4},
	)
	recorder.Drain()

	if action := game.SelectOrMove(2, 4); action != ActionSelected {
		t.Fatalf("Expected select, got %s", action)
	}
	if got := recorder.Pending(); got != 0 {
		t.Errorf("Expected no events for a selection, got %d", got)
	}
	if action := game.SelectOrMove(0, 4); action != ActionMoved {
		t.Fatalf("Expected move, got %s", action)
	}

	if game.GetScore() != 5*PointsPerBall {
		t.Errorf("Expected score %d, got %d", 5*PointsPerBall, game.GetScore())
	}
	if got := game.GetBoard().BallCount(); got != 0 {
		t.Errorf("Expected cleared board, got %d balls", got)
	}
	if game.GetStatus() != StatusIdle {
		t.Errorf("Expected idle after resolution, got %s", game.GetStatus())
	}

	events := recorder.Drain()
	if len(events) != 7 {
		t.Fatalf("Expected 7 events (move, 5 removals, score), got %d", len(events))
	}
	if events[0].Type != EventBallMoved {
		t.Errorf("Expected first event %s, got %s", EventBallMoved, events[0].Type)
	}
	for i := 1; i <= 5; i++ {
		if events[i].Type != EventBallRemoved {
			t.Errorf("Expected event %d to be %s, got %s", i, EventBallRemoved, events[i].Type)
		}
	}
	last := events[6]
	if last.Type != EventScoreChanged || last.Score == nil || *last.Score != 50 {
		t.Errorf("Expected final score_changed(50), got %+v", last)
	}
}

func TestMoveWithoutCompletionSpawns(t *testing.T) {
	recorder := NewRecorder()
	game := NewGameWith(testRules(), zeroRand{}, recorder, nil)
	clearBoard(game)
	game.GetBoard().Place(Position{Row: 4, Col: 4}, 1)
	game.next = []Color{1, 1, 1}
	recorder.Drain()

	game.SelectOrMove(4, 4)
	if action := game.SelectOrMove(4, 5); action != ActionMoved {
		t.Fatalf("Expected move, got %s", action)
	}

	if got := game.GetBoard().BallCount(); got != 4 {
		t.Errorf("Expected moved ball plus 3 spawned, got %d balls", got)
	}
	if game.GetScore() != 0 {
		t.Errorf("Expected score unchanged, got %d", game.GetScore())
	}

	events := recorder.Drain()
	if len(events) != 5 {
		t.Fatalf("Expected 5 events (move, 3 placements, queue), got %d", len(events))
	}
	if events[0].Type != EventBallMoved {
		t.Errorf("Expected first event %s, got %s", EventBallMoved, events[0].Type)
	}
	for i := 1; i <= 3; i++ {
		if events[i].Type != EventBallPlaced {
			t.Errorf("Expected event %d to be %s, got %s", i, EventBallPlaced, events[i].Type)
		}
	}
	if events[4].Type != EventNextBallsChanged {
		t.Errorf("Expected last event %s, got %s", EventNextBallsChanged, events[4].Type)
	}
}

func TestMoveFollowsPathNotTeleport(t *testing.T) {
	recorder := NewRecorder()
	game := NewGameWith(testRules(), zeroRand{}, recorder, nil)
	clearBoard(game)
	game.GetBoard().Place(Position{Row: 0, Col: 0}, 2)
	recorder.Drain()

	game.SelectOrMove(0, 0)
	game.SelectOrMove(0, 3)

	events := recorder.Drain()
	if events[0].Type != EventBallMoved {
		t.Fatalf("Expected ball_moved first, got %s", events[0].Type)
	}
	path := events[0].Path
	if len(path) != 4 {
		t.Fatalf("Expected path of 4 cells, got %d", len(path))
	}
	if path[0] != (Position{Row: 0, Col: 0}) || path[3] != (Position{Row: 0, Col: 3}) {
		t.Errorf("Expected path endpoints (0,0)..(0,3), got %v", path)
	}
}

func TestTwoLinesRemovedInOnePass(t *testing.T) {
	recorder := NewRecorder()
	game := NewGameWith(testRules(), zeroRand{}, recorder, nil)
	clearBoard(game)
	// Horizontal arm and vertical arm meeting at the empty cell (4,4).
	placeAll(game.GetBoard(), 1,
		Position{Row: 4, Col: 0},
		Position{Row: 4, Col: 1},
		Position{Row: 4, Col: 2},
		Position{Row: 4, Col: 3},
		Position{Row: 0, Col: 4},
		Position{Row: 1, Col: 4},
		Position{Row: 2, Col: 4},
		Position{Row: 3, Col: 4},
		Position{Row: 6, Col: 6},
	)
	recorder.Drain()

	game.SelectOrMove(6, 6)
	game.SelectOrMove(4, 4)

	if game.GetScore() != 9*PointsPerBall {
		t.Errorf("Expected score %d for 9 balls in one pass, got %d", 9*PointsPerBall, game.GetScore())
	}
	if got := game.GetBoard().BallCount(); got != 0 {
		t.Errorf("Expected cleared board, got %d balls", got)
	}

	scoreEvents := 0
	for _, e := range recorder.Drain() {
		if e.Type == EventScoreChanged {
			scoreEvents++
		}
	}
	if scoreEvents != 1 {
		t.Errorf("Expected a single score event for one cascade pass, got %d", scoreEvents)
	}
}

func TestSpawnCascadeRemovesSpawnedLine(t *testing.T) {
	game := NewGameWith(testRules(), zeroRand{}, nil, nil)
	clearBoard(game)
	// Four balls waiting in row 0; the first spawn lands on (0,0) and
	// completes the line.
	placeAll(game.GetBoard(), 1,
		Position{Row: 0, Col: 1},
		Position{Row: 0, Col: 2},
		Position{Row: 0, Col: 3},
		Position{Row: 0, Col: 4},
	)
	game.GetBoard().Place(Position{Row: 5, Col: 5}, 2)
	game.next = []Color{1, 1, 1}

	game.SelectOrMove(5, 5)
	if action := game.SelectOrMove(5, 6); action != ActionMoved {
		t.Fatal("Expected move to succeed")
	}

	if game.GetScore() != 5*PointsPerBall {
		t.Errorf("Expected spawn cascade to score %d, got %d", 5*PointsPerBall, game.GetScore())
	}
	// Moved ball plus the second and third spawns; the first spawn was
	// removed together with the waiting line.
	if got := game.GetBoard().BallCount(); got != 3 {
		t.Errorf("Expected 3 balls after spawn cascade, got %d", got)
	}

	last := game.GetLastTurn()
	if last == nil || last.Action != ActionMoved {
		t.Fatalf("Expected moved entry in history, got %+v", last)
	}
	if last.Removed != 5 || last.Spawned != 3 {
		t.Errorf("Expected removed=5 spawned=3, got removed=%d spawned=%d", last.Removed, last.Spawned)
	}
}

func TestHistoryRecordsActions(t *testing.T) {
	game := NewGameWith(testRules(), zeroRand{}, nil, nil)
	clearBoard(game)
	game.GetBoard().Place(Position{Row: 2, Col: 2}, 1)
	game.next = []Color{1, 1, 1}

	game.SelectOrMove(2, 2)
	game.SelectOrMove(2, 2)
	game.SelectOrMove(2, 2)
	game.SelectOrMove(2, 5)

	history := game.GetHistory()
	wantActions := []Action{ActionSelected, ActionDeselected, ActionSelected, ActionMoved}
	if len(history) != len(wantActions) {
		t.Fatalf("Expected %d history entries, got %d", len(wantActions), len(history))
	}
	for i, want := range wantActions {
		if history[i].Action != want {
			t.Errorf("history[%d].Action = %s, want %s", i, history[i].Action, want)
		}
	}
	if history[0].Turn != 0 {
		t.Errorf("Expected selection recorded before any completed turn, got turn %d", history[0].Turn)
	}
	moved := history[3]
	if moved.Turn != 1 {
		t.Errorf("Expected move to complete turn 1, got %d", moved.Turn)
	}
	if moved.From == nil || *moved.From != (Position{Row: 2, Col: 2}) {
		t.Errorf("Expected move from (2,2), got %v", moved.From)
	}
	if moved.To == nil || *moved.To != (Position{Row: 2, Col: 5}) {
		t.Errorf("Expected move to (2,5), got %v", moved.To)
	}
}

func TestResetStartsFresh(t *testing.T) {
	scores := &fakeScores{}
	game := NewGameWith(testRules(), zeroRand{}, nil, scores)
	clearBoard(game)
	placeAll(game.GetBoard(), 1,
		Position{Row: 0, Col: 0},
		Position{Row: 0, Col: 1},
		Position{Row: 0, Col: 2},
		Position{Row: 0, Col: 3},
		Position{Row: 3, Col: 4},
	)
	game.SelectOrMove(3, 4)
	game.SelectOrMove(0, 4)
	if game.GetScore() == 0 {
		t.Fatal("Expected a scoring move before reset")
	}

	state := game.Reset()

	if state.Score != 0 {
		t.Errorf("Expected score reset to 0, got %d", state.Score)
	}
	if state.Status != StatusIdle {
		t.Errorf("Expected idle after reset, got %s", state.Status)
	}
	if got := game.GetBoard().BallCount(); got != 3 {
		t.Errorf("Expected fresh opening round of 3 balls, got %d", got)
	}
	if len(game.GetHistory()) != 0 {
		t.Error("Expected history cleared on reset")
	}
	if len(scores.added) != 0 {
		t.Errorf("Expected abandoned game not recorded, got %v", scores.added)
	}
}
