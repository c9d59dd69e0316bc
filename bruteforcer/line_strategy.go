package main

import (
	"log"
	"sort"
)

// LineStrategy builds one scoring line at a time. It picks the color with
// the most material on the board, reserves a row or column segment for it,
// evicts foreign balls from the segment and ferries matching balls in.
// When no planned move is possible it falls back to the greedy move with
// the longest resulting run.
type LineStrategy struct {
	size    int
	minLine int

	// Plan
	targetColor   int        // Color the reserved segment is collecting
	targetSegment []Position // Reserved cells, in order
	planAge       int        // Moves since the plan was made

	// State tracking
	failedMoves map[moveKey]int
	stuckCount  int
	lastScore   int
}

type moveKey struct {
	from, to Position
}

func NewLineStrategy(state *GameState) *LineStrategy {
	s := &LineStrategy{
		size:        state.BoardSize,
		minLine:     state.Rules.MinLine,
		failedMoves: make(map[moveKey]int),
	}

	log.Printf("📊 Line Strategy: %dx%d board, %d colors, lines of %d",
		s.size, s.size, len(state.Rules.Colors), s.minLine)

	// Plan the first line
	s.planLine(state)

	return s
}

// planLine reserves the best row or column segment for the most common
// color on the board.
func (s *LineStrategy) planLine(state *GameState) {
	s.targetSegment = nil
	s.planAge = 0

	counts := make(map[int]int)
	for _, row := range state.Cells {
		for _, cell := range row {
			if cell.Occupied {
				counts[cell.Color]++
			}
		}
	}
	if len(counts) == 0 {
		return
	}

	// Most common color first, ties broken on the lower color id so the
	// plan is deterministic.
	colors := make([]int, 0, len(counts))
	for color := range counts {
		colors = append(colors, color)
	}
	sort.Slice(colors, func(i, j int) bool {
		if counts[colors[i]] != counts[colors[j]] {
			return counts[colors[i]] > counts[colors[j]]
		}
		return colors[i] < colors[j]
	})

	for _, color := range colors {
		if segment := s.bestSegment(state, color); segment != nil {
			s.targetColor = color
			s.targetSegment = segment
			log.Printf("📋 Planned line: color %d from (%d,%d) to (%d,%d)",
				color, segment[0].Row, segment[0].Col,
				segment[len(segment)-1].Row, segment[len(segment)-1].Col)
			return
		}
	}

	log.Printf("⚠️  No line segment available for any color")
}

// bestSegment scores every row and column window of minLine cells for the
// color: cells already holding it count for the window, foreign balls
// count against it. A window is only viable when the board holds enough
// of the color overall.
func (s *LineStrategy) bestSegment(state *GameState, color int) []Position {
	total := 0
	for _, row := range state.Cells {
		for _, cell := range row {
			if cell.Occupied && cell.Color == color {
				total++
			}
		}
	}
	if total < s.minLine {
		return nil
	}

	var best []Position
	bestScore := -1 << 30

	consider := func(cells []Position) {
		inPlace, blockers := 0, 0
		for _, p := range cells {
			cell := state.Cells[p.Row][p.Col]
			if !cell.Occupied {
				continue
			}
			if cell.Color == color {
				inPlace++
			} else {
				blockers++
			}
		}
		score := inPlace*4 - blockers*3
		if score > bestScore {
			bestScore = score
			best = cells
		}
	}

	for row := 0; row < s.size; row++ {
		for col := 0; col+s.minLine <= s.size; col++ {
			cells := make([]Position, s.minLine)
			for i := range cells {
				cells[i] = Position{Row: row, Col: col + i}
			}
			consider(cells)
		}
	}
	for col := 0; col < s.size; col++ {
		for row := 0; row+s.minLine <= s.size; row++ {
			cells := make([]Position, s.minLine)
			for i := range cells {
				cells[i] = Position{Row: row + i, Col: col}
			}
			consider(cells)
		}
	}

	return best
}

// NextMove returns the next ball move as source and destination cells.
func (s *LineStrategy) NextMove(state *GameState) (Position, Position, bool) {
	// Track scoring progress
	if state.Score > s.lastScore {
		log.Printf("✅ Score: %d", state.Score)
		s.lastScore = state.Score
		s.stuckCount = 0
		// A cleared line reshapes the board, plan fresh
		s.planLine(state)
	} else {
		s.stuckCount++
	}

	s.planAge++
	if s.targetSegment == nil || s.planAge > 30 || s.stuckCount > 15 {
		s.planLine(state)
		s.stuckCount = 0
	}

	if from, to, ok := s.plannedMove(state); ok {
		return from, to, true
	}

	// Planned line is stalled, fall back to the best greedy move
	if from, to, ok := s.greedyMove(state); ok {
		return from, to, true
	}

	return Position{}, Position{}, false
}

// plannedMove works the reserved segment: evict foreign balls first, then
// ferry matching balls into the empty slots.
func (s *LineStrategy) plannedMove(state *GameState) (Position, Position, bool) {
	if s.targetSegment == nil {
		return Position{}, Position{}, false
	}

	inSegment := make(map[Position]bool, len(s.targetSegment))
	for _, p := range s.targetSegment {
		inSegment[p] = true
	}

	// Evict foreign balls so the lane is clear
	for _, p := range s.targetSegment {
		cell := state.Cells[p.Row][p.Col]
		if cell.Occupied && cell.Color != s.targetColor {
			if to, ok := s.nearestFreeCell(state, p, inSegment); ok && s.allowed(p, to) {
				return p, to, true
			}
		}
	}

	// Ferry matching balls into the empty slots
	for _, p := range s.targetSegment {
		if state.Cells[p.Row][p.Col].Occupied {
			continue
		}
		if from, ok := s.nearestBallOfColor(state, p, s.targetColor, inSegment); ok && s.allowed(from, p) {
			return from, p, true
		}
	}

	return Position{}, Position{}, false
}

// greedyMove tries every reachable (ball, empty cell) pair and keeps the
// one that yields the longest run of the ball's color through the
// destination. Runs are measured with the ball already moved, so vacating
// the source cell is priced in.
func (s *LineStrategy) greedyMove(state *GameState) (Position, Position, bool) {
	var bestFrom, bestTo Position
	bestRun := 0
	found := false

	for row := 0; row < s.size; row++ {
		for col := 0; col < s.size; col++ {
			from := Position{Row: row, Col: col}
			cell := state.Cells[row][col]
			if !cell.Occupied {
				continue
			}

			for to := range s.reachableCells(state, from) {
				if !s.allowed(from, to) {
					continue
				}
				run := s.runAfterMove(state, from, to, cell.Color)
				if run > bestRun {
					bestRun = run
					bestFrom, bestTo = from, to
					found = true
				}
			}
		}
	}

	if found {
		log.Printf("🎯 Greedy move (%d,%d)→(%d,%d), run %d",
			bestFrom.Row, bestFrom.Col, bestTo.Row, bestTo.Col, bestRun)
	}
	return bestFrom, bestTo, found
}

// nearestFreeCell floods outward from a ball over empty cells and returns
// the first reachable empty cell outside the excluded set.
func (s *LineStrategy) nearestFreeCell(state *GameState, from Position, exclude map[Position]bool) (Position, bool) {
	queue := []Position{from}
	visited := map[Position]bool{from: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range s.neighbors(current) {
			if visited[next] || state.Cells[next.Row][next.Col].Occupied {
				continue
			}
			visited[next] = true
			if !exclude[next] {
				return next, true
			}
			queue = append(queue, next)
		}
	}
	return Position{}, false
}

// nearestBallOfColor floods outward from an empty cell over empty cells
// and returns the first adjacent ball of the color. Any ball bordering
// the flooded region has an open path to the cell.
func (s *LineStrategy) nearestBallOfColor(state *GameState, to Position, color int, exclude map[Position]bool) (Position, bool) {
	queue := []Position{to}
	visited := map[Position]bool{to: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range s.neighbors(current) {
			if visited[next] {
				continue
			}
			visited[next] = true

			cell := state.Cells[next.Row][next.Col]
			if cell.Occupied {
				if cell.Color == color && !exclude[next] {
					return next, true
				}
				continue
			}
			queue = append(queue, next)
		}
	}
	return Position{}, false
}

// reachableCells floods outward from a ball and collects every empty cell
// it can reach through orthogonal steps.
func (s *LineStrategy) reachableCells(state *GameState, from Position) map[Position]bool {
	cells := make(map[Position]bool)
	queue := []Position{from}
	visited := map[Position]bool{from: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range s.neighbors(current) {
			if visited[next] || state.Cells[next.Row][next.Col].Occupied {
				continue
			}
			visited[next] = true
			cells[next] = true
			queue = append(queue, next)
		}
	}
	return cells
}

// runAfterMove measures the longest straight run of the color through to,
// counting the moved ball and ignoring the cell it came from.
func (s *LineStrategy) runAfterMove(state *GameState, from, to Position, color int) int {
	sameColor := func(p Position) bool {
		if p.Row < 0 || p.Row >= s.size || p.Col < 0 || p.Col >= s.size {
			return false
		}
		if p == from {
			return false
		}
		cell := state.Cells[p.Row][p.Col]
		return cell.Occupied && cell.Color == color
	}

	directions := [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	best := 1
	for _, d := range directions {
		run := 1
		for p := (Position{Row: to.Row + d[0], Col: to.Col + d[1]}); sameColor(p); p = (Position{Row: p.Row + d[0], Col: p.Col + d[1]}) {
			run++
		}
		for p := (Position{Row: to.Row - d[0], Col: to.Col - d[1]}); sameColor(p); p = (Position{Row: p.Row - d[0], Col: p.Col - d[1]}) {
			run++
		}
		if run > best {
			best = run
		}
	}
	return best
}

func (s *LineStrategy) neighbors(p Position) []Position {
	candidates := []Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}

	valid := make([]Position, 0, 4)
	for _, c := range candidates {
		if c.Row >= 0 && c.Row < s.size && c.Col >= 0 && c.Col < s.size {
			valid = append(valid, c)
		}
	}
	return valid
}

func (s *LineStrategy) allowed(from, to Position) bool {
	return s.failedMoves[moveKey{from: from, to: to}] < 2
}

// NoteFailed records a move the server rejected so it is not retried
// endlessly.
func (s *LineStrategy) NoteFailed(from, to Position) {
	s.failedMoves[moveKey{from: from, to: to}]++
	s.stuckCount += 5
}

func (s *LineStrategy) Reset() {
	s.failedMoves = make(map[moveKey]int)
	s.targetSegment = nil
	s.planAge = 0
	s.stuckCount = 0
	s.lastScore = 0
}
