package engine

// ColorCounts tallies the balls on the board by color.
func ColorCounts(b *Board) map[Color]int {
	counts := make(map[Color]int)
	for row := 0; row < b.Size(); row++ {
		for col := 0; col < b.Size(); col++ {
			if color, ok := b.ColorAt(Position{Row: row, Col: col}); ok {
				counts[color]++
			}
		}
	}
	return counts
}

// CountColor returns the number of balls of a specific color on the board.
func CountColor(b *Board, color Color) int {
	count := 0
	for row := 0; row < b.Size(); row++ {
		for col := 0; col < b.Size(); col++ {
			if c, ok := b.ColorAt(Position{Row: row, Col: col}); ok && c == color {
				count++
			}
		}
	}
	return count
}

// LongestRun returns the length of the longest monochrome run on the
// board along any of the four line axes, 0 for an empty board.
func LongestRun(b *Board) int {
	best := 0
	for _, dir := range lineDirections {
		for row := 0; row < b.Size(); row++ {
			for col := 0; col < b.Size(); col++ {
				p := Position{Row: row, Col: col}
				color, ok := b.ColorAt(p)
				if !ok {
					continue
				}
				// Only measure from the start of a run.
				prev := Position{Row: p.Row - dir.Row, Col: p.Col - dir.Col}
				if c, ok := b.ColorAt(prev); ok && c == color {
					continue
				}
				length := 0
				for cur := p; ; cur = (Position{Row: cur.Row + dir.Row, Col: cur.Col + dir.Col}) {
					if c, ok := b.ColorAt(cur); !ok || c != color {
						break
					}
					length++
				}
				if length > best {
					best = length
				}
			}
		}
	}
	return best
}

// AnalyzeSpawnPressure rates how close the board is to refusing a spawn
// round, based on the remaining empty cells against the spawn size.
func AnalyzeSpawnPressure(b *Board, rules Rules) string {
	empty := b.EmptyCount()
	switch {
	case empty < rules.BallsPerRound:
		return "CRITICAL: next spawn round cannot be placed!"
	case empty < rules.BallsPerRound*2:
		return "DANGER: one spawn round from game over!"
	case empty <= b.Size()*b.Size()/3:
		return "CAUTION: board filling up, clear lines soon"
	}
	return "SAFE: plenty of room"
}
