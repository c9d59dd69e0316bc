package engine

import "sort"

// lineDirections are the four scan axes: horizontal, vertical and the two
// diagonals. Each axis is walked in both directions from the probe cell,
// so the opposite vectors are not listed.
var lineDirections = [4]Position{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: 1, Col: -1},
}

// FindLines returns every position that belongs to a monochrome run of at
// least minLine cells along any of the four axes. Overlapping and crossing
// runs are merged, so each position appears once. The result is sorted in
// row-major order; an empty board or no qualifying run yields an empty
// slice.
func FindLines(b *Board, minLine int) []Position {
	marked := make(map[Position]bool)

	for _, dir := range lineDirections {
		for row := 0; row < b.Size(); row++ {
			for col := 0; col < b.Size(); col++ {
				p := Position{Row: row, Col: col}
				if marked[p] {
					continue
				}
				color, ok := b.ColorAt(p)
				if !ok {
					continue
				}
				run := runThrough(b, p, dir, color)
				if len(run) < minLine {
					continue
				}
				for _, q := range run {
					marked[q] = true
				}
			}
		}
	}

	found := make([]Position, 0, len(marked))
	for p := range marked {
		found = append(found, p)
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Row != found[j].Row {
			return found[i].Row < found[j].Row
		}
		return found[i].Col < found[j].Col
	})
	return found
}

// runThrough collects the maximal run of same-colored balls through p
// along dir, walking backwards to the run's start and then forward to its
// end.
func runThrough(b *Board, p Position, dir Position, color Color) []Position {
	start := p
	for {
		prev := Position{Row: start.Row - dir.Row, Col: start.Col - dir.Col}
		if c, ok := b.ColorAt(prev); !ok || c != color {
			break
		}
		start = prev
	}

	var run []Position
	for cur := start; ; cur = (Position{Row: cur.Row + dir.Row, Col: cur.Col + dir.Col}) {
		if c, ok := b.ColorAt(cur); !ok || c != color {
			break
		}
		run = append(run, cur)
	}
	return run
}
