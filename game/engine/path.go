package engine

// pathNeighbors is the breadth-first expansion order: up, down, left,
// right. Diagonal cells are not adjacent for movement.
var pathNeighbors = [4]Position{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// ShortestPath returns a minimal orthogonal path from from to to through
// empty cells, including both endpoints. It returns nil when no path
// exists, when either endpoint is off the board, when the destination is
// occupied, or when from equals to. Ties between equally short paths are
// broken by the fixed expansion order, so the result is deterministic for
// a given board.
func ShortestPath(b *Board, from, to Position) []Position {
	if !b.InBounds(from) || !b.InBounds(to) {
		return nil
	}
	if from == to {
		return nil
	}
	if !b.IsEmpty(to) {
		return nil
	}

	visited := map[Position]bool{from: true}
	parent := make(map[Position]Position)
	queue := []Position{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == to {
			return rebuildPath(parent, from, to)
		}

		for _, d := range pathNeighbors {
			next := Position{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if !b.InBounds(next) || visited[next] {
				continue
			}
			// Only the goal cell may be entered without being empty;
			// with an occupied destination already rejected this keeps
			// the walk strictly on empty cells.
			if !b.IsEmpty(next) && next != to {
				continue
			}
			visited[next] = true
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

// rebuildPath walks the parent links from to back to from and reverses
// them into a from→to path.
func rebuildPath(parent map[Position]Position, from, to Position) []Position {
	var path []Position
	for cur := to; cur != from; cur = parent[cur] {
		path = append(path, cur)
	}
	path = append(path, from)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
