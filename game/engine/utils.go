package engine

// CountCellKind counts the cells of a specific kind in the grid
func CountCellKind(grid [][]Cell, kind CellKind) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell.Kind == kind {
				count++
			}
		}
	}
	return count
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// FindNearestPellet finds the closest uncollected pellet or power cell and
// returns its position and distance
func FindNearestPellet(state *GameState) (Position, int, bool) {
	minDistance := -1
	var nearestPos Position
	found := false

	for y := 0; y < len(state.Grid); y++ {
		for x := 0; x < len(state.Grid[y]); x++ {
			kind := state.Grid[y][x].Kind
			if kind != Pellet && kind != Power {
				continue
			}
			pos := Position{X: x, Y: y}
			distance := ManhattanDistance(state.PlayerPos, pos)
			if minDistance == -1 || distance < minDistance {
				minDistance = distance
				nearestPos = pos
				found = true
			}
		}
	}

	return nearestPos, minDistance, found
}

// NearestEnemyDistance returns the Manhattan distance to the closest active
// enemy, or -1 when no enemies remain
func NearestEnemyDistance(state *GameState) int {
	minDistance := -1
	for _, enemy := range state.Enemies {
		distance := ManhattanDistance(state.PlayerPos, enemy)
		if minDistance == -1 || distance < minDistance {
			minDistance = distance
		}
	}
	return minDistance
}

// ThreatLevel gives a coarse danger reading based on enemy proximity and
// power mode, surfaced to clients alongside the state snapshot
func ThreatLevel(state *GameState) string {
	if state.GameOver {
		return "GAME OVER"
	}
	if state.PowerActive {
		return "HUNTING: Enemies are edible"
	}

	distance := NearestEnemyDistance(state)
	switch {
	case distance == -1:
		return "clear: no enemies left"
	case distance <= 1:
		return "CRITICAL: Enemy adjacent!"
	case distance <= 3:
		return "DANGER: Enemy closing in"
	case distance <= 6:
		return "CAUTION: Enemy nearby"
	}
	return "SAFE: Enemies far away"
}
