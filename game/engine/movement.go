package engine

import (
	"fmt"
	"time"
)

// CanMoveTo checks if a mover may occupy the specified coordinates
func (gs *GameState) CanMoveTo(x, y int) bool {
	// Check bounds - handle non-square grids properly
	if y < 0 || y >= len(gs.Grid) {
		return false
	}
	if x < 0 || x >= len(gs.Grid[0]) {
		return false
	}
	// Only walls block movement; pellet and power cells are walkable
	return gs.Grid[y][x].Kind != Wall
}

// MovePlayer attempts to move the player in the specified direction.
// Invalid moves (unknown direction, out of bounds, into a wall, after
// game over) are silent no-ops that return false; no state changes.
func (gs *GameState) MovePlayer(direction string, config *GameConfig) bool {
	if gs.GameOver {
		return false
	}

	dx, dy, ok := DirectionDelta(direction)
	if !ok {
		return false
	}

	newX := gs.PlayerPos.X + dx
	newY := gs.PlayerPos.Y + dy

	if !gs.CanMoveTo(newX, newY) {
		blockedBy := "boundary"
		if newY >= 0 && newY < len(gs.Grid) && newX >= 0 && newX < len(gs.Grid[0]) {
			blockedBy = string(gs.Grid[newY][newX].Kind)
		}
		gs.Message = fmt.Sprintf("Can't move %s: %s at (%d,%d)", direction, blockedBy, newX, newY)
		if config.Messages.CantMove != "" {
			gs.Message = config.Messages.CantMove + fmt.Sprintf(" [Blocked by: %s]", blockedBy)
		}
		return false
	}

	// Move first, then consume whatever is on the target cell
	gs.PlayerPos.X = newX
	gs.PlayerPos.Y = newY

	currentCell := &gs.Grid[newY][newX]

	switch currentCell.Kind {
	case Pellet:
		gs.Score += config.PelletPoints
		currentCell.Kind = Empty
		gs.Message = fmt.Sprintf(config.Messages.PelletEaten, gs.Score)

	case Power:
		gs.Score += config.PowerPoints
		currentCell.Kind = Empty
		// Re-collecting refreshes the timer rather than stacking
		gs.PowerActive = true
		gs.PowerRemaining = config.PowerDuration
		gs.Message = fmt.Sprintf(config.Messages.PowerEaten, gs.Score)
	}

	// Collisions are evaluated once, after the positional update for
	// this event is applied.
	gs.ResolveCollisions(config)

	return true
}

// ResolveCollisions resolves every enemy occupying the player's cell.
// While power mode is active each co-located enemy is removed from the
// active set; otherwise the game ends. Neutralizing an enemy does not
// award points.
func (gs *GameState) ResolveCollisions(config *GameConfig) {
	remaining := gs.Enemies[:0]
	for _, enemy := range gs.Enemies {
		if enemy != gs.PlayerPos {
			remaining = append(remaining, enemy)
			continue
		}
		if gs.PowerActive {
			gs.EnemiesDown++
			if config.Messages.EnemyDown != "" {
				gs.Message = config.Messages.EnemyDown
			}
			continue
		}
		// Collision without power mode is terminal; the enemy stays put.
		remaining = append(remaining, enemy)
		gs.GameOver = true
		gs.Message = config.Messages.Caught
	}
	gs.Enemies = remaining
}

// GenerateLocalView creates the list of 8 surrounding cells around the player
func (gs *GameState) GenerateLocalView() []SurroundingCell {
	gridSize := len(gs.Grid)
	px, py := gs.PlayerPos.X, gs.PlayerPos.Y

	getCellKind := func(x, y int) CellKind {
		if x >= 0 && x < gridSize && y >= 0 && y < gridSize {
			return gs.Grid[y][x].Kind
		}
		return Wall // Out of bounds reads as wall
	}

	directions := []struct{ dx, dy int }{
		{0, -1},  // North
		{1, -1},  // North-East
		{1, 0},   // East
		{1, 1},   // South-East
		{0, 1},   // South
		{-1, 1},  // South-West
		{-1, 0},  // West
		{-1, -1}, // North-West
	}

	surroundings := make([]SurroundingCell, 8)
	for i, dir := range directions {
		x, y := px+dir.dx, py+dir.dy
		surroundings[i] = SurroundingCell{
			X:    x,
			Y:    y,
			Kind: getCellKind(x, y),
		}
	}

	return surroundings
}

// AddMoveToHistory adds a player move to the game's move history
func (gs *GameState) AddMoveToHistory(action string, fromPos, toPos Position, success bool) {
	entry := MoveHistoryEntry{
		Action:         action,
		FromPosition:   fromPos,
		ToPosition:     toPos,
		Score:          gs.Score,
		PowerRemaining: gs.PowerRemaining,
		Timestamp:      time.Now().Unix(),
		Success:        success,
		MoveNumber:     gs.TotalMoves + 1,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to current segment history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
