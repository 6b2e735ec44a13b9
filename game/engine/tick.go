package engine

import "math/rand"

// TickEnemies advances every enemy by one tick. Each enemy independently
// picks one of the four cardinal directions uniformly at random; if the
// resulting cell is in bounds and not a wall the enemy moves there,
// otherwise it stays put for this tick. There is no second attempt with a
// different direction. Enemies ignore each other, the player, and
// pellet/power cells; only walls block them.
//
// Wall topology is immutable, so every enemy decides against the same
// pre-tick snapshot regardless of iteration order. Collisions are resolved
// once, after all enemies have moved.
func (gs *GameState) TickEnemies(config *GameConfig, rng *rand.Rand) {
	if gs.GameOver {
		return
	}

	for i := range gs.Enemies {
		direction := Directions[rng.Intn(len(Directions))]
		dx, dy, _ := DirectionDelta(direction)

		newX := gs.Enemies[i].X + dx
		newY := gs.Enemies[i].Y + dy

		if gs.CanMoveTo(newX, newY) {
			gs.Enemies[i].X = newX
			gs.Enemies[i].Y = newY
		}
	}

	gs.ResolveCollisions(config)
}

// TickPower advances the power-mode countdown by one unit. It does nothing
// while power mode is inactive; the remaining time never goes negative.
func (gs *GameState) TickPower(config *GameConfig) {
	if !gs.PowerActive {
		return
	}

	gs.PowerRemaining--
	if gs.PowerRemaining <= 0 {
		gs.PowerRemaining = 0
		gs.PowerActive = false
		if config.Messages.PowerExpired != "" {
			gs.Message = config.Messages.PowerExpired
		}
	}
}
