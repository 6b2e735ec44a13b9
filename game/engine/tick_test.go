package engine

import (
	"math/rand"
	"testing"
)

func TestTickPower_CountsDownToInactive(t *testing.T) {
	state, config := newTestState(t)

	state.PowerActive = true
	state.PowerRemaining = 3

	state.TickPower(config)
	if !state.PowerActive || state.PowerRemaining != 2 {
		t.Errorf("Expected Active(2), got active=%v remaining=%d", state.PowerActive, state.PowerRemaining)
	}

	state.TickPower(config)
	if !state.PowerActive || state.PowerRemaining != 1 {
		t.Errorf("Expected Active(1), got active=%v remaining=%d", state.PowerActive, state.PowerRemaining)
	}

	// Active(1) -> Inactive on the following elapse
	state.TickPower(config)
	if state.PowerActive || state.PowerRemaining != 0 {
		t.Errorf("Expected Inactive, got active=%v remaining=%d", state.PowerActive, state.PowerRemaining)
	}
	if state.Message != config.Messages.PowerExpired {
		t.Errorf("Expected power expired message, got %q", state.Message)
	}
}

func TestTickPower_InactiveIsNoOp(t *testing.T) {
	state, config := newTestState(t)

	for i := 0; i < 5; i++ {
		state.TickPower(config)
	}
	if state.PowerActive {
		t.Error("Expected power mode to stay inactive")
	}
	if state.PowerRemaining != 0 {
		t.Errorf("Expected remaining to stay 0, never negative, got %d", state.PowerRemaining)
	}
}

func TestTickPower_PickupDuringExpiryRefreshes(t *testing.T) {
	state, config := newTestState(t)

	// Timer at its final unit expires on this tick...
	state.PowerActive = true
	state.PowerRemaining = 1
	state.TickPower(config)
	if state.PowerActive {
		t.Fatal("Expected power mode expired")
	}

	// ...and a power pickup processed as the next event refreshes in full
	state.Grid[1][2].Kind = Power
	state.MovePlayer("right", config)
	if !state.PowerActive || state.PowerRemaining != config.PowerDuration {
		t.Errorf("Expected power refreshed to Active(%d), got active=%v remaining=%d",
			config.PowerDuration, state.PowerActive, state.PowerRemaining)
	}
}

func TestTickEnemies_NeverEntersWall(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(42))

	// Keep the player out of the way so collisions don't end the run
	state.PlayerPos = Position{X: -10, Y: -10}

	for i := 0; i < 500; i++ {
		state.TickEnemies(config, rng)
		for _, enemy := range state.Enemies {
			if enemy.X < 0 || enemy.X >= config.GridSize || enemy.Y < 0 || enemy.Y >= config.GridSize {
				t.Fatalf("Tick %d: enemy out of bounds at (%d,%d)", i, enemy.X, enemy.Y)
			}
			if state.Grid[enemy.Y][enemy.X].Kind == Wall {
				t.Fatalf("Tick %d: enemy inside wall at (%d,%d)", i, enemy.X, enemy.Y)
			}
		}
	}
}

func TestTickEnemies_BoxedInEnemyStaysPut(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(42))

	// Wall off every neighbor of the enemy at (3,3)
	state.Grid[2][3].Kind = Wall
	state.Grid[3][2].Kind = Wall
	// (4,3) and (3,4) are already border walls

	for i := 0; i < 50; i++ {
		state.TickEnemies(config, rng)
		if state.Enemies[0].X != 3 || state.Enemies[0].Y != 3 {
			t.Fatalf("Expected boxed-in enemy to stay at (3,3), got (%d,%d)",
				state.Enemies[0].X, state.Enemies[0].Y)
		}
	}
}

func TestTickEnemies_IgnoresPellets(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(9))

	state.PlayerPos = Position{X: -10, Y: -10}
	before := CountCellKind(state.Grid, Pellet) + CountCellKind(state.Grid, Power)

	for i := 0; i < 200; i++ {
		state.TickEnemies(config, rng)
	}

	after := CountCellKind(state.Grid, Pellet) + CountCellKind(state.Grid, Power)
	if before != after {
		t.Errorf("Expected enemies to leave pellets alone: before %d, after %d", before, after)
	}
}

func TestTickEnemies_StopsAfterGameOver(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(5))

	state.GameOver = true
	before := make([]Position, len(state.Enemies))
	copy(before, state.Enemies)

	for i := 0; i < 50; i++ {
		state.TickEnemies(config, rng)
	}

	for i, enemy := range state.Enemies {
		if enemy != before[i] {
			t.Errorf("Expected enemy %d frozen at %v after game over, got %v", i, before[i], enemy)
		}
	}
}

func TestTickEnemies_CollisionResolvedAfterMoves(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(11))

	// Enemy already shares the player's cell before the tick; the
	// resolution pass at the end of the tick must catch it even if the
	// enemy fails to move.
	state.PowerActive = true
	state.PowerRemaining = 2
	state.Enemies = []Position{state.PlayerPos}
	state.Grid[0][1].Kind = Wall // no escape upward from (1,1)

	state.TickEnemies(config, rng)

	// Whether the enemy moved or not, it is no longer on the player's cell
	for _, enemy := range state.Enemies {
		if enemy == state.PlayerPos {
			t.Error("Expected no enemy left on the player's cell after resolution")
		}
	}
}
