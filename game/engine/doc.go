// Package engine provides the core game logic for the Maze Chase game.
//
// The engine package implements the game mechanics including:
//   - Grid-based movement and wall collision detection
//   - Pellet and power-item seeding and consumption
//   - Random enemy motion on a fixed tick cadence
//   - The timed power-mode state machine
//   - Collision resolution between player and enemies
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents the current game state,
// while GameConfig defines the maze layout and tuning loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the player; tick enemies on a cadence
//	success := gameEngine.Move("up")
//	gameEngine.TickEnemies()
//	state := gameEngine.GetState()
//
// Game Rules:
//
// The player navigates a fixed maze collecting pellets (10 points) and power
// items (50 points). Enemies wander randomly; touching one ends the game
// unless power mode is active, in which case the enemy is removed instead.
// Power mode lasts a fixed number of time units and a fresh power item
// refreshes the timer rather than stacking. Everything is in-memory for the
// duration of one session.
package engine
