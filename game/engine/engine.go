package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetScore() int
	GetPlayerPosition() Position
	GetEnemies() []Position
	IsPowerActive() bool
	GetPowerRemaining() int

	// Event inputs
	Move(direction string) bool
	TickEnemies()
	TickPower()

	// Movement queries
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry

	// Local view
	GetLocalView() []SurroundingCell

	// Pellet accounting
	GetRemainingPellets() int
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
}

// NewEngine creates a new game engine with the provided configuration.
// The pellet seeding and enemy motion use a time-seeded RNG; use
// NewEngineWithRand for deterministic behavior in tests.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	return NewEngineWithRand(config, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithRand creates a new game engine using the provided random source
func NewEngineWithRand(config *GameConfig, rng *rand.Rand) (*GameEngine, error) {
	config.ApplyDefaults()
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		rng:    rng,
		state:  InitGameStateFromConfig(config, rng),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in configuration
func NewEngineWithDefaults() *GameEngine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := &GameEngine{
		config: DefaultGameConfig(),
		rng:    rng,
	}
	engine.state = InitGameStateFromConfig(engine.config, rng)
	return engine
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used by tests and headless harnesses)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// Reset re-runs initialization: a fresh pellet/power seeding, start
// positions, score zero. Cumulative move history survives the reset.
func (e *GameEngine) Reset() *GameState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	e.state = InitGameStateFromConfig(e.config, e.rng)

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	return e.state.PlayerPos
}

// GetEnemies returns the positions of the active enemies
func (e *GameEngine) GetEnemies() []Position {
	return e.state.Enemies
}

// IsPowerActive returns whether power mode is active
func (e *GameEngine) IsPowerActive() bool {
	return e.state.PowerActive
}

// GetPowerRemaining returns the remaining power-mode time units
func (e *GameEngine) GetPowerRemaining() int {
	return e.state.PowerRemaining
}

// Move attempts to move the player in the specified direction
func (e *GameEngine) Move(direction string) bool {
	if e.config == nil {
		return false
	}

	// Store previous position for history
	prevPos := e.state.PlayerPos
	success := e.state.MovePlayer(direction, e.config)

	// Add to history
	e.state.AddMoveToHistory(direction, prevPos, e.state.PlayerPos, success)

	return success
}

// TickEnemies advances all enemies by one tick
func (e *GameEngine) TickEnemies() {
	e.state.TickEnemies(e.config, e.rng)
}

// TickPower advances the power-mode countdown by one unit
func (e *GameEngine) TickPower() {
	e.state.TickPower(e.config)
}

// CanMove checks if the player can move in the specified direction
func (e *GameEngine) CanMove(direction string) bool {
	if e.state.GameOver {
		return false
	}

	dx, dy, ok := DirectionDelta(direction)
	if !ok {
		return false
	}

	return e.state.CanMoveTo(e.state.PlayerPos.X+dx, e.state.PlayerPos.Y+dy)
}

// GetPossibleMoves returns all valid directions the player can move
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	config.ApplyDefaults()
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config, e.rng)
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// GetLocalView returns the local view around the player
func (e *GameEngine) GetLocalView() []SurroundingCell {
	return e.state.GenerateLocalView()
}

// GetRemainingPellets returns the number of uncollected pellet and power cells
func (e *GameEngine) GetRemainingPellets() int {
	return CountCellKind(e.state.Grid, Pellet) + CountCellKind(e.state.Grid, Power)
}
