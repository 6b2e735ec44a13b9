package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// ApplyDefaults fills the tuning fields a config file may omit. Zero values
// mean "use default"; explicit values are kept as-is.
func (c *GameConfig) ApplyDefaults() {
	if c.PelletPoints == 0 {
		c.PelletPoints = DefaultPelletPoints
	}
	if c.PowerPoints == 0 {
		c.PowerPoints = DefaultPowerPoints
	}
	if c.PowerDuration == 0 {
		c.PowerDuration = DefaultPowerDuration
	}
	// PowerCellChance is left alone: zero is a meaningful value (a maze
	// with no power items), so config files set it explicitly.
	if c.EnemyTickMillis == 0 {
		c.EnemyTickMillis = DefaultEnemyTickMillis
	}
	if c.PowerTickMillis == 0 {
		c.PowerTickMillis = DefaultPowerTickMillis
	}
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid size
	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}

	// Validate tuning
	if config.PelletPoints < 0 {
		return fmt.Errorf("config validation: pellet_points must not be negative, got %d", config.PelletPoints)
	}
	if config.PowerPoints < 0 {
		return fmt.Errorf("config validation: power_points must not be negative, got %d", config.PowerPoints)
	}
	if config.PowerDuration < 1 {
		return fmt.Errorf("config validation: power_duration must be at least 1, got %d", config.PowerDuration)
	}
	if config.PowerCellChance < 0 || config.PowerCellChance > 1 {
		return fmt.Errorf("config validation: power_cell_chance must be between 0 and 1, got %v", config.PowerCellChance)
	}
	if config.EnemyTickMillis < MinTickMillis || config.EnemyTickMillis > MaxTickMillis {
		return fmt.Errorf("config validation: enemy_tick_ms must be between %d and %d, got %d", MinTickMillis, MaxTickMillis, config.EnemyTickMillis)
	}
	if config.PowerTickMillis < MinTickMillis || config.PowerTickMillis > MaxTickMillis {
		return fmt.Errorf("config validation: power_tick_ms must be between %d and %d, got %d", MinTickMillis, MaxTickMillis, config.PowerTickMillis)
	}

	// Validate layout
	if len(config.Layout) != config.GridSize {
		return fmt.Errorf("config validation: layout must have %d rows to match grid_size, got %d",
			config.GridSize, len(config.Layout))
	}

	startCount := 0
	floorCount := 0
	for i, row := range config.Layout {
		if len(row) != config.GridSize {
			return fmt.Errorf("config validation: row %d must have %d characters to match grid_size, got %d",
				i+1, config.GridSize, len(row))
		}

		// Validate characters and count important cells
		for j, char := range row {
			switch char {
			case 'W', 'E': // Valid characters
			case '.':
				floorCount++
			case 'S':
				startCount++
			default:
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", char, i+1, j+1)
			}
		}
	}

	if startCount != 1 {
		return fmt.Errorf("config validation: layout must contain exactly one start (S) cell, got %d", startCount)
	}
	if floorCount == 0 {
		return fmt.Errorf("config validation: layout must contain at least one floor (.) cell")
	}

	// Validate legend
	requiredLegend := map[string]string{
		"W": "wall",
		".": "floor",
		"S": "start",
		"E": "enemy",
	}
	for key, expectedValue := range requiredLegend {
		if value, ok := config.Legend[key]; !ok || value != expectedValue {
			return fmt.Errorf("config validation: legend['%s'] must be '%s', got '%s'", key, expectedValue, value)
		}
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Caught == "" {
		return fmt.Errorf("config validation: messages.caught is required")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.PelletEaten, "%d") {
		return fmt.Errorf("config validation: messages.pellet_eaten must contain %%d for score")
	}
	if !strings.Contains(config.Messages.PowerEaten, "%d") {
		return fmt.Errorf("config validation: messages.power_eaten must contain %%d for score")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	// Validate the loaded configuration
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	// Add .json extension if not present
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	config, err := LoadGameConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return config, nil
}

// DefaultGameConfig returns the built-in 10x10 maze used when no config is provided
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:        "classic",
		Description: "Classic 10x10 maze chase",
		GridSize:    10,
		Layout: []string{
			"WWWWWWWWWW",
			"WS......EW",
			"W.WW.WW..W",
			"W........W",
			"W.W.WW.W.W",
			"W........W",
			"W.WW.W.W.W",
			"W........W",
			"W..W.W.W.W",
			"WWWWWWWWWW",
		},
		Legend: map[string]string{
			"W": "wall",
			".": "floor",
			"S": "start",
			"E": "enemy",
		},
		PowerCellChance: DefaultPowerCellChance,
	}
	config.ApplyDefaults()
	config.Messages.Welcome = "Welcome! Eat the pellets and dodge the enemies."
	config.Messages.PelletEaten = "Chomp! Score: %d"
	config.Messages.PowerEaten = "Power up! Score: %d"
	config.Messages.PowerExpired = "Power faded. Run!"
	config.Messages.EnemyDown = "Enemy neutralized!"
	config.Messages.Caught = "Caught by an enemy! Game Over!"
	config.Messages.CantMove = "Can't move there!"
	return config
}

// InitGameStateFromConfig creates a new game state using the provided
// configuration. Every floor cell is re-seeded as a pellet or a power item
// using rng, so two initializations of the same layout differ only in the
// pellet/power mix.
func InitGameStateFromConfig(config *GameConfig, rng *rand.Rand) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	gridSize := config.GridSize
	grid := make([][]Cell, gridSize)
	for i := range grid {
		grid[i] = make([]Cell, gridSize)
	}

	var playerPos Position
	enemies := []Position{}

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			if y < len(config.Layout) && x < len(config.Layout[y]) {
				switch config.Layout[y][x] {
				case 'W':
					grid[y][x] = Cell{Kind: Wall}
				case '.':
					if rng.Float64() < config.PowerCellChance {
						grid[y][x] = Cell{Kind: Power}
					} else {
						grid[y][x] = Cell{Kind: Pellet}
					}
				case 'S':
					grid[y][x] = Cell{Kind: Empty}
					playerPos = Position{X: x, Y: y}
				case 'E':
					grid[y][x] = Cell{Kind: Empty}
					enemies = append(enemies, Position{X: x, Y: y})
				}
			}
		}
	}

	return &GameState{
		Grid:              grid,
		PlayerPos:         playerPos,
		Enemies:           enemies,
		Score:             0,
		PowerActive:       false,
		PowerRemaining:    0,
		GameOver:          false,
		EnemiesDown:       0,
		Message:           config.Messages.Welcome,
		ConfigName:        config.Name,
		MoveHistory:       []MoveHistoryEntry{},
		TotalMoves:        0,
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}
}
