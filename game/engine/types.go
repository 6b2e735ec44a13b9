package engine

// CellKind represents the different kinds of maze cells
type CellKind string

const (
	Wall   CellKind = "wall"
	Empty  CellKind = "empty"
	Pellet CellKind = "pellet"
	Power  CellKind = "power"

	// Validation constants
	MinGridSize   = 5
	MaxGridSize   = 50
	MinTickMillis = 50
	MaxTickMillis = 60000

	// Defaults applied when a config omits the tuning fields
	DefaultPelletPoints    = 10
	DefaultPowerPoints     = 50
	DefaultPowerDuration   = 5
	DefaultPowerCellChance = 0.1
	DefaultEnemyTickMillis = 500
	DefaultPowerTickMillis = 1000

	WebSocketBufferSize = 256
)

// Cell represents a single maze cell
type Cell struct {
	Kind CellKind `json:"kind"`
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Directions lists the names the movement code accepts. Any other string is
// rejected as a no-op.
var Directions = []string{"up", "down", "left", "right"}

// DirectionDelta maps a direction name to its unit vector.
// ok is false for anything other than the four cardinal directions.
func DirectionDelta(direction string) (dx, dy int, ok bool) {
	switch direction {
	case "up":
		return 0, -1, true
	case "down":
		return 0, 1, true
	case "left":
		return -1, 0, true
	case "right":
		return 1, 0, true
	}
	return 0, 0, false
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	GridSize        int               `json:"grid_size"`
	Layout          []string          `json:"layout"`
	Legend          map[string]string `json:"legend"`
	PelletPoints    int               `json:"pellet_points"`
	PowerPoints     int               `json:"power_points"`
	PowerDuration   int               `json:"power_duration"`
	PowerCellChance float64           `json:"power_cell_chance"`
	EnemyTickMillis int               `json:"enemy_tick_ms"`
	PowerTickMillis int               `json:"power_tick_ms"`
	Messages        struct {
		Welcome      string `json:"welcome"`
		PelletEaten  string `json:"pellet_eaten"`
		PowerEaten   string `json:"power_eaten"`
		PowerExpired string `json:"power_expired"`
		EnemyDown    string `json:"enemy_down"`
		Caught       string `json:"caught"`
		CantMove     string `json:"cant_move"`
	} `json:"messages"`
}

// SurroundingCell represents a cell with its absolute position
type SurroundingCell struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Kind CellKind `json:"kind"`
}

// GameState represents the complete game state
type GameState struct {
	Grid           [][]Cell           `json:"grid"`
	PlayerPos      Position           `json:"player_pos"`
	Enemies        []Position         `json:"enemies"`
	Score          int                `json:"score"`
	PowerActive    bool               `json:"power_active"`
	PowerRemaining int                `json:"power_remaining"`
	GameOver       bool               `json:"game_over"`
	EnemiesDown    int                `json:"enemies_down"`
	Message        string             `json:"message"`
	ConfigName     string             `json:"config_name"`
	MoveHistory    []MoveHistoryEntry `json:"move_history"`
	TotalMoves     int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors
	// MoveHistory entries but gets cleared on reset while MoveHistory
	// remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single player move in the game history
type MoveHistoryEntry struct {
	Action         string   `json:"action"`
	FromPosition   Position `json:"from_position"`
	ToPosition     Position `json:"to_position"`
	Score          int      `json:"score"`
	PowerRemaining int      `json:"power_remaining"`
	Timestamp      int64    `json:"timestamp"`
	Success        bool     `json:"success"`
	MoveNumber     int      `json:"move_number"`
}
