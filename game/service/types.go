package service

import (
	"time"

	"github.com/wricardo/mcp-training/mazechase/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	GameOver      bool     `json:"game_over"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
	ThreatLevel   string   `json:"threat_level,omitempty"`
}

// TickResult contains the result of an enemy or power tick
type TickResult struct {
	GameState   *engine.GameState `json:"game_state"`
	Events      []GameEvent       `json:"events,omitempty"`
	GameOver    bool              `json:"game_over"`
	PowerActive bool              `json:"power_active"`
	ThreatLevel string            `json:"threat_level,omitempty"`
}

// AttemptInfo details the target cell of a rejected move
type AttemptInfo struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	CellKind string `json:"cell_kind"`
	Passable bool   `json:"passable"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "pellet", "power", "power_expired", "enemy_down", "game_over", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	GridSize      int    `json:"grid_size"`
	EnemyCount    int    `json:"enemy_count"`
	PowerDuration int    `json:"power_duration"`
}
