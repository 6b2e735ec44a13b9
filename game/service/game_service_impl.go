package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/mazechase/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex

	disableRunners bool
	runners        map[string]*sessionRunner
	runnerMu       sync.Mutex

	listener   StateListener
	listenerMu sync.RWMutex
}

// Options tunes service construction
type Options struct {
	// DisableRunners turns off the per-session tick goroutines. Headless
	// harnesses and tests then drive TickEnemies/TickPower directly.
	DisableRunners bool
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return NewGameServiceWithOptions(sessions, configs, Options{})
}

// NewGameServiceWithOptions creates a game service with explicit options
func NewGameServiceWithOptions(sessions SessionManager, configs ConfigManager, opts Options) GameService {
	return &gameServiceImpl{
		sessions:       sessions,
		configs:        configs,
		disableRunners: opts.DisableRunners,
		runners:        make(map[string]*sessionRunner),
	}
}

// SetStateListener registers the post-event snapshot callback. The listener
// runs with the service lock held and must not call back into the service.
func (s *gameServiceImpl) SetStateListener(listener StateListener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listener = listener
}

func (s *gameServiceImpl) notify(sessionID string, state *engine.GameState) {
	s.listenerMu.RLock()
	listener := s.listener
	s.listenerMu.RUnlock()

	if listener != nil {
		listener(sessionID, state)
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session and starts its tick runner
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.startRunner(session)

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session and cancels its recurring ticks
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopRunner(sessionID)
	return s.sessions.Delete(sessionID)
}

// Move executes a single player move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		s.startRunner(sess)
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	prevScore := sess.Engine.GetScore()
	prevPower := sess.Engine.IsPowerActive()
	prevEnemies := len(sess.Engine.GetEnemies())
	prevPos := sess.Engine.GetPlayerPosition()

	success := sess.Engine.Move(direction)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:       success,
		GameState:     state,
		Message:       state.Message,
		GameOver:      state.GameOver,
		PossibleMoves: sess.Engine.GetPossibleMoves(),
		ThreatLevel:   engine.ThreatLevel(state),
	}

	if success {
		events = append(events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("Moved %s to (%d,%d)", direction, state.PlayerPos.X, state.PlayerPos.Y),
			Timestamp: time.Now(),
			Position:  state.PlayerPos,
		})
		if state.Score > prevScore {
			eventType := "pellet"
			if state.PowerActive && !prevPower {
				eventType = "power"
			}
			events = append(events, GameEvent{
				Type:      eventType,
				Message:   state.Message,
				Timestamp: time.Now(),
				Position:  state.PlayerPos,
			})
		}
		if downed := prevEnemies - len(state.Enemies); downed > 0 {
			events = append(events, GameEvent{
				Type:      "enemy_down",
				Message:   fmt.Sprintf("%d enemy(ies) neutralized", downed),
				Timestamp: time.Now(),
				Position:  state.PlayerPos,
			})
		}
	} else if !state.GameOver {
		// Report the rejected target cell
		if dx, dy, ok := engine.DirectionDelta(direction); ok {
			attemptedX, attemptedY := prevPos.X+dx, prevPos.Y+dy
			kind := "boundary"
			if attemptedY >= 0 && attemptedY < len(state.Grid) && attemptedX >= 0 && attemptedX < len(state.Grid[0]) {
				kind = string(state.Grid[attemptedY][attemptedX].Kind)
			}
			result.AttemptedTo = &AttemptInfo{
				X:        attemptedX,
				Y:        attemptedY,
				CellKind: kind,
				Passable: false,
			}
		}
	}

	if state.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   state.Message,
			Timestamp: time.Now(),
			Position:  state.PlayerPos,
		})
		s.stopRunner(sessionID)
	}

	result.Events = events
	s.notify(sessionID, state)

	return result, nil
}

// Reset resets a session's game to its initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.Reset()
	s.startRunner(sess)
	s.notify(sessionID, state)

	return state, nil
}

// TickEnemies advances a session's enemies by one tick
func (s *gameServiceImpl) TickEnemies(ctx context.Context, sessionID string) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	prevEnemies := len(sess.Engine.GetEnemies())
	sess.Engine.TickEnemies()
	state := sess.Engine.GetState()

	events := []GameEvent{}
	if downed := prevEnemies - len(state.Enemies); downed > 0 {
		events = append(events, GameEvent{
			Type:      "enemy_down",
			Message:   fmt.Sprintf("%d enemy(ies) neutralized", downed),
			Timestamp: time.Now(),
			Position:  state.PlayerPos,
		})
	}
	if state.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   state.Message,
			Timestamp: time.Now(),
			Position:  state.PlayerPos,
		})
		s.stopRunner(sessionID)
	}

	s.notify(sessionID, state)

	return &TickResult{
		GameState:   state,
		Events:      events,
		GameOver:    state.GameOver,
		PowerActive: state.PowerActive,
		ThreatLevel: engine.ThreatLevel(state),
	}, nil
}

// TickPower advances a session's power countdown by one unit
func (s *gameServiceImpl) TickPower(ctx context.Context, sessionID string) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	wasActive := sess.Engine.IsPowerActive()
	sess.Engine.TickPower()
	state := sess.Engine.GetState()

	events := []GameEvent{}
	if wasActive && !state.PowerActive {
		events = append(events, GameEvent{
			Type:      "power_expired",
			Message:   state.Message,
			Timestamp: time.Now(),
			Position:  state.PlayerPos,
		})
	}

	if wasActive {
		s.notify(sessionID, state)
	}

	return &TickResult{
		GameState:   state,
		Events:      events,
		GameOver:    state.GameOver,
		PowerActive: state.PowerActive,
		ThreatLevel: engine.ThreatLevel(state),
	}, nil
}

// GetGameState returns the current state of a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns a session's paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()

	// Apply defaults and bounds
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	total := len(history)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	// Order: newest first unless asked otherwise
	ordered := make([]engine.MoveHistoryEntry, total)
	if opts.Order == "asc" {
		copy(ordered, history)
	} else {
		for i, entry := range history {
			ordered[total-1-i] = entry
		}
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Moves:       ordered[start:end],
		TotalMoves:  total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// ListConfigs returns the available maze configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a maze configuration by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig persists a maze configuration
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// Close stops every session runner
func (s *gameServiceImpl) Close() {
	s.runnerMu.Lock()
	defer s.runnerMu.Unlock()

	for id, runner := range s.runners {
		runner.stop()
		delete(s.runners, id)
	}
}
