package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/mazechase/game/engine"
)

// sessionRunner drives the recurring enemy and power ticks for one session.
// Each session gets its own goroutine so a slow session never stalls another.
type sessionRunner struct {
	sessionID   string
	enemyTicker *time.Ticker
	powerTicker *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once
}

func (r *sessionRunner) stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

func (r *sessionRunner) run(s *gameServiceImpl) {
	defer r.enemyTicker.Stop()
	defer r.powerTicker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-r.enemyTicker.C:
			if _, err := s.TickEnemies(context.Background(), r.sessionID); err != nil {
				// Session is gone, nothing left to drive
				return
			}
		case <-r.powerTicker.C:
			if _, err := s.TickPower(context.Background(), r.sessionID); err != nil {
				return
			}
		}
	}
}

// startRunner launches (or restarts) the tick runner for a session.
// Caller must hold s.mu.
func (s *gameServiceImpl) startRunner(sess *Session) {
	if s.disableRunners {
		return
	}

	enemyInterval := sess.Config.EnemyTickMillis
	if enemyInterval <= 0 {
		enemyInterval = engine.DefaultEnemyTickMillis
	}
	powerInterval := sess.Config.PowerTickMillis
	if powerInterval <= 0 {
		powerInterval = engine.DefaultPowerTickMillis
	}

	runner := &sessionRunner{
		sessionID:   sess.ID,
		enemyTicker: time.NewTicker(time.Duration(enemyInterval) * time.Millisecond),
		powerTicker: time.NewTicker(time.Duration(powerInterval) * time.Millisecond),
		done:        make(chan struct{}),
	}

	key := strings.ToLower(sess.ID)

	s.runnerMu.Lock()
	if old, ok := s.runners[key]; ok {
		old.stop()
	}
	s.runners[key] = runner
	s.runnerMu.Unlock()

	go runner.run(s)
}

// stopRunner cancels the tick runner for a session, if one is running.
func (s *gameServiceImpl) stopRunner(sessionID string) {
	key := strings.ToLower(sessionID)

	s.runnerMu.Lock()
	defer s.runnerMu.Unlock()

	if runner, ok := s.runners[key]; ok {
		runner.stop()
		delete(s.runners, key)
	}
}
