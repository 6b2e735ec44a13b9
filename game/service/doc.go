// Package service coordinates game sessions on top of the engine.
//
// It owns the locking that serializes every game event for a session:
// player moves, enemy ticks and power-countdown ticks all pass through the
// same mutex, so the engine itself stays single-threaded. For each live
// session the service runs a small goroutine with two tickers that fire the
// recurring enemy and power ticks at the cadence the maze config asks for.
// Runners are cancelled when the session is deleted, when the game ends,
// and when the service is closed.
package service
