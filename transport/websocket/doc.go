// Package websocket pushes live game state to browser spectators. A single
// hub goroutine owns the session subscription map; per-connection read and
// write pumps handle keepalive pings and slow-consumer eviction.
package websocket
