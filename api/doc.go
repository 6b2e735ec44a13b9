// Package api exposes the game service over REST. Routes live under /api;
// /ws upgrades spectator connections and hands them to the WebSocket hub.
package api
