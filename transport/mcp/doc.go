// Package mcp exposes the game to MCP clients as a set of tools. It is a
// thin proxy: every tool call turns into a REST request against the API
// server, and responses are rendered as text an agent can read.
package mcp
