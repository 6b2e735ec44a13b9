// Package session stores active game sessions in memory and hands out short
// hex identifiers. Lookups are case-insensitive.
package session
