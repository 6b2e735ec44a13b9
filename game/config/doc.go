// Package config loads maze configurations from JSON files and caches them.
// Configs are validated on load; invalid files are skipped when listing.
package config
