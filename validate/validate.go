// Command validate provides a small CLI that validates maze configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Grid consistency and allowed characters (W, ., S, E)
//   - Exactly one player start (S)
//   - Scoring and timing constraints
//   - Required message keys
//   - Connectivity: every floor cell is reachable from the start
//
// A layout whose border is not solid wall produces a warning, not an error.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a maze configuration.
type Config struct {
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
	Messages        map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes contains informational and warning lines;
// otherwise Errors accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing name")
	}

	// Validate grid
	if len(config.Layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout is empty")
		return result
	}

	if config.GridSize > 0 && len(config.Layout) != config.GridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Layout has %d rows but grid_size is %d", len(config.Layout), config.GridSize))
	}

	gridWidth := -1
	startCount := 0
	enemyCount := 0
	floorCount := 0
	validChars := map[rune]bool{
		'W': true, // wall
		'.': true, // floor (pellet or power seeded at init)
		'S': true, // player start
		'E': true, // enemy start
	}

	for i, row := range config.Layout {
		if gridWidth == -1 {
			gridWidth = len(row)
		} else if len(row) != gridWidth {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, gridWidth, len(row)))
		}

		for j, char := range row {
			if !validChars[char] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", char, i+1, j+1))
			}
			switch char {
			case 'S':
				startCount++
				floorCount++
			case 'E':
				enemyCount++
				floorCount++
			case '.':
				floorCount++
			}
		}
	}

	if startCount != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Must have exactly 1 player start (S), found %d", startCount))
	}

	if floorCount == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout has no floor cells")
	}

	// Validate scoring and timing
	if config.PelletPoints < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("pellet_points must not be negative, got %d", config.PelletPoints))
	}
	if config.PowerPoints < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("power_points must not be negative, got %d", config.PowerPoints))
	}
	if config.PowerDuration < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("power_duration must not be negative, got %d", config.PowerDuration))
	}
	if config.PowerCellChance < 0 || config.PowerCellChance > 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("power_cell_chance must be between 0 and 1, got %g", config.PowerCellChance))
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"pellet_eaten",
		"power_eaten",
		"caught",
	}
	for _, msg := range requiredMessages {
		if _, exists := config.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Border check is a warning: the engine treats the boundary as solid
	// anyway, so an open border only changes the look of the maze.
	if borderOpen(config.Layout) {
		result.Notes = append(result.Notes, "⚠ Border is not solid wall")
	}

	// Connectivity: every floor cell reachable from the start
	if result.Valid {
		connectivity := validateConnectivity(config.Layout)
		if !connectivity.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, connectivity.Errors...)
		}
		result.Notes = append(result.Notes, connectivity.Notes...)
	}

	if result.Valid {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Grid: %dx%d", len(config.Layout), gridWidth))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Floor cells: %d", floorCount))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Enemies: %d", enemyCount))
	}

	return result
}

// borderOpen reports whether any border cell is not a wall.
func borderOpen(layout []string) bool {
	height := len(layout)
	for y, row := range layout {
		for x, char := range row {
			onBorder := y == 0 || y == height-1 || x == 0 || x == len(row)-1
			if onBorder && char != 'W' {
				return true
			}
		}
	}
	return false
}

// validateConnectivity flood-fills from the player start over floor cells
// and reports any floor cell the player could never reach.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{Valid: true}

	height := len(layout)
	width := len(layout[0])

	startX, startY := -1, -1
	totalFloor := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			switch layout[y][x] {
			case 'S':
				startX, startY = x, y
				totalFloor++
			case '.', 'E':
				totalFloor++
			}
		}
	}

	if startX < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No player start found for connectivity test")
		return result
	}

	passable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
			return false
		}
		c := layout[y][x]
		return c == '.' || c == 'S' || c == 'E'
	}

	visited := make(map[[2]int]bool)
	queue := [][2]int{{startX, startY}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		directions := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			next := [2]int{current[0] + dir[0], current[1] + dir[1]}
			if !visited[next] && passable(next[0], next[1]) {
				queue = append(queue, next)
			}
		}
	}

	unreachable := totalFloor - len(visited)
	if unreachable > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d floor cells unreachable from start", unreachable, totalFloor))
		for y := 0; y < height; y++ {
			for x := 0; x < width && x < len(layout[y]); x++ {
				c := layout[y][x]
				if (c == '.' || c == 'E') && !visited[[2]int{x, y}] {
					result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: floor at (%d,%d)", x, y))
				}
			}
		}
	} else {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Connectivity: All %d floor cells reachable from start", totalFloor))
	}

	return result
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting non-zero if any are invalid.
func main() {
	configDir := flag.String("dir", "../configs", "directory containing maze config JSON files")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, note := range result.Notes {
				fmt.Println("  " + note)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
