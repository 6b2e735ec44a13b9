// Command simulate runs headless random playthroughs directly against the
// game engine. It is the quickest way to sanity-check a maze config: no
// server, no timers, just the game rules at full speed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/mazechase/game/engine"
)

// gameResult summarizes one simulated playthrough.
type gameResult struct {
	Score        int
	Moves        int
	PelletsLeft  int
	PowerPickups int
	EnemiesDown  int
	Cleared      bool
	Caught       bool
}

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "run headless random playthroughs against a maze config",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "games",
				Value: 20,
				Usage: "number of games to simulate",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 0,
				Usage: "RNG seed (0 picks one from the clock)",
			},
			&cli.IntFlag{
				Name:  "max-moves",
				Value: 500,
				Usage: "move budget per game before giving up",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a maze config JSON file (default: built-in maze)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print a line per game",
			},
		},
		Action: runSimulation,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSimulation(ctx context.Context, cmd *cli.Command) error {
	config, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	seed := int64(cmd.Int("seed"))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	games := int(cmd.Int("games"))
	maxMoves := int(cmd.Int("max-moves"))
	verbose := cmd.Bool("verbose")

	fmt.Printf("Simulating %d games on %q (seed %d, move budget %d)\n\n",
		games, config.Name, seed, maxMoves)

	results := make([]gameResult, 0, games)
	for i := 0; i < games; i++ {
		result, err := playGame(config, rng, maxMoves)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		results = append(results, result)

		if verbose {
			outcome := "budget exhausted"
			if result.Cleared {
				outcome = "CLEARED"
			} else if result.Caught {
				outcome = "caught"
			}
			fmt.Printf("game %3d: score=%4d moves=%4d power=%d downed=%d left=%d %s\n",
				i+1, result.Score, result.Moves, result.PowerPickups,
				result.EnemiesDown, result.PelletsLeft, outcome)
		}
	}

	printSummary(results)
	return nil
}

// loadConfig reads a maze config from disk, or falls back to the built-in one.
func loadConfig(path string) (*engine.GameConfig, error) {
	if path == "" {
		return engine.DefaultGameConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.ApplyDefaults()
	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// playGame drives one game with a random walker. Player moves, enemy ticks
// and power ticks are interleaved the way the server runners fire them.
func playGame(config *engine.GameConfig, rng *rand.Rand, maxMoves int) (gameResult, error) {
	gameEngine, err := engine.NewEngineWithRand(config, rng)
	if err != nil {
		return gameResult{}, err
	}

	var result gameResult
	powerWasActive := false

	for result.Moves < maxMoves {
		state := gameEngine.GetState()
		if state.GameOver {
			result.Caught = true
			break
		}
		if gameEngine.GetRemainingPellets() == 0 {
			result.Cleared = true
			break
		}

		possible := gameEngine.GetPossibleMoves()
		if len(possible) == 0 {
			break
		}

		direction := possible[rng.Intn(len(possible))]
		gameEngine.Move(direction)
		result.Moves++

		if gameEngine.IsPowerActive() && !powerWasActive {
			result.PowerPickups++
		}
		powerWasActive = gameEngine.IsPowerActive()

		gameEngine.TickEnemies()

		// Power ticks run on their own timer on the server; here one power
		// tick per two player moves keeps the ratio comparable.
		if result.Moves%2 == 0 {
			gameEngine.TickPower()
		}
	}

	final := gameEngine.GetState()
	result.Score = final.Score
	result.EnemiesDown = final.EnemiesDown
	result.PelletsLeft = gameEngine.GetRemainingPellets()
	if final.GameOver {
		result.Caught = true
	}

	return result, nil
}

func printSummary(results []gameResult) {
	if len(results) == 0 {
		return
	}

	var totalScore, totalMoves, totalPower, totalDowned int
	cleared, caught := 0, 0
	minScore, maxScore := results[0].Score, results[0].Score

	for _, r := range results {
		totalScore += r.Score
		totalMoves += r.Moves
		totalPower += r.PowerPickups
		totalDowned += r.EnemiesDown
		if r.Cleared {
			cleared++
		}
		if r.Caught {
			caught++
		}
		if r.Score < minScore {
			minScore = r.Score
		}
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	n := len(results)
	fmt.Printf("\n=== Summary (%d games) ===\n", n)
	fmt.Printf("Score:        min=%d max=%d avg=%.1f\n", minScore, maxScore, float64(totalScore)/float64(n))
	fmt.Printf("Survival:     avg %.1f moves\n", float64(totalMoves)/float64(n))
	fmt.Printf("Power pickups: %.2f per game\n", float64(totalPower)/float64(n))
	fmt.Printf("Enemies downed: %.2f per game\n", float64(totalDowned)/float64(n))
	fmt.Printf("Outcomes:     cleared %d/%d, caught %d/%d\n", cleared, n, caught, n)
}
