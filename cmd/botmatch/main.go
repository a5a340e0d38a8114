package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/karno/battleline/internal/bot"
	"github.com/karno/battleline/internal/config"
	"github.com/karno/battleline/internal/logger"
)

func main() {
	logger.Init()

	cfg := config.Load()

	var (
		playerA  string
		playerB  string
		numGames int
		workers  int
		maxTurns int
		seed     int64
		jsonOut  bool
	)

	flag.StringVar(&playerA, "a", cfg.PlayerA, "Strategy for side A (random, greedy)")
	flag.StringVar(&playerB, "b", cfg.PlayerB, "Strategy for side B (random, greedy)")
	flag.IntVar(&numGames, "n", cfg.Games, "Number of games to run")
	flag.IntVar(&workers, "workers", 1, "Concurrency (parallel games)")
	flag.IntVar(&maxTurns, "max-turns", cfg.MaxTurns, "Max turns before draw")
	flag.Int64Var(&seed, "seed", cfg.Seed, "Base seed (0 = random)")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")

	flag.Parse()

	results := make([]*bot.ArenaResult, numGames)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := 0; i < numGames; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			gameSeed := seed
			if seed != 0 {
				gameSeed = seed + int64(idx)
			}

			results[idx] = bot.RunGame(bot.ArenaConfig{
				StrategyA: bot.StrategyForName(playerA),
				StrategyB: bot.StrategyForName(playerB),
				Seed:      gameSeed,
				MaxTurns:  maxTurns,
			})
		}(i)
	}
	wg.Wait()

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatal().Err(err).Msg("Encoding results failed")
		}
		return
	}

	wins := map[string]int{}
	totalTurns := 0
	for _, r := range results {
		key := r.Winner
		if key == "" {
			key = "draw"
		}
		wins[key]++
		totalTurns += r.Turns
	}
	fmt.Printf("games: %d  (%s vs %s)\n", numGames, playerA, playerB)
	for _, k := range []string{"a", "b", "draw"} {
		fmt.Printf("  %-5s %d\n", k, wins[k])
	}
	if numGames > 0 {
		fmt.Printf("  avg turns: %.1f\n", float64(totalTurns)/float64(numGames))
	}
}
