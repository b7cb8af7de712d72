package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/cognicore/kwscout/pkg/kwscout"
	"github.com/cognicore/kwscout/pkg/kwscout/config"
)

func main() {
	var (
		seeds        = flag.String("seeds", "", "Comma-separated seed phrases (required)")
		configPath   = flag.String("config", "", "Config file (optional)")
		deep         = flag.Bool("deep", false, "Alphabet-soup expansion (a-z, 0-9)")
		questions    = flag.Bool("questions", false, "Question-word expansion")
		prepositions = flag.Bool("prepositions", false, "Preposition expansion")
		match        = flag.String("match", "broad", "Match type: broad, phrase or exact")
		apiKey       = flag.String("apikey", "", "Metrics API key (optional; without it volume/CPC stay zero)")
	)
	flag.Parse()

	if *seeds == "" {
		log.Fatal("--seeds required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	components := cfg.Components()

	engine := kwscout.New(kwscout.Options{
		Suggest:    components.Suggest,
		Metrics:    components.Metrics,
		Expander:   components.Expander,
		Classifier: components.Classifier,
	})

	results, err := engine.Discover(context.Background(), kwscout.DiscoverRequest{
		Seeds:        *seeds,
		Deep:         *deep,
		Questions:    *questions,
		Prepositions: *prepositions,
		MatchType:    kwscout.MatchType(*match),
		APIKey:       *apiKey,
	})
	if err != nil {
		log.Fatal(err)
	}

	if len(results) == 0 {
		fmt.Println("No keywords found.")
		return
	}

	fmt.Printf("%-40s %8s %5s %8s %-14s %-14s %6s %6s\n",
		"KEYWORD", "VOLUME", "DIFF", "CPC", "INTENT", "FUNNEL", "BUYER", "MONEY")
	fmt.Println(strings.Repeat("-", 108))
	for _, r := range results {
		fmt.Printf("%-40s %8d %5d %8s %-14s %-14s %6d %6d\n",
			truncate(r.Keyword, 40), r.Volume, r.Difficulty, r.CPC,
			r.Intent, r.FunnelStage, r.BuyerIntentScore, r.MonetizationScore)
	}
	fmt.Printf("\n%d keywords\n", len(results))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
