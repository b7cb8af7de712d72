package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/cognicore/kwscout/pkg/kwscout/analysis"
	"github.com/cognicore/kwscout/pkg/kwscout/config"
	"github.com/cognicore/kwscout/pkg/kwscout/store"
	"github.com/cognicore/kwscout/pkg/kwscout/store/sqlite"
)

func main() {
	var (
		keyword    = flag.String("keyword", "", "Keyword to analyze (required)")
		owner      = flag.String("owner", "", "Owner id (required)")
		configPath = flag.String("config", "", "Config file with llm settings (required)")
		dbPath     = flag.String("db", "", "SQLite database path (optional; analyses are persisted there)")
		ideas      = flag.Bool("ideas", false, "Expand content ideas instead of running a full analysis")
	)
	flag.Parse()

	if *keyword == "" {
		log.Fatal("--keyword required")
	}
	if *owner == "" {
		log.Fatal("--owner required")
	}
	if *configPath == "" {
		log.Fatal("--config required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	components := cfg.Components()

	ctx := context.Background()

	var st store.Store
	if *dbPath != "" {
		st, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer st.Close()
	}

	svc := analysis.New(components.LLM, st)

	if *ideas {
		existing := existingTitles(ctx, st, *owner, *keyword)
		newIdeas, err := svc.ExpandIdeas(ctx, *owner, *keyword, existing)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("New content ideas for %q:\n", *keyword)
		for _, idea := range newIdeas {
			fmt.Printf("  - %s (%s)\n", idea.Title, idea.Type)
		}
		return
	}

	res, err := svc.Analyze(ctx, *owner, *keyword)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== %s ===\n\n", *keyword)
	fmt.Println("Search intent:", res.SearchIntent)
	fmt.Println("Target audience:", res.TargetAudience)
	fmt.Println("\nContent ideas:")
	for _, idea := range res.ContentIdeas {
		fmt.Printf("  - %s (%s)\n", idea.Title, idea.Type)
	}
	fmt.Println("\nSecondary keywords:")
	for _, kw := range res.SecondaryKeywords {
		fmt.Println("  -", kw)
	}
	fmt.Println("\nDifficulty:", res.DifficultyAnalysis)
	fmt.Println("\nMonetization ideas:")
	for _, idea := range res.MonetizationIdeas {
		fmt.Println("  -", idea)
	}
}

// existingTitles collects idea titles already stored for this owner and
// keyword so the expansion prompt can exclude them.
func existingTitles(ctx context.Context, st store.Store, owner, keyword string) []string {
	if st == nil {
		return nil
	}

	records, err := st.AnalysesByOwner(ctx, owner, 50)
	if err != nil {
		log.Printf("read existing analyses: %v", err)
		return nil
	}

	var titles []string
	for _, rec := range records {
		if rec.Keyword != keyword {
			continue
		}
		for _, idea := range rec.ContentIdeas {
			titles = append(titles, idea.Title)
		}
	}
	return titles
}
