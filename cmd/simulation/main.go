package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"asset-selector-be/internal/pkg/logger"
	"asset-selector-be/internal/service"
	"asset-selector-be/pkg/catalog"
	"asset-selector-be/pkg/matcher"
	"asset-selector-be/pkg/persistence"
	"asset-selector-be/pkg/recency"
	"asset-selector-be/pkg/selector"

	"github.com/fatih/color"
)

var defaultTitles = []string{
	"Markets rally as Powell signals rate cuts",
	"Stocks crash after weak jobs report",
	"Bitcoin swings wildly ahead of ETF decision",
	"Investors wait for earnings season",
	"Bulls on parade as S&P hits record high",
	"Musk says Tesla will go to the moon",
}

func main() {
	manifest := flag.String("manifest", "", "catalog manifest (.json, .yaml); empty uses the built-in catalog")
	rounds := flag.Int("rounds", 3, "passes over the title list")
	stateDir := flag.String("state-dir", "", "persist recency state under this directory between runs")
	step := flag.Duration("step", 7*time.Second, "simulated time between selections")
	flag.Parse()

	titles := defaultTitles
	if flag.NArg() > 0 {
		titles = flag.Args()
	}

	var source catalog.Source = catalog.StaticSource(nil)
	if *manifest != "" {
		source = catalog.NewFileSource(*manifest)
	}

	var fast persistence.Store = persistence.NewMemoryStore("memory")
	if *stateDir != "" {
		fast = persistence.NewLocalStore(*stateDir, 0)
	}
	adapter := persistence.NewAdapter(fast, nil, persistence.DefaultTimeout, logger.NewNopLogger())

	clock := time.Now()
	engine := service.NewSelectionService(
		matcher.New(matcher.DefaultTables()),
		selector.New(selector.WithClock(func() time.Time { return clock })),
		recency.NewTracker(recency.DefaultGlobalCapacity, recency.DefaultCategoryCapacity),
		adapter,
		nil,
		logger.NewNopLogger(),
		"",
	)

	ctx := context.Background()
	if err := engine.Initialize(ctx, source); err != nil {
		color.Yellow("⚠ catalog source failed, using built-in catalog: %v", err)
	}

	stats := engine.CatalogStats()
	color.Cyan("=== Asset Selection Simulation ===")
	fmt.Printf("Catalog: %d assets, %d categories\n\n", stats.Total, len(stats.ByCategory))

	seen := make(map[string]int)
	for r := 1; r <= *rounds; r++ {
		color.Blue("--- Round %d ---", r)
		for _, title := range titles {
			res := engine.SelectDetailed(ctx, title, "")
			seen[res.Asset.URL]++

			marker := color.GreenString("new")
			if seen[res.Asset.URL] > 1 {
				marker = color.YellowString("x%d", seen[res.Asset.URL])
			}
			fmt.Printf("%-45.45s %s %-9s %-8s %s [%s]\n",
				title,
				color.MagentaString("→"),
				res.Sentiment,
				res.Stage,
				res.Asset.URL,
				marker,
			)
			clock = clock.Add(*step)
		}
	}

	if err := engine.Flush(ctx); err != nil {
		color.Red("✗ flush failed: %v", err)
		os.Exit(1)
	}

	snap := engine.RecencySnapshot()
	fmt.Println()
	color.Green("✓ %d selections, %d distinct assets, %d in global recency", *rounds*len(titles), len(seen), len(snap.GlobalRecent))
}
