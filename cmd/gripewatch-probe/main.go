// Command gripewatch-probe runs one live fetch for an entity and prints the
// parsed complaints as JSON. Nothing is persisted
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"gripewatch/internal/adapters/scrape"
	"gripewatch/internal/platform/config"
	"gripewatch/internal/platform/logger"
)

func main() {
	root := config.New()
	l := logger.Get()

	var (
		fEntity  = flag.String("entity", "", "entity name to fetch (required)")
		fSearch  = flag.Bool("search", false, "resolve the entity through upstream search instead of the direct slug")
		fTimeout = flag.Duration("timeout", 0, "override the scrape timeout, eg 15s")
	)
	flag.Parse()

	if *fEntity == "" {
		l.Panic().Msg("probe requires -entity")
	}

	opts := scrape.FromConfig(root.Prefix("SCRAPE_"))
	if *fTimeout > 0 {
		opts.Timeout = *fTimeout
	}
	client := scrape.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout+5*time.Second)
	defer cancel()

	fetch := client.Fetch
	if *fSearch {
		fetch = client.FetchViaSearch
	}

	recs, err := fetch(ctx, *fEntity)
	if err != nil {
		l.Fatal().Err(err).Str("entity", *fEntity).Msg("probe fetch failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		l.Fatal().Err(err).Msg("probe encode failed")
	}
	l.Info().Str("entity", *fEntity).Int("complaints", len(recs)).Msg("probe complete")
}
