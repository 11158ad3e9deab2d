package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/cognicore/argus/internal/collector"
	"github.com/cognicore/argus/pkg/argus/config"
	"github.com/cognicore/argus/pkg/argus/post"
	"github.com/cognicore/argus/pkg/argus/store/sqlite"
)

func main() {
	var (
		keywordsPath = flag.String("keywords", "", "Keywords YAML file (required)")
		outPath      = flag.String("out", "", "Output JSONL file")
		dbPath       = flag.String("db", "", "SQLite database path")
		apiBase      = flag.String("api", "https://api.twitter.com", "Search API base URL")
		limit        = flag.Int("limit", 100, "Max results per keyword chunk")
	)
	flag.Parse()

	if *keywordsPath == "" {
		log.Fatal("--keywords required")
	}
	if *outPath == "" && *dbPath == "" {
		log.Fatal("--out or --db required")
	}

	// .env is optional; the token may come from the environment directly
	_ = godotenv.Load()
	bearer := os.Getenv("TWITTER_BEARER_TOKEN")
	if bearer == "" {
		log.Fatal("TWITTER_BEARER_TOKEN is not set")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	kw, err := config.LoadKeywords(*keywordsPath)
	if err != nil {
		log.Fatalf("load keywords: %v", err)
	}

	client := collector.New(*apiBase, bearer, logger)
	posts, err := client.Collect(ctx, kw.Terms, *limit)
	if err != nil {
		log.Fatalf("collect: %v", err)
	}
	log.Printf("Collected %d posts", len(posts))

	if *outPath != "" {
		if err := post.SaveJSONL(*outPath, posts); err != nil {
			log.Fatalf("save posts: %v", err)
		}
		log.Printf("Raw posts written to %s", *outPath)
	}

	if *dbPath != "" {
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()

		if err := st.UpsertRawPosts(ctx, posts); err != nil {
			log.Fatalf("store posts: %v", err)
		}
		log.Printf("Raw posts stored in %s", *dbPath)
	}
}
