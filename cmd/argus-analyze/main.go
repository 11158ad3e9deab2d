package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/cognicore/argus/pkg/argus/config"
	"github.com/cognicore/argus/pkg/argus/post"
	"github.com/cognicore/argus/pkg/argus/store"
	"github.com/cognicore/argus/pkg/argus/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Engine config YAML file")
		inputPath  = flag.String("input", "", "Raw posts JSONL file")
		dbPath     = flag.String("db", "", "SQLite database path")
		outPath    = flag.String("out", "", "Analyzed posts JSONL file (overrides config)")
		gexfPath   = flag.String("gexf", "", "Mention graph GEXF file (overrides config)")
		viewerPath = flag.String("viewer", "", "Mention graph viewer HTML file (overrides config)")
	)
	flag.Parse()

	if *inputPath == "" && *dbPath == "" {
		log.Fatal("--input or --db required")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	loader := config.Loader{Config: cfg, Logger: logger}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load components: %v", err)
	}

	var st store.Store
	if *dbPath != "" {
		st, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()
	}

	// Input: JSONL file wins, otherwise the store's raw posts
	var posts []post.Post
	if *inputPath != "" {
		posts, err = post.LoadJSONL(*inputPath)
		if err != nil {
			log.Fatalf("load posts: %v", err)
		}
	} else {
		posts, err = st.GetRawPosts(ctx)
		if err != nil {
			log.Fatalf("read raw posts: %v", err)
		}
	}
	log.Printf("Loaded %d posts", len(posts))

	engine := components.Engine
	enriched, report, err := engine.Run(ctx, posts)
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}
	log.Printf("Run %s: %d posts, %d hostile (bot stage: %v, geo stage: %v)",
		report.RunID, report.PostCount, report.HostileCount, report.BotStageRan, report.GeoStageRan)

	outputs := components.Outputs
	if *outPath != "" {
		outputs.Analyzed = *outPath
	}
	if *gexfPath != "" {
		outputs.GEXF = *gexfPath
	}
	if *viewerPath != "" {
		outputs.Viewer = *viewerPath
	}

	if outputs.Analyzed != "" {
		if err := post.SaveJSONL(outputs.Analyzed, enriched); err != nil {
			log.Fatalf("save analyzed posts: %v", err)
		}
		log.Printf("Analyzed posts written to %s", outputs.Analyzed)
	}

	g := engine.BuildGraph(enriched)
	engine.ExportGraph(g, outputs.GEXF, outputs.Viewer)
	if !g.Empty() {
		log.Printf("Mention graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}

	if st != nil {
		if err := st.PutAnalyzedPosts(ctx, report.RunID, enriched); err != nil {
			log.Fatalf("store analyzed posts: %v", err)
		}
		if err := st.PutRun(ctx, store.Run{
			ID:           report.RunID,
			StartedAt:    report.StartedAt,
			FinishedAt:   report.FinishedAt,
			PostCount:    report.PostCount,
			HostileCount: report.HostileCount,
			BotStageRan:  report.BotStageRan,
			GeoStageRan:  report.GeoStageRan,
		}); err != nil {
			log.Fatalf("store run: %v", err)
		}
		log.Printf("Run %s recorded", report.RunID)
	}
}
