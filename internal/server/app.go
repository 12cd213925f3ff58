package server

import (
	"context"
	"log"
	"time"

	"NovelEngine/internal/novel"
	"NovelEngine/internal/story"
)

const cleanupInterval = 60 * time.Second

// NewAppHub loads the story (the configured file, or the built-in one) and
// creates the hub that plays it.
func NewAppHub(cfg AppConfig) (*novel.Hub, error) {
	root, chapters := story.SeedRoot, story.SeedChapters()
	if cfg.StoryPath != "" {
		var err error
		root, chapters, err = story.LoadFile(cfg.StoryPath)
		if err != nil {
			return nil, err
		}
	}
	if err := story.Init(root, chapters); err != nil {
		return nil, err
	}
	graph := story.GetGraph()
	log.Printf("[story] graph initialized with %d chapters (%d endings, %d reachable)",
		len(graph.Chapters), len(graph.Endings()), len(graph.Reachable()))

	return novel.NewHub(graph, novel.HubConfig{
		SimHz:             cfg.SimHz,
		RevealInterval:    cfg.RevealIntervalS,
		DefaultPlayerName: cfg.DefaultPlayerName,
		Logger:            log.Default(),
		Debug:             cfg.Debug,
	}), nil
}

func StartApp(cfg AppConfig) {
	cfg = SanitizeAppConfig(cfg)
	hub, err := NewAppHub(cfg)
	if err != nil {
		log.Fatalf("failed to initialize story: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Periodic cleanup of abandoned playthroughs
	go func() {
		maxIdle := time.Duration(cfg.IdleTimeoutS * float64(time.Second))
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := hub.CleanupIdle(now, maxIdle); n > 0 {
					log.Printf("[hub] removed %d idle playthrough(s), %d live", n, hub.Len())
				}
			}
		}
	}()

	log.Printf("starting web server on %s (tick %.0f Hz, updates %.0f Hz, reveal %.3fs/char)",
		cfg.Addr, cfg.SimHz, cfg.UpdateRateHz, cfg.RevealIntervalS)
	startServer(hub, cfg)
}
