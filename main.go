package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kambleakash0/substack-monitor/api"
	"github.com/kambleakash0/substack-monitor/archive"
	"github.com/kambleakash0/substack-monitor/config"
	"github.com/kambleakash0/substack-monitor/events"
	"github.com/kambleakash0/substack-monitor/notifier"
	"github.com/kambleakash0/substack-monitor/pinger"
	"github.com/kambleakash0/substack-monitor/store"
	"github.com/kambleakash0/substack-monitor/substack"
	"github.com/kambleakash0/substack-monitor/summarizer"
	"github.com/kambleakash0/substack-monitor/worker"
)

func main() {
	log.SetOutput(os.Stderr)

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	source := substack.NewClient(cfg.SubstackURL)
	summarizerClient := summarizer.NewClient(cfg.CohereAPIKey, cfg.CohereModel)
	notifierClient := notifier.NewClient(cfg.PostmarkToken, cfg.SenderEmail)

	pipeline := worker.NewPipeline(source, summarizerClient, notifierClient, cfg.Recipients)

	if archiver := initializeArchiver(cfg); archiver != nil {
		pipeline.WithArchiver(archiver)
	}
	if publisher := initializePublisher(cfg); publisher != nil {
		defer publisher.Close()
		pipeline.WithPublisher(publisher)
	}

	w := worker.New(pipeline, initializeStore(cfg), cfg.CheckInterval)
	w.Start()

	p := pinger.New(cfg.PublicURL, cfg.PingInterval)
	p.Start()

	addr := ":" + cfg.Port
	r := api.NewRouter(w, p)
	log.Printf("Monitoring %s every %s", cfg.SubstackURL, cfg.CheckInterval)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /")
	log.Println("  GET  /health")
	log.Println("  POST /start")
	log.Println("  POST /stop")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializeStore returns the Redis-backed store if configured, falling back
// to the in-memory store with a warning when Redis is unreachable.
func initializeStore(cfg *config.Config) store.Store {
	if cfg.RedisAddr == "" {
		return store.NewMemory()
	}

	rs, err := store.NewRedis(store.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Printf("Warning: %v. Falling back to in-memory store.", err)
		return store.NewMemory()
	}
	return rs
}

// initializeArchiver returns an S3 summary archiver if configured via env.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX, S3_USE_PATH_STYLE=true
func initializeArchiver(cfg *config.Config) *archive.Archiver {
	if cfg.S3Bucket == "" {
		log.Printf("S3 not configured; skipping summary archive")
		return nil
	}

	s3c, err := archive.NewS3(context.Background(), archive.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (archive disabled)", err)
		return nil
	}
	return archive.NewArchiver(s3c, cfg.S3Bucket, cfg.S3Prefix)
}

// initializePublisher returns a Kafka event publisher when brokers are configured.
func initializePublisher(cfg *config.Config) *events.KafkaPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	pub, err := events.NewKafkaPublisher(events.PublisherConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		log.Printf("Warning: failed to init Kafka publisher: %v (events disabled)", err)
		return nil
	}
	return pub
}
