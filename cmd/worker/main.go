package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"presensi/internal/config"
	"presensi/internal/metrics"
	"presensi/internal/queue"
	"presensi/internal/storage"
	"presensi/internal/store"
)

// Worker consumes housekeeping notices and removes stray photo blobs: blobs
// uploaded for check-ins whose record insert failed, and blobs whose delete
// failed during an admin removal. A stray blob is a recoverable housekeeping
// issue, so failures here are logged and retried on the next notice, never
// fatal.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "presensi:housekeeping")
	}

	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		log.Fatal("Cloudinary not configured (CLOUDINARY_CLOUD_NAME / API_KEY / API_SECRET not set)")
	}
	blobs := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("housekeeping worker started, waiting for notices...")
	for msg := range messages {
		if msg.Type != queue.TypeOrphanBlob {
			continue
		}

		key := string(msg.Body)
		log.Printf("removing stray blob %s", key)

		if err := blobs.Delete(ctx, key); err != nil {
			log.Printf("stray blob %s removal failed: %v", key, err)
			continue
		}

		metrics.OrphanBlobsCleaned.Inc()
		log.Printf("stray blob %s removed", key)

		time.Sleep(10 * time.Millisecond) // Small delay between deletions
	}

	log.Println("worker stopped")
}
