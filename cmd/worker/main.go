package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/connecthub/adapters/event"
	"github.com/khoahotran/connecthub/adapters/persistence"
	searchUC "github.com/khoahotran/connecthub/internal/application/usecase/search"
	"github.com/khoahotran/connecthub/internal/config"
	"github.com/khoahotran/connecthub/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting ConnectHub trending worker...")

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	trendingStore := persistence.NewRedisTrendingStore(redisClient)

	// Worker Use Case
	processSearchEventUC := searchUC.NewProcessSearchEventUseCase(trendingStore, appLogger)

	// Kafka Consumer
	searchConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicSearchEvents,
		GroupID:  "trending-search-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer searchConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicSearchEvents)

	ctx := context.Background()
	for {
		msg, err := searchConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.SearchEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(searchConsumer, msg)
			continue
		}

		if err := processSearchEventUC.Execute(ctx, payload); err != nil {
			log.Printf("ERROR: Failed to process event %s: %v", payload.EventID, err)
			continue
		}

		commitMessage(searchConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
