package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"eventdesk/internal/events/handler"
	"eventdesk/internal/events/repository"
	"eventdesk/internal/events/service"
	"eventdesk/internal/events/validator"
	"eventdesk/pkg/app"
	"eventdesk/pkg/config"
	dbmongo "eventdesk/pkg/db/mongo"
	"eventdesk/pkg/kafka"
	kafka_config "eventdesk/pkg/kafka/config"
)

const (
	ServiceName = "events"
	KafkaTopic  = "events"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Events service")

	client, err := dbmongo.Acquire(context.Background(), cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	eventService := initServices(cfg, client)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, client, handler.NewEventHandler(eventService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, client *mongo.Client) service.EventService {
	eventValidator := validator.NewEventValidator(cfg.Log)
	eventRepo := repository.NewMongoEventRepository(cfg, client)
	eventService := service.NewEventService(
		eventRepo,
		eventValidator,
		initPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Event service initialized", "database", cfg.MongoDatabaseName)
	return eventService
}

// initPublisher returns nil when no brokers are configured; the service treats
// a nil publisher as publishing disabled.
func initPublisher(cfg *config.Config) service.Publisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka publishing disabled (no brokers configured)")
		return nil
	}

	producer, err := kafka.NewProducer(kafkaCfg, KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka publishing enabled", "topic", KafkaTopic, "brokers", kafkaCfg.Brokers)
	return producer
}
