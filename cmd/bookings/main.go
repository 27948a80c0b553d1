package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"eventdesk/internal/bookings/handler"
	"eventdesk/internal/bookings/repository"
	"eventdesk/internal/bookings/service"
	"eventdesk/internal/bookings/validator"
	eventsrepository "eventdesk/internal/events/repository"
	"eventdesk/pkg/app"
	"eventdesk/pkg/config"
	dbmongo "eventdesk/pkg/db/mongo"
	"eventdesk/pkg/kafka"
	kafka_config "eventdesk/pkg/kafka/config"
)

const (
	ServiceName = "bookings"
	KafkaTopic  = "bookings"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Bookings service")

	client, err := dbmongo.Acquire(context.Background(), cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	bookingService := initServices(cfg, client)
	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, client, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, client *mongo.Client) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg, client)

	// The events repository doubles as the directory for the referential
	// integrity check on booking writes.
	eventDirectory := eventsrepository.NewMongoEventRepository(cfg, client)

	bookingService := service.NewBookingService(
		bookingRepo,
		eventDirectory,
		bookingValidator,
		initPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
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
