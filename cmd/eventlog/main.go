package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fyyur/internal/config"
	"fyyur/internal/kafka"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

func main() {
	group := flag.String("group", "fyyur-eventlog", "consumer group id")
	list := flag.Bool("list", false, "print the topics known to the brokers and exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := logger.NewLogger(cfg.Log)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *list {
		topics, err := kafka.ListTopics(ctx, cfg.Kafka.Brokers)
		if err != nil {
			logger.Fatal("KAFKA", fmt.Sprintf("Failed to list topics: %v", err))
		}
		for _, t := range topics {
			fmt.Println(t)
		}
		return
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.All(), *group, logger)
	logger.Info("APP", fmt.Sprintf("Tailing booking events from %v", cfg.Kafka.Topics.All()))

	err := consumer.Start(ctx, func(topic string, event models.BookingEvent) {
		logger.LogBooking(event.Type, event.ID, fmt.Sprintf("%s at %s via %s", event.Name, event.OccurredAt.Format("2006-01-02 15:04:05"), topic))
	})
	if err != nil {
		logger.Fatal("KAFKA", fmt.Sprintf("Consumer stopped: %v", err))
	}
	logger.Info("APP", "Event log stopped")
}
