package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/events"
)

// lifecycleLogger prints every lifecycle event the shop emits. It is a
// tail -f over the Kafka topics for operators and demos.
type lifecycleLogger struct {
	logger *logrus.Logger
}

func (l *lifecycleLogger) HandleOrderCreated(event events.OrderCreatedEvent) error {
	l.logger.WithFields(logrus.Fields{
		"order_id":     event.OrderID,
		"total_amount": event.TotalAmount,
		"total_weight": event.TotalWeight,
		"products":     len(event.ProductList),
	}).Info("Order created")
	return nil
}

func (l *lifecycleLogger) HandleOrderStatusChanged(event events.OrderStatusChangedEvent) error {
	l.logger.WithFields(logrus.Fields{
		"order_id": event.OrderID,
		"from":     event.PreviousStatus,
		"to":       event.NewStatus,
	}).Info("Order status changed")
	return nil
}

func (l *lifecycleLogger) HandleBillCreated(event events.BillCreatedEvent) error {
	l.logger.WithFields(logrus.Fields{
		"bill_id":      event.BillID,
		"order_id":     event.OrderID,
		"total_amount": event.TotalAmount,
	}).Info("Bill created")
	return nil
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	kafkaBrokers := getEnv("KAFKA_BROKERS", "localhost:9092")
	groupID := getEnv("CONSUMER_GROUP", "shop-monitor")

	var consumer *events.KafkaConsumer
	var err error

	// Retry connecting to Kafka
	for i := 0; i < 10; i++ {
		consumer, err = events.NewKafkaConsumer(kafkaBrokers, groupID, &lifecycleLogger{logger: logger}, logger)
		if err == nil {
			logger.Info("Successfully connected to Kafka")
			break
		}

		logger.WithError(err).WithField("attempt", i+1).Warn("Failed to connect to Kafka, retrying...")
		time.Sleep(5 * time.Second)
	}

	if err != nil {
		logger.WithError(err).Fatal("Failed to create Kafka consumer after retries")
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.WithField("brokers", kafkaBrokers).Info("Starting shop monitor")
		if err := consumer.Start(ctx); err != nil {
			logger.WithError(err).Error("Kafka consumer error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down shop monitor")
	cancel()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
