package events

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

// LifecycleEventHandler receives decoded lifecycle events from Kafka.
type LifecycleEventHandler interface {
	HandleOrderCreated(event OrderCreatedEvent) error
	HandleOrderStatusChanged(event OrderStatusChangedEvent) error
	HandleBillCreated(event BillCreatedEvent) error
}

type KafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       LifecycleEventHandler
	logger        *logrus.Logger
	topics        []string
}

type consumerGroupHandler struct {
	handler LifecycleEventHandler
	logger  *logrus.Logger
}

func NewKafkaConsumer(brokers, groupID string, handler LifecycleEventHandler, logger *logrus.Logger) (*KafkaConsumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Version = sarama.V2_6_0_0

	consumerGroup, err := sarama.NewConsumerGroup(strings.Split(brokers, ","), groupID, config)
	if err != nil {
		return nil, err
	}

	return &KafkaConsumer{
		consumerGroup: consumerGroup,
		handler:       handler,
		logger:        logger,
		topics:        []string{OrderCreatedTopic, OrderStatusChangedTopic, BillCreatedTopic},
	}, nil
}

func (c *KafkaConsumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		handler: c.handler,
		logger:  c.logger,
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Kafka consumer context cancelled")
			return nil
		default:
			if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
				c.logger.WithError(err).Error("Error consuming from Kafka")
				return err
			}
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.consumerGroup.Close()
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.logger.Info("Kafka consumer group session setup")
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.logger.Info("Kafka consumer group session cleanup")
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := h.handleMessage(message); err != nil {
				h.logger.WithError(err).WithFields(logrus.Fields{
					"topic":  message.Topic,
					"offset": message.Offset,
				}).Error("Failed to handle message")
				// Keep consuming even if one message fails
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			h.logger.Info("Consumer group session context cancelled")
			return nil
		}
	}
}

func (h *consumerGroupHandler) handleMessage(message *sarama.ConsumerMessage) error {
	switch message.Topic {
	case OrderCreatedTopic:
		var event OrderCreatedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			return err
		}
		return h.handler.HandleOrderCreated(event)

	case OrderStatusChangedTopic:
		var event OrderStatusChangedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			return err
		}
		return h.handler.HandleOrderStatusChanged(event)

	case BillCreatedTopic:
		var event BillCreatedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			return err
		}
		return h.handler.HandleBillCreated(event)

	default:
		h.logger.WithField("topic", message.Topic).Warn("Unknown topic received")
		return nil
	}
}
