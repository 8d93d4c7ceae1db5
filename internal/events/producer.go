package events

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

const (
	OrderCreatedTopic       = "order.created"
	OrderStatusChangedTopic = "order.status_changed"
	BillCreatedTopic        = "bill.created"
)

type OrderCreatedEvent struct {
	OrderID        string    `json:"order_id"`
	TotalAmount    float64   `json:"total_amount"`
	ShipmentAmount float64   `json:"shipment_amount"`
	TotalWeight    float64   `json:"total_weight"`
	ProductList    []string  `json:"product_list"`
	CreatedAt      time.Time `json:"created_at"`
	EventTime      time.Time `json:"event_time"`
}

type OrderStatusChangedEvent struct {
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	TotalAmount    float64   `json:"total_amount"`
	EventTime      time.Time `json:"event_time"`
}

type BillCreatedEvent struct {
	BillID      string    `json:"bill_id"`
	OrderID     string    `json:"order_id"`
	TotalAmount float64   `json:"total_amount"`
	EventTime   time.Time `json:"event_time"`
}

// KafkaProducer publishes order lifecycle events. It satisfies the
// orders.EventPublisher interface.
type KafkaProducer struct {
	producer sarama.SyncProducer
	logger   *logrus.Logger
}

func NewKafkaProducer(brokers string, logger *logrus.Logger) (*KafkaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), config)
	if err != nil {
		return nil, err
	}

	return &KafkaProducer{
		producer: producer,
		logger:   logger,
	}, nil
}

func (p *KafkaProducer) PublishOrderCreated(order models.Order) error {
	event := OrderCreatedEvent{
		OrderID:        order.ID,
		TotalAmount:    order.TotalAmount,
		ShipmentAmount: order.ShipmentAmount,
		TotalWeight:    order.TotalWeight,
		ProductList:    order.ProductList,
		CreatedAt:      order.CreatedAt,
		EventTime:      time.Now(),
	}
	return p.publish(OrderCreatedTopic, order.ID, event)
}

func (p *KafkaProducer) PublishOrderStatusChanged(order models.Order, previousStatus string) error {
	event := OrderStatusChangedEvent{
		OrderID:        order.ID,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
		TotalAmount:    order.TotalAmount,
		EventTime:      time.Now(),
	}
	return p.publish(OrderStatusChangedTopic, order.ID, event)
}

func (p *KafkaProducer) PublishBillCreated(bill models.Bill, orderID string) error {
	event := BillCreatedEvent{
		BillID:      bill.ID,
		OrderID:     orderID,
		TotalAmount: bill.TotalAmount,
		EventTime:   time.Now(),
	}
	return p.publish(BillCreatedTopic, orderID, event)
}

func (p *KafkaProducer) publish(topic, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithField("topic", topic).Error("Failed to send message to Kafka")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"topic":     topic,
		"partition": partition,
		"offset":    offset,
		"key":       key,
	}).Info("Event published to Kafka")

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}
