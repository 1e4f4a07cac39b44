package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/event"
)

var _ inventory.EventPublisher = (*KafkaPublisher)(nil)

// MessageWriter lo que se necesita de *kafka.Writer (permite reemplazarlo en tests).
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Topics tópico de destino por tipo de evento.
type Topics struct {
	Movements string
	Alerts    string
	Products  string
}

func (t Topics) For(typ event.Type) (string, error) {
	switch typ {
	case event.TypeMovementPosted:
		return t.Movements, nil
	case event.TypeStockAlert:
		return t.Alerts, nil
	case event.TypeProductChanged:
		return t.Products, nil
	}
	return "", fmt.Errorf("kafka: sin tópico para el evento %q", typ)
}

// KafkaPublisher publica envelopes como JSON. La clave del mensaje es Envelope.Key
// (produto-<id>), así los eventos de un producto caen en la misma partición.
type KafkaPublisher struct {
	writer MessageWriter
	topics Topics
}

// NewKafkaWriter crea el writer de kafka-go sin tópico fijo (cada mensaje lleva el suyo).
func NewKafkaWriter(brokers []string, batchTimeout, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher construye el publisher sobre un writer.
func NewKafkaPublisher(w MessageWriter, topics Topics) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topics: topics}
}

// Publish serializa el envelope y lo escribe en el tópico del tipo de evento.
// Propaga el contexto de traza en los headers (traceparent).
func (p *KafkaPublisher) Publish(ctx context.Context, e event.Envelope) error {
	topic, err := p.topics.For(e.EventType)
	if err != nil {
		return err
	}
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento %s: %w", e.EventID, err)
	}

	headers := headerCarrier{
		{Key: "eventType", Value: []byte(e.EventType)},
		{Key: "eventId", Value: []byte(e.EventID)},
	}
	otel.GetTextMapPropagator().Inject(ctx, &headers)

	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(e.Key),
		Value:   value,
		Headers: headers,
		Time:    e.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar %s en %s: %w", e.EventType, topic, err)
	}
	return nil
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// headerCarrier adapta los headers de kafka-go a propagation.TextMapCarrier.
type headerCarrier []kafka.Header

func (h *headerCarrier) Get(key string) string {
	for _, kv := range *h {
		if kv.Key == key {
			return string(kv.Value)
		}
	}
	return ""
}

func (h *headerCarrier) Set(key, value string) {
	for i, kv := range *h {
		if kv.Key == key {
			(*h)[i].Value = []byte(value)
			return
		}
	}
	*h = append(*h, kafka.Header{Key: key, Value: []byte(value)})
}

func (h *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*h))
	for _, kv := range *h {
		keys = append(keys, kv.Key)
	}
	return keys
}
