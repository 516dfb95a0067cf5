package producer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	ErrNoRecipient = errors.New("email message has no recipient")
	ErrNoTemplate  = errors.New("email message has no template")
)

// EmailMessage — событие в топике писем, его читает cmd/notifier.
type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// Validate проверяет минимум, без которого notifier письмо не соберёт.
func (m EmailMessage) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}
	if strings.TrimSpace(m.Template) == "" {
		return ErrNoTemplate
	}
	return nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EmailProducer публикует письма магазина в Kafka. Ключ сообщения — id брони/заказа/заявки,
// поэтому все письма по одной записи попадают в одну партицию и уходят по порядку.
type EmailProducer struct {
	writer  messageWriter
	timeout time.Duration
	log     *zap.Logger
}

func NewEmailProducer(brokers []string, topic string, log *zap.Logger) *EmailProducer {
	return newEmailProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}, log)
}

func newEmailProducer(w messageWriter, log *zap.Logger) *EmailProducer {
	return &EmailProducer{writer: w, timeout: 5 * time.Second, log: log}
}

func (p *EmailProducer) SendEmail(ctx context.Context, key string, msg EmailMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if key == "" {
		key = strings.ToLower(strings.TrimSpace(msg.To))
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "template", Value: []byte(msg.Template)},
		},
	})
	if err != nil {
		return err
	}
	p.log.Debug("email event published", zap.String("key", key), zap.String("template", msg.Template))
	return nil
}

func (p *EmailProducer) Close() error {
	return p.writer.Close()
}

// LogProducer пишет письма в лог вместо Kafka, когда брокеры не настроены.
type LogProducer struct {
	log *zap.Logger
}

func NewLogProducer(log *zap.Logger) *LogProducer { return &LogProducer{log: log} }

func (p *LogProducer) SendEmail(_ context.Context, key string, msg EmailMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	p.log.Info("email event (kafka disabled)",
		zap.String("key", key),
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func (p *LogProducer) Close() error { return nil }
