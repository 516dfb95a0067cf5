package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/producer"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type EmailSender interface {
	SendEmail(msg producer.EmailMessage) error
}

type KafkaEmailConsumer struct {
	reader      *kafka.Reader
	emailSender EmailSender
	log         *zap.Logger
}

func NewKafkaEmailConsumer(brokers []string, groupID, topic string, emailSender EmailSender, log *zap.Logger) *KafkaEmailConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaEmailConsumer{reader: r, emailSender: emailSender, log: log}
}

func (c *KafkaEmailConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started", zap.String("topic", c.reader.Config().Topic))
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		c.Handle(m.Value)
	}
}

// Handle обрабатывает одно сообщение топика. Ошибки только логируются:
// битое или неотправленное письмо не должно останавливать чтение.
func (c *KafkaEmailConsumer) Handle(value []byte) bool {
	var em producer.EmailMessage
	if err := json.Unmarshal(value, &em); err != nil {
		c.log.Error("unmarshal email message", zap.ByteString("value", value), zap.Error(err))
		return false
	}
	if err := em.Validate(); err != nil {
		c.log.Warn("invalid email message", zap.Any("msg", em), zap.Error(err))
		return false
	}
	if err := c.emailSender.SendEmail(em); err != nil {
		c.log.Error("send email failed", zap.String("to", em.To), zap.String("template", em.Template), zap.Error(err))
		return false
	}
	c.log.Info("email sent", zap.String("to", em.To), zap.String("template", em.Template))
	return true
}

func (c *KafkaEmailConsumer) Close() error { return c.reader.Close() }
