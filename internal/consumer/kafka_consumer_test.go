package consumer

import (
	"errors"
	"testing"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/producer"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSender struct {
	got []producer.EmailMessage
	err error
}

func (s *fakeSender) SendEmail(msg producer.EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.got = append(s.got, msg)
	return nil
}

func TestHandle(t *testing.T) {
	s := &fakeSender{}
	c := &KafkaEmailConsumer{emailSender: s, log: zap.NewNop()}

	assert.True(t, c.Handle([]byte(`{"to":"a@example.com","subject":"Hi","template":"contact_received","data":{"Name":"Ann"}}`)))
	assert.Len(t, s.got, 1)
	assert.Equal(t, "Ann", s.got[0].Data["Name"])

	assert.False(t, c.Handle([]byte(`not json`)))
	assert.False(t, c.Handle([]byte(`{"to":"","template":"contact_received"}`)))
	assert.False(t, c.Handle([]byte(`{"to":"a@example.com"}`)))
	assert.Len(t, s.got, 1)

	s.err = errors.New("smtp down")
	assert.False(t, c.Handle([]byte(`{"to":"a@example.com","template":"contact_received"}`)))
}
