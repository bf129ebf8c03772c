package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brokerage/rms-api/internal/config"
	"github.com/brokerage/rms-api/internal/workflow"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleEvent() workflow.DecisionEvent {
	return workflow.DecisionEvent{
		Entity:     "stock",
		Key:        "KLS|ABC",
		Decision:   workflow.Deny,
		ActionType: workflow.ActionInsert,
		IsAuth:     workflow.Denied,
		MakerID:    7,
		CheckerID:  9,
		DecidedAt:  time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_WritesKeyedJSON(t *testing.T) {
	writer := &mockWriter{}
	var written []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil)

	p := NewKafkaPublisherWithWriter(writer, time.Second, quietLogger())
	require.NoError(t, p.PublishDecision(context.Background(), sampleEvent()))

	require.Len(t, written, 1)
	msg := written[0]
	assert.Equal(t, "stock/KLS|ABC", string(msg.Key))
	assert.Equal(t, sampleEvent().DecidedAt, msg.Time)

	var decoded workflow.DecisionEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, workflow.Deny, decoded.Decision)
	assert.Equal(t, int64(9), decoded.CheckerID)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "stock", headers["entity"])
	assert.Equal(t, "DENY", headers["decision"])
}

func TestKafkaPublisher_WrapsWriteFailure(t *testing.T) {
	writer := &mockWriter{}
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))

	p := NewKafkaPublisherWithWriter(writer, 0, quietLogger())
	err := p.PublishDecision(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := &mockWriter{}
	writer.On("Close").Return(nil)

	p := NewKafkaPublisherWithWriter(writer, 0, quietLogger())
	require.NoError(t, p.Close())
	writer.AssertExpectations(t)
}

func TestNew_DisabledReturnsNop(t *testing.T) {
	p := New(config.EventsConfig{Enabled: false}, quietLogger())

	_, ok := p.(NopPublisher)
	assert.True(t, ok)
	assert.NoError(t, p.PublishDecision(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}

func TestNew_EnabledReturnsKafka(t *testing.T) {
	p := New(config.EventsConfig{
		Enabled: true,
		Brokers: []string{"localhost:9092"},
		Topic:   "rms.authorization.decisions",
	}, quietLogger())

	_, ok := p.(*KafkaPublisher)
	assert.True(t, ok)
}
