package mocks

import (
	"context"

	"github.com/brokerage/rms-api/internal/workflow"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of workflow.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishDecision(ctx context.Context, event workflow.DecisionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockRecorder is a mock implementation of workflow.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordTransition(entity, action, outcome string) {
	m.Called(entity, action, outcome)
}
