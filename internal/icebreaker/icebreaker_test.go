package icebreaker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockCompleter is a mock implementation of Completer
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestService_Generate_UsesCompleter(t *testing.T) {
	c := new(MockCompleter)
	c.On("Complete", mock.Anything, Prompt("anime")).Return("1) Favorite arc?", nil)

	s := NewService(c, zap.NewNop())
	text, ai := s.Generate(context.Background(), "anime")

	assert.True(t, ai)
	assert.Equal(t, "1) Favorite arc?", text)
	c.AssertExpectations(t)
}

func TestService_Generate_FallsBackOnError(t *testing.T) {
	c := new(MockCompleter)
	c.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	s := NewService(c, zap.NewNop())
	text, ai := s.Generate(context.Background(), "jazz")

	assert.False(t, ai)
	assert.Equal(t, Fallback("jazz"), text)
	assert.Contains(t, text, "must-watch jazz recommendation")
}

func TestService_Generate_NilCompleterAndDefaultInterest(t *testing.T) {
	s := NewService(nil, zap.NewNop())
	text, ai := s.Generate(context.Background(), "   ")

	assert.False(t, ai)
	assert.Equal(t, Fallback(DefaultInterest), text)
}

func TestOpenAICompleter_NoKey(t *testing.T) {
	c := NewOpenAICompleter("", "", zap.NewNop())
	assert.Nil(t, c)

	_, err := c.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
