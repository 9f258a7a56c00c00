package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imaginepro/imaginepro-go/pkg/types"
)

// MockClient is an in-memory implementation of the Client interface for
// testing. Every submitted task walks through StatusSequence, advancing
// one step per fetch; the final entry repeats once reached.
type MockClient struct {
	// StatusSequence is the sequence of statuses each task reports on
	// successive fetches.
	StatusSequence []string
	// FailMessage populates Message.Error when a task reaches FAIL.
	FailMessage string
	// SubmitErr, when set, is returned by Imagine and PressButton.
	SubmitErr error
	// DefaultTimeout and FetchInterval mirror the real client options.
	DefaultTimeout time.Duration
	FetchInterval  time.Duration

	// Track calls for assertions
	ImagineCalls []types.ImagineParams
	ButtonCalls  []types.ButtonPressParams
	FetchCalls   []string

	mu       sync.Mutex
	messages map[string]*mockMessage
}

type mockMessage struct {
	prompt  string
	fetches int
}

// NewMockClient creates a mock client whose tasks complete on the third
// fetch.
func NewMockClient() *MockClient {
	return &MockClient{
		StatusSequence: []string{types.StatusQueued, types.StatusProcessing, types.StatusDone},
		DefaultTimeout: 5 * time.Second,
		FetchInterval:  10 * time.Millisecond,
		messages:       make(map[string]*mockMessage),
	}
}

// Imagine records the call and registers a new mock task.
func (m *MockClient) Imagine(ctx context.Context, params types.ImagineParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImagineCalls = append(m.ImagineCalls, params)
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}

	id := uuid.NewString()
	m.messages[id] = &mockMessage{prompt: params.Prompt}

	return &types.TaskResponse{
		MessageID: id,
		Success:   true,
		CreatedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// PressButton records the call and registers a new mock task for the
// follow-up action.
func (m *MockClient) PressButton(ctx context.Context, params types.ButtonPressParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ButtonCalls = append(m.ButtonCalls, params)
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}

	id := uuid.NewString()
	m.messages[id] = &mockMessage{}

	return &types.TaskResponse{
		MessageID: id,
		Success:   true,
		CreatedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// Upscale delegates to PressButton with the synthesized button code.
func (m *MockClient) Upscale(ctx context.Context, params types.UpscaleParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return m.PressButton(ctx, params.ButtonPress())
}

// Variant delegates to PressButton with the synthesized button code.
func (m *MockClient) Variant(ctx context.Context, params types.VariantParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return m.PressButton(ctx, params.ButtonPress())
}

// Reroll delegates to PressButton with the reroll button code.
func (m *MockClient) Reroll(ctx context.Context, params types.RerollParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return m.PressButton(ctx, params.ButtonPress())
}

// Inpainting delegates to PressButton with the vary-region button code.
func (m *MockClient) Inpainting(ctx context.Context, params types.InpaintingParams) (*types.TaskResponse, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return m.PressButton(ctx, params.ButtonPress())
}

// FetchMessageOnce reports the task's current scripted status and
// advances it one step.
func (m *MockClient) FetchMessageOnce(ctx context.Context, messageID string) (*types.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls = append(m.FetchCalls, messageID)

	msg, exists := m.messages[messageID]
	if !exists {
		return nil, &APIError{StatusCode: 404, Message: fmt.Sprintf("message not found: %s", messageID)}
	}

	step := msg.fetches
	if step >= len(m.StatusSequence) {
		step = len(m.StatusSequence) - 1
	}
	msg.fetches++

	status := m.StatusSequence[step]
	out := &types.Message{
		MessageID: messageID,
		Prompt:    msg.prompt,
		Status:    status,
		Progress:  step * 100 / len(m.StatusSequence),
	}
	switch status {
	case types.StatusDone:
		out.Progress = 100
		out.URI = fmt.Sprintf("https://cdn.example.com/%s.png", messageID)
		out.Buttons = []string{"U1", "U2", "U3", "U4", types.ButtonReroll, "V1", "V2", "V3", "V4"}
	case types.StatusFail:
		out.Error = m.FailMessage
		if out.Error == "" {
			out.Error = "mock generation failure"
		}
	}
	return out, nil
}

// FetchMessage polls the scripted statuses with the same loop contract
// as the real client.
func (m *MockClient) FetchMessage(ctx context.Context, messageID string, timeout time.Duration) (*types.Message, error) {
	if timeout <= 0 {
		timeout = m.DefaultTimeout
	}
	start := time.Now()

	for {
		msg, err := m.FetchMessageOnce(ctx, messageID)
		if err != nil {
			return nil, err
		}

		if types.IsTerminal(msg.Status) {
			return msg, nil
		}

		if elapsed := time.Since(start); elapsed >= timeout {
			return nil, &TimeoutError{MessageID: messageID, Elapsed: elapsed}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.FetchInterval):
		}
	}
}

// Reset clears all recorded calls and tasks for a fresh test.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = make(map[string]*mockMessage)
	m.ImagineCalls = nil
	m.ButtonCalls = nil
	m.FetchCalls = nil
	m.SubmitErr = nil
	m.FailMessage = ""
}
