package rl

import (
	"context"
	"sync"
)

// Mock is a test double for the Policy interface.
type Mock struct {
	mu          sync.Mutex
	Action      Action
	UseFallback bool // when set, NextAction computes the real fallback
	actionCalls int
	updateCalls int
	lastReward  float64
	lastState   State
}

func (m *Mock) NextAction(_ context.Context, state State) Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actionCalls++
	m.lastState = state
	if m.UseFallback {
		return FallbackAction(state)
	}
	return m.Action
}

func (m *Mock) UpdateModel(_ context.Context, state State, reward float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	m.lastState = state
	m.lastReward = reward
}

func (m *Mock) ActionCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actionCalls
}

func (m *Mock) UpdateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

func (m *Mock) LastReward() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReward
}

func (m *Mock) LastState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastState
}
