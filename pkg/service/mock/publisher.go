// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"sync"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
)

// Publisher is a mock broadcast.Publisher that keeps every update it receives
type Publisher struct {
	mu      sync.Mutex
	updates []broadcast.MatchUpdate

	Error error
}

// Publish stores a copy of update
func (p *Publisher) Publish(_ context.Context, update *broadcast.MatchUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Error != nil {
		return p.Error
	}
	p.updates = append(p.updates, *update)
	return nil
}

// Updates returns the published updates in order
func (p *Publisher) Updates() []broadcast.MatchUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]broadcast.MatchUpdate(nil), p.updates...)
}

// NewPublisher creates a new mock publisher
func NewPublisher() *Publisher {
	return &Publisher{}
}
