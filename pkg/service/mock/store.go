// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"fmt"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"
)

// MatchStore is a mock implementation of service.MatchStore for testing
type MatchStore struct {
	// Function fields for custom behavior
	CreateFunc func(ctx context.Context, rec *state.MatchRecord) error
	GetFunc    func(ctx context.Context, matchID string) (*state.MatchRecord, error)
	UpdateFunc func(ctx context.Context, matchID string, fn state.UpdateFunc) (*state.MatchRecord, error)

	// Simple fields for common scenarios
	Record *state.MatchRecord
	Error  error

	UpdateCalls int
}

// Create records rec as the stored match
func (m *MatchStore) Create(ctx context.Context, rec *state.MatchRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	if m.Error != nil {
		return m.Error
	}
	m.Record = rec
	return nil
}

// Get returns the mocked record
func (m *MatchStore) Get(ctx context.Context, matchID string) (*state.MatchRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, matchID)
	}
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Record == nil || m.Record.ID != matchID {
		return nil, fmt.Errorf("%w: %s", state.ErrMatchNotFound, matchID)
	}
	return m.Record, nil
}

// Update runs fn against the mocked record without any concurrency control
func (m *MatchStore) Update(ctx context.Context, matchID string, fn state.UpdateFunc) (*state.MatchRecord, error) {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, matchID, fn)
	}
	rec, err := m.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	next := *rec
	changed, err := fn(&next)
	if err != nil {
		return nil, err
	}
	if changed {
		next.Version++
		m.Record = &next
	}
	return m.Record, nil
}

// NewMatchStore creates a new mock match store
func NewMatchStore() *MatchStore {
	return &MatchStore{}
}

// WithError sets the error every call returns
func (m *MatchStore) WithError(err error) *MatchStore {
	m.Error = err
	return m
}

// AlwaysConflicting makes every update fail as if another writer won the race
func (m *MatchStore) AlwaysConflicting() *MatchStore {
	m.UpdateFunc = func(context.Context, string, state.UpdateFunc) (*state.MatchRecord, error) {
		return nil, state.ErrConcurrentUpdate
	}
	return m
}
