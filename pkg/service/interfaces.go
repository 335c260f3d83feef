// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"
)

// Interfaces for the collaborators the scorer depends on.
// The Redis implementations live in pkg/state and pkg/broadcast; the
// interfaces let tests swap them for the mocks in pkg/service/mock.

// MatchStore persists match records with compare-and-swap updates.
type MatchStore interface {
	Create(ctx context.Context, rec *state.MatchRecord) error
	Get(ctx context.Context, matchID string) (*state.MatchRecord, error)
	// Update must return state.ErrConcurrentUpdate when another writer won the race.
	Update(ctx context.Context, matchID string, fn state.UpdateFunc) (*state.MatchRecord, error)
}
