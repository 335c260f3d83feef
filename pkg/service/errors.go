// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"errors"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/state"
)

var (
	ErrInvalidPlayer    = errors.New("player must be 0 (home) or 1 (away)")
	ErrInvalidSettings  = errors.New("invalid match settings")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTooManyConflicts = errors.New("too many concurrent updates")

	// ErrMatchNotFound is the store's not-found error, re-exported for callers.
	ErrMatchNotFound = state.ErrMatchNotFound
)
