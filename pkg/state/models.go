// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"time"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
)

// MatchRecord is the persisted record of one match: who is playing, the
// latest scoring state and a version bumped on every write.
type MatchRecord struct {
	ID         string             `json:"id"`
	HomePlayer string             `json:"homePlayer"`
	AwayPlayer string             `json:"awayPlayer"`
	Format     string             `json:"format"`
	State      scoring.MatchState `json:"state"`
	Score      string             `json:"score,omitempty"`
	Version    int64              `json:"version"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
