// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package rpc

import (
	"time"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/broadcast"
	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
)

type CreateMatchRequest struct {
	HomePlayer string `json:"homePlayer"`
	AwayPlayer string `json:"awayPlayer"`
	// Format names a preset; empty selects the configured default.
	Format      string                    `json:"format,omitempty"`
	Settings    scoring.SettingsOverrides `json:"settings"`
	FirstServer scoring.Player            `json:"firstServer"`
}

type AwardPointRequest struct {
	MatchID string         `json:"matchId"`
	Player  scoring.Player `json:"player"`
}

type UndoPointRequest struct {
	MatchID string `json:"matchId"`
}

type GetMatchRequest struct {
	MatchID string `json:"matchId"`
}

// MatchResponse is returned by every method. Changed is false when the call
// left the match as it was, such as a point on a finished match.
type MatchResponse struct {
	Match     *broadcast.MatchUpdate `json:"match"`
	Format    string                 `json:"format"`
	Settings  scoring.Settings       `json:"settings"`
	Changed   bool                   `json:"changed"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}
