// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

// Package scoring implements the tennis match scoring state machine.
//
// Every operation is a pure function from a MatchState (and an input) to a
// new MatchState. Nothing in this package performs I/O, logs, or keeps
// mutable globals; callers persist and transport the returned values.
package scoring

import (
	"encoding/json"
	"fmt"
)

// Player identifies one side of a match. Home is player 0, away is player 1.
type Player int

const (
	Home Player = 0
	Away Player = 1
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return 1 - p
}

// Valid reports whether p is 0 or 1.
func (p Player) Valid() bool {
	return p == Home || p == Away
}

// Status is the lifecycle of a match as far as scoring is concerned.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// GameMode tells how the active game is scored.
type GameMode int

const (
	// ModeRegular is an ordinary 0/15/30/40 game.
	ModeRegular GameMode = iota
	// ModeTiebreak is the standard set tiebreak.
	ModeTiebreak
	// ModeMatchTiebreak is the deciding-set super tiebreak.
	ModeMatchTiebreak
)

var gameModeNames = map[GameMode]string{
	ModeRegular:       "regular",
	ModeTiebreak:      "tiebreak",
	ModeMatchTiebreak: "match_tiebreak",
}

func (m GameMode) String() string {
	if name, ok := gameModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("GameMode(%d)", int(m))
}

// IsBreaker reports whether the mode is either kind of tiebreak.
func (m GameMode) IsBreaker() bool {
	return m == ModeTiebreak || m == ModeMatchTiebreak
}

// MarshalJSON encodes the mode by name so persisted states stay readable.
func (m GameMode) MarshalJSON() ([]byte, error) {
	name, ok := gameModeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown game mode %d", int(m))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a mode name.
func (m *GameMode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for mode, n := range gameModeNames {
		if n == name {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown game mode %q", name)
}

// Settings are fixed for the lifetime of a match.
type Settings struct {
	BestOf             int  `json:"bestOf"`
	// TiebreakAt is the games-all score that starts a tiebreak to
	// TiebreakAt+1. Sets are otherwise still won at six games with a lead of
	// two, so with TiebreakAt 4 a set ends 6-0 to 6-3 or 5-4 through the tiebreak.
	TiebreakAt         int  `json:"tiebreakAt"`
	FinalSetTiebreak   bool `json:"finalSetTiebreak"`
	FinalSetTiebreakTo int  `json:"finalSetTiebreakTo"`
	NoAd               bool `json:"noAd"`
}

// SetsToWin is the number of sets a player needs to take the match.
func (s Settings) SetsToWin() int {
	return (s.BestOf + 1) / 2
}

// Set is one set of the match. Tiebreak holds the final breaker points and
// is only present when a breaker decided the set.
type Set struct {
	Games    [2]int  `json:"games"`
	Tiebreak *[2]int `json:"tiebreak,omitempty"`
	Winner   *Player `json:"winner,omitempty"`
}

// CurrentGame is the game being played right now.
type CurrentGame struct {
	Points [2]int   `json:"points"`
	Mode   GameMode `json:"mode"`
}

// IsTiebreak reports whether a standard tiebreak is in progress.
func (g CurrentGame) IsTiebreak() bool {
	return g.Mode == ModeTiebreak
}

// IsMatchTiebreak reports whether the deciding-set super tiebreak is in progress.
func (g CurrentGame) IsMatchTiebreak() bool {
	return g.Mode == ModeMatchTiebreak
}

// MatchState is the complete derived state of a match.
//
// History is a stack of prior states, most recent last. Snapshots on the
// stack never carry their own history.
type MatchState struct {
	Settings    Settings     `json:"settings"`
	Sets        []Set        `json:"sets"`
	CurrentGame CurrentGame  `json:"currentGame"`
	Server      Player       `json:"server"`
	History     []MatchState `json:"pointHistory,omitempty"`
	Winner      *Player      `json:"winner,omitempty"`
	Status      Status       `json:"status"`
}

// Completed reports whether the match has a winner.
func (s MatchState) Completed() bool {
	return s.Status == StatusCompleted
}

// ActiveSet returns the index of the set in play, which is always the last one.
func (s MatchState) ActiveSet() int {
	return len(s.Sets) - 1
}

// PointsPlayed is the number of points that can still be undone.
func (s MatchState) PointsPlayed() int {
	return len(s.History)
}

// SetsWon counts decided sets per player.
func (s MatchState) SetsWon() [2]int {
	var won [2]int
	for _, set := range s.Sets {
		if set.Winner != nil {
			won[*set.Winner]++
		}
	}
	return won
}

// snapshot returns an independent copy of s without history.
func (s MatchState) snapshot() MatchState {
	c := s
	c.History = nil
	c.Sets = make([]Set, len(s.Sets))
	for i, set := range s.Sets {
		c.Sets[i] = set.clone()
	}
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return c
}

func (s Set) clone() Set {
	c := s
	if s.Tiebreak != nil {
		tb := *s.Tiebreak
		c.Tiebreak = &tb
	}
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return c
}

func playerPtr(p Player) *Player {
	return &p
}
