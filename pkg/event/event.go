// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

// Package event derives match events from two consecutive scoring states.
// Events are what viewers and metrics react to; the scoring states remain
// the source of truth.
package event

import (
	"time"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
)

// Type identifies what happened between two states.
type Type string

const (
	TypePointWon             Type = "point_won"
	TypeGameWon              Type = "game_won"
	TypeSetWon               Type = "set_won"
	TypeTiebreakStarted      Type = "tiebreak_started"
	TypeMatchTiebreakStarted Type = "match_tiebreak_started"
	TypeMatchWon             Type = "match_won"
	TypePointUndone          Type = "point_undone"
)

// Kind is the transition that produced the new state.
type Kind int

const (
	KindPoint Kind = iota
	KindUndo
)

// Event is a single derived match event. SetNumber is 1-based.
type Event struct {
	Type      Type            `json:"type"`
	Player    *scoring.Player `json:"player,omitempty"`
	SetNumber int             `json:"setNumber"`
	Timestamp time.Time       `json:"timestamp"`
}

// Derive lists the events that turned before into after, in the order they
// happened. It returns nil when the states are the same point in the match.
func Derive(before, after scoring.MatchState, kind Kind, now time.Time) []Event {
	if after.PointsPlayed() == before.PointsPlayed() {
		return nil
	}

	if kind == KindUndo {
		return []Event{{Type: TypePointUndone, SetNumber: len(after.Sets), Timestamp: now}}
	}

	setNumber := len(before.Sets)
	scorer, ok := pointWinner(before, after)
	if !ok {
		return nil
	}

	events := []Event{newEvent(TypePointWon, scorer, setNumber, now)}

	active := before.ActiveSet()
	gameWon := after.Sets[active].Games != before.Sets[active].Games
	if !gameWon {
		return events
	}
	events = append(events, newEvent(TypeGameWon, scorer, setNumber, now))

	if after.Sets[active].Winner != nil {
		events = append(events, newEvent(TypeSetWon, scorer, setNumber, now))
	}
	if after.Winner != nil {
		events = append(events, newEvent(TypeMatchWon, *after.Winner, setNumber, now))
		return events
	}

	switch {
	case after.CurrentGame.IsTiebreak():
		events = append(events, Event{Type: TypeTiebreakStarted, SetNumber: len(after.Sets), Timestamp: now})
	case after.CurrentGame.IsMatchTiebreak():
		events = append(events, Event{Type: TypeMatchTiebreakStarted, SetNumber: len(after.Sets), Timestamp: now})
	}
	return events
}

// pointWinner works out who won the point from the active game or, when the
// game ended, from the games column of the set it was played in.
func pointWinner(before, after scoring.MatchState) (scoring.Player, bool) {
	active := before.ActiveSet()
	if active >= len(after.Sets) {
		return 0, false
	}

	games := after.Sets[active].Games
	prev := before.Sets[active].Games
	for _, p := range []scoring.Player{scoring.Home, scoring.Away} {
		if games[p] > prev[p] {
			return p, true
		}
	}

	points := after.CurrentGame.Points
	prevPoints := before.CurrentGame.Points
	for _, p := range []scoring.Player{scoring.Home, scoring.Away} {
		if points[p] > prevPoints[p] {
			return p, true
		}
	}
	return 0, false
}

func newEvent(t Type, p scoring.Player, setNumber int, now time.Time) Event {
	return Event{Type: t, Player: &p, SetNumber: setNumber, Timestamp: now}
}

// Types returns the event types in order, mostly for logs and metrics.
func Types(events []Event) []string {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = string(e.Type)
	}
	return types
}
