// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

var pointLabels = [...]string{"0", "15", "30", "40"}

const advantageLabel = "AD"

// SetScore is the scoreboard line for one set.
type SetScore struct {
	Games    [2]int  `json:"games"`
	Tiebreak *[2]int `json:"tiebreak,omitempty"`
	Winner   *Player `json:"winner,omitempty"`
}

// DisplayScore is the presentation view of a match.
type DisplayScore struct {
	Sets            []SetScore `json:"sets"`
	Points          [2]string  `json:"points"`
	IsTiebreak      bool       `json:"isTiebreak"`
	IsMatchTiebreak bool       `json:"isMatchTiebreak"`
	Server          Player     `json:"server"`
	Winner          *Player    `json:"winner,omitempty"`
	Status          Status     `json:"status"`
}

// GetDisplayScore projects state onto a scoreboard. Breaker points are shown
// raw; ordinary games use 0/15/30/40 with deuce and advantage handling.
func GetDisplayScore(state MatchState) DisplayScore {
	snap := state.snapshot()

	display := DisplayScore{
		Sets:            make([]SetScore, len(snap.Sets)),
		IsTiebreak:      snap.CurrentGame.IsTiebreak(),
		IsMatchTiebreak: snap.CurrentGame.IsMatchTiebreak(),
		Server:          snap.Server,
		Winner:          snap.Winner,
		Status:          snap.Status,
	}
	for i, set := range snap.Sets {
		display.Sets[i] = SetScore{Games: set.Games, Tiebreak: set.Tiebreak, Winner: set.Winner}
	}

	points := snap.CurrentGame.Points
	if snap.CurrentGame.Mode.IsBreaker() {
		display.Points = [2]string{strconv.Itoa(points[0]), strconv.Itoa(points[1])}
		return display
	}
	display.Points = gamePointLabels(points, snap.Settings.NoAd)
	return display
}

func gamePointLabels(points [2]int, noAd bool) [2]string {
	if points[0] >= 3 && points[1] >= 3 {
		if points[0] == points[1] || noAd {
			return [2]string{pointLabels[3], pointLabels[3]}
		}
		if points[0] > points[1] {
			return [2]string{advantageLabel, pointLabels[3]}
		}
		return [2]string{pointLabels[3], advantageLabel}
	}
	return [2]string{pointLabel(points[0]), pointLabel(points[1])}
}

func pointLabel(points int) string {
	if points > 3 {
		points = 3
	}
	return pointLabels[points]
}

// GetScoreString renders the final score from the home player's side, for
// example "6-4 7-6(5)". The bracketed number is the breaker loser's points.
// It is empty until the match has a winner.
func GetScoreString(state MatchState) string {
	if state.Winner == nil {
		return ""
	}

	tokens := make([]string, 0, len(state.Sets))
	for _, set := range state.Sets {
		if set.Winner == nil {
			continue
		}
		token := fmt.Sprintf("%d-%d", set.Games[0], set.Games[1])
		if set.Tiebreak != nil {
			token += fmt.Sprintf("(%d)", min(set.Tiebreak[0], set.Tiebreak[1]))
		}
		tokens = append(tokens, token)
	}
	return strings.Join(tokens, " ")
}
