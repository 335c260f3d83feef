// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package scoring

// standardSetGames is the game count the ordinary set-won check compares
// against. It does not follow Settings.TiebreakAt; only the breaker trigger
// and the tiebreak target do.
const standardSetGames = 6

// AwardPoint returns the state after player wins a point.
//
// A completed match is terminal: the same state comes back unchanged. The
// caller guarantees player is 0 or 1.
func AwardPoint(state MatchState, player Player) MatchState {
	if state.Completed() {
		return state
	}

	next := state.snapshot()
	next.History = append(state.History[:len(state.History):len(state.History)], state.snapshot())

	switch next.CurrentGame.Mode {
	case ModeTiebreak:
		next.breakerPoint(player, next.Settings.TiebreakAt+1)
	case ModeMatchTiebreak:
		next.breakerPoint(player, next.Settings.FinalSetTiebreakTo)
	default:
		next.regularPoint(player)
	}

	return next
}

func (s *MatchState) regularPoint(player Player) {
	s.CurrentGame.Points[player]++
	if regularGameWon(s.CurrentGame.Points, player, s.Settings.NoAd) {
		s.gameWon(player)
	}
}

func regularGameWon(points [2]int, player Player, noAd bool) bool {
	own, opp := points[player], points[player.Opponent()]
	if own < 4 {
		return false
	}
	if noAd {
		// 4-3 is the deciding point at deuce.
		return opp < 3 || (own == 4 && opp == 3)
	}
	return own-opp >= 2
}

// breakerPoint scores a tiebreak or match tiebreak point. Serve changes
// after the first point and then after every second point.
func (s *MatchState) breakerPoint(player Player, target int) {
	s.CurrentGame.Points[player]++

	points := s.CurrentGame.Points
	if (points[0]+points[1])%2 == 1 {
		s.Server = s.Server.Opponent()
	}

	if points[player] >= target && points[player]-points[player.Opponent()] >= 2 {
		tb := points
		s.Sets[s.ActiveSet()].Tiebreak = &tb
		s.gameWon(player)
	}
}

// gameWon credits the game to player and resolves the set and the match.
func (s *MatchState) gameWon(player Player) {
	finished := s.CurrentGame.Mode
	set := &s.Sets[s.ActiveSet()]
	set.Games[player]++

	own, opp := set.Games[player], set.Games[player.Opponent()]
	switch {
	case finished.IsBreaker():
	case own >= standardSetGames && own-opp >= 2:
	case set.Games[0] == s.Settings.TiebreakAt && set.Games[1] == s.Settings.TiebreakAt:
		mode := ModeTiebreak
		if s.isDecidingSet() && s.Settings.FinalSetTiebreak {
			mode = ModeMatchTiebreak
		}
		s.CurrentGame = CurrentGame{Mode: mode}
		if !finished.IsBreaker() {
			s.Server = s.Server.Opponent()
		}
		return
	default:
		s.CurrentGame = CurrentGame{Mode: ModeRegular}
		s.Server = s.Server.Opponent()
		return
	}

	s.setWon(player)
}

func (s *MatchState) setWon(player Player) {
	s.Sets[s.ActiveSet()].Winner = playerPtr(player)
	s.CurrentGame = CurrentGame{Mode: ModeRegular}

	if s.SetsWon()[player] >= s.Settings.SetsToWin() {
		s.Winner = playerPtr(player)
		s.Status = StatusCompleted
		return
	}

	s.Sets = append(s.Sets, Set{})
	s.Server = s.Server.Opponent()
}

// isDecidingSet reports whether both players are one set from the match.
func (s *MatchState) isDecidingSet() bool {
	need := s.Settings.SetsToWin() - 1
	won := s.SetsWon()
	return won[0] == need && won[1] == need
}

// UndoPoint reverts the most recent point. With no history the state is
// returned unchanged. Undo also reopens a completed match.
func UndoPoint(state MatchState) MatchState {
	if len(state.History) == 0 {
		return state
	}
	last := len(state.History) - 1
	prev := state.History[last]
	prev.History = state.History[:last:last]
	return prev
}
