package engine

// CheckWin is run after every commit that could change a player's queen
// count or score, including out-of-turn effects (a Dragon/Wand defense
// never wins, but a RoseQueenBonus or SelectQueenForJester can). A player
// satisfying either the queen-count or point-total threshold for the
// current player count wins immediately; ties among simultaneous triggers
// cannot happen because only one player's queens change per commit.
func CheckWin(s *GameState) {
	if s.Phase == PhaseEnded {
		return
	}
	n := len(s.Players)
	reqQueens, okQ := QueensToWin[n]
	reqPoints, okP := PointsToWin[n]
	if !okQ || !okP {
		return
	}
	for _, p := range s.Players {
		if len(p.Queens) >= reqQueens || ScoreOf(p) >= reqPoints {
			s.Phase = PhaseEnded
			s.WinnerID = p.ID
			return
		}
	}
}
