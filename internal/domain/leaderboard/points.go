package leaderboard

// PointsStrategy turns a team's finishing position into points. Series-level
// point templates supply their own implementation.
type PointsStrategy interface {
	Points(teamCount, position int) int
}

// StandardPoints is the default policy: teamCount-position+1 as the base,
// with a +2 bonus for first and +1 for second.
type StandardPoints struct{}

func (StandardPoints) Points(teamCount, position int) int {
	if teamCount < 1 || position < 1 || position > teamCount {
		return 0
	}
	base := teamCount - position + 1
	switch position {
	case 1:
		return base + 2
	case 2:
		return base + 1
	default:
		return base
	}
}
