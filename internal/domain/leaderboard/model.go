package leaderboard

// NetScore carries the handicap-adjusted columns; present only when the round
// scores net and handicap metadata was available for the participant.
type NetScore struct {
	TotalShots    int
	RelativeToPar int
}

// Entry is a computed leaderboard row. It is derived on every aggregation
// pass and never persisted.
type Entry struct {
	ParticipantID int
	DisplayName   string
	TeamID        int
	TeamName      string
	PositionName  string
	HolesPlayed   int
	TotalShots    int
	RelativeToPar int
	GaveUp        bool
	Net           *NetScore
}

// Started reports whether the participant has at least one reported hole.
func (e Entry) Started() bool {
	return e.HolesPlayed > 0
}

// TeamResult aggregates the entries of one team. Position is the 1-indexed
// rank after sorting by summed relative-to-par.
type TeamResult struct {
	TeamID           int
	TeamName         string
	ParticipantCount int
	TotalShots       int
	RelativeToPar    int
	Position         int
	Points           int
}
