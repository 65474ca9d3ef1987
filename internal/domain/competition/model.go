package competition

import "time"

type ScoringMode string

const (
	ScoringGross ScoringMode = "gross"
	ScoringNet   ScoringMode = "net"
	ScoringBoth  ScoringMode = "both"
)

// NetActive reports whether net columns should be computed for the round.
func (m ScoringMode) NetActive() bool {
	return m == ScoringNet || m == ScoringBoth
}

type Competition struct {
	ID                int
	Name              string
	Date              time.Time
	CourseID          int
	TeeID             int
	ScoringMode       ScoringMode
	IsLocked          bool
	ManualEntryFormat string
	PointsTemplate    string
}
