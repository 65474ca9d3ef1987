package syncengine

import "time"

// View identifies which screen the device is showing; pull policy differs
// per view.
type View string

const (
	ViewScoreEntry  View = "score_entry"
	ViewLeaderboard View = "leaderboard"
	ViewTeamResults View = "team_results"
)

const (
	// SweepInterval is how often queued writes are replayed.
	SweepInterval = 30 * time.Second
	// VisibilityPullThreshold forces a pull when the app regains foreground
	// visibility after being backgrounded at least this long since last sync.
	VisibilityPullThreshold = 10 * time.Second
	// ConnectivityIssueAfter is the age of the oldest queued write past which
	// the UI shows an offline indicator.
	ConnectivityIssueAfter = 30 * time.Second

	// A score-entry view opened with local data older than this forces a pull
	// before edits.
	initialEntryStaleAfter = 30 * time.Second
	// Hole navigation pulls only every Nth move so flipping between holes
	// does not hammer the server.
	navigationPullEvery = 3
)

// The policy layer is pure: it looks at timestamps and counters and answers
// "pull now?". All I/O stays in the engine, which makes these decisions
// testable with a fake clock.

func shouldPullOnViewEnter(view View, hasLocalData bool, lastSyncAt, now time.Time) bool {
	switch view {
	case ViewLeaderboard, ViewTeamResults:
		// Standings views always start from fresh server state.
		return true
	case ViewScoreEntry:
		if !hasLocalData {
			return true
		}
		return lastSyncAt.IsZero() || now.Sub(lastSyncAt) >= initialEntryStaleAfter
	default:
		return false
	}
}

func shouldPullOnVisibilityRegain(lastSyncAt, now time.Time) bool {
	return lastSyncAt.IsZero() || now.Sub(lastSyncAt) >= VisibilityPullThreshold
}

func shouldPullOnNavigation(navigations int) bool {
	return navigations > 0 && navigations%navigationPullEvery == 0
}

// shouldRefreshAfterSweep decides whether a sweep is followed by a scorecard
// pull: yes when any replay landed (the server state moved), or when the
// queue is stuck past the connectivity threshold and a refresh may at least
// surface teammates' scores.
func shouldRefreshAfterSweep(replayed, remaining int, oldestAge time.Duration) bool {
	if replayed > 0 {
		return true
	}
	return remaining > 0 && oldestAge >= ConnectivityIssueAfter
}

func connectivityIssue(oldestQueuedAt time.Time, hasPending bool, now time.Time) bool {
	return hasPending && now.Sub(oldestQueuedAt) > ConnectivityIssueAfter
}
