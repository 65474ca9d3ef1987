package syncengine

import (
	"testing"
	"time"
)

var policyNow = time.Date(2026, time.June, 14, 10, 0, 0, 0, time.UTC)

func TestShouldPullOnViewEnter(t *testing.T) {
	tests := []struct {
		name       string
		view       View
		hasLocal   bool
		lastSyncAt time.Time
		want       bool
	}{
		{"leaderboard always pulls", ViewLeaderboard, true, policyNow.Add(-time.Second), true},
		{"team results always pull", ViewTeamResults, true, policyNow.Add(-time.Second), true},
		{"score entry without local data pulls", ViewScoreEntry, false, policyNow.Add(-time.Second), true},
		{"score entry never synced pulls", ViewScoreEntry, true, time.Time{}, true},
		{"score entry with fresh data skips", ViewScoreEntry, true, policyNow.Add(-5 * time.Second), false},
		{"score entry with stale data pulls", ViewScoreEntry, true, policyNow.Add(-45 * time.Second), true},
		{"score entry at staleness boundary pulls", ViewScoreEntry, true, policyNow.Add(-initialEntryStaleAfter), true},
		{"unknown view skips", View("settings"), true, time.Time{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldPullOnViewEnter(tc.view, tc.hasLocal, tc.lastSyncAt, policyNow)
			if got != tc.want {
				t.Fatalf("shouldPullOnViewEnter(%s) = %t, want %t", tc.view, got, tc.want)
			}
		})
	}
}

func TestShouldPullOnVisibilityRegain(t *testing.T) {
	tests := []struct {
		name       string
		lastSyncAt time.Time
		want       bool
	}{
		{"never synced", time.Time{}, true},
		{"synced just now", policyNow.Add(-time.Second), false},
		{"synced nine seconds ago", policyNow.Add(-9 * time.Second), false},
		{"synced exactly at threshold", policyNow.Add(-VisibilityPullThreshold), true},
		{"synced long ago", policyNow.Add(-5 * time.Minute), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldPullOnVisibilityRegain(tc.lastSyncAt, policyNow)
			if got != tc.want {
				t.Fatalf("shouldPullOnVisibilityRegain = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestShouldPullOnNavigation(t *testing.T) {
	pulls := 0
	for move := 1; move <= 9; move++ {
		if shouldPullOnNavigation(move) {
			pulls++
			if move%navigationPullEvery != 0 {
				t.Fatalf("unexpected pull on move %d", move)
			}
		}
	}
	if pulls != 3 {
		t.Fatalf("expected 3 pulls over 9 moves, got %d", pulls)
	}
	if shouldPullOnNavigation(0) {
		t.Fatalf("no navigation must not pull")
	}
}

func TestShouldRefreshAfterSweep(t *testing.T) {
	tests := []struct {
		name      string
		replayed  int
		remaining int
		oldestAge time.Duration
		want      bool
	}{
		{"nothing happened", 0, 0, 0, false},
		{"replays landed", 2, 0, 0, true},
		{"queue stuck but young", 0, 3, 10 * time.Second, false},
		{"queue stuck past threshold", 0, 3, ConnectivityIssueAfter, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldRefreshAfterSweep(tc.replayed, tc.remaining, tc.oldestAge)
			if got != tc.want {
				t.Fatalf("shouldRefreshAfterSweep = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestConnectivityIssue(t *testing.T) {
	if connectivityIssue(time.Time{}, false, policyNow) {
		t.Fatalf("empty queue is not a connectivity issue")
	}
	if connectivityIssue(policyNow.Add(-5*time.Second), true, policyNow) {
		t.Fatalf("young pending write is not a connectivity issue")
	}
	if !connectivityIssue(policyNow.Add(-31*time.Second), true, policyNow) {
		t.Fatalf("expected connectivity issue for a write stuck past the threshold")
	}
}
