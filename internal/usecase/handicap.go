package usecase

// AllocateStrokes spreads a course handicap over the holes using the stroke
// index table: every hole receives handicap/holes strokes, and the remainder
// goes to the holes with the lowest stroke index (index 1 is hardest). A
// handicap of 24 on 18 holes therefore gives one stroke everywhere plus a
// second stroke on stroke indexes 1..6. Non-positive handicaps allocate
// nothing.
func AllocateStrokes(courseHandicap int, strokeIndexes []int) []int {
	out := make([]int, len(strokeIndexes))
	if courseHandicap <= 0 || len(strokeIndexes) == 0 {
		return out
	}

	holes := len(strokeIndexes)
	full := courseHandicap / holes
	remainder := courseHandicap % holes

	for i, index := range strokeIndexes {
		out[i] = full
		if index >= 1 && index <= remainder {
			out[i]++
		}
	}
	return out
}
