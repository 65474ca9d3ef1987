package course

type Course struct {
	ID        int
	Name      string
	HoleCount int
}

// Tee carries the per-hole metadata the aggregator needs: Pars and
// StrokeIndexes are ordered by hole (index 0 = hole 1).
type Tee struct {
	ID            int
	CourseID      int
	Name          string
	CourseRating  float64
	SlopeRating   int
	Pars          []int
	StrokeIndexes []int
}

// TotalPar sums the par values of all holes.
func (t Tee) TotalPar() int {
	total := 0
	for _, par := range t.Pars {
		total += par
	}
	return total
}
