package usecase

import "testing"

func TestAllocateStrokes(t *testing.T) {
	indexes := []int{7, 3, 17, 1, 11, 5, 15, 9, 13, 6, 18, 2, 10, 8, 4, 16, 12, 14}

	tests := []struct {
		name     string
		handicap int
		want     func(t *testing.T, got []int)
	}{
		{
			name:     "zero handicap allocates nothing",
			handicap: 0,
			want: func(t *testing.T, got []int) {
				for i, v := range got {
					if v != 0 {
						t.Fatalf("hole %d: expected 0 strokes, got %d", i+1, v)
					}
				}
			},
		},
		{
			name:     "negative handicap allocates nothing",
			handicap: -4,
			want: func(t *testing.T, got []int) {
				if sum(got) != 0 {
					t.Fatalf("expected no strokes, got total %d", sum(got))
				}
			},
		},
		{
			name:     "handicap equal to hole count gives one stroke everywhere",
			handicap: 18,
			want: func(t *testing.T, got []int) {
				for i, v := range got {
					if v != 1 {
						t.Fatalf("hole %d: expected 1 stroke, got %d", i+1, v)
					}
				}
			},
		},
		{
			name:     "remainder lands on hardest holes",
			handicap: 21,
			want: func(t *testing.T, got []int) {
				if sum(got) != 21 {
					t.Fatalf("expected total 21, got %d", sum(got))
				}
				// Indexes 1..3 get the extra stroke.
				for i, index := range indexes {
					want := 1
					if index <= 3 {
						want = 2
					}
					if got[i] != want {
						t.Fatalf("hole %d (index %d): expected %d, got %d", i+1, index, want, got[i])
					}
				}
			},
		},
		{
			name:     "handicap above double hole count keeps allocating",
			handicap: 40,
			want: func(t *testing.T, got []int) {
				if sum(got) != 40 {
					t.Fatalf("expected total 40, got %d", sum(got))
				}
				for i, index := range indexes {
					want := 2
					if index <= 4 {
						want = 3
					}
					if got[i] != want {
						t.Fatalf("hole %d (index %d): expected %d, got %d", i+1, index, want, got[i])
					}
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AllocateStrokes(tc.handicap, indexes)
			if len(got) != len(indexes) {
				t.Fatalf("expected %d holes, got %d", len(indexes), len(got))
			}
			tc.want(t, got)
		})
	}
}

func TestAllocateStrokes_NoIndexes(t *testing.T) {
	got := AllocateStrokes(12, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty allocation, got %v", got)
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
