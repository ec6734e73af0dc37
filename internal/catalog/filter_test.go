package catalog

import "testing"

func TestRatingRangeContains(t *testing.T) {
	tests := []struct {
		name   string
		rng    RatingRange
		rating int
		want   bool
	}{
		{name: "unrated excluded", rng: RatingRange{Min: 1, Max: 2}, rating: 0, want: false},
		{name: "lower bound", rng: RatingRange{Min: 1, Max: 2}, rating: 1, want: true},
		{name: "upper bound", rng: RatingRange{Min: 1, Max: 2}, rating: 2, want: true},
		{name: "above range", rng: RatingRange{Min: 1, Max: 2}, rating: 3, want: false},
		{name: "unrated excluded even when range includes zero", rng: RatingRange{Min: 0, Max: 5}, rating: 0, want: false},
		{name: "single value range", rng: RatingRange{Min: 4, Max: 4}, rating: 4, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rng.Contains(tt.rating); got != tt.want {
				t.Fatalf("Contains(%d) on %s = %v, want %v", tt.rating, tt.rng, got, tt.want)
			}
		})
	}
}

func TestRatingRangeContainsExhaustive(t *testing.T) {
	for lo := 0; lo <= MaxRating; lo++ {
		for hi := lo; hi <= MaxRating; hi++ {
			rng := RatingRange{Min: lo, Max: hi}
			for r := 0; r <= MaxRating; r++ {
				want := r != 0 && lo <= r && r <= hi
				if got := rng.Contains(r); got != want {
					t.Fatalf("%s.Contains(%d) = %v, want %v", rng, r, got, want)
				}
			}
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	input := []Record{
		{ID: "a", Rating: 0},
		{ID: "b", Rating: 2},
		{ID: "c", Rating: 3},
		{ID: "d", Rating: 1},
		{ID: "e", Rating: 5},
	}

	got := Filter(input, RatingRange{Min: 1, Max: 2})
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "d" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRatingRangeValidate(t *testing.T) {
	if err := (RatingRange{Min: 1, Max: 2}).Validate(); err != nil {
		t.Fatalf("expected valid range, got %v", err)
	}
	for _, bad := range []RatingRange{{Min: 3, Max: 2}, {Min: -1, Max: 2}, {Min: 1, Max: 6}} {
		if err := bad.Validate(); err == nil {
			t.Fatalf("expected %s to be rejected", bad)
		}
	}
}

func TestRecordLabelFallsBackToUnknown(t *testing.T) {
	if got := (Record{}).Label(); got != "Unknown - Unknown" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := (Record{Artist: "Low", Name: "Things We Lost"}).Label(); got != "Low - Things We Lost" {
		t.Fatalf("unexpected label %q", got)
	}
}
