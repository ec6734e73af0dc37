package catalog

import "fmt"

// RatingRange is an inclusive rating window.
type RatingRange struct {
	Min int
	Max int
}

// Validate rejects inverted or out-of-scale ranges.
func (r RatingRange) Validate() error {
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("rating range %s has a negative bound", r)
	}
	if r.Max > MaxRating {
		return fmt.Errorf("rating range %s exceeds the %d-star scale", r, MaxRating)
	}
	if r.Min > r.Max {
		return fmt.Errorf("rating range %s is inverted", r)
	}
	return nil
}

// Contains reports whether rating falls inside the range. Unrated (0) never
// matches, even when Min is 0.
func (r RatingRange) Contains(rating int) bool {
	return rating != 0 && r.Min <= rating && rating <= r.Max
}

func (r RatingRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Filter keeps the records whose rating is inside rng, preserving order.
func Filter(records []Record, rng RatingRange) []Record {
	out := make([]Record, 0, len(records))
	for _, record := range records {
		if rng.Contains(record.Rating) {
			out = append(out, record)
		}
	}
	return out
}
