package catalog

// MaxRating is the top of the server's five-star rating scale.
const MaxRating = 5

// Record is one album as listed by the server. Records are never mutated
// after the fetch stage returns them.
type Record struct {
	ID     string
	Name   string
	Artist string
	// Rating is the user's rating, 0 (unrated) through MaxRating.
	Rating int
}

// Label returns "Artist - Album" for log and warning lines.
func (r Record) Label() string {
	artist := r.Artist
	if artist == "" {
		artist = "Unknown"
	}
	name := r.Name
	if name == "" {
		name = "Unknown"
	}
	return artist + " - " + name
}
