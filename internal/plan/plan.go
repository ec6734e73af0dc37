package plan

import "navicull/internal/catalog"

// Entry is one album scheduled for deletion.
type Entry struct {
	ID     string
	Artist string
	Name   string
	Rating int
	// RelativeDir is the directory as reported by the server.
	RelativeDir string
	// AbsolutePath is RelativeDir joined onto the local music root.
	AbsolutePath string
	// Exists reflects the filesystem when the plan was built.
	Exists bool
}

// Label returns "Artist - Album".
func (e Entry) Label() string {
	return catalog.Record{Name: e.Name, Artist: e.Artist}.Label()
}

// Plan is the ordered result of Build. It is read-only once returned.
type Plan struct {
	Entries []Entry
	Dropped []catalog.Record
}

// Len returns the number of entries.
func (p Plan) Len() int {
	return len(p.Entries)
}

// Missing counts entries whose directory was absent at build time.
func (p Plan) Missing() int {
	n := 0
	for _, entry := range p.Entries {
		if !entry.Exists {
			n++
		}
	}
	return n
}
