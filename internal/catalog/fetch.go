package catalog

import (
	"context"
	"fmt"
)

// Lister returns one window of the album listing.
type Lister interface {
	ListAlbums(ctx context.Context, offset, size int) ([]Record, error)
}

// FetchAll walks the listing in windows of pageSize starting at offset 0 and
// stops at the first window holding fewer than pageSize records. Records are
// returned in server order.
//
// A server that keeps returning full windows (for example by ignoring the
// offset) is not detected; callers talking to such a server must bound the
// walk themselves.
func FetchAll(ctx context.Context, lister Lister, pageSize int) ([]Record, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	var all []Record
	for offset := 0; ; offset += pageSize {
		batch, err := lister.ListAlbums(ctx, offset, pageSize)
		if err != nil {
			return nil, fmt.Errorf("list albums at offset %d: %w", offset, err)
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			return all, nil
		}
	}
}
