package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type pagedLister struct {
	pages [][]Record
	calls []int
	err   error
}

func (l *pagedLister) ListAlbums(_ context.Context, offset, size int) ([]Record, error) {
	l.calls = append(l.calls, offset)
	if l.err != nil {
		return nil, l.err
	}
	idx := offset / size
	if idx >= len(l.pages) {
		return nil, nil
	}
	return l.pages[idx], nil
}

func records(prefix string, n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{ID: fmt.Sprintf("%s-%d", prefix, i), Rating: 1}
	}
	return out
}

func TestFetchAllStopsAfterEmptyPage(t *testing.T) {
	lister := &pagedLister{pages: [][]Record{records("a", 3), {}}}

	got, err := FetchAll(context.Background(), lister, 3)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if len(lister.calls) != 2 {
		t.Fatalf("expected 2 requests, got %d (%v)", len(lister.calls), lister.calls)
	}
	if lister.calls[0] != 0 || lister.calls[1] != 3 {
		t.Fatalf("unexpected offsets: %v", lister.calls)
	}
}

func TestFetchAllStopsOnShortFirstPage(t *testing.T) {
	lister := &pagedLister{pages: [][]Record{records("a", 2)}}

	got, err := FetchAll(context.Background(), lister, 5)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if len(lister.calls) != 1 {
		t.Fatalf("expected a single request, got %d", len(lister.calls))
	}
}

func TestFetchAllConcatenatesInServerOrder(t *testing.T) {
	lister := &pagedLister{pages: [][]Record{records("a", 2), records("b", 2), records("c", 1)}}

	got, err := FetchAll(context.Background(), lister, 2)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	want := []string{"a-0", "a-1", "b-0", "b-1", "c-0"}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("record %d: got %s want %s", i, got[i].ID, id)
		}
	}
	if len(lister.calls) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(lister.calls))
	}
}

func TestFetchAllPropagatesErrors(t *testing.T) {
	boom := errors.New("connection refused")
	lister := &pagedLister{err: boom}

	if _, err := FetchAll(context.Background(), lister, 10); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestFetchAllRejectsNonPositivePageSize(t *testing.T) {
	if _, err := FetchAll(context.Background(), &pagedLister{}, 0); err == nil {
		t.Fatal("expected error for zero page size")
	}
}
