package memory

import (
	"context"

	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

type HistoryRepo struct {
	store *Store
}

func NewHistoryRepo(store *Store) HistoryRepo {
	return HistoryRepo{store: store}
}

func (r HistoryRepo) Append(_ context.Context, events []deed.Event) error {
	if len(events) > 0 {
		r.store.touch()
	}
	for _, e := range events {
		r.store.history[e.DeedID] = append(r.store.history[e.DeedID], e)
	}
	return nil
}

// ListByDeedID returns the newest events first.
func (r HistoryRepo) ListByDeedID(_ context.Context, deedID uint64, limit int) ([]deed.Event, error) {
	events := r.store.history[deedID]
	if len(events) == 0 {
		return nil, ports.ErrNotFound
	}
	n := len(events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]deed.Event, 0, n)
	for i := len(events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, events[i])
	}
	return out, nil
}
