package memory

import (
	"context"

	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

type FeeLedger struct {
	store *Store
}

func NewFeeLedger(store *Store) FeeLedger {
	return FeeLedger{store: store}
}

func (l FeeLedger) Record(_ context.Context, transfer deed.FeeTransfer) error {
	l.store.touch()
	l.store.fees = append(l.store.fees, transfer)
	return nil
}

func (l FeeLedger) List(_ context.Context) ([]deed.FeeTransfer, error) {
	out := make([]deed.FeeTransfer, len(l.store.fees))
	copy(out, l.store.fees)
	return out, nil
}
