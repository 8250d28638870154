package memory

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx runs fn with exclusive access to the store and restores the
// previous state when fn fails after writing.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inTx, s.undo = true, nil
	defer func() { s.inTx, s.undo = false, nil }()

	if err := fn(ctx); err != nil {
		if s.undo != nil {
			s.restore(*s.undo)
		}
		return err
	}
	return nil
}
