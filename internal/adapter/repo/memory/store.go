package memory

import (
	"maps"
	"sync"

	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

// Store is the in-memory registry state. Repositories built on it do not
// lock; TxManager serializes access and rolls back failed transactions.
type Store struct {
	mu sync.Mutex
	// inTx is set while a TxManager transaction runs. undo holds the state
	// from before the first write of that transaction, if any.
	inTx     bool
	undo     *snapshot
	settings deed.Settings
	deeds    map[uint64]deed.Deed
	updates  map[uint64]deed.Update
	byCoords map[deed.ParcelKey]uint64
	fees     []deed.FeeTransfer
	history  map[uint64][]deed.Event
}

func NewStore() *Store {
	return &Store{
		settings: deed.DefaultSettings(),
		deeds:    make(map[uint64]deed.Deed),
		updates:  make(map[uint64]deed.Update),
		byCoords: make(map[deed.ParcelKey]uint64),
		history:  make(map[uint64][]deed.Event),
	}
}

// SeedSettings replaces the registry settings, for bootstrapping and tests.
func (s *Store) SeedSettings(settings deed.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// touch must be called before every write so a failed transaction can be
// rolled back. Read-only transactions never copy the state.
func (s *Store) touch() {
	if !s.inTx || s.undo != nil {
		return
	}
	snap := s.snapshot()
	s.undo = &snap
}

// putDeed writes the deed and its coordinate index entry together.
func (s *Store) putDeed(d deed.Deed) {
	s.touch()
	if prev, ok := s.deeds[d.ID]; ok && prev.Parcel() != d.Parcel() {
		delete(s.byCoords, prev.Parcel())
	}
	s.deeds[d.ID] = d
	s.byCoords[d.Parcel()] = d.ID
}

// dropDeed removes the deed, its index entry and its audit record together.
func (s *Store) dropDeed(id uint64) bool {
	d, ok := s.deeds[id]
	if !ok {
		return false
	}
	s.touch()
	delete(s.deeds, id)
	delete(s.byCoords, d.Parcel())
	delete(s.updates, id)
	return true
}

type snapshot struct {
	settings deed.Settings
	deeds    map[uint64]deed.Deed
	updates  map[uint64]deed.Update
	byCoords map[deed.ParcelKey]uint64
	fees     []deed.FeeTransfer
	history  map[uint64][]deed.Event
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		settings: s.settings,
		deeds:    maps.Clone(s.deeds),
		updates:  maps.Clone(s.updates),
		byCoords: maps.Clone(s.byCoords),
		fees:     s.fees[:len(s.fees):len(s.fees)],
		history:  maps.Clone(s.history),
	}
}

func (s *Store) restore(snap snapshot) {
	s.settings = snap.settings
	s.deeds = snap.deeds
	s.updates = snap.updates
	s.byCoords = snap.byCoords
	s.fees = snap.fees
	s.history = snap.history
}
