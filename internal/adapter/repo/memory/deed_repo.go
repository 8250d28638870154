package memory

import (
	"context"
	"sort"

	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

type DeedRepo struct {
	store *Store
}

func NewDeedRepo(store *Store) DeedRepo {
	return DeedRepo{store: store}
}

func (r DeedRepo) GetSettings(_ context.Context) (deed.Settings, error) {
	return r.store.settings, nil
}

func (r DeedRepo) SaveSettings(_ context.Context, settings deed.Settings) error {
	r.store.touch()
	r.store.settings = settings
	return nil
}

func (r DeedRepo) GetByID(_ context.Context, id uint64) (deed.Deed, error) {
	d, ok := r.store.deeds[id]
	if !ok {
		return deed.Deed{}, ports.ErrNotFound
	}
	return d, nil
}

func (r DeedRepo) GetIDByCoordinates(_ context.Context, metaverseID, coordinates string) (uint64, error) {
	id, ok := r.store.byCoords[deed.NewParcelKey(metaverseID, coordinates)]
	if !ok {
		return 0, ports.ErrNotFound
	}
	return id, nil
}

func (r DeedRepo) ListByOwner(_ context.Context, owner string) ([]deed.Deed, error) {
	out := make([]deed.Deed, 0)
	for _, d := range r.store.deeds {
		if d.Owner == owner {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r DeedRepo) Insert(_ context.Context, d deed.Deed) error {
	if _, exists := r.store.deeds[d.ID]; exists {
		return ports.ErrConflict
	}
	if _, exists := r.store.byCoords[d.Parcel()]; exists {
		return ports.ErrConflict
	}
	r.store.putDeed(d)
	return nil
}

func (r DeedRepo) Save(_ context.Context, d deed.Deed) error {
	if _, ok := r.store.deeds[d.ID]; !ok {
		return ports.ErrNotFound
	}
	if id, taken := r.store.byCoords[d.Parcel()]; taken && id != d.ID {
		return ports.ErrConflict
	}
	r.store.putDeed(d)
	return nil
}

func (r DeedRepo) Delete(_ context.Context, id uint64) error {
	if !r.store.dropDeed(id) {
		return ports.ErrNotFound
	}
	return nil
}

func (r DeedRepo) GetUpdate(_ context.Context, id uint64) (deed.Update, error) {
	u, ok := r.store.updates[id]
	if !ok {
		return deed.Update{}, ports.ErrNotFound
	}
	return u, nil
}

func (r DeedRepo) PutUpdate(_ context.Context, id uint64, update deed.Update) error {
	if _, ok := r.store.deeds[id]; !ok {
		return ports.ErrNotFound
	}
	r.store.touch()
	r.store.updates[id] = update
	return nil
}
