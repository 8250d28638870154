package ports

import (
	"context"

	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

// DeedRepository owns the registry state: settings, deeds, audit records
// and the coordinate index. Insert and Delete maintain the deed row and
// its index entry together.
type DeedRepository interface {
	GetSettings(ctx context.Context) (deed.Settings, error)
	SaveSettings(ctx context.Context, settings deed.Settings) error

	GetByID(ctx context.Context, id uint64) (deed.Deed, error)
	GetIDByCoordinates(ctx context.Context, metaverseID, coordinates string) (uint64, error)
	ListByOwner(ctx context.Context, owner string) ([]deed.Deed, error)
	Insert(ctx context.Context, d deed.Deed) error
	Save(ctx context.Context, d deed.Deed) error
	Delete(ctx context.Context, id uint64) error

	GetUpdate(ctx context.Context, id uint64) (deed.Update, error)
	PutUpdate(ctx context.Context, id uint64, update deed.Update) error
}

type FeeLedger interface {
	Record(ctx context.Context, transfer deed.FeeTransfer) error
	List(ctx context.Context) ([]deed.FeeTransfer, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, events []deed.Event) error
	ListByDeedID(ctx context.Context, deedID uint64, limit int) ([]deed.Event, error)
}
