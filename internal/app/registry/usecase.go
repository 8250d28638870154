package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidRequest = errors.New("invalid registry request")

// Registry is the deed contract. Every call runs as one serialized
// transaction through TxManager, so a rejected call leaves no trace.
type Registry struct {
	TxManager ports.TxManager
	Deeds     ports.DeedRepository
	Fees      ports.FeeLedger
	History   ports.HistoryRepository
	Land      ports.LandVerifier
	Metrics   ports.RegistryMetrics
	Logger    *zap.Logger

	BlockHeight func() uint64
	Now         func() time.Time
	NewEventID  func() string
}

func (r Registry) SetAuthorityContract(ctx context.Context, principal string) error {
	err := r.run(ctx, func(txCtx context.Context) error {
		settings, err := r.Deeds.GetSettings(txCtx)
		if err != nil {
			return err
		}
		if err := settings.SetAuthority(principal); err != nil {
			return err
		}
		return r.Deeds.SaveSettings(txCtx, settings)
	})
	return r.finish(ports.OpSetAuthority, principal, 0, err)
}

func (r Registry) SetMintFee(ctx context.Context, fee uint64) error {
	err := r.run(ctx, func(txCtx context.Context) error {
		settings, err := r.Deeds.GetSettings(txCtx)
		if err != nil {
			return err
		}
		if err := settings.SetMintFee(fee); err != nil {
			return err
		}
		return r.Deeds.SaveSettings(txCtx, settings)
	})
	return r.finish(ports.OpSetMintFee, "", 0, err)
}

func (r Registry) SetMaxDeeds(ctx context.Context, max uint64) error {
	err := r.run(ctx, func(txCtx context.Context) error {
		settings, err := r.Deeds.GetSettings(txCtx)
		if err != nil {
			return err
		}
		if err := settings.SetMaxDeeds(max); err != nil {
			return err
		}
		return r.Deeds.SaveSettings(txCtx, settings)
	})
	return r.finish(ports.OpSetMaxDeeds, "", 0, err)
}

// MintDeed creates a deed owned by the caller and returns its id. Checks
// run in a fixed order and the first failing one is reported.
func (r Registry) MintDeed(ctx context.Context, req MintRequest) (uint64, error) {
	if strings.TrimSpace(req.Caller) == "" {
		return 0, ErrInvalidRequest
	}
	var id uint64
	err := r.run(ctx, func(txCtx context.Context) error {
		settings, err := r.Deeds.GetSettings(txCtx)
		if err != nil {
			return err
		}
		if err := settings.CheckCapacity(); err != nil {
			return err
		}
		p := req.Params
		if err := p.Validate(); err != nil {
			return err
		}
		if _, err := r.Deeds.GetIDByCoordinates(txCtx, p.MetaverseID, p.Coordinates); err == nil {
			return deed.ErrDeedAlreadyExists
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		if r.Land != nil {
			if err := r.Land.VerifyLand(txCtx, p.MetaverseID, p.Coordinates); err != nil {
				return err
			}
		}
		if !settings.HasAuthority() {
			return deed.ErrAuthorityNotVerified
		}
		if err := r.Fees.Record(txCtx, deed.FeeTransfer{
			Amount: settings.MintFee,
			From:   req.Caller,
			To:     settings.Authority,
		}); err != nil {
			return err
		}

		height := r.height()
		d := deed.New(settings.NextID(), req.Caller, p, height)
		if err := r.Deeds.Insert(txCtx, d); err != nil {
			if errors.Is(err, ports.ErrConflict) {
				return deed.ErrDeedAlreadyExists
			}
			return err
		}
		settings.LastDeedID = d.ID
		if err := r.Deeds.SaveSettings(txCtx, settings); err != nil {
			return err
		}
		id = d.ID
		return r.record(txCtx, d.ID, deed.EventMinted, req.Caller, height, map[string]any{
			"owner":        d.Owner,
			"metaverse_id": d.MetaverseID,
			"coordinates":  d.Coordinates,
			"title":        d.Title,
			"fee":          settings.MintFee,
		})
	})
	if err != nil {
		id = 0
	}
	return id, r.finish(ports.OpMint, req.Caller, id, err)
}

// TransferDeed hands the deed to a new owner. The deed timestamp is left
// untouched.
func (r Registry) TransferDeed(ctx context.Context, req TransferRequest) error {
	if strings.TrimSpace(req.Caller) == "" || strings.TrimSpace(req.NewOwner) == "" {
		return ErrInvalidRequest
	}
	err := r.run(ctx, func(txCtx context.Context) error {
		d, err := r.ownedBy(txCtx, req.DeedID, req.Caller)
		if err != nil {
			return err
		}
		previous := d.Owner
		d.Owner = req.NewOwner
		if err := r.Deeds.Save(txCtx, d); err != nil {
			return err
		}
		return r.record(txCtx, d.ID, deed.EventTransferred, req.Caller, r.height(), map[string]any{
			"from": previous,
			"to":   d.Owner,
		})
	})
	return r.finish(ports.OpTransfer, req.Caller, req.DeedID, err)
}

// UpdateDeed replaces the descriptive fields and overwrites the audit record.
func (r Registry) UpdateDeed(ctx context.Context, req UpdateRequest) error {
	if strings.TrimSpace(req.Caller) == "" {
		return ErrInvalidRequest
	}
	err := r.run(ctx, func(txCtx context.Context) error {
		d, err := r.ownedBy(txCtx, req.DeedID, req.Caller)
		if err != nil {
			return err
		}
		if err := deed.ValidateDescriptive(req.Title, req.Description, req.Attributes); err != nil {
			return err
		}
		height := r.height()
		d.Title = req.Title
		d.Description = req.Description
		d.Attributes = req.Attributes
		d.Timestamp = height
		if err := r.Deeds.Save(txCtx, d); err != nil {
			return err
		}
		if err := r.Deeds.PutUpdate(txCtx, d.ID, deed.Update{
			Title:       req.Title,
			Description: req.Description,
			Attributes:  req.Attributes,
			Timestamp:   height,
			Updater:     req.Caller,
		}); err != nil {
			return err
		}
		return r.record(txCtx, d.ID, deed.EventUpdated, req.Caller, height, map[string]any{
			"title":       req.Title,
			"description": req.Description,
			"attributes":  req.Attributes,
		})
	})
	return r.finish(ports.OpUpdate, req.Caller, req.DeedID, err)
}

// BurnDeed removes the deed, its coordinate index entry and its audit record.
func (r Registry) BurnDeed(ctx context.Context, req BurnRequest) error {
	if strings.TrimSpace(req.Caller) == "" {
		return ErrInvalidRequest
	}
	err := r.run(ctx, func(txCtx context.Context) error {
		d, err := r.ownedBy(txCtx, req.DeedID, req.Caller)
		if err != nil {
			return err
		}
		if err := r.Deeds.Delete(txCtx, d.ID); err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return deed.ErrDeedNotFound
			}
			return err
		}
		return r.record(txCtx, d.ID, deed.EventBurned, req.Caller, r.height(), map[string]any{
			"owner":        d.Owner,
			"metaverse_id": d.MetaverseID,
			"coordinates":  d.Coordinates,
		})
	})
	return r.finish(ports.OpBurn, req.Caller, req.DeedID, err)
}

func (r Registry) GetDeedOwner(ctx context.Context, id uint64) (string, error) {
	d, err := r.GetDeed(ctx, id)
	if err != nil {
		return "", err
	}
	return d.Owner, nil
}

func (r Registry) GetDeed(ctx context.Context, id uint64) (deed.Deed, error) {
	var out deed.Deed
	err := r.run(ctx, func(txCtx context.Context) error {
		d, err := r.lookup(txCtx, id)
		out = d
		return err
	})
	if err != nil {
		return deed.Deed{}, err
	}
	return out, nil
}

func (r Registry) GetDeedUpdate(ctx context.Context, id uint64) (deed.Update, error) {
	var out deed.Update
	err := r.run(ctx, func(txCtx context.Context) error {
		u, err := r.Deeds.GetUpdate(txCtx, id)
		if errors.Is(err, ports.ErrNotFound) {
			return deed.ErrDeedNotFound
		}
		out = u
		return err
	})
	if err != nil {
		return deed.Update{}, err
	}
	return out, nil
}

// GetDeedCount reports the ever-minted counter. Burns do not decrease it.
func (r Registry) GetDeedCount(ctx context.Context) (uint64, error) {
	settings, err := r.Settings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.LastDeedID, nil
}

func (r Registry) CheckDeedExistence(ctx context.Context, metaverseID, coordinates string) (bool, error) {
	_, err := r.GetDeedIDByCoordinates(ctx, metaverseID, coordinates)
	if errors.Is(err, deed.ErrDeedNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r Registry) GetDeedIDByCoordinates(ctx context.Context, metaverseID, coordinates string) (uint64, error) {
	var id uint64
	err := r.run(ctx, func(txCtx context.Context) error {
		found, err := r.Deeds.GetIDByCoordinates(txCtx, metaverseID, coordinates)
		if errors.Is(err, ports.ErrNotFound) {
			return deed.ErrDeedNotFound
		}
		id = found
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r Registry) ListDeedsByOwner(ctx context.Context, owner string) ([]deed.Deed, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrInvalidRequest
	}
	var out []deed.Deed
	err := r.run(ctx, func(txCtx context.Context) error {
		deeds, err := r.Deeds.ListByOwner(txCtx, owner)
		out = deeds
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r Registry) Settings(ctx context.Context) (deed.Settings, error) {
	var out deed.Settings
	err := r.run(ctx, func(txCtx context.Context) error {
		s, err := r.Deeds.GetSettings(txCtx)
		out = s
		return err
	})
	if err != nil {
		return deed.Settings{}, err
	}
	return out, nil
}

func (r Registry) FeeTransfers(ctx context.Context) ([]deed.FeeTransfer, error) {
	var out []deed.FeeTransfer
	err := r.run(ctx, func(txCtx context.Context) error {
		transfers, err := r.Fees.List(txCtx)
		out = transfers
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r Registry) ready() error {
	if r.TxManager == nil || r.Deeds == nil || r.Fees == nil {
		return ErrInvalidRequest
	}
	return nil
}

func (r Registry) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.TxManager.RunInTx(ctx, fn)
}

func (r Registry) lookup(ctx context.Context, id uint64) (deed.Deed, error) {
	d, err := r.Deeds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return deed.Deed{}, deed.ErrDeedNotFound
		}
		return deed.Deed{}, err
	}
	return d, nil
}

func (r Registry) ownedBy(ctx context.Context, id uint64, caller string) (deed.Deed, error) {
	d, err := r.lookup(ctx, id)
	if err != nil {
		return deed.Deed{}, err
	}
	if d.Owner != caller {
		return deed.Deed{}, deed.ErrNotAuthorized
	}
	return d, nil
}

func (r Registry) record(ctx context.Context, id uint64, typ deed.EventType, caller string, height uint64, payload map[string]any) error {
	if r.History == nil {
		return nil
	}
	newID := r.NewEventID
	if newID == nil {
		newID = uuid.NewString
	}
	nowFn := r.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return r.History.Append(ctx, []deed.Event{{
		ID:          newID(),
		DeedID:      id,
		Type:        typ,
		Caller:      caller,
		BlockHeight: height,
		OccurredAt:  nowFn().UTC(),
		Payload:     payload,
	}})
}

func (r Registry) height() uint64 {
	if r.BlockHeight == nil {
		return 0
	}
	return r.BlockHeight()
}

func (r Registry) finish(op ports.Operation, caller string, id uint64, err error) error {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := []zap.Field{zap.String("op", string(op))}
	if caller != "" {
		fields = append(fields, zap.String("caller", caller))
	}
	if id > 0 {
		fields = append(fields, zap.Uint64("deed_id", id))
	}

	code, rejected := deed.CodeOf(err)
	switch {
	case err == nil:
		if r.Metrics != nil {
			r.Metrics.RecordAccepted(op)
		}
		logger.Info("registry call accepted", fields...)
	case rejected:
		if r.Metrics != nil {
			r.Metrics.RecordRejected(op, code)
		}
		logger.Info("registry call rejected", append(fields, zap.Int("code", int(code)), zap.Stringer("reason", code))...)
	default:
		if r.Metrics != nil {
			r.Metrics.RecordFailure(op)
		}
		logger.Error("registry call failed", append(fields, zap.Error(err))...)
	}
	return err
}
