package gormrepo

import (
	"context"
	"errors"

	"github.com/alakaboom20/MetaLand-Deeds/internal/adapter/repo/gorm/model"
	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const settingsRowID = 1

type DeedRepo struct {
	db *gorm.DB
}

func NewDeedRepo(db *gorm.DB) DeedRepo {
	return DeedRepo{db: db}
}

// GetSettings locks the settings row for the rest of the transaction so
// concurrent mints cannot hand out the same id.
func (r DeedRepo) GetSettings(ctx context.Context) (deed.Settings, error) {
	var row model.RegistrySetting
	err := getDBFromCtx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", settingsRowID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deed.DefaultSettings(), nil
		}
		return deed.Settings{}, err
	}
	return deed.Settings{
		LastDeedID: uint64(row.LastDeedID),
		MaxDeeds:   uint64(row.MaxDeeds),
		MintFee:    uint64(row.MintFee),
		Authority:  row.Authority,
	}, nil
}

func (r DeedRepo) SaveSettings(ctx context.Context, settings deed.Settings) error {
	row := model.RegistrySetting{
		ID:         settingsRowID,
		LastDeedID: int64(settings.LastDeedID),
		MaxDeeds:   int64(settings.MaxDeeds),
		MintFee:    int64(settings.MintFee),
		Authority:  settings.Authority,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_deed_id", "max_deeds", "mint_fee", "authority"}),
	}).Create(&row).Error
}

func (r DeedRepo) GetByID(ctx context.Context, id uint64) (deed.Deed, error) {
	var row model.Deed
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", int64(id)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deed.Deed{}, ports.ErrNotFound
		}
		return deed.Deed{}, err
	}
	return toDomainDeed(row), nil
}

func (r DeedRepo) GetIDByCoordinates(ctx context.Context, metaverseID, coordinates string) (uint64, error) {
	var row model.Deed
	err := getDBFromCtx(ctx, r.db).
		Select("id").
		Where("metaverse_id = ? AND coordinates = ?", metaverseID, coordinates).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ports.ErrNotFound
		}
		return 0, err
	}
	return uint64(row.ID), nil
}

func (r DeedRepo) ListByOwner(ctx context.Context, owner string) ([]deed.Deed, error) {
	rows := []model.Deed{}
	err := getDBFromCtx(ctx, r.db).
		Where("owner = ?", owner).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]deed.Deed, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainDeed(row))
	}
	return out, nil
}

// Insert relies on the (metaverse_id, coordinates) unique constraint to
// keep the parcel index consistent with the deed row.
func (r DeedRepo) Insert(ctx context.Context, d deed.Deed) error {
	row := toModelDeed(d)
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r DeedRepo) Save(ctx context.Context, d deed.Deed) error {
	row := toModelDeed(d)
	res := getDBFromCtx(ctx, r.db).
		Model(&model.Deed{}).
		Where("id = ?", row.ID).
		Select("*").Omit("id").
		Updates(&row)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ports.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Delete removes the deed together with its audit record.
func (r DeedRepo) Delete(ctx context.Context, id uint64) error {
	db := getDBFromCtx(ctx, r.db)
	if err := db.Where("deed_id = ?", int64(id)).Delete(&model.DeedUpdate{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", int64(id)).Delete(&model.Deed{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r DeedRepo) GetUpdate(ctx context.Context, id uint64) (deed.Update, error) {
	var row model.DeedUpdate
	if err := getDBFromCtx(ctx, r.db).Where("deed_id = ?", int64(id)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deed.Update{}, ports.ErrNotFound
		}
		return deed.Update{}, err
	}
	return deed.Update{
		Title:       row.Title,
		Description: row.Description,
		Attributes:  row.Attributes,
		Timestamp:   uint64(row.BlockHeight),
		Updater:     row.Updater,
	}, nil
}

func (r DeedRepo) PutUpdate(ctx context.Context, id uint64, update deed.Update) error {
	db := getDBFromCtx(ctx, r.db)
	var count int64
	if err := db.Model(&model.Deed{}).Where("id = ?", int64(id)).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	row := model.DeedUpdate{
		DeedID:      int64(id),
		Title:       update.Title,
		Description: update.Description,
		Attributes:  update.Attributes,
		BlockHeight: int64(update.Timestamp),
		Updater:     update.Updater,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "deed_id"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func toModelDeed(d deed.Deed) model.Deed {
	return model.Deed{
		ID:              int64(d.ID),
		Owner:           d.Owner,
		MetaverseID:     d.MetaverseID,
		Coordinates:     d.Coordinates,
		Title:           d.Title,
		Description:     d.Description,
		Attributes:      d.Attributes,
		Location:        d.Location,
		Dimensions:      d.Dimensions,
		Value:           d.Value,
		RoyaltyRate:     int32(d.RoyaltyRate),
		RoyaltyReceiver: d.RoyaltyReceiver,
		BlockHeight:     int64(d.Timestamp),
		Status:          d.Status,
		GracePeriod:     int32(d.GracePeriod),
	}
}

func toDomainDeed(row model.Deed) deed.Deed {
	return deed.Deed{
		ID:              uint64(row.ID),
		Owner:           row.Owner,
		MetaverseID:     row.MetaverseID,
		Coordinates:     row.Coordinates,
		Title:           row.Title,
		Description:     row.Description,
		Attributes:      row.Attributes,
		Location:        row.Location,
		Dimensions:      row.Dimensions,
		Value:           row.Value,
		RoyaltyRate:     uint32(row.RoyaltyRate),
		RoyaltyReceiver: row.RoyaltyReceiver,
		Timestamp:       uint64(row.BlockHeight),
		Status:          row.Status,
		GracePeriod:     uint32(row.GracePeriod),
	}
}
