package gormrepo

import (
	"context"

	"github.com/alakaboom20/MetaLand-Deeds/internal/adapter/repo/gorm/model"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeeLedger struct {
	db *gorm.DB
}

func NewFeeLedger(db *gorm.DB) FeeLedger {
	return FeeLedger{db: db}
}

func (l FeeLedger) Record(ctx context.Context, transfer deed.FeeTransfer) error {
	row := model.FeeTransfer{
		Amount:        int64(transfer.Amount),
		FromPrincipal: transfer.From,
		ToPrincipal:   transfer.To,
	}
	return getDBFromCtx(ctx, l.db).Omit("created_at").Create(&row).Error
}

func (l FeeLedger) List(ctx context.Context) ([]deed.FeeTransfer, error) {
	rows := []model.FeeTransfer{}
	err := getDBFromCtx(ctx, l.db).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]deed.FeeTransfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, deed.FeeTransfer{
			Amount: uint64(row.Amount),
			From:   row.FromPrincipal,
			To:     row.ToPrincipal,
		})
	}
	return out, nil
}
