package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alakaboom20/MetaLand-Deeds/internal/adapter/repo/gorm/model"
	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepo {
	return HistoryRepo{db: db}
}

func (r HistoryRepo) Append(ctx context.Context, events []deed.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DeedEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", e.Type, err)
		}
		rows = append(rows, model.DeedEvent{
			EventID:     e.ID,
			DeedID:      int64(e.DeedID),
			Type:        string(e.Type),
			Caller:      e.Caller,
			BlockHeight: int64(e.BlockHeight),
			OccurredAt:  e.OccurredAt,
			Payload:     string(b),
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r HistoryRepo) ListByDeedID(ctx context.Context, deedID uint64, limit int) ([]deed.Event, error) {
	rows := []model.DeedEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where("deed_id = ?", int64(deedID)).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]deed.Event, 0, len(rows))
	for _, row := range rows {
		e, err := toDomainEvent(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func toDomainEvent(row model.DeedEvent) (deed.Event, error) {
	var payload map[string]any
	if row.Payload != "" {
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return deed.Event{}, fmt.Errorf("decode event %s payload: %w", row.EventID, err)
		}
	}
	return deed.Event{
		ID:          row.EventID,
		DeedID:      uint64(row.DeedID),
		Type:        deed.EventType(row.Type),
		Caller:      row.Caller,
		BlockHeight: uint64(row.BlockHeight),
		OccurredAt:  row.OccurredAt,
		Payload:     payload,
	}, nil
}
