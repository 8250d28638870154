package history

import (
	"context"
	"errors"

	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

var ErrInvalidRequest = errors.New("invalid history request")

type UseCase struct {
	TxManager ports.TxManager
	Events    ports.HistoryRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.DeedID == 0 || req.Limit < 0 || u.Events == nil {
		return Response{}, ErrInvalidRequest
	}
	var events []deed.Event
	list := func(ctx context.Context) error {
		var err error
		events, err = u.Events.ListByDeedID(ctx, req.DeedID, req.Limit)
		return err
	}
	var err error
	if u.TxManager != nil {
		err = u.TxManager.RunInTx(ctx, list)
	} else {
		err = list(ctx)
	}
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{}, deed.ErrDeedNotFound
		}
		return Response{}, err
	}
	out := Response{Events: events}
	reconstruct(&out, events)
	return out, nil
}

// reconstruct walks events oldest first. The repository returns newest first.
func reconstruct(out *Response, events []deed.Event) {
	for i := len(events) - 1; i >= 0; i-- {
		evt := events[i]
		switch evt.Type {
		case deed.EventMinted:
			out.LatestOwner = str(evt.Payload["owner"])
			out.LatestTitle = str(evt.Payload["title"])
			out.Burned = false
		case deed.EventTransferred:
			out.LatestOwner = str(evt.Payload["to"])
		case deed.EventUpdated:
			out.LatestTitle = str(evt.Payload["title"])
		case deed.EventBurned:
			out.Burned = true
		}
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
