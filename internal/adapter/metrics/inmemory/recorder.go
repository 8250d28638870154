package inmemory

import (
	"maps"
	"sync"

	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

type Snapshot struct {
	CallTotal      uint64            `json:"call_total"`
	CallAccepted   uint64            `json:"call_accepted"`
	CallRejected   uint64            `json:"call_rejected"`
	CallFailure    uint64            `json:"call_failure"`
	AcceptedByOp   map[string]uint64 `json:"accepted_by_op"`
	RejectedByOp   map[string]uint64 `json:"rejected_by_op"`
	FailureByOp    map[string]uint64 `json:"failure_by_op"`
	RejectedByCode map[string]uint64 `json:"rejected_by_code"`
}

type Recorder struct {
	mu           sync.Mutex
	accepted     uint64
	rejected     uint64
	failure      uint64
	acceptedByOp map[string]uint64
	rejectedByOp map[string]uint64
	failureByOp  map[string]uint64
	byCode       map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		acceptedByOp: map[string]uint64{},
		rejectedByOp: map[string]uint64{},
		failureByOp:  map[string]uint64{},
		byCode:       map[string]uint64{},
	}
}

func (r *Recorder) RecordAccepted(op ports.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	r.acceptedByOp[string(op)]++
}

func (r *Recorder) RecordRejected(op ports.Operation, code deed.Code) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.rejectedByOp[string(op)]++
	r.byCode[code.String()]++
}

func (r *Recorder) RecordFailure(op ports.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.failureByOp[string(op)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		CallAccepted:   r.accepted,
		CallRejected:   r.rejected,
		CallFailure:    r.failure,
		CallTotal:      r.accepted + r.rejected + r.failure,
		AcceptedByOp:   maps.Clone(r.acceptedByOp),
		RejectedByOp:   maps.Clone(r.rejectedByOp),
		FailureByOp:    maps.Clone(r.failureByOp),
		RejectedByCode: maps.Clone(r.byCode),
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
