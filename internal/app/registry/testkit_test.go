package registry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alakaboom20/MetaLand-Deeds/internal/adapter/repo/memory"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

const (
	testCaller    = "ST1TEST"
	testAuthority = "ST2TEST"
	testStranger  = "ST5FAKE"
)

type harness struct {
	reg    Registry
	store  *memory.Store
	height uint64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{store: memory.NewStore()}
	seq := 0
	h.reg = Registry{
		TxManager:   memory.NewTxManager(h.store),
		Deeds:       memory.NewDeedRepo(h.store),
		Fees:        memory.NewFeeLedger(h.store),
		History:     memory.NewHistoryRepo(h.store),
		BlockHeight: func() uint64 { return h.height },
		Now:         func() time.Time { return time.Unix(1700000000, 0).UTC() },
		NewEventID: func() string {
			seq++
			return fmt.Sprintf("evt-%d", seq)
		},
	}
	return h
}

func params(metaverseID, coords string) deed.Params {
	return deed.Params{
		MetaverseID:     metaverseID,
		Coordinates:     coords,
		Title:           "Land1",
		Description:     "Desc1",
		Attributes:      "Attr1",
		Location:        "Loc1",
		Dimensions:      "50x50",
		Value:           1000,
		RoyaltyRate:     5,
		RoyaltyReceiver: "ST3ROYALTY",
		GracePeriod:     10,
	}
}

func (h *harness) mint(p deed.Params) (uint64, error) {
	return h.reg.MintDeed(context.Background(), MintRequest{Caller: testCaller, Params: p})
}

type fakeVerifier struct {
	err   error
	calls int
}

func (v *fakeVerifier) VerifyLand(_ context.Context, _, _ string) error {
	v.calls++
	return v.err
}
