package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alakaboom20/MetaLand-Deeds/internal/adapter/metrics/inmemory"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

	"github.com/stretchr/testify/require"
)

func TestMintDeed_Succeeds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	h.height = 7

	id, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	owner, err := h.reg.GetDeedOwner(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, testCaller, owner)

	fees, err := h.reg.FeeTransfers(ctx)
	require.NoError(t, err)
	require.Equal(t, []deed.FeeTransfer{{Amount: 500, From: testCaller, To: testAuthority}}, fees)

	d, err := h.reg.GetDeed(ctx, 1)
	require.NoError(t, err)
	require.True(t, d.Status)
	require.Equal(t, uint64(7), d.Timestamp)
	require.Equal(t, "ST3ROYALTY", d.RoyaltyReceiver)
}

func TestMintDeed_RejectsDuplicateParcel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))

	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	other := deed.Params{
		MetaverseID:     "Meta1",
		Coordinates:     "10,20",
		Title:           "Land2",
		Description:     "Desc2",
		Attributes:      "Attr2",
		Location:        "Loc2",
		Dimensions:      "60x60",
		Value:           2000,
		RoyaltyRate:     6,
		RoyaltyReceiver: "ST4ROYALTY",
		GracePeriod:     15,
	}
	_, err = h.mint(other)
	require.ErrorIs(t, err, deed.ErrDeedAlreadyExists)

	count, err := h.reg.GetDeedCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)
}

func TestMintDeed_RequiresAuthority(t *testing.T) {
	h := newHarness(t)

	_, err := h.mint(params("Meta1", "10,20"))
	require.ErrorIs(t, err, deed.ErrAuthorityNotVerified)

	fees, err := h.reg.FeeTransfers(context.Background())
	require.NoError(t, err)
	require.Empty(t, fees)
}

func TestMintDeed_RejectsInvalidMetaverseID(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.reg.SetAuthorityContract(context.Background(), testAuthority))

	_, err := h.mint(params("", "10,20"))
	require.ErrorIs(t, err, deed.ErrInvalidMetaverseID)
}

func TestMintDeed_ValidationPrecedesAuthority(t *testing.T) {
	h := newHarness(t)

	p := params("Meta1", "10,20")
	p.Title = strings.Repeat("t", deed.MaxTitleLen+1)
	_, err := h.mint(p)
	require.ErrorIs(t, err, deed.ErrInvalidTitle)
}

func TestMintDeed_MaxDeedsExceeded(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	require.NoError(t, h.reg.SetMaxDeeds(ctx, 1))

	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	_, err = h.mint(params("Meta2", "30,40"))
	require.ErrorIs(t, err, deed.ErrMaxDeedsExceeded)
}

func TestMintDeed_CapCountsBurnedDeeds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	require.NoError(t, h.reg.SetMaxDeeds(ctx, 1))

	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	require.NoError(t, h.reg.BurnDeed(ctx, BurnRequest{Caller: testCaller, DeedID: 1}))

	_, err = h.mint(params("Meta1", "10,20"))
	require.ErrorIs(t, err, deed.ErrMaxDeedsExceeded)
}

func TestMintDeed_ForwardsVerifierCode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	verifier := &fakeVerifier{err: deed.NewError(404)}
	h.reg.Land = verifier

	_, err := h.mint(params("Meta1", "10,20"))
	code, ok := deed.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, deed.Code(404), code)
	require.Equal(t, 1, verifier.calls)

	exists, err := h.reg.CheckDeedExistence(ctx, "Meta1", "10,20")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestMintDeed_VerifierNotConsultedForDuplicate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	verifier := &fakeVerifier{}
	h.reg.Land = verifier
	_, err = h.mint(params("Meta1", "10,20"))
	require.ErrorIs(t, err, deed.ErrDeedAlreadyExists)
	require.Zero(t, verifier.calls)
}

func TestMintDeed_UsesConfiguredFee(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	require.NoError(t, h.reg.SetMintFee(ctx, 1000))

	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	fees, err := h.reg.FeeTransfers(ctx)
	require.NoError(t, err)
	require.Len(t, fees, 1)
	require.Equal(t, uint64(1000), fees[0].Amount)
}

func TestMintDeed_RequiresCaller(t *testing.T) {
	h := newHarness(t)
	_, err := h.reg.MintDeed(context.Background(), MintRequest{Params: params("Meta1", "10,20")})
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSetAuthorityContract_OnlyOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.ErrorIs(t, h.reg.SetAuthorityContract(ctx, deed.BurnIdentity), deed.ErrNotAuthorized)
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	require.ErrorIs(t, h.reg.SetAuthorityContract(ctx, "ST9OTHER"), deed.ErrNotAuthorized)

	settings, err := h.reg.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, testAuthority, settings.Authority)
}

func TestSetMintFee(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.ErrorIs(t, h.reg.SetMintFee(ctx, 1000), deed.ErrNotAuthorized)
	require.ErrorIs(t, h.reg.SetMaxDeeds(ctx, 5), deed.ErrNotAuthorized)

	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	require.NoError(t, h.reg.SetMintFee(ctx, 1000))

	settings, err := h.reg.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), settings.MintFee)
	require.Equal(t, uint64(deed.DefaultMaxDeeds), settings.MaxDeeds)
}

func TestTransferDeed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	h.height = 99
	require.NoError(t, h.reg.TransferDeed(ctx, TransferRequest{Caller: testCaller, DeedID: 1, NewOwner: "ST4NEW"}))

	d, err := h.reg.GetDeed(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "ST4NEW", d.Owner)
	require.Equal(t, uint64(0), d.Timestamp, "transfer must not restamp the deed")

	err = h.reg.TransferDeed(ctx, TransferRequest{Caller: testCaller, DeedID: 1, NewOwner: "ST5BACK"})
	require.ErrorIs(t, err, deed.ErrNotAuthorized)
}

func TestTransferDeed_RejectsNonOwner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	err = h.reg.TransferDeed(ctx, TransferRequest{Caller: testStranger, DeedID: 1, NewOwner: "ST4NEW"})
	require.ErrorIs(t, err, deed.ErrNotAuthorized)

	owner, err := h.reg.GetDeedOwner(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, testCaller, owner)
}

func TestTransferDeed_Missing(t *testing.T) {
	h := newHarness(t)
	err := h.reg.TransferDeed(context.Background(), TransferRequest{Caller: testCaller, DeedID: 42, NewOwner: "ST4NEW"})
	require.ErrorIs(t, err, deed.ErrDeedNotFound)
}

func TestUpdateDeed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	h.height = 12
	require.NoError(t, h.reg.UpdateDeed(ctx, UpdateRequest{
		Caller: testCaller, DeedID: 1, Title: "NewTitle", Description: "NewDesc", Attributes: "NewAttr",
	}))

	update, err := h.reg.GetDeedUpdate(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, deed.Update{
		Title: "NewTitle", Description: "NewDesc", Attributes: "NewAttr", Timestamp: 12, Updater: testCaller,
	}, update)

	d, err := h.reg.GetDeed(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "NewTitle", d.Title)
	require.Equal(t, uint64(12), d.Timestamp)

	h.height = 13
	require.NoError(t, h.reg.UpdateDeed(ctx, UpdateRequest{Caller: testCaller, DeedID: 1, Title: "Again"}))
	update, err = h.reg.GetDeedUpdate(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Again", update.Title)
	require.Equal(t, uint64(13), update.Timestamp)
}

func TestUpdateDeed_RejectsNonOwnerAndInvalidFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	err = h.reg.UpdateDeed(ctx, UpdateRequest{Caller: testStranger, DeedID: 1, Title: "NewTitle"})
	require.ErrorIs(t, err, deed.ErrNotAuthorized)

	err = h.reg.UpdateDeed(ctx, UpdateRequest{Caller: testCaller, DeedID: 1, Title: ""})
	require.ErrorIs(t, err, deed.ErrInvalidTitle)
	err = h.reg.UpdateDeed(ctx, UpdateRequest{Caller: testCaller, DeedID: 1, Title: "T", Description: strings.Repeat("d", deed.MaxDescriptionLen+1)})
	require.ErrorIs(t, err, deed.ErrInvalidDescription)
	err = h.reg.UpdateDeed(ctx, UpdateRequest{Caller: testCaller, DeedID: 1, Title: "T", Attributes: strings.Repeat("a", deed.MaxAttributesLen+1)})
	require.ErrorIs(t, err, deed.ErrInvalidAttributes)

	_, err = h.reg.GetDeedUpdate(ctx, 1)
	require.ErrorIs(t, err, deed.ErrDeedNotFound)
	d, err := h.reg.GetDeed(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Land1", d.Title)
}

func TestBurnDeed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	require.NoError(t, h.reg.UpdateDeed(ctx, UpdateRequest{Caller: testCaller, DeedID: 1, Title: "NewTitle"}))

	require.NoError(t, h.reg.BurnDeed(ctx, BurnRequest{Caller: testCaller, DeedID: 1}))

	_, err = h.reg.GetDeedOwner(ctx, 1)
	require.ErrorIs(t, err, deed.ErrDeedNotFound)
	_, err = h.reg.GetDeedUpdate(ctx, 1)
	require.ErrorIs(t, err, deed.ErrDeedNotFound)
	exists, err := h.reg.CheckDeedExistence(ctx, "Meta1", "10,20")
	require.NoError(t, err)
	require.False(t, exists)

	require.ErrorIs(t, h.reg.BurnDeed(ctx, BurnRequest{Caller: testCaller, DeedID: 1}), deed.ErrDeedNotFound)
}

func TestBurnDeed_RejectsNonOwner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	require.ErrorIs(t, h.reg.BurnDeed(ctx, BurnRequest{Caller: testStranger, DeedID: 1}), deed.ErrNotAuthorized)

	exists, err := h.reg.CheckDeedExistence(ctx, "Meta1", "10,20")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestBurnedParcelCanBeMintedAgain(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	require.NoError(t, h.reg.BurnDeed(ctx, BurnRequest{Caller: testCaller, DeedID: 1}))

	id, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	require.Equal(t, uint64(2), id, "ids are never reused")
}

func TestGetDeedCount_IsMonotonic(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	_, err = h.mint(params("Meta2", "30,40"))
	require.NoError(t, err)

	count, err := h.reg.GetDeedCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), count)

	require.NoError(t, h.reg.BurnDeed(ctx, BurnRequest{Caller: testCaller, DeedID: 1}))
	count, err = h.reg.GetDeedCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), count)
}

func TestCheckDeedExistence(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)

	exists, err := h.reg.CheckDeedExistence(ctx, "Meta1", "10,20")
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = h.reg.CheckDeedExistence(ctx, "Meta3", "50,60")
	require.NoError(t, err)
	require.False(t, exists)

	id, err := h.reg.GetDeedIDByCoordinates(ctx, "Meta1", "10,20")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
}

func TestMintDeed_DistinguishesParcelsSharingSeparator(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))

	first, err := h.mint(params("a|b", "c"))
	require.NoError(t, err)

	exists, err := h.reg.CheckDeedExistence(ctx, "a", "b|c")
	require.NoError(t, err)
	require.False(t, exists)

	second, err := h.mint(params("a", "b|c"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	id, err := h.reg.GetDeedIDByCoordinates(ctx, "a|b", "c")
	require.NoError(t, err)
	require.Equal(t, first, id)
	id, err = h.reg.GetDeedIDByCoordinates(ctx, "a", "b|c")
	require.NoError(t, err)
	require.Equal(t, second, id)
}

func TestListDeedsByOwner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, _ = h.mint(params("Meta1", "1"))
	_, _ = h.mint(params("Meta1", "2"))
	require.NoError(t, h.reg.TransferDeed(ctx, TransferRequest{Caller: testCaller, DeedID: 1, NewOwner: "ST4NEW"}))

	mine, err := h.reg.ListDeedsByOwner(ctx, testCaller)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, uint64(2), mine[0].ID)

	_, err = h.reg.ListDeedsByOwner(ctx, " ")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestHistoryRecordedForMutations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, err := h.mint(params("Meta1", "10,20"))
	require.NoError(t, err)
	require.NoError(t, h.reg.TransferDeed(ctx, TransferRequest{Caller: testCaller, DeedID: 1, NewOwner: "ST4NEW"}))
	require.Error(t, h.reg.BurnDeed(ctx, BurnRequest{Caller: testCaller, DeedID: 1}))

	events, err := h.reg.History.ListByDeedID(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, deed.EventTransferred, events[0].Type)
	require.Equal(t, "ST4NEW", events[0].Payload["to"])
	require.Equal(t, deed.EventMinted, events[1].Type)
	require.Equal(t, "evt-1", events[1].ID)
}

func TestMetricsRecordOutcomes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rec := inmemory.NewRecorder()
	h.reg.Metrics = rec

	_, _ = h.mint(params("Meta1", "10,20"))
	require.NoError(t, h.reg.SetAuthorityContract(ctx, testAuthority))
	_, _ = h.mint(params("Meta1", "10,20"))

	snap := rec.Snapshot()
	require.Equal(t, uint64(2), snap.CallAccepted)
	require.Equal(t, uint64(1), snap.CallRejected)
	require.Equal(t, uint64(1), snap.RejectedByCode["AUTHORITY_NOT_VERIFIED"])
	require.Equal(t, uint64(1), snap.RejectedByOp["mint"])
}

func TestRegistryRequiresPorts(t *testing.T) {
	var reg Registry
	_, err := reg.GetDeedCount(context.Background())
	require.True(t, errors.Is(err, ErrInvalidRequest))
}
