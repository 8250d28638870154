package deed

import "time"

// BurnIdentity is the reserved null principal. It can never hold authority
// or receive royalties.
const BurnIdentity = "SP000000000000000000002Q6VF78"

type Deed struct {
	ID              uint64 `json:"id"`
	Owner           string `json:"owner"`
	MetaverseID     string `json:"metaverse_id"`
	Coordinates     string `json:"coordinates"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Attributes      string `json:"attributes"`
	Location        string `json:"location"`
	Dimensions      string `json:"dimensions"`
	Value           int64  `json:"value"`
	RoyaltyRate     uint32 `json:"royalty_rate"`
	RoyaltyReceiver string `json:"royalty_receiver"`
	Timestamp       uint64 `json:"timestamp"`
	Status          bool   `json:"status"`
	GracePeriod     uint32 `json:"grace_period"`
}

// Params carries the caller supplied fields of a mint.
type Params struct {
	MetaverseID     string `json:"metaverse_id"`
	Coordinates     string `json:"coordinates"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Attributes      string `json:"attributes"`
	Location        string `json:"location"`
	Dimensions      string `json:"dimensions"`
	Value           int64  `json:"value"`
	RoyaltyRate     uint32 `json:"royalty_rate"`
	RoyaltyReceiver string `json:"royalty_receiver"`
	GracePeriod     uint32 `json:"grace_period"`
}

// New builds an active deed owned by owner, stamped at height.
func New(id uint64, owner string, p Params, height uint64) Deed {
	return Deed{
		ID:              id,
		Owner:           owner,
		MetaverseID:     p.MetaverseID,
		Coordinates:     p.Coordinates,
		Title:           p.Title,
		Description:     p.Description,
		Attributes:      p.Attributes,
		Location:        p.Location,
		Dimensions:      p.Dimensions,
		Value:           p.Value,
		RoyaltyRate:     p.RoyaltyRate,
		RoyaltyReceiver: p.RoyaltyReceiver,
		Timestamp:       height,
		Status:          true,
		GracePeriod:     p.GracePeriod,
	}
}

// Parcel returns the key of the parcel this deed covers.
func (d Deed) Parcel() ParcelKey {
	return NewParcelKey(d.MetaverseID, d.Coordinates)
}

// Update is the audit record of the last descriptive edit of a deed.
type Update struct {
	Title       string `json:"update_title"`
	Description string `json:"update_description"`
	Attributes  string `json:"update_attributes"`
	Timestamp   uint64 `json:"update_timestamp"`
	Updater     string `json:"updater"`
}

// FeeTransfer is a settlement request left for the surrounding chain.
type FeeTransfer struct {
	Amount uint64 `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type EventType string

const (
	EventMinted      EventType = "deed_minted"
	EventTransferred EventType = "deed_transferred"
	EventUpdated     EventType = "deed_updated"
	EventBurned      EventType = "deed_burned"
)

// Event is one entry of a deed's history trail.
type Event struct {
	ID          string         `json:"id"`
	DeedID      uint64         `json:"deed_id"`
	Type        EventType      `json:"type"`
	Caller      string         `json:"caller"`
	BlockHeight uint64         `json:"block_height"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload"`
}
