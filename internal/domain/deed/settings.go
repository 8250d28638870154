package deed

const (
	DefaultMaxDeeds = 10000
	DefaultMintFee  = 500
)

// Settings is the registry-wide configuration plus the id counter.
type Settings struct {
	LastDeedID uint64 `json:"last_deed_id"`
	MaxDeeds   uint64 `json:"max_deeds"`
	MintFee    uint64 `json:"mint_fee"`
	// Authority is empty until configured.
	Authority string `json:"authority_contract"`
}

func DefaultSettings() Settings {
	return Settings{
		MaxDeeds: DefaultMaxDeeds,
		MintFee:  DefaultMintFee,
	}
}

func (s Settings) HasAuthority() bool {
	return s.Authority != ""
}

// SetAuthority configures the authority exactly once.
func (s *Settings) SetAuthority(principal string) error {
	if principal == "" || principal == BurnIdentity {
		return ErrNotAuthorized
	}
	if s.HasAuthority() {
		return ErrNotAuthorized
	}
	s.Authority = principal
	return nil
}

func (s *Settings) SetMintFee(fee uint64) error {
	if !s.HasAuthority() {
		return ErrNotAuthorized
	}
	s.MintFee = fee
	return nil
}

func (s *Settings) SetMaxDeeds(max uint64) error {
	if !s.HasAuthority() {
		return ErrNotAuthorized
	}
	s.MaxDeeds = max
	return nil
}

// CheckCapacity compares the ever-minted counter, not the live count,
// against the cap.
func (s Settings) CheckCapacity() error {
	if s.LastDeedID >= s.MaxDeeds {
		return ErrMaxDeedsExceeded
	}
	return nil
}

// NextID returns the id the next mint will receive. Ids are never reused.
func (s Settings) NextID() uint64 {
	return s.LastDeedID + 1
}
