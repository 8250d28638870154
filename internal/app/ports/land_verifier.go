package ports

import "context"

// LandVerifier confirms a parcel exists in its metaverse. A rejection is
// returned as a *deed.Error and surfaces to the caller unchanged.
type LandVerifier interface {
	VerifyLand(ctx context.Context, metaverseID, coordinates string) error
}
