package deed

import "unicode/utf8"

const (
	MaxMetaverseIDLen = 50
	MaxCoordinatesLen = 100
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxAttributesLen  = 200
	MaxLocationLen    = 100
	MaxDimensionsLen  = 50
	MaxRoyaltyRate    = 10
	MaxGracePeriod    = 30
)

// ParcelKey identifies a parcel. Both fields take part in equality, so no
// separator character is reserved in either of them.
type ParcelKey struct {
	MetaverseID string
	Coordinates string
}

func NewParcelKey(metaverseID, coordinates string) ParcelKey {
	return ParcelKey{MetaverseID: metaverseID, Coordinates: coordinates}
}

// Validate checks mint fields in a fixed order and reports the first
// violation only.
func (p Params) Validate() error {
	switch {
	case !required(p.MetaverseID, MaxMetaverseIDLen):
		return ErrInvalidMetaverseID
	case !required(p.Coordinates, MaxCoordinatesLen):
		return ErrInvalidCoordinates
	}
	if err := ValidateDescriptive(p.Title, p.Description, p.Attributes); err != nil {
		return err
	}
	switch {
	case !bounded(p.Location, MaxLocationLen):
		return ErrInvalidLocation
	case !bounded(p.Dimensions, MaxDimensionsLen):
		return ErrInvalidDimensions
	case p.Value <= 0:
		return ErrInvalidValue
	case p.RoyaltyRate > MaxRoyaltyRate:
		return ErrInvalidRoyaltyRate
	case p.GracePeriod > MaxGracePeriod:
		return ErrInvalidGracePeriod
	case p.RoyaltyReceiver == BurnIdentity:
		return ErrNotAuthorized
	}
	return nil
}

// ValidateDescriptive checks the fields an owner may edit after minting.
func ValidateDescriptive(title, description, attributes string) error {
	switch {
	case !required(title, MaxTitleLen):
		return ErrInvalidTitle
	case !bounded(description, MaxDescriptionLen):
		return ErrInvalidDescription
	case !bounded(attributes, MaxAttributesLen):
		return ErrInvalidAttributes
	}
	return nil
}

func required(s string, max int) bool {
	return s != "" && bounded(s, max)
}

func bounded(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}
