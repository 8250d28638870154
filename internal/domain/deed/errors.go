package deed

import (
	"errors"
	"fmt"
)

// Code is the numeric error value a registry call reports on failure.
type Code uint32

const (
	CodeNotAuthorized        Code = 100
	CodeDeedNotFound         Code = 101
	CodeInvalidMetaverseID   Code = 102
	CodeInvalidCoordinates   Code = 103
	CodeInvalidTitle         Code = 104
	CodeInvalidDescription   Code = 105
	CodeInvalidAttributes    Code = 106
	CodeDeedAlreadyExists    Code = 107
	CodeMaxDeedsExceeded     Code = 109
	CodeAuthorityNotVerified Code = 111
	CodeInvalidUpdateParam   Code = 112
	CodeInvalidLocation      Code = 115
	CodeInvalidDimensions    Code = 116
	CodeInvalidValue         Code = 117
	CodeInvalidRoyaltyRate   Code = 118
	CodeInvalidGracePeriod   Code = 119
)

var codeNames = map[Code]string{
	CodeNotAuthorized:        "NOT_AUTHORIZED",
	CodeDeedNotFound:         "DEED_NOT_FOUND",
	CodeInvalidMetaverseID:   "INVALID_METAVERSE_ID",
	CodeInvalidCoordinates:   "INVALID_COORDINATES",
	CodeInvalidTitle:         "INVALID_TITLE",
	CodeInvalidDescription:   "INVALID_DESCRIPTION",
	CodeInvalidAttributes:    "INVALID_ATTRIBUTES",
	CodeDeedAlreadyExists:    "DEED_ALREADY_EXISTS",
	CodeMaxDeedsExceeded:     "MAX_DEEDS_EXCEEDED",
	CodeAuthorityNotVerified: "AUTHORITY_NOT_VERIFIED",
	CodeInvalidUpdateParam:   "INVALID_UPDATE_PARAM",
	CodeInvalidLocation:      "INVALID_LOCATION",
	CodeInvalidDimensions:    "INVALID_DIMENSIONS",
	CodeInvalidValue:         "INVALID_VALUE",
	CodeInvalidRoyaltyRate:   "INVALID_ROYALTY_RATE",
	CodeInvalidGracePeriod:   "INVALID_GRACE_PERIOD",
}

// String returns the symbolic name, or ERR_<n> for codes owned by
// collaborators such as the land verifier.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ERR_%d", uint32(c))
}

// Error is the failure value of every registry operation.
type Error struct {
	Code Code
}

func NewError(code Code) *Error {
	return &Error{Code: code}
}

func (e *Error) Error() string {
	return fmt.Sprintf("deed: %s (%d)", e.Code, uint32(e.Code))
}

// Is matches any *Error carrying the same code, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && t.Code == e.Code
}

var (
	ErrNotAuthorized        = NewError(CodeNotAuthorized)
	ErrDeedNotFound         = NewError(CodeDeedNotFound)
	ErrInvalidMetaverseID   = NewError(CodeInvalidMetaverseID)
	ErrInvalidCoordinates   = NewError(CodeInvalidCoordinates)
	ErrInvalidTitle         = NewError(CodeInvalidTitle)
	ErrInvalidDescription   = NewError(CodeInvalidDescription)
	ErrInvalidAttributes    = NewError(CodeInvalidAttributes)
	ErrDeedAlreadyExists    = NewError(CodeDeedAlreadyExists)
	ErrMaxDeedsExceeded     = NewError(CodeMaxDeedsExceeded)
	ErrAuthorityNotVerified = NewError(CodeAuthorityNotVerified)
	ErrInvalidUpdateParam   = NewError(CodeInvalidUpdateParam)
	ErrInvalidLocation      = NewError(CodeInvalidLocation)
	ErrInvalidDimensions    = NewError(CodeInvalidDimensions)
	ErrInvalidValue         = NewError(CodeInvalidValue)
	ErrInvalidRoyaltyRate   = NewError(CodeInvalidRoyaltyRate)
	ErrInvalidGracePeriod   = NewError(CodeInvalidGracePeriod)
)

// CodeOf extracts the registry code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Code, true
	}
	return 0, false
}
