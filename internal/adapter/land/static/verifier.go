package static

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"
)

// Verifier accepts every parcel except the denied ones, which are rejected
// with their configured code.
type Verifier struct {
	Denied map[deed.ParcelKey]deed.Code
}

func (v Verifier) VerifyLand(_ context.Context, metaverseID, coordinates string) error {
	if code, ok := v.Denied[deed.NewParcelKey(metaverseID, coordinates)]; ok {
		return deed.NewError(code)
	}
	return nil
}

// ParseDenied reads entries of the form "<metaverse>|<coordinates>=<code>".
// The metaverse ends at the first "|" and the code starts after the last "=".
func ParseDenied(entries []string) (map[deed.ParcelKey]deed.Code, error) {
	out := make(map[deed.ParcelKey]deed.Code, len(entries))
	for _, raw := range entries {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		eq := strings.LastIndex(raw, "=")
		if eq <= 0 {
			return nil, fmt.Errorf("denied parcel %q: missing code", raw)
		}
		metaverseID, coordinates, ok := strings.Cut(strings.TrimSpace(raw[:eq]), "|")
		if !ok || metaverseID == "" || coordinates == "" {
			return nil, fmt.Errorf("denied parcel %q: expected metaverse|coordinates", raw)
		}
		code, err := strconv.ParseUint(strings.TrimSpace(raw[eq+1:]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("denied parcel %q: %w", raw, err)
		}
		if code == 0 {
			return nil, fmt.Errorf("denied parcel %q: code must be non-zero", raw)
		}
		out[deed.NewParcelKey(metaverseID, coordinates)] = deed.Code(code)
	}
	return out, nil
}
