package history

import "github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

type Request struct {
	DeedID uint64
	Limit  int
}

type Response struct {
	Events      []deed.Event `json:"events"`
	LatestOwner string       `json:"latest_owner"`
	LatestTitle string       `json:"latest_title"`
	// Burned is true when the newest event in the window is a burn.
	Burned bool `json:"burned"`
}
