package registry

import "github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

type MintRequest struct {
	Caller string
	Params deed.Params
}

type TransferRequest struct {
	Caller   string
	DeedID   uint64
	NewOwner string
}

type UpdateRequest struct {
	Caller      string
	DeedID      uint64
	Title       string
	Description string
	Attributes  string
}

type BurnRequest struct {
	Caller string
	DeedID uint64
}
