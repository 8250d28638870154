package ports

import "github.com/alakaboom20/MetaLand-Deeds/internal/domain/deed"

type Operation string

const (
	OpSetAuthority Operation = "set_authority"
	OpSetMintFee   Operation = "set_mint_fee"
	OpSetMaxDeeds  Operation = "set_max_deeds"
	OpMint         Operation = "mint"
	OpTransfer     Operation = "transfer"
	OpUpdate       Operation = "update"
	OpBurn         Operation = "burn"
)

type RegistryMetrics interface {
	RecordAccepted(op Operation)
	RecordRejected(op Operation, code deed.Code)
	RecordFailure(op Operation)
}
