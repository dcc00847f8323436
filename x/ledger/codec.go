package ledger

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterCodec registers the messages of this package, so they can be
// carried by a transaction.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&SendMsg{}, "ledger/SendMsg", nil)
	cdc.RegisterConcrete(&UpdateConfigurationMsg{}, "ledger/UpdateConfigurationMsg", nil)
}
