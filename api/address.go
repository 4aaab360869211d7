package api

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// OmnicoinParams holds the address encoding parameters of the Omnicoin network.
// Only the fields used for base58 address decoding are set.
var OmnicoinParams = chaincfg.Params{
	Name:             "omnicoin",
	PubKeyHashAddrID: 0x73, // addresses start with 'o'
	ScriptHashAddrID: 0x12,
	PrivateKeyID:     0xf3,
}

// ValidateAddress checks that address is a well-formed Omnicoin pay-to-pubkey-hash
// address. It does not ask the server; use CheckAddress for that.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	decoded, err := btcutil.DecodeAddress(address, &OmnicoinParams)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	if _, ok := decoded.(*btcutil.AddressPubKeyHash); !ok {
		return fmt.Errorf("%w: unsupported address type", ErrInvalidAddress)
	}
	if !decoded.IsForNet(&OmnicoinParams) {
		return fmt.Errorf("%w: address is for another network", ErrInvalidAddress)
	}

	return nil
}
