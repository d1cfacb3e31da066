package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

func IsEVMAddress(address string) bool {
	return common.IsHexAddress(address) && !strings.EqualFold(address, ZeroAddress)
}

func IsSolanaAddress(address string) bool {
	key, err := solana.PublicKeyFromBase58(address)
	return err == nil && !key.IsZero()
}

// HashFields returns the keccak256 hash of the fields joined by "|".
func HashFields(fields ...string) string {
	return crypto.Keccak256Hash([]byte(strings.Join(fields, "|"))).Hex()
}
