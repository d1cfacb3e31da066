package common

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cosmos/go-bip39"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

// MnemonicKeys derives the wallet addresses a mnemonic controls on each
// supported chain family. Nothing here signs.
type MnemonicKeys struct {
	ethAddress      common.Address
	solanaPublicKey solana.PublicKey
}

func NewMnemonicKeys(mnemonic string) (*MnemonicKeys, error) {
	ethAddress, err := EthereumAddressFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to derive ethereum address: %w", err)
	}

	solanaPublicKey, err := SolanaPublicKeyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to derive solana public key: %w", err)
	}

	return &MnemonicKeys{
		ethAddress:      ethAddress,
		solanaPublicKey: solanaPublicKey,
	}, nil
}

func (k *MnemonicKeys) EthAddress() common.Address {
	return k.ethAddress
}

func (k *MnemonicKeys) SolanaPublicKey() solana.PublicKey {
	return k.solanaPublicKey
}

func EthereumAddressFromMnemonic(mnemonic string) (common.Address, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return common.Address{}, err
	}

	path, err := hdwallet.ParseDerivationPath(DefaultETHHDPath)
	if err != nil {
		return common.Address{}, err
	}

	account, err := wallet.Derive(path, false)
	if err != nil {
		return common.Address{}, err
	}

	return account.Address, nil
}

func SolanaPublicKeyFromMnemonic(mnemonic string) (solana.PublicKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return solana.PublicKey{}, fmt.Errorf("invalid mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, DefaultBIP39Passphrase)
	privateKey := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize]))

	return privateKey.PublicKey(), nil
}
