package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

// Provider performs the connect handshake for one wallet provider.
type Provider interface {
	Type() models.ProviderType
	Handshake(ctx context.Context) (models.WalletAccount, error)
}

// MnemonicProvider answers handshakes with an address derived from a mnemonic.
// It stands in for a browser wallet extension and never signs anything.
type MnemonicProvider struct {
	provider models.ProviderType
	address  string
	balance  string
	latency  time.Duration
}

func (p *MnemonicProvider) Type() models.ProviderType {
	return p.provider
}

func (p *MnemonicProvider) Handshake(ctx context.Context) (models.WalletAccount, error) {
	log.WithField("provider", p.provider).Debug("[WALLET] Handshake started")

	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.WalletAccount{}, ctx.Err()
		case <-timer.C:
		}
	}

	return models.WalletAccount{
		Address: p.address,
		Balance: p.balance,
	}, nil
}

// NewMnemonicProvider derives the provider's address from keys: an EVM address
// for metamask, a base58 public key for phantom.
func NewMnemonicProvider(provider models.ProviderType, keys *common.MnemonicKeys, balance string, latency time.Duration) (*MnemonicProvider, error) {
	var address string
	switch provider {
	case models.ProviderMetaMask:
		address = keys.EthAddress().Hex()
	case models.ProviderPhantom:
		address = keys.SolanaPublicKey().String()
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}

	return &MnemonicProvider{
		provider: provider,
		address:  address,
		balance:  balance,
		latency:  latency,
	}, nil
}
