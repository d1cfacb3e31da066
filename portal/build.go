package portal

import (
	"fmt"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/fees"
	"github.com/dan13ram/omnichain-portal/intent"
	"github.com/dan13ram/omnichain-portal/ledger"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/registry"
	"github.com/dan13ram/omnichain-portal/submitter"
	"github.com/dan13ram/omnichain-portal/wallet"
	log "github.com/sirupsen/logrus"
)

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Build wires a session from configuration with the fixture-backed providers.
// The registry's transaction history is preloaded into the ledger.
func Build(config models.Config, reg *registry.Registry) (*Session, error) {
	keys, err := common.NewMnemonicKeys(config.Wallet.Mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to derive wallet keys: %w", err)
	}

	providers := make([]wallet.Provider, 0, 2)
	for _, providerType := range []models.ProviderType{models.ProviderMetaMask, models.ProviderPhantom} {
		balance := "0"
		if chain, ok := reg.DefaultChainFor(providerType); ok {
			balance = reg.NativeBalance(chain.ID)
		}
		provider, err := wallet.NewMnemonicProvider(providerType, keys, balance, millis(config.Wallet.HandshakeMillis))
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	l := ledger.New()
	if err := l.Import(reg.History()...); err != nil {
		return nil, fmt.Errorf("failed to import transaction history: %w", err)
	}

	session := NewSession(Components{
		Registry:  reg,
		Wallet:    wallet.NewSession(providers...),
		Builder:   intent.NewBuilder(),
		Estimator: fees.NewEstimator(fees.NewFixtureSource(reg, millis(config.Estimator.LatencyMillis)), millis(config.Estimator.QuoteTTLMillis)),
		Submitter: submitter.NewSubmitter(
			submitter.NewFixtureRelayer(millis(config.Submitter.LatencyMillis), config.Submitter.FailingChains),
			l,
			millis(config.Submitter.TimeoutMillis),
		),
		Ledger: l,
	}, config.Portal)

	log.WithFields(log.Fields{
		"eth_address":    keys.EthAddress().Hex(),
		"solana_address": keys.SolanaPublicKey().String(),
	}).Debug("[PORTAL] Session built")

	return session, nil
}
