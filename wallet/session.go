package wallet

import (
	"context"
	"errors"
	"sync"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

var errSessionReset = errors.New("session reset")

// Session tracks the wallet connection. At most one connect is in flight.
type Session struct {
	mu         sync.Mutex
	providers  map[models.ProviderType]Provider
	state      models.WalletSession
	connecting bool
	// epoch changes on every disconnect so a handshake that outlives it is discarded
	epoch uint64
}

func NewSession(providers ...Provider) *Session {
	s := &Session{
		providers: make(map[models.ProviderType]Provider),
		state:     models.DefaultWalletSession(),
	}
	for _, p := range providers {
		s.providers[p.Type()] = p
	}
	return s
}

// Connect runs the provider handshake. It fails fast with AlreadyConnecting if
// another connect is outstanding; any handshake failure leaves the session
// disconnected and returns ConnectionFailed.
func (s *Session) Connect(ctx context.Context, provider models.ProviderType) (models.WalletSession, error) {
	s.mu.Lock()
	if s.connecting {
		s.mu.Unlock()
		return models.WalletSession{}, common.NewError(common.KindAlreadyConnecting, "provider", string(provider), nil)
	}
	p, ok := s.providers[provider]
	if !ok {
		s.mu.Unlock()
		return models.WalletSession{}, common.NewError(common.KindConnectionFailed, "provider", string(provider), errors.New("unknown provider"))
	}
	s.connecting = true
	epoch := s.epoch
	s.mu.Unlock()

	logger := log.WithField("provider", provider)
	logger.Debug("[WALLET] Connecting")

	account, err := p.Handshake(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		logger.Debug("[WALLET] Discarding handshake after disconnect")
		return models.WalletSession{}, common.NewError(common.KindConnectionFailed, "provider", string(provider), errSessionReset)
	}
	s.connecting = false

	if err != nil {
		logger.WithError(err).Warn("[WALLET] Connection failed")
		s.state = models.DefaultWalletSession()
		return models.WalletSession{}, common.NewError(common.KindConnectionFailed, "provider", string(provider), err)
	}
	if account.Address == "" {
		s.state = models.DefaultWalletSession()
		return models.WalletSession{}, common.NewError(common.KindConnectionFailed, "address", "", errors.New("provider returned no address"))
	}
	if !validAddress(provider, account.Address) {
		logger.WithField("address", account.Address).Warn("[WALLET] Provider returned a malformed address")
		s.state = models.DefaultWalletSession()
		return models.WalletSession{}, common.NewError(common.KindConnectionFailed, "address", account.Address, errors.New("malformed address"))
	}

	s.state = models.WalletSession{
		Connected: true,
		Address:   account.Address,
		Balance:   account.Balance,
		Provider:  provider,
	}
	logger.WithField("address", account.Address).Info("[WALLET] Connected")

	return s.state, nil
}

func validAddress(provider models.ProviderType, address string) bool {
	switch provider {
	case models.ProviderMetaMask:
		return common.IsEVMAddress(address)
	case models.ProviderPhantom:
		return common.IsSolanaAddress(address)
	}
	return false
}

// Disconnect resets to the default session. Calling it repeatedly is harmless.
func (s *Session) Disconnect() models.WalletSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Connected || s.connecting {
		log.WithField("provider", s.state.Provider).Info("[WALLET] Disconnected")
	}
	s.epoch++
	s.connecting = false
	s.state = models.DefaultWalletSession()
	return s.state
}

func (s *Session) Snapshot() models.WalletSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Connecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connecting
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Connected
}
