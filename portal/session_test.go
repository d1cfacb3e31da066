package portal

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/fees"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/registry"
	"github.com/dan13ram/omnichain-portal/wallet"
	"github.com/dan13ram/omnichain-portal/wallet/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "test test test test test test test test test test test junk"

func init() {
	log.SetOutput(io.Discard)
}

func testConfig() models.Config {
	return models.Config{
		Wallet: models.WalletConfig{Mnemonic: testMnemonic},
		Portal: models.PortalConfig{EventBuffer: 32},
	}
}

func newTestSession(t *testing.T, config models.Config) (*Session, <-chan models.Event) {
	s, err := Build(config, registry.Default())
	require.NoError(t, err)
	events, _ := s.Subscribe()
	t.Cleanup(s.Close)
	return s, events
}

func nextEvent(t *testing.T, events <-chan models.Event) models.Event {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return models.Event{}
	}
}

func prepareBridge(t *testing.T, s *Session, destination string) {
	t.Helper()
	_, err := s.Connect(context.Background(), models.ProviderMetaMask)
	require.NoError(t, err)
	_, err = s.SelectDestinationChain(destination)
	require.NoError(t, err)
	_, err = s.SelectToken("USDC", "")
	require.NoError(t, err)
	_, err = s.SetAmount("10")
	require.NoError(t, err)
}

func TestRequiresConnectedWallet(t *testing.T) {
	s, _ := newTestSession(t, testConfig())

	_, err := s.SelectSourceChain("ethereum")
	assert.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.SelectDestinationChain("solana")
	assert.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.SwapChains()
	assert.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.SelectToken("ETH", "ethereum")
	assert.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.SetAmount("1")
	assert.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.RefreshQuote(context.Background())
	assert.ErrorIs(t, err, common.ErrNotConnected)
	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, common.ErrNotConnected)
}

func TestConnectSelectsDefaultSource(t *testing.T) {
	t.Run("Phantom", func(t *testing.T) {
		s, events := newTestSession(t, testConfig())

		state, err := s.Connect(context.Background(), models.ProviderPhantom)
		require.NoError(t, err)
		assert.Equal(t, "12.45 SOL", state.Balance)
		assert.Equal(t, "solana", s.Snapshot().Intent.SourceID())

		event := nextEvent(t, events)
		assert.Equal(t, models.EventWalletConnected, event.Kind)
		assert.Equal(t, state.Address, event.Message)
	})

	t.Run("MetaMask", func(t *testing.T) {
		s, _ := newTestSession(t, testConfig())

		state, err := s.Connect(context.Background(), models.ProviderMetaMask)
		require.NoError(t, err)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", state.Address)
		assert.Equal(t, "0.56 ETH", state.Balance)
		assert.Equal(t, "ethereum", s.Snapshot().Intent.SourceID())
	})
}

func TestConnectFailure(t *testing.T) {
	provider := mocks.NewMockProvider(t)
	provider.EXPECT().Type().Return(models.ProviderPhantom)
	provider.EXPECT().Handshake(mock.Anything).Return(models.WalletAccount{}, errors.New("user rejected"))

	s, err := Build(testConfig(), registry.Default())
	require.NoError(t, err)
	s.Wallet = wallet.NewSession(provider)
	events, _ := s.Subscribe()
	defer s.Close()

	_, err = s.Connect(context.Background(), models.ProviderPhantom)
	assert.ErrorIs(t, err, common.ErrConnectionFailed)

	event := nextEvent(t, events)
	assert.Equal(t, models.EventWalletConnectFailed, event.Kind)
	assert.Equal(t, string(common.KindConnectionFailed), event.ErrorKind)
	assert.True(t, event.Failed())
	assert.Nil(t, s.Snapshot().Intent.Source)
}

func TestSelectErrors(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	_, err := s.Connect(context.Background(), models.ProviderMetaMask)
	require.NoError(t, err)

	t.Run("Unknown Chain", func(t *testing.T) {
		_, err := s.SelectDestinationChain("atlantis")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		_, err := s.SelectToken("DOGE", "")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("Token On Other Chain", func(t *testing.T) {
		_, err := s.SelectToken("ETH", "")
		require.NoError(t, err)

		bridge, err := s.SelectToken("SOL", "solana")
		assert.ErrorIs(t, err, common.ErrChainMismatch)
		assert.Equal(t, "ETH", bridge.TokenSymbol())
		assert.Equal(t, "ETH", s.Snapshot().Intent.TokenSymbol())
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		_, err := s.SetAmount("5")
		require.NoError(t, err)

		_, err = s.SetAmount("12.34.5")
		assert.ErrorIs(t, err, common.ErrInvalidAmountFormat)
		assert.Equal(t, "5", s.Snapshot().Intent.Amount)
	})
}

func TestBridgeCompleted(t *testing.T) {
	s, events := newTestSession(t, testConfig())
	prepareBridge(t, s, "polygon")

	snapshot := s.Snapshot()
	assert.True(t, snapshot.Ready)
	assert.Empty(t, snapshot.Problem)
	assert.Nil(t, snapshot.Quote)

	quote, err := s.RefreshQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.0042 ETH", quote.Fee)

	sub, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, sub.Transaction().Status)
	assert.Equal(t, "10", sub.Transaction().Amount)
	assert.Equal(t, "USDC", sub.Transaction().Token)

	tx, err := sub.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)

	after := s.Snapshot()
	assert.Equal(t, "ethereum", after.Intent.SourceID())
	assert.Nil(t, after.Intent.Destination)
	assert.Nil(t, after.Intent.Token)
	assert.Empty(t, after.Intent.Amount)
	assert.Nil(t, after.Quote)
	assert.True(t, after.Wallet.Connected)

	kinds := make([]models.EventKind, 0)
	for len(kinds) < 4 {
		kinds = append(kinds, nextEvent(t, events).Kind)
	}
	assert.Equal(t, []models.EventKind{
		models.EventWalletConnected,
		models.EventQuoteUpdated,
		models.EventSubmissionAccepted,
		models.EventSubmissionCompleted,
	}, kinds)

	txs := make([]models.Transaction, 0)
	for tx := range s.Transactions(models.TransactionFilter{}) {
		txs = append(txs, tx)
	}
	require.Len(t, txs, len(registry.Default().History())+1)
	assert.Equal(t, tx.Id, txs[0].Id)
}

func TestBridgeCompletedKeepsSource(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	_, err := s.Connect(context.Background(), models.ProviderMetaMask)
	require.NoError(t, err)
	_, err = s.SelectSourceChain("polygon")
	require.NoError(t, err)
	_, err = s.SelectDestinationChain("arbitrum")
	require.NoError(t, err)
	_, err = s.SelectToken("MATIC", "")
	require.NoError(t, err)
	_, err = s.SetAmount("3")
	require.NoError(t, err)

	_, err = s.RefreshQuote(context.Background())
	require.NoError(t, err)
	sub, err := s.Submit(context.Background())
	require.NoError(t, err)
	_, err = sub.Wait(context.Background())
	require.NoError(t, err)

	after := s.Snapshot().Intent
	assert.Equal(t, "polygon", after.SourceID())
	assert.Empty(t, after.DestinationID())
	assert.Nil(t, after.Token)
	assert.Empty(t, after.Amount)

	_, err = s.SelectDestinationChain("ethereum")
	require.NoError(t, err)
	_, err = s.SelectToken("MATIC", "")
	require.NoError(t, err)
	assert.Equal(t, "polygon", s.Snapshot().Intent.Token.Chain)
}

func TestSnapshotHidesStaleQuote(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	prepareBridge(t, s, "polygon")

	stale := s.Builder.Snapshot()
	s.ClearAmount()

	quote, err := s.Estimator.Estimate(context.Background(), stale)
	require.NoError(t, err)
	assert.Equal(t, stale.Version, quote.IntentVersion)

	snapshot := s.Snapshot()
	assert.NotEqual(t, snapshot.Intent.Version, quote.IntentVersion)
	assert.Nil(t, snapshot.Quote)
	assert.False(t, snapshot.Ready)
}

func TestRefreshQuoteDiscardsEditedIntent(t *testing.T) {
	s, events := newTestSession(t, testConfig())
	prepareBridge(t, s, "polygon")
	nextEvent(t, events)

	s.Estimator = fees.NewEstimator(fees.QuoteSourceFunc(func(ctx context.Context, source, destination string) (string, error) {
		_, err := s.Builder.SetAmount("12")
		require.NoError(t, err)
		return "0.0042 ETH", nil
	}), 0)

	_, err := s.RefreshQuote(context.Background())
	assert.ErrorIs(t, err, fees.ErrSuperseded)

	_, ok := s.Estimator.Current()
	assert.False(t, ok)
	assert.Nil(t, s.Snapshot().Quote)
	assert.Equal(t, "12", s.Snapshot().Intent.Amount)

	select {
	case event := <-events:
		t.Fatalf("unexpected event %s", event.Kind)
	default:
	}
}

func TestBridgeFailedPreservesIntent(t *testing.T) {
	config := testConfig()
	config.Submitter.FailingChains = []string{"polygon"}
	s, events := newTestSession(t, config)
	prepareBridge(t, s, "polygon")

	_, err := s.RefreshQuote(context.Background())
	require.NoError(t, err)

	before := s.Snapshot().Intent
	sub, err := s.Submit(context.Background())
	require.NoError(t, err)

	tx, err := sub.Wait(context.Background())
	assert.ErrorIs(t, err, common.ErrSubmissionFailed)
	assert.Equal(t, models.TransactionStatusFailed, tx.Status)
	assert.Equal(t, before, s.Snapshot().Intent)

	var failed models.Event
	for failed.Kind != models.EventSubmissionFailed {
		failed = nextEvent(t, events)
	}
	assert.Equal(t, string(common.KindSubmissionFailed), failed.ErrorKind)
	assert.Equal(t, tx.Id, failed.TransactionId)

	failedTxs := make([]models.Transaction, 0)
	for tx := range s.Transactions(models.TransactionFilter{Statuses: []models.TransactionStatus{models.TransactionStatusFailed}}) {
		failedTxs = append(failedTxs, tx)
	}
	require.NotEmpty(t, failedTxs)
	assert.Equal(t, tx.Id, failedTxs[0].Id)
}

func TestSubmitWithoutQuote(t *testing.T) {
	s, events := newTestSession(t, testConfig())
	prepareBridge(t, s, "polygon")
	nextEvent(t, events)

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, common.ErrValidationFailed)

	event := nextEvent(t, events)
	assert.Equal(t, models.EventSubmissionRejected, event.Kind)
	assert.Equal(t, string(common.KindValidationFailed), event.ErrorKind)
	assert.Equal(t, len(registry.Default().History()), s.Ledger.Len())
}

func TestMutationInvalidatesQuote(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	prepareBridge(t, s, "polygon")

	_, err := s.RefreshQuote(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, s.Snapshot().Quote)

	_, err = s.SetAmount("11")
	require.NoError(t, err)
	assert.Nil(t, s.Snapshot().Quote)

	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, common.ErrValidationFailed)
}

func TestSwapChains(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	prepareBridge(t, s, "polygon")

	bridge, err := s.SwapChains()
	require.NoError(t, err)
	assert.Equal(t, "polygon", bridge.SourceID())
	assert.Equal(t, "ethereum", bridge.DestinationID())
	assert.Nil(t, bridge.Token)
}

func TestDisconnectCascades(t *testing.T) {
	config := testConfig()
	config.Submitter.LatencyMillis = 50
	s, _ := newTestSession(t, config)
	prepareBridge(t, s, "polygon")

	_, err := s.RefreshQuote(context.Background())
	require.NoError(t, err)
	sub, err := s.Submit(context.Background())
	require.NoError(t, err)

	once := s.Disconnect()
	twice := s.Disconnect()
	assert.Equal(t, once, twice)

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Wallet.Connected)
	assert.Nil(t, snapshot.Intent.Source)
	assert.Nil(t, snapshot.Quote)

	tx, err := sub.Wait(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, len(registry.Default().History())+1, s.Ledger.Len())
}

func TestAutoQuote(t *testing.T) {
	config := testConfig()
	config.Portal.AutoQuote = true
	config.Estimator.LatencyMillis = 5
	s, _ := newTestSession(t, config)
	prepareBridge(t, s, "polygon")

	assert.Eventually(t, func() bool {
		return s.Snapshot().Quote != nil
	}, 2*time.Second, 5*time.Millisecond)

	quote := s.Snapshot().Quote
	assert.Equal(t, s.Snapshot().Intent.Version, quote.IntentVersion)

	sub, err := s.Submit(context.Background())
	require.NoError(t, err)
	_, err = sub.Wait(context.Background())
	assert.NoError(t, err)
}

func TestSubscribe(t *testing.T) {
	t.Run("Unsubscribe Closes Channel", func(t *testing.T) {
		s, _ := newTestSession(t, testConfig())
		events, unsubscribe := s.Subscribe()
		unsubscribe()
		unsubscribe()

		_, open := <-events
		assert.False(t, open)
	})

	t.Run("Full Buffer Drops", func(t *testing.T) {
		config := testConfig()
		config.Portal.EventBuffer = 1
		s, events := newTestSession(t, config)

		s.Disconnect()
		s.Disconnect()

		assert.Equal(t, models.EventWalletDisconnected, nextEvent(t, events).Kind)
		select {
		case event := <-events:
			t.Fatalf("unexpected event %s", event.Kind)
		default:
		}
	})

	t.Run("Close Ends Subscriptions", func(t *testing.T) {
		s, err := Build(testConfig(), registry.Default())
		require.NoError(t, err)
		events, _ := s.Subscribe()
		s.Close()

		_, open := <-events
		assert.False(t, open)

		late, _ := s.Subscribe()
		_, open = <-late
		assert.False(t, open)
	})
}

func TestBuildImportsHistory(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	history := registry.Default().History()
	require.NotEmpty(t, history)

	assert.Equal(t, len(history), s.Ledger.Len())
	assert.Zero(t, s.Ledger.Counts()[models.TransactionStatusPending])

	txs := make([]models.Transaction, 0)
	for tx := range s.Transactions(models.TransactionFilter{Kinds: []models.TransactionKind{models.TransactionKindReceive}}) {
		txs = append(txs, tx)
	}
	require.NotEmpty(t, txs)
	for _, tx := range txs {
		assert.Equal(t, models.TransactionKindReceive, tx.Kind)
	}

	assert.Equal(t, registry.Default().NFTs("solana"), s.NFTs("solana"))
}

func TestBuildInvalidMnemonic(t *testing.T) {
	config := testConfig()
	config.Wallet.Mnemonic = "not a mnemonic"
	_, err := Build(config, registry.Default())
	assert.Error(t, err)
}
