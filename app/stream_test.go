package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/portal"
	"github.com/dan13ram/omnichain-portal/registry"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "test test test test test test test test test test test junk"

func newStreamServer(t *testing.T, failing ...string) (*httptest.Server, *Metrics) {
	t.Helper()
	session, err := portal.Build(models.Config{
		Wallet:    models.WalletConfig{Mnemonic: testMnemonic},
		Submitter: models.SubmitterConfig{FailingChains: failing},
	}, registry.Default())
	require.NoError(t, err)

	metrics := NewMetrics()
	wg := &sync.WaitGroup{}
	service := NewMetricsService(metrics, session, wg)
	wg.Add(1)
	go service.Start()

	server := httptest.NewServer(NewServerMux(metrics, NewStreamHandler(session)))
	t.Cleanup(func() {
		server.Close()
		session.Close()
		wg.Wait()
	})
	return server, metrics
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var message Message
	require.NoError(t, conn.ReadJSON(&message))
	return message
}

// send issues cmd and returns its response plus the events seen before it.
func send(t *testing.T, conn *websocket.Conn, cmd Command) (*Response, []models.Event) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))
	var events []models.Event
	for {
		message := readMessage(t, conn)
		if message.Event != nil {
			events = append(events, *message.Event)
			continue
		}
		require.NotNil(t, message.Response)
		return message.Response, events
	}
}

func findEvent(events []models.Event, kind models.EventKind) (models.Event, bool) {
	for _, event := range events {
		if event.Kind == kind {
			return event, true
		}
	}
	return models.Event{}, false
}

func waitForEvent(t *testing.T, conn *websocket.Conn, kind models.EventKind) models.Event {
	t.Helper()
	for {
		message := readMessage(t, conn)
		if message.Event != nil && message.Event.Kind == kind {
			return *message.Event
		}
	}
}

func TestStreamBridge(t *testing.T) {
	server, _ := newStreamServer(t)
	conn := dial(t, server)

	res, _ := send(t, conn, Command{Op: OpConnect, Provider: string(models.ProviderMetaMask)})
	require.Empty(t, res.Error)
	assert.Equal(t, OpConnect, res.Op)
	require.NotNil(t, res.Snapshot)
	assert.True(t, res.Snapshot.Wallet.Connected)
	assert.Equal(t, "ethereum", res.Snapshot.Intent.SourceID())

	for _, cmd := range []Command{
		{Op: OpDestination, Chain: "solana"},
		{Op: OpToken, Token: "USDC"},
		{Op: OpAmount, Amount: "10"},
	} {
		res, _ = send(t, conn, cmd)
		require.Empty(t, res.Error, cmd.Op)
	}
	assert.True(t, res.Snapshot.Ready)

	res, _ = send(t, conn, Command{Op: OpQuote})
	require.Empty(t, res.Error)
	require.NotNil(t, res.Snapshot.Quote)
	assert.Equal(t, "0.0042 ETH", res.Snapshot.Quote.Fee)

	res, events := send(t, conn, Command{Op: OpSubmit})
	require.Empty(t, res.Error)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, models.TransactionStatusPending, res.Transaction.Status)

	completed, ok := findEvent(events, models.EventSubmissionCompleted)
	if !ok {
		completed = waitForEvent(t, conn, models.EventSubmissionCompleted)
	}
	assert.Equal(t, res.Transaction.Id, completed.TransactionId)

	res, _ = send(t, conn, Command{Op: OpTransactions})
	require.Len(t, res.Transactions, len(registry.Default().History())+1)
	assert.Equal(t, completed.TransactionId, res.Transactions[0].Id)
	assert.Equal(t, models.TransactionStatusCompleted, res.Transactions[0].Status)
	assert.Nil(t, res.Snapshot)
}

func TestStreamNFTs(t *testing.T) {
	server, _ := newStreamServer(t)
	conn := dial(t, server)

	res, _ := send(t, conn, Command{Op: OpNFTs, Chain: "ethereum"})
	require.Empty(t, res.Error)
	require.NotEmpty(t, res.NFTs)
	for _, nft := range res.NFTs {
		assert.Equal(t, "ethereum", nft.Chain)
	}
	assert.Nil(t, res.Snapshot)

	res, _ = send(t, conn, Command{Op: OpNFTs})
	assert.Len(t, res.NFTs, len(registry.Default().NFTs("")))
}

func TestStreamErrors(t *testing.T) {
	server, _ := newStreamServer(t)
	conn := dial(t, server)

	res, _ := send(t, conn, Command{Op: OpSource, Chain: "ethereum"})
	assert.Equal(t, "NotConnected", res.ErrorKind)
	require.NotNil(t, res.Snapshot)
	assert.False(t, res.Snapshot.Wallet.Connected)

	res, _ = send(t, conn, Command{Op: OpConnect, Provider: string(models.ProviderPhantom)})
	require.Empty(t, res.Error)

	res, _ = send(t, conn, Command{Op: OpSource, Chain: "nope"})
	assert.Equal(t, "NotFound", res.ErrorKind)

	res, _ = send(t, conn, Command{Op: OpAmount, Amount: "abc"})
	assert.Equal(t, "InvalidAmountFormat", res.ErrorKind)

	res, _ = send(t, conn, Command{Op: "teleport"})
	assert.Equal(t, "Unknown", res.ErrorKind)
	assert.Contains(t, res.Error, "teleport")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	message := readMessage(t, conn)
	require.NotNil(t, message.Response)
	assert.Equal(t, "Unknown", message.Response.ErrorKind)
}

func TestStreamMetrics(t *testing.T) {
	server, _ := newStreamServer(t)
	conn := dial(t, server)

	res, _ := send(t, conn, Command{Op: OpConnect, Provider: string(models.ProviderMetaMask)})
	require.Empty(t, res.Error)

	assert.Eventually(t, func() bool {
		resp, err := http.Get(server.URL + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		buf := new(strings.Builder)
		if _, err := io.Copy(buf, resp.Body); err != nil {
			return false
		}
		return strings.Contains(buf.String(), `portal_events_total{kind="wallet_connected"} 1`) &&
			strings.Contains(buf.String(), "portal_unique_wallets 1")
	}, 2*time.Second, 20*time.Millisecond)
}
