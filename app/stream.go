package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/portal"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = 54 * time.Second
	streamSendQueue  = 64
)

const (
	OpConnect      = "connect"
	OpDisconnect   = "disconnect"
	OpSource       = "source"
	OpDestination  = "destination"
	OpSwap         = "swap"
	OpToken        = "token"
	OpAmount       = "amount"
	OpQuote        = "quote"
	OpSubmit       = "submit"
	OpSnapshot     = "snapshot"
	OpTransactions = "transactions"
	OpNFTs         = "nfts"
)

// Command is a client request read from the event stream.
type Command struct {
	Op       string `json:"op"`
	Provider string `json:"provider,omitempty"`
	Chain    string `json:"chain,omitempty"`
	Token    string `json:"token,omitempty"`
	Amount   string `json:"amount,omitempty"`
}

// Response answers one Command. Error and ErrorKind are empty on success.
type Response struct {
	Op           string               `json:"op"`
	Snapshot     *portal.Snapshot     `json:"snapshot,omitempty"`
	Transaction  *models.Transaction  `json:"transaction,omitempty"`
	Transactions []models.Transaction `json:"transactions,omitempty"`
	NFTs         []models.NFT         `json:"nfts,omitempty"`
	Error        string               `json:"error,omitempty"`
	ErrorKind    string               `json:"error_kind,omitempty"`
}

// Message is what the server writes: exactly one of Event or Response is set.
type Message struct {
	Event    *models.Event `json:"event,omitempty"`
	Response *Response     `json:"response,omitempty"`
}

// StreamHandler upgrades to a websocket that pushes session events and
// accepts commands against the session.
type StreamHandler struct {
	session  *portal.Session
	upgrader websocket.Upgrader
}

func NewStreamHandler(session *portal.Session) *StreamHandler {
	return &StreamHandler{
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("[STREAM] Error upgrading connection: ", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	c := &streamClient{
		conn: conn,
		send: make(chan []byte, streamSendQueue),
		done: make(chan struct{}),
	}
	events, unsubscribe := h.session.Subscribe()

	log.WithField("remote", conn.RemoteAddr().String()).Info("[STREAM] Client connected")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.forwardEvents(events)
	}()
	go func() {
		defer wg.Done()
		c.writePump()
	}()

	c.readPump(func(data []byte) {
		c.enqueue(Message{Response: h.handle(ctx, data)})
	})

	cancel()
	unsubscribe()
	c.shutdown()
	wg.Wait()
	conn.Close()

	log.WithField("remote", conn.RemoteAddr().String()).Info("[STREAM] Client disconnected")
}

func (h *StreamHandler) handle(ctx context.Context, data []byte) *Response {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return &Response{Error: err.Error(), ErrorKind: "Unknown"}
	}

	res, err := h.apply(ctx, cmd)
	res.Op = cmd.Op
	if err != nil {
		res.Error = err.Error()
		res.ErrorKind = string(common.KindOf(err))
		if res.ErrorKind == "" {
			res.ErrorKind = "Unknown"
		}
		log.WithField("op", cmd.Op).Debug("[STREAM] Command failed: ", err)
	}
	if res.Snapshot == nil && res.Transactions == nil && res.NFTs == nil {
		snapshot := h.session.Snapshot()
		res.Snapshot = &snapshot
	}
	return res
}

func (h *StreamHandler) apply(ctx context.Context, cmd Command) (*Response, error) {
	var err error
	switch cmd.Op {
	case OpConnect:
		_, err = h.session.Connect(ctx, models.ProviderType(cmd.Provider))
	case OpDisconnect:
		h.session.Disconnect()
	case OpSource:
		_, err = h.session.SelectSourceChain(cmd.Chain)
	case OpDestination:
		_, err = h.session.SelectDestinationChain(cmd.Chain)
	case OpSwap:
		_, err = h.session.SwapChains()
	case OpToken:
		_, err = h.session.SelectToken(cmd.Token, cmd.Chain)
	case OpAmount:
		if cmd.Amount == "" {
			h.session.ClearAmount()
		} else {
			_, err = h.session.SetAmount(cmd.Amount)
		}
	case OpQuote:
		_, err = h.session.RefreshQuote(ctx)
	case OpSubmit:
		sub, submitErr := h.session.Submit(ctx)
		if submitErr != nil {
			return &Response{}, submitErr
		}
		tx := sub.Transaction()
		return &Response{Transaction: &tx}, nil
	case OpSnapshot:
	case OpTransactions:
		txs := slices.Collect(h.session.Transactions(models.TransactionFilter{}))
		if txs == nil {
			txs = []models.Transaction{}
		}
		return &Response{Transactions: txs}, nil
	case OpNFTs:
		return &Response{NFTs: h.session.NFTs(cmd.Chain)}, nil
	default:
		err = errors.New("unknown op: " + cmd.Op)
	}
	return &Response{}, err
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte

	done     chan struct{}
	doneOnce sync.Once
}

func (c *streamClient) shutdown() {
	c.doneOnce.Do(func() { close(c.done) })
}

func (c *streamClient) enqueue(message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error("[STREAM] Error encoding message: ", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	}
}

func (c *streamClient) forwardEvents(events <-chan models.Event) {
	for {
		select {
		case <-c.done:
			return
		case event, ok := <-events:
			if !ok {
				c.shutdown()
				return
			}
			c.enqueue(Message{Event: &event})
		}
	}
}

func (c *streamClient) writePump() {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error("[STREAM] Error writing message: ", err)
				c.shutdown()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}
		}
	}
}

func (c *streamClient) readPump(handler func([]byte)) {
	c.conn.SetReadDeadline(time.Now().Add(streamPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(streamPongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("[STREAM] Unexpected close: ", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(streamPongWait))
		handler(data)
	}
}
