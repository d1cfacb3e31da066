package portal

import (
	"sync"

	"github.com/dan13ram/omnichain-portal/models"
	log "github.com/sirupsen/logrus"
)

const DefaultEventBuffer = 64

// notifier fans events out to subscribers without ever blocking the publisher.
type notifier struct {
	mu     sync.Mutex
	subs   map[int]chan models.Event
	next   int
	buffer int
	closed bool
}

func newNotifier(buffer int) *notifier {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &notifier{
		subs:   make(map[int]chan models.Event),
		buffer: buffer,
	}
}

func (n *notifier) subscribe() (<-chan models.Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan models.Event, n.buffer)
	if n.closed {
		close(ch)
		return ch, func() {}
	}

	id := n.next
	n.next++
	n.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if sub, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(sub)
			}
		})
	}
}

func (n *notifier) publish(event models.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, ch := range n.subs {
		select {
		case ch <- event:
		default:
			log.WithFields(log.Fields{
				"subscriber": id,
				"kind":       event.Kind,
			}).Warn("[PORTAL] Subscriber buffer full, dropping event")
		}
	}
}

func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}
