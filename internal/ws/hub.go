package ws

import (
	"context"
	"encoding/json"
	"sync"

	"intern-match/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userMessage struct {
	userID  uuid.UUID
	payload []byte
}

// Hub tracks websocket sessions per user. A user may hold several sessions
// and every one of them receives that user's events.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	direct     chan userMessage
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		direct:     make(chan userMessage, 1024),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		log:        log.Named("ws"),
	}
}

// Run owns the client set until ctx is cancelled, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := h.countLocked()
			h.mutex.Unlock()
			h.log.Debug("ws connected", zap.Stringer("user_id", client.userID), zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case msg := <-h.direct:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()
			h.deliver(targets, msg.payload)

		case payload := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for _, set := range h.clients {
				for c := range set {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()
			h.deliver(targets, payload)
		}
	}
}

// deliver drops clients whose send buffer is full.
func (h *Hub) deliver(targets []*Client, payload []byte) {
	for _, client := range targets {
		select {
		case client.send <- payload:
		default:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.userID]
	if ok {
		if _, ok := set[client]; ok {
			delete(set, client)
			close(client.send)
		}
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	total := h.countLocked()
	h.mutex.Unlock()
	h.log.Debug("ws disconnected", zap.Stringer("user_id", client.userID), zap.Int("total_clients", total))
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

// Unregister may race with shutdown; once Run has returned the request is
// dropped because closeAll already released the client.
func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	default:
	}
}

// NotifyUser queues e for every session of userID. It never blocks.
func (h *Hub) NotifyUser(userID uuid.UUID, e usecase.Event) {
	if h == nil || userID == uuid.Nil {
		return
	}
	b, err := json.Marshal(e)
	if err != nil {
		h.log.Warn("marshal ws event", zap.String("type", e.Type), zap.Error(err))
		return
	}
	select {
	case h.direct <- userMessage{userID: userID, payload: b}:
	default:
		h.log.Warn("ws event dropped", zap.String("reason", "buffer_full"), zap.String("type", e.Type))
	}
}

// Publish fans catalog-wide events out to every session. It lets the hub sit
// next to the broker publisher.
func (h *Hub) Publish(_ context.Context, e usecase.Event) error {
	if h == nil || e.Type != usecase.EventCatalogUpdated {
		return nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- b:
	default:
		h.log.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"))
	}
	return nil
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

var _ usecase.Notifier = (*Hub)(nil)
