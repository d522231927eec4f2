package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	redisx "posrelay/internal/redis"
)

// ClientInfo describes an attached subscriber for the status endpoint.
type ClientInfo struct {
	ID          string    `json:"clientId"`
	RemoteAddr  string    `json:"remoteAddr"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Subscriber receives every payload published on the topic from the moment
// it attaches. There is no backlog: events published before Subscribe are
// never delivered.
type Subscriber struct {
	info ClientInfo
	ch   chan []byte
}

// C is the delivery channel. It is closed on Unsubscribe.
func (s *Subscriber) C() <-chan []byte { return s.ch }

func (s *Subscriber) Info() ClientInfo { return s.info }

const subscriberBuffer = 64

// Hub is the pos-updates broadcast topic. Publishes go through redis
// pub/sub, which fixes one total order for every subscriber; a single Run
// goroutine fans each message out to the local subscriber set. Delivery is
// best-effort: a subscriber whose buffer is full loses the message rather
// than stalling the rest, and nothing is acknowledged back to publishers.
type Hub struct {
	rdb     *redis.Client
	channel string
	logger  *slog.Logger

	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub(rdb *redis.Client, logger *slog.Logger) *Hub {
	return &Hub{
		rdb:     rdb,
		channel: redisx.ChannelPOSUpdates(),
		logger:  logger,
		subs:    make(map[*Subscriber]struct{}),
	}
}

// Publish sends payload to every currently-attached subscriber, on this
// process and any other relay subscribed to the same redis. Fire-and-forget:
// the error only reports whether redis accepted the publish.
func (h *Hub) Publish(ctx context.Context, payload []byte) error {
	return h.rdb.Publish(ctx, h.channel, payload).Err()
}

func (h *Hub) Subscribe(remoteAddr string) *Subscriber {
	sub := &Subscriber{
		info: ClientInfo{
			ID:          uuid.NewString(),
			RemoteAddr:  remoteAddr,
			ConnectedAt: time.Now().UTC(),
		},
		ch: make(chan []byte, subscriberBuffer),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("subscriber attached", "client_id", sub.info.ID, "remote", remoteAddr)

	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()

	h.logger.Info("subscriber detached", "client_id", sub.info.ID)
}

// Clients snapshots the attached subscriber set.
func (h *Hub) Clients() []ClientInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]ClientInfo, 0, len(h.subs))
	for s := range h.subs {
		out = append(out, s.info)
	}

	return out
}

// Run consumes the redis channel and fans out until ctx is done. It must
// run exactly once per Hub.
func (h *Hub) Run(ctx context.Context) error {
	sub := h.rdb.Subscribe(ctx, h.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			h.fanOut([]byte(m.Payload))
		}
	}
}

// fanOut delivers under the read lock; Unsubscribe takes the write lock, so
// a send can never race the channel close.
func (h *Hub) fanOut(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		select {
		case s.ch <- payload:
		default:
			// Slow subscriber: drop for this one, keep going.
			h.logger.Warn("dropping broadcast for slow subscriber", "client_id", s.info.ID)
		}
	}
}
