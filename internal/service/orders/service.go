package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"posrelay/internal/domain"
)

// Store is the slice of the persistence store the order service needs.
type Store interface {
	Insert(ctx context.Context, o *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}

type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// Submission is a decoded order payload. Body carries the client's bytes
// verbatim so the broadcast relays exactly what was submitted, including
// fields the service does not model.
type Submission struct {
	TableID   string
	Items     json.RawMessage
	Total     float64
	Timestamp string
	Body      json.RawMessage
}

type Service struct {
	store Store
	pub   Publisher
}

func New(store Store, pub Publisher) *Service {
	return &Service{store: store, pub: pub}
}

// Submit validates and persists one order, then announces it on the
// broadcast topic. The returned order carries the generated id and the
// forced "pending" status. A persistence failure means no broadcast; a
// broadcast failure is invisible to the caller by design.
func (s *Service) Submit(ctx context.Context, sub Submission) (*domain.Order, error) {
	const op = "service.orders.Submit"

	if sub.TableID == "" || !hasItems(sub.Items) {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedOrder)
	}

	o := &domain.Order{
		TableID:   sub.TableID,
		Items:     sub.Items,
		Total:     sub.Total,
		Timestamp: sub.Timestamp,
	}

	if err := s.store.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.pub != nil {
		body := sub.Body
		if len(body) == 0 {
			body, _ = json.Marshal(o)
		}
		if ev, err := domain.NewOrderEvent(body); err == nil {
			_ = s.pub.Publish(ctx, ev)
		}
	}

	return o, nil
}

// List returns every persisted order. Items come back as the raw encoded
// sequence, which serializes to the original line-item array.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	const op = "service.orders.List"

	out, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if out == nil {
		out = []domain.Order{}
	}

	return out, nil
}

// hasItems accepts any non-empty JSON array.
func hasItems(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}

	return len(items) > 0
}
