package postgresrepo

import (
	"context"
	"strconv"
	"sync"
	"time"

	"posrelay/internal/domain"
)

// OrderRepo wraps the orders collection. Line items are persisted as an
// encoded JSON blob; readers get them back undecoded.
type OrderRepo struct {
	db DB
}

var (
	orderIDMu   sync.Mutex
	lastOrderID int64
)

// newOrderID keeps the legacy ord-<epochMillis> shape POS clients match on,
// but guards the clock with a monotonic floor so two submissions landing in
// the same millisecond cannot collide.
func newOrderID(now time.Time) string {
	ms := now.UnixMilli()

	orderIDMu.Lock()
	if ms <= lastOrderID {
		ms = lastOrderID + 1
	}
	lastOrderID = ms
	orderIDMu.Unlock()

	return "ord-" + strconv.FormatInt(ms, 10)
}

// Insert persists the order, generating its id and forcing status to
// "pending" regardless of caller input. The generated fields are written
// back onto o.
func (r *OrderRepo) Insert(ctx context.Context, o *domain.Order) error {
	const op = "postgresrepo.OrderRepo.Insert"

	o.ID = newOrderID(time.Now())
	o.Status = domain.OrderStatusPending

	if _, err := r.db.Exec(ctx,
		`INSERT INTO orders(id, table_id, items, total, submitted_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.TableID, []byte(o.Items), o.Total, o.Timestamp, o.Status,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// List returns all order rows in store-native insertion order, items still
// in their encoded form.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	const op = "postgresrepo.OrderRepo.List"

	rows, err := r.db.Query(ctx,
		`SELECT id, table_id, items, total, submitted_at, status FROM orders`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		var items []byte
		if err := rows.Scan(&o.ID, &o.TableID, &items, &o.Total, &o.Timestamp, &o.Status); err != nil {
			return nil, wrapDBErr(op, err)
		}
		o.Items = items
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
