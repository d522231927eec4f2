package postgresrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store owns the single durable handle for the process. It is constructed
// once at startup and handed to the repositories explicitly; nothing else
// reaches the database.
type Store struct {
	db DB
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// NewStoreWithDB exists for tests that substitute the pool.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

// Init creates the schema and seeds default floor-plan data. It is safe to
// call on every boot; a failure here must keep the process from serving.
func (s *Store) Init(ctx context.Context) error {
	const op = "postgresrepo.Store.Init"

	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.bootstrap(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) FloorPlan() *FloorPlanRepo { return &FloorPlanRepo{db: s.db} }
func (s *Store) Orders() *OrderRepo        { return &OrderRepo{db: s.db} }
