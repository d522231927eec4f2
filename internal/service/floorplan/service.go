package floorplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"posrelay/internal/domain"
	redisx "posrelay/internal/redis"
	"posrelay/internal/repository"
	redisrepo "posrelay/internal/repository/redis"
)

// Store is the slice of the persistence store the floor-plan service needs.
// Tests substitute an in-memory implementation.
type Store interface {
	ListSections(ctx context.Context) ([]domain.Section, error)
	InsertSection(ctx context.Context, id, name string) error
	ListTables(ctx context.Context) ([]domain.Table, error)
	InsertTable(ctx context.Context, t domain.Table) error
	UpdateTableStatus(ctx context.Context, id string, status domain.TableStatus, currentOrderID string) error
}

type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

type Config struct {
	SnapshotTTL time.Duration
}

type Service struct {
	store Store
	cache *redisrepo.Cache
	pub   Publisher
	cfg   Config
}

// New builds the floor-plan service. cache may be nil, in which case every
// snapshot read goes straight to the store.
func New(store Store, cache *redisrepo.Cache, pub Publisher, cfg Config) *Service {
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		pub:   pub,
		cfg:   cfg,
	}
}

// Snapshot returns the composite sections+tables view as a single
// point-in-time read. Mutations invalidate the cached copy, so a read
// immediately after an insert always includes it.
func (s *Service) Snapshot(ctx context.Context) (*domain.FloorPlan, error) {
	const op = "service.floorplan.Snapshot"

	if s.cache == nil {
		fp, err := s.load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return fp, nil
	}

	fp, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyFloorPlanSnapshot(),
		s.cfg.SnapshotTTL,
		func(ctx context.Context) (domain.FloorPlan, error) {
			loaded, err := s.load(ctx)
			if err != nil {
				return domain.FloorPlan{}, err
			}
			return *loaded, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &fp, nil
}

func (s *Service) load(ctx context.Context) (*domain.FloorPlan, error) {
	sections, err := s.store.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	tables, err := s.store.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	// Empty collections serialize as [], not null.
	if sections == nil {
		sections = []domain.Section{}
	}
	if tables == nil {
		tables = []domain.Table{}
	}

	return &domain.FloorPlan{Sections: sections, Tables: tables}, nil
}

// CreateSection creates a named zone. The id is caller-supplied and must be
// unique; a duplicate surfaces as ErrSectionExists.
func (s *Service) CreateSection(ctx context.Context, id, name string) error {
	const op = "service.floorplan.CreateSection"

	if id == "" || name == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidSection)
	}

	if err := s.store.InsertSection(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%s: %w", op, ErrSectionExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *Service) CreateTable(ctx context.Context, t domain.Table) error {
	const op = "service.floorplan.CreateTable"

	if t.ID == "" || t.SectionID == "" || t.TableNumber == "" || t.Capacity <= 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidTable)
	}
	if t.Status == "" {
		t.Status = domain.TableAvailable
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	if err := s.store.InsertTable(ctx, t); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%s: %w", op, ErrTableExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)

	return nil
}

// UpdateTableStatus moves a table through its service lifecycle and tells
// every terminal about it. The broadcast is best-effort: the caller only
// learns whether the store accepted the change.
func (s *Service) UpdateTableStatus(
	ctx context.Context,
	id string,
	status domain.TableStatus,
	currentOrderID string,
) error {
	const op = "service.floorplan.UpdateTableStatus"

	if !status.Valid() {
		return fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	if err := s.store.UpdateTableStatus(ctx, id, status, currentOrderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrTableNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)

	if s.pub != nil {
		if ev, err := domain.TableStatusChangedEvent(id, status, currentOrderID); err == nil {
			_ = s.pub.Publish(ctx, ev)
		}
	}

	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFloorPlan(ctx)
	}
}
