package postgresrepo

import (
	"context"
	"fmt"

	"posrelay/internal/domain"
)

// sectionId on restaurant_tables is a soft reference: the POS clients own
// referential consistency, the store does not cascade.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS sections (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS restaurant_tables (
	id                 TEXT PRIMARY KEY,
	section_id         TEXT NOT NULL,
	table_number       TEXT NOT NULL,
	capacity           INTEGER NOT NULL,
	qr_code_url        TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL DEFAULT 'available',
	assigned_staff_id  TEXT NOT NULL DEFAULT '',
	current_order_id   TEXT NOT NULL DEFAULT '',
	last_active_at     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS orders (
	id            TEXT PRIMARY KEY,
	table_id      TEXT NOT NULL,
	items         JSONB NOT NULL,
	total         DOUBLE PRECISION NOT NULL DEFAULT 0,
	submitted_at  TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'pending'
);
`

func (s *Store) ensureSchema(ctx context.Context) error {
	const op = "postgresrepo.Store.ensureSchema"

	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Default floor plan seeded into an empty store.
var (
	defaultSection = domain.Section{ID: "sec-main", Name: "Main Dining", IsActive: true}

	defaultTables = []domain.Table{
		{ID: "tab-1", SectionID: "sec-main", TableNumber: "1", Capacity: 4, Status: domain.TableAvailable},
		{ID: "tab-2", SectionID: "sec-main", TableNumber: "2", Capacity: 2, Status: domain.TableAvailable},
	}
)

// bootstrap seeds the default section and tables exactly once per empty
// store. Emptiness is decided by a count query, not a flag, so re-running
// against a populated store is a no-op.
func (s *Store) bootstrap(ctx context.Context) error {
	const op = "postgresrepo.Store.bootstrap"

	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM sections`).Scan(&n); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		return nil
	}

	fp := s.FloorPlan()

	if err := fp.InsertSection(ctx, defaultSection.ID, defaultSection.Name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, t := range defaultTables {
		if err := fp.InsertTable(ctx, t); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}
