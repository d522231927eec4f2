package postgresrepo

import (
	"context"
	"fmt"
	"time"

	"posrelay/internal/domain"
	"posrelay/internal/repository"
)

// FloorPlanRepo is the typed facade over the sections and tables
// collections.
type FloorPlanRepo struct {
	db DB
}

// ListSections returns all sections in store-native insertion order.
func (r *FloorPlanRepo) ListSections(ctx context.Context) ([]domain.Section, error) {
	const op = "postgresrepo.FloorPlanRepo.ListSections"

	rows, err := r.db.Query(ctx, `SELECT id, name, is_active FROM sections`)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// InsertSection creates a section with isActive defaulted to true.
// A duplicate id surfaces as repository.ErrConflict.
func (r *FloorPlanRepo) InsertSection(ctx context.Context, id, name string) error {
	const op = "postgresrepo.FloorPlanRepo.InsertSection"

	if _, err := r.db.Exec(ctx,
		`INSERT INTO sections(id, name) VALUES ($1, $2)`,
		id, name,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *FloorPlanRepo) ListTables(ctx context.Context) ([]domain.Table, error) {
	const op = "postgresrepo.FloorPlanRepo.ListTables"

	rows, err := r.db.Query(ctx,
		`SELECT id, section_id, table_number, capacity, qr_code_url,
		        status, assigned_staff_id, current_order_id, last_active_at
		 FROM restaurant_tables`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		var t domain.Table
		var status string
		if err := rows.Scan(
			&t.ID,
			&t.SectionID,
			&t.TableNumber,
			&t.Capacity,
			&t.QRCodeURL,
			&status,
			&t.AssignedStaffID,
			&t.CurrentOrderID,
			&t.LastActiveAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		t.Status = domain.TableStatus(status)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *FloorPlanRepo) InsertTable(ctx context.Context, t domain.Table) error {
	const op = "postgresrepo.FloorPlanRepo.InsertTable"

	status := t.Status
	if status == "" {
		status = domain.TableAvailable
	}

	if _, err := r.db.Exec(ctx,
		`INSERT INTO restaurant_tables(
			id, section_id, table_number, capacity, qr_code_url,
			status, assigned_staff_id, current_order_id, last_active_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.SectionID, t.TableNumber, t.Capacity, t.QRCodeURL,
		string(status), t.AssignedStaffID, t.CurrentOrderID, t.LastActiveAt,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// UpdateTableStatus moves a table through its service lifecycle and stamps
// last_active_at. currentOrderID is written as-is, including empty to clear
// the link.
func (r *FloorPlanRepo) UpdateTableStatus(
	ctx context.Context,
	id string,
	status domain.TableStatus,
	currentOrderID string,
) error {
	const op = "postgresrepo.FloorPlanRepo.UpdateTableStatus"

	tag, err := r.db.Exec(ctx,
		`UPDATE restaurant_tables
		 SET status = $2, current_order_id = $3, last_active_at = $4
		 WHERE id = $1`,
		id, string(status), currentOrderID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}
