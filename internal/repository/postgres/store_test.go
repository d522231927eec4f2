package postgresrepo

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posrelay/internal/domain"
	"posrelay/internal/repository"
)

// newTestStore connects to the database named by POSRELAY_TEST_DATABASE_URL
// and resets the schema. Without the variable the integration tests skip.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("POSRELAY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("POSRELAY_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS sections, restaurant_tables, orders`)
	require.NoError(t, err)

	store := NewStore(pool)
	require.NoError(t, store.Init(ctx))

	return store
}

func TestInitSeedsDefaultFloorPlanOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Init on a populated store is a no-op.
	require.NoError(t, store.Init(ctx))

	sections, err := store.FloorPlan().ListSections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "sec-main", sections[0].ID)
	assert.Equal(t, "Main Dining", sections[0].Name)
	assert.True(t, sections[0].IsActive)

	tables, err := store.FloorPlan().ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "tab-1", tables[0].ID)
	assert.Equal(t, 4, tables[0].Capacity)
	assert.Equal(t, domain.TableAvailable, tables[0].Status)
	assert.Equal(t, "tab-2", tables[1].ID)
}

func TestSectionInsertAndConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fp := store.FloorPlan()

	require.NoError(t, fp.InsertSection(ctx, "sec-patio", "Patio"))

	err := fp.InsertSection(ctx, "sec-patio", "Patio Again")
	require.ErrorIs(t, err, repository.ErrConflict)

	sections, err := fp.ListSections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestTableInsertListAndStatusUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fp := store.FloorPlan()

	in := domain.Table{
		ID:          "tab-9",
		SectionID:   "sec-main",
		TableNumber: "9",
		Capacity:    6,
		QRCodeURL:   "https://pos.local/t/9",
	}
	require.NoError(t, fp.InsertTable(ctx, in))
	require.ErrorIs(t, fp.InsertTable(ctx, in), repository.ErrConflict)

	require.NoError(t, fp.UpdateTableStatus(ctx, "tab-9", domain.TableOccupied, "ord-1700000000000"))

	tables, err := fp.ListTables(ctx)
	require.NoError(t, err)

	var got *domain.Table
	for i := range tables {
		if tables[i].ID == "tab-9" {
			got = &tables[i]
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, domain.TableOccupied, got.Status)
	assert.Equal(t, "ord-1700000000000", got.CurrentOrderID)
	assert.Equal(t, "https://pos.local/t/9", got.QRCodeURL)

	// Status writes stamp the activity marker.
	lastActive, err := time.Parse(time.RFC3339, got.LastActiveAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), lastActive, time.Minute)

	err = fp.UpdateTableStatus(ctx, "tab-404", domain.TableCleaning, "")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderInsertAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	orders := store.Orders()

	o := &domain.Order{
		TableID:   "tab-1",
		Items:     json.RawMessage(`[{"id":"m1","qty":2},{"id":"m4","qty":1}]`),
		Total:     23.5,
		Timestamp: "2026-08-28T12:00:00Z",
		Status:    "served", // caller input is overridden
	}
	require.NoError(t, orders.Insert(ctx, o))

	assert.Regexp(t, `^ord-\d+$`, o.ID)
	assert.Equal(t, domain.OrderStatusPending, o.Status)

	list, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, "tab-1", got.TableID)
	assert.Equal(t, 23.5, got.Total)
	assert.Equal(t, "2026-08-28T12:00:00Z", got.Timestamp)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	assert.JSONEq(t, `[{"id":"m1","qty":2},{"id":"m4","qty":1}]`, string(got.Items))
}
