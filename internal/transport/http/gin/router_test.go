package httpgin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posrelay/internal/broadcast"
	"posrelay/internal/domain"
	"posrelay/internal/repository"
	redisrepo "posrelay/internal/repository/redis"
	"posrelay/internal/service"
	"posrelay/internal/service/floorplan"
	"posrelay/internal/service/orders"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// memStore satisfies both the floor-plan and order store interfaces.
type memStore struct {
	sections []domain.Section
	tables   []domain.Table
	orders   []domain.Order
	nextID   int64
}

func (m *memStore) ListSections(context.Context) ([]domain.Section, error) {
	return m.sections, nil
}

func (m *memStore) InsertSection(_ context.Context, id, name string) error {
	for _, s := range m.sections {
		if s.ID == id {
			return repository.ErrConflict
		}
	}
	m.sections = append(m.sections, domain.Section{ID: id, Name: name, IsActive: true})
	return nil
}

func (m *memStore) ListTables(context.Context) ([]domain.Table, error) {
	return m.tables, nil
}

func (m *memStore) InsertTable(_ context.Context, t domain.Table) error {
	for _, existing := range m.tables {
		if existing.ID == t.ID {
			return repository.ErrConflict
		}
	}
	m.tables = append(m.tables, t)
	return nil
}

func (m *memStore) UpdateTableStatus(_ context.Context, id string, status domain.TableStatus, currentOrderID string) error {
	for i := range m.tables {
		if m.tables[i].ID == id {
			m.tables[i].Status = status
			m.tables[i].CurrentOrderID = currentOrderID
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) Insert(_ context.Context, o *domain.Order) error {
	if m.nextID == 0 {
		m.nextID = 1700000000000
	}
	o.ID = "ord-" + strconv.FormatInt(m.nextID, 10)
	m.nextID++
	o.Status = domain.OrderStatusPending
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memStore) List(context.Context) ([]domain.Order, error) {
	return m.orders, nil
}

type testEnv struct {
	store *memStore
	hub   *broadcast.Hub
	rdb   *redis.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return &testEnv{
		store: &memStore{},
		hub:   broadcast.NewHub(rdb, slog.New(slog.NewTextHandler(io.Discard, nil))),
		rdb:   rdb,
	}
}

func (e *testEnv) newRouter(opts Options) *gin.Engine {
	svcs := &service.Services{
		FloorPlan: floorplan.New(e.store, nil, e.hub, floorplan.Config{}),
		Orders:    orders.New(e.store, e.hub),
	}

	return NewRouter(svcs, e.hub, opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, r *gin.Engine, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r := newTestEnv(t).newRouter(Options{})

	w := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestFloorPlanSnapshot(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.InsertSection(context.Background(), "sec-main", "Main Dining"))
	require.NoError(t, env.store.InsertTable(context.Background(), domain.Table{
		ID: "tab-1", SectionID: "sec-main", TableNumber: "1", Capacity: 4, Status: domain.TableAvailable,
	}))
	r := env.newRouter(Options{})

	w := do(t, r, http.MethodGet, "/api/floor-plan", "")
	require.Equal(t, http.StatusOK, w.Code)

	fp := decode[domain.FloorPlan](t, w)
	require.Len(t, fp.Sections, 1)
	require.Len(t, fp.Tables, 1)
	assert.Equal(t, "sec-main", fp.Sections[0].ID)
	assert.Equal(t, "tab-1", fp.Tables[0].ID)
	assert.Equal(t, domain.TableAvailable, fp.Tables[0].Status)
}

func TestSubmitOrder(t *testing.T) {
	env := newTestEnv(t)
	r := env.newRouter(Options{})

	w := do(t, r, http.MethodPost, "/api/order",
		`{"tableId":"tab-1","items":[{"id":"m1","qty":2}],"total":18.5,"timestamp":"2026-08-28T12:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[OrderAccepted](t, w)
	assert.True(t, resp.Success)
	assert.Regexp(t, `^ord-\d+$`, resp.OrderID)
	assert.Equal(t, domain.OrderStatusPending, resp.Status)

	require.Len(t, env.store.orders, 1)
	assert.Equal(t, resp.OrderID, env.store.orders[0].ID)
}

func TestSubmitOrderRejectsBadPayloads(t *testing.T) {
	env := newTestEnv(t)
	r := env.newRouter(Options{})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"invalid json", `{"tableId":`},
		{"missing table id", `{"items":[{"id":"m1"}]}`},
		{"empty items", `{"tableId":"tab-1","items":[]}`},
		{"items not array", `{"tableId":"tab-1","items":{"id":"m1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/order", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	assert.Empty(t, env.store.orders)
}

func TestSubmitOrderIdempotencyReplay(t *testing.T) {
	env := newTestEnv(t)
	r := env.newRouter(Options{
		Idempotency: redisrepo.NewIdempotencyStore(env.rdb, time.Hour),
	})

	const payload = `{"tableId":"tab-1","items":[{"id":"m1","qty":1}],"total":4.2}`

	w1 := do(t, r, http.MethodPost, "/api/order", payload, "Idempotency-Key", "abc-123")
	require.Equal(t, http.StatusOK, w1.Code)
	first := decode[OrderAccepted](t, w1)

	// The retry replays the stored response; nothing new is persisted.
	w2 := do(t, r, http.MethodPost, "/api/order", payload, "Idempotency-Key", "abc-123")
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, first.OrderID, decode[OrderAccepted](t, w2).OrderID)
	assert.Len(t, env.store.orders, 1)

	// A different key is a different submission.
	w3 := do(t, r, http.MethodPost, "/api/order", payload, "Idempotency-Key", "abc-456")
	require.Equal(t, http.StatusOK, w3.Code)
	assert.NotEqual(t, first.OrderID, decode[OrderAccepted](t, w3).OrderID)
	assert.Len(t, env.store.orders, 2)
}

func TestSubmitOrderRateLimited(t *testing.T) {
	env := newTestEnv(t)
	r := env.newRouter(Options{
		Limiter: redisrepo.NewFixedWindowLimiter(env.rdb, "order", 2, time.Minute),
	})

	const payload = `{"tableId":"tab-1","items":[{"id":"m1"}]}`

	for i := 0; i < 2; i++ {
		w := do(t, r, http.MethodPost, "/api/order", payload)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := do(t, r, http.MethodPost, "/api/order", payload)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Len(t, env.store.orders, 2)
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	r := env.newRouter(Options{})

	w := do(t, r, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	do(t, r, http.MethodPost, "/api/order", `{"tableId":"tab-1","items":[{"id":"m1"}]}`)

	w = do(t, r, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.Order](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "tab-1", list[0].TableID)
	assert.JSONEq(t, `[{"id":"m1"}]`, string(list[0].Items))
}

func TestSyncMenu(t *testing.T) {
	r := newTestEnv(t).newRouter(Options{})

	w := do(t, r, http.MethodPost, "/api/menu", `[{"id":"m1","name":"Margherita"}]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[SuccessResponse](t, w).Success)

	w = do(t, r, http.MethodPost, "/api/menu", `{"id":"m1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSectionEndpoint(t *testing.T) {
	r := newTestEnv(t).newRouter(Options{})

	w := do(t, r, http.MethodPost, "/api/sections", `{"id":"sec-patio","name":"Patio"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/sections", `{"id":"sec-patio","name":"Patio"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/api/sections", `{"id":"sec-bar"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTableAndUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	r := env.newRouter(Options{})

	w := do(t, r, http.MethodPost, "/api/tables",
		`{"id":"tab-1","sectionId":"sec-main","tableNumber":"1","capacity":4}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPatch, "/api/tables/tab-1/status",
		`{"status":"occupied","currentOrderId":"ord-1700000000000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.TableOccupied, env.store.tables[0].Status)
	assert.Equal(t, "ord-1700000000000", env.store.tables[0].CurrentOrderID)

	w = do(t, r, http.MethodPatch, "/api/tables/tab-404/status", `{"status":"cleaning"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPatch, "/api/tables/tab-1/status", `{"status":"on-fire"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	r := env.newRouter(Options{})

	env.hub.Subscribe("10.0.0.5:5555")

	w := do(t, r, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[StatusResponse](t, w)
	assert.True(t, resp.IsRunning)
	assert.NotEmpty(t, resp.StartedAt)
	require.Len(t, resp.ConnectedClients, 1)
	assert.Equal(t, "10.0.0.5:5555", resp.ConnectedClients[0].RemoteAddr)
}

func TestStaticFallback(t *testing.T) {
	pub := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pub, "index.html"), []byte("<html>pos</html>"), 0o644))

	r := newTestEnv(t).newRouter(Options{PublicDir: pub})

	w := do(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>pos</html>", w.Body.String())

	w = do(t, r, http.MethodGet, "/missing.js", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unmatched API paths never fall through to the asset handler.
	w = do(t, r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A rooted clean keeps traversal inside the bundle.
	w = do(t, r, http.MethodGet, "/../secret", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestEnv(t).newRouter(Options{})

	w := do(t, r, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(t, r, http.MethodGet, "/health", "", "X-Request-ID", "req-42")
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}
