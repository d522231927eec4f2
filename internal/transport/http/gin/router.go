package httpgin

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"posrelay/internal/broadcast"
	"posrelay/internal/domain"
	redisrepo "posrelay/internal/repository/redis"
	"posrelay/internal/service"
	"posrelay/internal/service/floorplan"
	"posrelay/internal/service/orders"
)

// Options carries the optional gateway collaborators. Any of them may be
// nil; the matching behavior is simply skipped.
type Options struct {
	Idempotency *redisrepo.IdempotencyStore
	Limiter     *redisrepo.FixedWindowLimiter
	PublicDir   string
}

func NewRouter(
	svcs *service.Services,
	hub *broadcast.Hub,
	opts Options,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	startedAt := time.Now().UTC()

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	{
		api.GET("/floor-plan", handleFloorPlan(svcs))
		api.POST("/order", handleSubmitOrder(svcs, opts.Idempotency, opts.Limiter))
		api.GET("/orders", handleListOrders(svcs))
		api.POST("/menu", handleSyncMenu(hub))
		api.POST("/sections", handleCreateSection(svcs))
		api.POST("/tables", handleCreateTable(svcs))
		api.PATCH("/tables/:id/status", handleUpdateTableStatus(svcs))
		api.GET("/status", handleStatus(hub, startedAt))
	}

	// Duplex POS connections
	r.GET("/ws", handleWS(hub, logger))

	// Everything else is a static asset lookup.
	r.NoRoute(StaticHandler(opts.PublicDir))

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Floor-plan snapshot
// @Success  200  {object}  domain.FloorPlan
// @Router   /api/floor-plan [get]
func handleFloorPlan(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		fp, err := svcs.FloorPlan.Snapshot(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, fp)
	}
}

// @Summary  Submit an order
// @Param    req body  OrderSubmission true "order payload"
// @Success  200 {object} OrderAccepted
// @Failure  400 {object} ErrorResponse
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /api/order [post]
func handleSubmitOrder(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.FixedWindowLimiter,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil {
			ok, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
			if err == nil && !ok {
				c.Header("Retry-After", "1")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil || len(body) == 0 {
			badRequest(c, "missing order payload")
			return
		}

		var req OrderSubmission
		if err := json.Unmarshal(body, &req); err != nil {
			badRequest(c, "invalid order payload")
			return
		}

		idemKey := c.GetHeader("Idempotency-Key")
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemOrder(idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 30*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "submission in progress"})
				return
			}
		}

		o, err := svcs.Orders.Submit(c.Request.Context(), orders.Submission{
			TableID:   req.TableID,
			Items:     req.Items,
			Total:     req.Total,
			Timestamp: req.Timestamp,
			Body:      body,
		})
		if err != nil {
			if idemStorageKey != "" {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := OrderAccepted{Success: true, OrderID: o.ID, Status: o.Status}

		if idemStorageKey != "" {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  List persisted orders
// @Success  200 {array} domain.Order
// @Router   /api/orders [get]
func handleListOrders(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svcs.Orders.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Acknowledge a menu sync
// @Param    req body  []json.RawMessage true "menu items"
// @Success  200 {object} SuccessResponse
// @Router   /api/menu [post]
func handleSyncMenu(hub *broadcast.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Menu content lives with the POS; the relay acknowledges the sync
		// and passes it along so terminals refresh.
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			badRequest(c, "missing menu payload")
			return
		}

		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			badRequest(c, "expected a JSON array of menu items")
			return
		}

		if ev, err := domain.MenuSyncedEvent(body); err == nil {
			_ = hub.Publish(c.Request.Context(), ev)
		}

		c.JSON(http.StatusOK, SuccessResponse{Success: true})
	}
}

// @Summary  Create a section
// @Param    req body  CreateSectionRequest true "section"
// @Success  201 {object} SuccessResponse
// @Failure  409 {object} ErrorResponse
// @Router   /api/sections [post]
func handleCreateSection(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.FloorPlan.CreateSection(c.Request.Context(), req.ID, req.Name); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, SuccessResponse{Success: true})
	}
}

// @Summary  Create a table
// @Param    req body  CreateTableRequest true "table"
// @Success  201 {object} SuccessResponse
// @Failure  409 {object} ErrorResponse
// @Router   /api/tables [post]
func handleCreateTable(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.FloorPlan.CreateTable(c.Request.Context(), req.toDomain()); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, SuccessResponse{Success: true})
	}
}

// @Summary  Update table status
// @Param    id   path  string true "Table ID"
// @Param    req  body  UpdateTableStatusRequest true "new status"
// @Success  200 {object} SuccessResponse
// @Failure  404 {object} ErrorResponse
// @Router   /api/tables/{id}/status [patch]
func handleUpdateTableStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateTableStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		err := svcs.FloorPlan.UpdateTableStatus(
			c.Request.Context(),
			c.Param("id"),
			domain.TableStatus(req.Status),
			req.CurrentOrderID,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, SuccessResponse{Success: true})
	}
}

// @Summary  Relay status
// @Success  200 {object} StatusResponse
// @Router   /api/status [get]
func handleStatus(hub *broadcast.Hub, startedAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatusResponse{
			IsRunning:        true,
			StartedAt:        startedAt.Format(time.RFC3339),
			ConnectedClients: hub.Clients(),
		})
	}
}

// --- Helpers ---

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	switch {
	// orders service
	case errors.Is(err, orders.ErrMalformedOrder):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed order"})
	// floorplan service
	case errors.Is(err, floorplan.ErrSectionExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "section already exists"})
	case errors.Is(err, floorplan.ErrTableExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "table already exists"})
	case errors.Is(err, floorplan.ErrTableNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "table not found"})
	case errors.Is(err, floorplan.ErrInvalidSection):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid section"})
	case errors.Is(err, floorplan.ErrInvalidTable):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table"})
	case errors.Is(err, floorplan.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table status"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
