package httpgin

import (
	"encoding/json"

	"posrelay/internal/broadcast"
	"posrelay/internal/domain"
)

// OrderSubmission is the wire shape of POST /api/order. Items is kept raw:
// the store treats line items as an opaque encoded sequence.
type OrderSubmission struct {
	TableID   string          `json:"tableId"`
	Items     json.RawMessage `json:"items"`
	Total     float64         `json:"total"`
	Timestamp string          `json:"timestamp"`
}

type CreateSectionRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type CreateTableRequest struct {
	ID          string `json:"id" binding:"required"`
	SectionID   string `json:"sectionId" binding:"required"`
	TableNumber string `json:"tableNumber" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	QRCodeURL   string `json:"qrCodeUrl"`
	Status      string `json:"status"`
}

func (r CreateTableRequest) toDomain() domain.Table {
	return domain.Table{
		ID:          r.ID,
		SectionID:   r.SectionID,
		TableNumber: r.TableNumber,
		Capacity:    r.Capacity,
		QRCodeURL:   r.QRCodeURL,
		Status:      domain.TableStatus(r.Status),
	}
}

type UpdateTableStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	CurrentOrderID string `json:"currentOrderId"`
}

type OrderAccepted struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	IsRunning        bool                   `json:"isRunning"`
	StartedAt        string                 `json:"startedAt"`
	ConnectedClients []broadcast.ClientInfo `json:"connectedClients"`
}
