package domain

import "encoding/json"

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

// Section is a named physical zone of the floor plan (e.g. "Patio").
// Sections are never physically deleted; deactivation is via IsActive.
type Section struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type Table struct {
	ID              string      `json:"id"`
	SectionID       string      `json:"sectionId"`
	TableNumber     string      `json:"tableNumber"`
	Capacity        int         `json:"capacity"`
	QRCodeURL       string      `json:"qrCodeUrl,omitempty"`
	Status          TableStatus `json:"status"`
	AssignedStaffID string      `json:"assignedStaffId,omitempty"`
	CurrentOrderID  string      `json:"currentOrderId,omitempty"`
	LastActiveAt    string      `json:"lastActiveAt,omitempty"`
}

const OrderStatusPending = "pending"

// Order as persisted. Items stays in its encoded form at rest; decoding
// is the reader's responsibility.
type Order struct {
	ID        string          `json:"id"`
	TableID   string          `json:"tableId"`
	Items     json.RawMessage `json:"items"`
	Total     float64         `json:"total"`
	Timestamp string          `json:"timestamp"`
	Status    string          `json:"status"`
}

type OrderItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// StaffAssignment is declared for API compatibility with the POS clients.
// It is not persisted by the store in the current scope.
type StaffAssignment struct {
	UserID     string   `json:"userId"`
	UserName   string   `json:"userName"`
	SectionIDs []string `json:"sectionIds"`
	TableIDs   []string `json:"tableIds"`
}

// FloorPlan is the composite snapshot returned to clients.
type FloorPlan struct {
	Sections []Section `json:"sections"`
	Tables   []Table   `json:"tables"`
}
