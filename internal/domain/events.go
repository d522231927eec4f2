package domain

import "encoding/json"

// Event types carried on the pos-updates channel. The channel itself is
// untyped: POS terminals may relay arbitrary payloads and every subscriber
// receives them verbatim. These constructors cover the events the service
// publishes on its own behalf.
const (
	EventNewOrder           = "NEW_ORDER"
	EventOrderStatusUpdate  = "ORDER_STATUS_UPDATE"
	EventTableStatusChanged = "TABLE_STATUS_CHANGED"
	EventMenuSynced         = "MENU_SYNCED"
)

type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewOrderEvent(body json.RawMessage) ([]byte, error) {
	return json.Marshal(Event{Type: EventNewOrder, Payload: body})
}

// MenuSyncedEvent carries the pushed menu so terminals refresh without a
// fetch round-trip.
func MenuSyncedEvent(items json.RawMessage) ([]byte, error) {
	return json.Marshal(Event{Type: EventMenuSynced, Payload: items})
}

type tableStatusPayload struct {
	TableID        string      `json:"tableId"`
	Status         TableStatus `json:"status"`
	CurrentOrderID string      `json:"currentOrderId,omitempty"`
}

func TableStatusChangedEvent(tableID string, status TableStatus, currentOrderID string) ([]byte, error) {
	b, err := json.Marshal(tableStatusPayload{
		TableID:        tableID,
		Status:         status,
		CurrentOrderID: currentOrderID,
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: EventTableStatusChanged, Payload: b})
}
