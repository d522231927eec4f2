package orders

import "errors"

// ErrMalformedOrder is returned when a submission is missing tableId or
// carries no line items. Nothing is persisted in that case.
var ErrMalformedOrder = errors.New("malformed order")
