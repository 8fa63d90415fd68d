package repositories

import (
	"errors"
)

// Ledger error taxonomy. Validation errors go back to the caller for
// correction; ErrConcurrentModification is retried up to the configured
// bound before it surfaces.
var (
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrSourceNotFound         = errors.New("source bin not found")
	ErrInsufficientStock      = errors.New("insufficient stock in source bin")
	ErrSameLocation           = errors.New("source and destination locations are the same")
	ErrInvalidDestinationKind = errors.New("destination location kind is required to create a new bin")
	ErrConcurrentModification = errors.New("conflicting concurrent write, retry exhausted")
	ErrNoWarehouseBin         = errors.New("no warehouse bin exists for item")
	ErrAlreadyResolved        = errors.New("adjustment request already resolved")
	ErrItemNotFound           = errors.New("item not found")
)
