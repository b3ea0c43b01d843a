package domain

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"strings"
)

var (
	// ErrRemoteUnavailable means the remote data store could not be reached.
	ErrRemoteUnavailable = errors.New("remote data store unavailable")
	ErrEmptyCart         = errors.New("cart is empty, nothing to commit")
	ErrLineNotFound      = errors.New("cart line not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateFolio    = errors.New("sale folio already exists")
)

// SerializationError reports a payload value that could not be reduced to a plain scalar.
type SerializationError struct {
	Path  string
	Value any
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("payload value at %s of type %T is not serializable", e.Path, e.Value)
}

type StockUpdateError struct {
	ProductID uuid.UUID
	NewStock  int
	Err       error
}

func (e *StockUpdateError) Error() string {
	return fmt.Sprintf("stock update for product[%s] to %d: %v", e.ProductID, e.NewStock, e.Err)
}

func (e *StockUpdateError) Unwrap() error {
	return e.Err
}

// PartialStockUpdateError lists stock write-backs that failed after a committed sale.
// The sale itself stays committed.
type PartialStockUpdateError struct {
	Folio    string
	Failures []*StockUpdateError
}

func (e *PartialStockUpdateError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("sale %s committed, %d stock update(s) failed: %s", e.Folio, len(e.Failures), strings.Join(msgs, "; "))
}

func (e *PartialStockUpdateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
