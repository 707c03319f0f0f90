package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/ETAnderson/storesync/internal/domain"
)

// Client is the outbound surface to the remote product API. The core is
// written against this interface; tests use the Fake, production uses
// HTTPClient.
type Client interface {
	// CreateProduct registers a new product on the given site and returns
	// the remote product id.
	CreateProduct(ctx context.Context, siteID string, payload ProductPayload) (string, error)

	// UpdateProduct replaces the remote payload for an existing product.
	UpdateProduct(ctx context.Context, siteID string, productID string, payload ProductPayload) error
}

// Error is a classified failure from the remote API. StatusCode is zero for
// transport-level failures.
type Error struct {
	Op         string
	Kind       domain.ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("storefront %s: %s (status %d): %s", e.Op, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("storefront %s: %s: %s", e.Op, e.Kind, e.Message)
}

// KindOf classifies an error from a Client call. Anything that is not a
// typed storefront error is treated as a network failure.
func KindOf(err error) domain.ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return domain.ErrorKindNetwork
}
