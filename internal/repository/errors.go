package repository

import (
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"net"
)

// storeErr prefixes err with the failing call and tags connection-level
// failures with domain.ErrRemoteUnavailable. The raw message is kept.
func storeErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrRemoteUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// closed pool and similar failures before anything was sent
	return pgconn.SafeToRetry(err)
}
