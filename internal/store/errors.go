package store

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorKind classifies a store error into the categories the HTTP
// surface maps to status codes. Unrecognized errors fall through to
// KindOther.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindDuplicate
	KindUnavailable
)

// Classify inspects an error coming out of the store and tags it.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return KindDuplicate
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return KindDuplicate
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08": // connection exceptions
			return KindUnavailable
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindUnavailable
	}
	// Pool exhaustion surfaces as a connection-acquisition deadline.
	if errors.Is(err, context.DeadlineExceeded) {
		return KindUnavailable
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return KindUnavailable
	}

	return KindOther
}
