package reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded means the server rejected the reservation because the
	// user already holds the maximum of three active reservations.
	ErrQuotaExceeded = errors.New("reservation: quota exceeded")

	// ErrAlreadyReserved means the server rejected a duplicate reservation
	// for the same book.
	ErrAlreadyReserved = errors.New("reservation: book already reserved")

	// ErrCancelFailed wraps a rejected cancellation.
	ErrCancelFailed = errors.New("reservation: cancellation failed")

	// ErrRefreshFailed wraps a failed list fetch.
	ErrRefreshFailed = errors.New("reservation: refresh failed")
)

// Error is a server rejection that matched none of the known error texts.
// The backend's message is preserved verbatim for display.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("reservation: server rejected request: %s", e.Message)
}
