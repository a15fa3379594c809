package reservation

import (
	"errors"
	"strings"

	"github.com/Isma450/django-library-management/pkg/apiclient"
)

// The backend communicates business rejections as human-readable text, so
// classification is substring matching on that text. Every matched string
// lives here and nowhere else.
const (
	quotaExceededText   = "3 active reservations"
	alreadyReservedText = "already reserved"
)

// classify turns a transport error from a reservation call into the package's
// error taxonomy. Network failures pass through untouched so callers can
// still match apiclient.ErrNetwork.
func classify(err error) error {
	if errors.Is(err, apiclient.ErrNetwork) {
		return err
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		switch {
		case strings.Contains(apiErr.Message, quotaExceededText):
			return ErrQuotaExceeded
		case strings.Contains(apiErr.Message, alreadyReservedText):
			return ErrAlreadyReserved
		default:
			return &Error{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
	}

	return &Error{Message: err.Error()}
}
