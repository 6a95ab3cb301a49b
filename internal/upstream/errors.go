package upstream

import (
	"errors"
	"fmt"
)

// StatusError is a non-success HTTP status from the commerce API; the
// body is discarded, only the status matters to callers.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("commerce api returned status %d for %s", e.Status, e.Path)
}

func isStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
