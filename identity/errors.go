package identity

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks operations the active backend cannot perform, e.g.
// role or group mutation against the Keycloak admin API. The safe adapter
// absorbs it; direct callers must check with errors.Is.
var ErrUnsupported = errors.New("operation not supported by identity backend")

func unsupported(op string) error {
	return fmt.Errorf("%s: %w", op, ErrUnsupported)
}
