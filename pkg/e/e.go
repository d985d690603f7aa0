package e

import "fmt"

var (
	// Catalog
	ErrProductNotFound = fmt.Errorf("product not found")

	// Embedded app payloads
	ErrMalformedPayload = fmt.Errorf("malformed app payload")
	ErrUnknownAction    = fmt.Errorf("unknown app payload action")

	// Startup
	ErrInvalidConfig = fmt.Errorf("invalid config")
)

// Wrap wraps err with a message prefix
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
