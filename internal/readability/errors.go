package readability

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three extraction failure modes.
var (
	// ErrNoDocument indicates the input could not be interpreted as an
	// HTML document at all.
	ErrNoDocument = errors.New("no document could be parsed from the input")

	// ErrTooManyElements indicates the prepared document exceeded the
	// configured element ceiling.
	ErrTooManyElements = errors.New("document exceeds the maximum element count")

	// ErrNoContent indicates extraction ran but found no subtree with
	// enough readable text to return.
	ErrNoContent = errors.New("no readable content found in the document")
)

func wrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
