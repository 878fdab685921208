package e

import "fmt"

// Wrap prefixes err with msg, usually a call site from whereami.WhereAmI().
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
