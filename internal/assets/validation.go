package assets

import (
	"fmt"
	"strings"
)

// ValidateStyleName checks that a style name is safe for use as a filename.
// Returns ErrInvalidStyleName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateStyleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidStyleName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidStyleName, name)
	}
	return nil
}
