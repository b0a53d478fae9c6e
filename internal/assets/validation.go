package assets

import (
	"fmt"
	"strings"
)

// nameForbiddenChars are rejected in style names: separators and dots would
// let a name escape the styles directory or swap the .css extension.
const nameForbiddenChars = `/\.`

// ValidateAssetName checks that a style name can be safely interpolated into
// a styles/{name}.css path. Returns ErrInvalidAssetName otherwise.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, nameForbiddenChars) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
