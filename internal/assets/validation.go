package assets

import (
	"fmt"
	"unicode"
)

// MaxAssetNameLength bounds style and template set names.
const MaxAssetNameLength = 64

// ValidateAssetName accepts names made of letters, digits, '-' and '_'.
// Anything else (separators, dots, spaces, control runes) could escape the
// asset directory or alter the file extension, so it yields ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, MaxAssetNameLength)
	}
	for _, r := range name {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return fmt.Errorf("%w: %q contains %q", ErrInvalidAssetName, name, r)
	}
	return nil
}
