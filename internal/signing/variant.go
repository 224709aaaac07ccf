package signing

import (
	"fmt"
	"strings"
)

// Variant is a build variant with its own signing requirements.
type Variant int

const (
	// Debug is signed with the local default debug identity.
	Debug Variant = iota
	// Release requires complete credentials from key.properties.
	Release
)

// Variants lists every supported variant.
func Variants() []Variant {
	return []Variant{Debug, Release}
}

func (v Variant) String() string {
	switch v {
	case Debug:
		return "debug"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps a variant name to a Variant, case-insensitively.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "release":
		return Release, nil
	default:
		return 0, fmt.Errorf("unknown build variant %q", name)
	}
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
