package signing

import (
	"github.com/eugenenazirov/signcfg/internal/properties"
)

// Keys recognised in key.properties.
const (
	KeyStoreFile     = "storeFile"
	KeyStorePassword = "storePassword"
	KeyAlias         = "keyAlias"
	KeyPassword      = "keyPassword"
)

// KeyOrder is the order in which required keys are checked and reported.
var KeyOrder = []string{KeyStoreFile, KeyStorePassword, KeyAlias, KeyPassword}

// Credentials are the four secrets needed to sign a release artifact.
type Credentials struct {
	StoreFile     string `json:"storeFile" yaml:"storeFile"`
	StorePassword string `json:"storePassword" yaml:"storePassword"`
	KeyAlias      string `json:"keyAlias" yaml:"keyAlias"`
	KeyPassword   string `json:"keyPassword" yaml:"keyPassword"`
}

// CredentialsFromProperties builds release credentials from props. Every
// required key is checked for a non-blank value; a nil props means the file
// at path was absent.
func CredentialsFromProperties(path string, props properties.Properties) (Credentials, error) {
	if props == nil {
		return Credentials{}, &IncompleteError{Path: path, Absent: true, Missing: append([]string(nil), KeyOrder...)}
	}

	values := make(map[string]string, len(KeyOrder))
	var missing []string
	for _, key := range KeyOrder {
		value, ok := props.Lookup(key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		values[key] = value
	}
	if len(missing) > 0 {
		return Credentials{}, &IncompleteError{Path: path, Missing: missing}
	}

	return Credentials{
		StoreFile:     values[KeyStoreFile],
		StorePassword: values[KeyStorePassword],
		KeyAlias:      values[KeyAlias],
		KeyPassword:   values[KeyPassword],
	}, nil
}

// Complete reports whether all four fields are set.
func (c Credentials) Complete() bool {
	return c.StoreFile != "" && c.StorePassword != "" && c.KeyAlias != "" && c.KeyPassword != ""
}
