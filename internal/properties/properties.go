package properties

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	mprops "github.com/magiconair/properties"
	"go.uber.org/zap"
)

// FileName is the fixed name of the credentials file inside the project root.
const FileName = "key.properties"

// Properties maps keys to values exactly as they appear in the file.
// A nil Properties means the file was absent or could not be read.
type Properties map[string]string

// Path returns the location of the credentials file for the given project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, FileName)
}

// Read parses the file at path using Java properties semantics
// (ISO-8859-1, escapes and continuations, no ${} expansion).
// A missing file yields an error wrapping fs.ErrNotExist.
func Read(path string) (Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	loader := mprops.Loader{
		Encoding:         mprops.ISO_8859_1,
		DisableExpansion: true,
	}
	parsed, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return Properties(parsed.Map()), nil
}

// Load returns the parsed file or nil when it does not exist or cannot be read.
// Both situations are logged as warnings and never abort the caller.
func Load(path string, logger *zap.Logger) Properties {
	props, err := Read(path)
	switch {
	case err == nil:
		logger.Debug("signing properties loaded", zap.String("path", path), zap.Strings("keys", props.keys()))
		return props
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("signing properties file not found", zap.String("path", path))
	default:
		logger.Warn("could not load signing properties file", zap.String("path", path), zap.Error(err))
	}
	return nil
}

// Lookup returns the value for key when it is present and not blank.
func (p Properties) Lookup(key string) (string, bool) {
	value, ok := p[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// keys returns the sorted key set, without values.
func (p Properties) keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
