package signing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eugenenazirov/signcfg/internal/properties"
)

const (
	debugStoreFile     = "debug.keystore"
	debugStorePassword = "android"
	debugKeyAlias      = "androiddebugkey"
	debugKeyPassword   = "android"

	redacted = "********"
)

// Config is the signing configuration handed to the packaging plugin.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	Credentials `yaml:",inline"`
	// StorePath is StoreFile resolved against the app module directory.
	StorePath string `json:"storePath" yaml:"storePath"`
}

// Redacted returns a copy safe for printing.
func (c Config) Redacted() Config {
	out := c
	if out.StorePassword != "" {
		out.StorePassword = redacted
	}
	if out.KeyPassword != "" {
		out.KeyPassword = redacted
	}
	return out
}

// Resolver builds signing configurations for an Android app module.
type Resolver struct {
	propertiesPath string
	appDir         string
	debugStorePath string
	logger         *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDebugKeystore overrides the location of the debug keystore.
func WithDebugKeystore(path string) ResolverOption {
	return func(r *Resolver) {
		r.debugStorePath = path
	}
}

// NewResolver creates a Resolver. propertiesPath is only used in diagnostics;
// relative store files are resolved against appDir.
func NewResolver(propertiesPath, appDir string, logger *zap.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		propertiesPath: propertiesPath,
		appDir:         appDir,
		debugStorePath: defaultDebugKeystore(),
		logger:         logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the signing configuration for variant. For Release, props
// must hold complete credentials; otherwise a warning is logged and an
// *IncompleteError is returned.
func (r *Resolver) Resolve(variant Variant, props properties.Properties) (Config, error) {
	switch variant {
	case Debug:
		return r.debugConfig(), nil
	case Release:
		return r.releaseConfig(props)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
}

func (r *Resolver) releaseConfig(props properties.Properties) (Config, error) {
	creds, err := CredentialsFromProperties(r.propertiesPath, props)
	if err != nil {
		fields := []zap.Field{zap.String("path", r.propertiesPath), zap.Error(err)}
		var incomplete *IncompleteError
		if errors.As(err, &incomplete) {
			fields = append(fields, zap.Strings("missing", incomplete.Missing))
		}
		r.logger.Warn("release signing configuration not found or incomplete", fields...)
		return Config{}, err
	}

	return Config{
		Name:        Release.String(),
		Credentials: creds,
		StorePath:   r.resolvePath(creds.StoreFile),
	}, nil
}

func (r *Resolver) debugConfig() Config {
	return Config{
		Name: Debug.String(),
		Credentials: Credentials{
			StoreFile:     r.debugStorePath,
			StorePassword: debugStorePassword,
			KeyAlias:      debugKeyAlias,
			KeyPassword:   debugKeyPassword,
		},
		StorePath: r.debugStorePath,
	}
}

func (r *Resolver) resolvePath(file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(r.appDir, file)
}

func defaultDebugKeystore() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".android", debugStoreFile)
	}
	return filepath.Join(home, ".android", debugStoreFile)
}
