package application

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/signcfg/internal/buildconfig"
	"github.com/eugenenazirov/signcfg/internal/config"
	"github.com/eugenenazirov/signcfg/internal/properties"
	"github.com/eugenenazirov/signcfg/internal/signing"
)

// App encapsulates the dependencies of one configuration evaluation.
type App struct {
	cfg      config.Config
	android  buildconfig.Android
	resolver *signing.Resolver
	logger   *zap.Logger
}

// Report summarises whether each variant can be signed.
type Report struct {
	PropertiesPath  string                   `json:"propertiesPath" yaml:"properties_path"`
	PropertiesFound bool                     `json:"propertiesFound" yaml:"properties_found"`
	Variants        map[string]VariantReport `json:"variants" yaml:"variants"`
}

// VariantReport is the outcome for a single variant. Signing is redacted.
type VariantReport struct {
	Ok      bool            `json:"ok" yaml:"ok"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
	Signing *signing.Config `json:"signing,omitempty" yaml:"signing,omitempty"`
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Android.Validate(); err != nil {
		return nil, fmt.Errorf("invalid android settings: %w", err)
	}

	var opts []signing.ResolverOption
	if cfg.DebugKeystore != "" {
		opts = append(opts, signing.WithDebugKeystore(cfg.DebugKeystore))
	}

	return &App{
		cfg:      cfg,
		android:  cfg.Android,
		resolver: signing.NewResolver(cfg.PropertiesPath(), cfg.AppDir, logger, opts...),
		logger:   logger,
	}, nil
}

// Resolve evaluates the configuration for variant. key.properties is only
// read for variants that need it.
func (a *App) Resolve(variant signing.Variant) (buildconfig.Plan, error) {
	var props properties.Properties
	if variant == signing.Release {
		props = properties.Load(a.cfg.PropertiesPath(), a.logger)
	}
	return a.plan(variant, props)
}

// Check evaluates every variant against a single read of key.properties.
// The returned error is non-nil when at least one variant cannot be signed.
func (a *App) Check() (Report, error) {
	path := a.cfg.PropertiesPath()
	props := properties.Load(path, a.logger)

	report := Report{
		PropertiesPath:  path,
		PropertiesFound: props != nil,
		Variants:        make(map[string]VariantReport, len(signing.Variants())),
	}

	var firstErr error
	for _, variant := range signing.Variants() {
		plan, err := a.plan(variant, props)
		if err != nil {
			report.Variants[variant.String()] = VariantReport{Error: err.Error()}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		redacted := plan.Signing.Redacted()
		report.Variants[variant.String()] = VariantReport{Ok: true, Signing: &redacted}
	}

	return report, firstErr
}

func (a *App) plan(variant signing.Variant, props properties.Properties) (buildconfig.Plan, error) {
	sc, err := a.resolver.Resolve(variant, props)
	if err != nil {
		return buildconfig.Plan{}, err
	}

	plan, err := a.android.Plan(variant, sc)
	if err != nil {
		return buildconfig.Plan{}, fmt.Errorf("build %s plan: %w", variant, err)
	}

	a.logger.Info("signing configuration resolved",
		zap.Stringer("variant", variant),
		zap.String("store_path", sc.StorePath),
		zap.String("key_alias", sc.KeyAlias),
	)
	return plan, nil
}

// Write encodes v to w in the configured output format.
func (a *App) Write(w io.Writer, v any) error {
	switch a.cfg.Format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
