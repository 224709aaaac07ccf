package buildconfig

import (
	"errors"
	"fmt"
	"sort"

	"github.com/eugenenazirov/signcfg/internal/signing"
)

const (
	// DefaultProguardFile is the optimizing rule set shipped with the Android SDK.
	DefaultProguardFile = "proguard-android-optimize.txt"
	// ProjectProguardFile holds app specific keep rules.
	ProjectProguardFile = "proguard-rules.pro"
)

var (
	// ErrShrinkWithoutMinify is returned when resource shrinking is requested without code minification.
	ErrShrinkWithoutMinify = errors.New("shrinkResources requires minifyEnabled")
	// ErrUnknownBuildType is returned when a plan is requested for a variant with no build type.
	ErrUnknownBuildType = errors.New("unknown build type")
)

// BuildType mirrors an Android build type block.
type BuildType struct {
	Name            string   `json:"name" yaml:"name"`
	MinifyEnabled   bool     `json:"minifyEnabled" yaml:"minify_enabled"`
	ShrinkResources bool     `json:"shrinkResources" yaml:"shrink_resources"`
	ProguardFiles   []string `json:"proguardFiles,omitempty" yaml:"proguard_files"`
	SigningConfig   string   `json:"signingConfig" yaml:"signing_config"`
}

// Android holds the module level settings of the app target.
type Android struct {
	Namespace     string               `json:"namespace" yaml:"namespace"`
	ApplicationID string               `json:"applicationId" yaml:"application_id"`
	CompileSDK    int                  `json:"compileSdk" yaml:"compile_sdk"`
	MinSDK        int                  `json:"minSdk" yaml:"min_sdk"`
	TargetSDK     int                  `json:"targetSdk" yaml:"target_sdk"`
	NDKVersion    string               `json:"ndkVersion,omitempty" yaml:"ndk_version"`
	VersionCode   int                  `json:"versionCode" yaml:"version_code"`
	VersionName   string               `json:"versionName" yaml:"version_name"`
	JavaVersion   string               `json:"javaVersion" yaml:"java_version"`
	BuildTypes    map[string]BuildType `json:"buildTypes" yaml:"build_types"`
}

// Default returns the settings of the app target: release is minified,
// resource-shrunk and signed with the release config; debug is signed
// explicitly with the debug config.
func Default() Android {
	return Android{
		Namespace:     "uk.co.eatyourpeas.endocrinologist",
		ApplicationID: "uk.co.eatyourpeas.endocrinologist",
		CompileSDK:    35,
		MinSDK:        21,
		TargetSDK:     35,
		VersionCode:   1,
		VersionName:   "1.0.0",
		JavaVersion:   "11",
		BuildTypes: map[string]BuildType{
			signing.Release.String(): {
				Name:            signing.Release.String(),
				MinifyEnabled:   true,
				ShrinkResources: true,
				ProguardFiles:   []string{DefaultProguardFile, ProjectProguardFile},
				SigningConfig:   signing.Release.String(),
			},
			signing.Debug.String(): {
				Name:          signing.Debug.String(),
				SigningConfig: signing.Debug.String(),
			},
		},
	}
}

// Validate checks the settings for combinations the packaging plugin rejects.
func (a Android) Validate() error {
	var errs []error
	if a.ApplicationID == "" {
		errs = append(errs, errors.New("applicationId must be set"))
	}
	if a.MinSDK <= 0 || a.TargetSDK <= 0 || a.CompileSDK <= 0 {
		errs = append(errs, errors.New("sdk levels must be positive"))
	}
	if a.MinSDK > a.TargetSDK {
		errs = append(errs, fmt.Errorf("minSdk %d exceeds targetSdk %d", a.MinSDK, a.TargetSDK))
	}
	if a.TargetSDK > a.CompileSDK {
		errs = append(errs, fmt.Errorf("targetSdk %d exceeds compileSdk %d", a.TargetSDK, a.CompileSDK))
	}

	// debug and release are always planned against their own signing config.
	for _, v := range signing.Variants() {
		bt, ok := a.BuildTypes[v.String()]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownBuildType, v))
		case bt.SigningConfig != v.String():
			errs = append(errs, fmt.Errorf("%s build type must use the %s signing config, got %q", v, v, bt.SigningConfig))
		}
	}

	known := make(map[string]struct{}, len(signing.Variants()))
	for _, v := range signing.Variants() {
		known[v.String()] = struct{}{}
	}
	for _, name := range a.buildTypeNames() {
		bt := a.BuildTypes[name]
		if bt.ShrinkResources && !bt.MinifyEnabled {
			errs = append(errs, fmt.Errorf("build type %s: %w", name, ErrShrinkWithoutMinify))
		}
		if _, ok := known[bt.SigningConfig]; !ok {
			errs = append(errs, fmt.Errorf("build type %s: unknown signing config %q", name, bt.SigningConfig))
		}
	}

	return errors.Join(errs...)
}

func (a Android) buildTypeNames() []string {
	names := make([]string, 0, len(a.BuildTypes))
	for name := range a.BuildTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Plan is the complete configuration for one variant.
type Plan struct {
	Variant       signing.Variant `json:"variant" yaml:"variant"`
	Namespace     string          `json:"namespace" yaml:"namespace"`
	ApplicationID string          `json:"applicationId" yaml:"application_id"`
	CompileSDK    int             `json:"compileSdk" yaml:"compile_sdk"`
	MinSDK        int             `json:"minSdk" yaml:"min_sdk"`
	TargetSDK     int             `json:"targetSdk" yaml:"target_sdk"`
	NDKVersion    string          `json:"ndkVersion,omitempty" yaml:"ndk_version,omitempty"`
	VersionCode   int             `json:"versionCode" yaml:"version_code"`
	VersionName   string          `json:"versionName" yaml:"version_name"`
	JavaVersion   string          `json:"javaVersion" yaml:"java_version"`
	BuildType     BuildType       `json:"buildType" yaml:"build_type"`
	Signing       signing.Config  `json:"signing" yaml:"signing"`
}

// Plan combines the settings for variant with its signing configuration.
// The signing config name must match the one the build type references.
func (a Android) Plan(variant signing.Variant, sc signing.Config) (Plan, error) {
	bt, ok := a.BuildTypes[variant.String()]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s", ErrUnknownBuildType, variant)
	}
	if bt.SigningConfig != sc.Name {
		return Plan{}, fmt.Errorf("build type %s expects signing config %q, got %q", bt.Name, bt.SigningConfig, sc.Name)
	}
	if !sc.Complete() {
		return Plan{}, fmt.Errorf("signing config %q is incomplete", sc.Name)
	}

	return Plan{
		Variant:       variant,
		Namespace:     a.Namespace,
		ApplicationID: a.ApplicationID,
		CompileSDK:    a.CompileSDK,
		MinSDK:        a.MinSDK,
		TargetSDK:     a.TargetSDK,
		NDKVersion:    a.NDKVersion,
		VersionCode:   a.VersionCode,
		VersionName:   a.VersionName,
		JavaVersion:   a.JavaVersion,
		BuildType:     bt,
		Signing:       sc,
	}, nil
}
