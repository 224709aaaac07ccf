// Package config loads the tool configuration from an optional YAML file and
// CLI flags with precedence: CLI flags > YAML config > Defaults. It exposes
// strongly typed settings, including the Android target description, to the
// rest of the application. The signing secrets themselves are never read from
// here; they only come from key.properties.
package config
