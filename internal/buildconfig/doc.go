// Package buildconfig describes the declarative Android target settings
// (SDK levels, build types, shrinking) and merges them with a resolved
// signing configuration into the plan consumed by the packaging plugin.
package buildconfig
