// Package properties reads the optional key.properties file that carries the
// release keystore credentials. A missing or unreadable file is not an error
// for the caller: Load reports it as a warning and returns the absent value.
package properties
