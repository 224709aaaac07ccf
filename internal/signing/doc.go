// Package signing turns the loaded key.properties mapping into the signing
// configuration for a build variant. Release builds fail with an
// *IncompleteError unless all four credentials are present; debug builds use
// the local debug keystore and never consult the file.
package signing
