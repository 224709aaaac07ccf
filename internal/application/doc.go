// Package application wires the properties loader, the signing resolver and
// the Android settings into a single one-shot evaluation, keeping the main
// package focused on CLI parsing and exit codes.
package application
