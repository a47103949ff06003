// Package state records the outcome of previous conversions.
//
// The store keeps one record per source document: its content fingerprint,
// the output path written for it, the conversion run that wrote it, and when.
// Incremental runs compare fingerprints against these records to skip
// documents whose inputs have not changed.
package state
