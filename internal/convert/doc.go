// Package convert turns a tree of Hugo Markdown documents into Org files.
//
// A Runner discovers every *.md file below the source directory, converts
// each one independently on a bounded worker pool, and writes the result to
// the mirrored location under the destination directory. One failed document
// never aborts the batch; its error is reported in the Summary.
package convert
