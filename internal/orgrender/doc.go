// Package orgrender renders a document tree as Org mode text.
//
// Rendering is a pure fold over the tree. A Renderer captures one
// document's metadata for the preamble and holds no other state, so a
// single Renderer may be used from several goroutines.
//
// Block separation is significant in Org: a blank line ends a paragraph.
// Headings, paragraphs and source blocks therefore always end with exactly
// two newlines. Quotes, lists and tables add no separator of their own and
// rely on the blocks they contain.
package orgrender
