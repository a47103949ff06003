// Package doctree is the document tree handed to the Org renderer.
//
// The node set is closed: Node carries an unexported method, so only the
// kinds declared here exist, and the renderer's type switch covers all of
// them. Parsers outside this package (see internal/markdown) build trees
// through the exported constructors.
//
// Containers own their children in order. RawText, LineBreak, CodeBlock,
// HTMLBlock, HTMLSpan, TaskCheckBox and the three shortcode kinds (Figure,
// CrossReference, RelativeCrossReference) are leaves.
package doctree
