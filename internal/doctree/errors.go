package doctree

import (
	"errors"
	"fmt"
)

// ErrUnsupportedNodeKind matches any UnsupportedNodeKindError under errors.Is.
var ErrUnsupportedNodeKind = errors.New("unsupported node kind")

// UnsupportedNodeKindError reports a node kind that has no conversion or
// rendering rule.
type UnsupportedNodeKindError struct {
	Kind string
}

func (e *UnsupportedNodeKindError) Error() string {
	return fmt.Sprintf("unsupported node kind %q", e.Kind)
}

func (e *UnsupportedNodeKindError) Is(target error) bool {
	return target == ErrUnsupportedNodeKind
}
