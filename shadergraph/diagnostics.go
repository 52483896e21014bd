package shadergraph

import (
	"fmt"
	"strings"

	"github.com/HoloTheDrunk/eray/eraylang"
)

// ErrorKind classifies a semantic diagnostic.
type ErrorKind string

const (
	KindSyntaxError             ErrorKind = "SyntaxError"
	KindUnknownNodeType         ErrorKind = "UnknownNodeType"
	KindImportSignatureMismatch ErrorKind = "ImportSignatureMismatch"
	KindDuplicateNodeName       ErrorKind = "DuplicateNodeName"
	KindUnknownSocket           ErrorKind = "UnknownSocket"
	KindTypeMismatch            ErrorKind = "TypeMismatch"
	KindDuplicateLink           ErrorKind = "DuplicateLink"
	KindUnconnectedInput        ErrorKind = "UnconnectedInput"
	KindCyclicGraph             ErrorKind = "CyclicGraph"
	KindLoadError               ErrorKind = "LoadError"
)

// Diagnostic is a single resolution or validation finding. Subject names the
// offending entity (node instance, field chain, or socket) when one exists.
type Diagnostic struct {
	Kind    ErrorKind
	Message string
	Subject string
	Pos     eraylang.Position
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Kind, d.Message)
	if d.Subject != "" {
		fmt.Fprintf(&b, " (%s)", d.Subject)
	}
	if d.Pos.Line > 0 {
		fmt.Fprintf(&b, " at line %d, col %d", d.Pos.Line, d.Pos.Column)
	}
	return b.String()
}

// BuildError carries every diagnostic gathered by a failed resolution or
// validation pass.
type BuildError struct {
	Diagnostics []Diagnostic
}

func (e *BuildError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return fmt.Sprintf("graph building failed with %d error(s):\n  %s",
		len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// LoadError is returned by a Loader when a custom node cannot be loaded.
type LoadError struct {
	Name  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading node %q: %v", e.Name, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }
