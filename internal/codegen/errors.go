package codegen

import (
	"errors"
	"fmt"
	"strings"

	"tacgen/internal/ast"
)

// InternalError reports an AST the generator cannot lower: an operator
// outside its enumeration, an operand whose type was never resolved, or a
// missing child node. It always means the AST builder is at fault.
type InternalError struct {
	Message string
	Context string
}

func (e *InternalError) Error() string {
	if e.Context == "" {
		return "internal compiler error: " + e.Message
	}
	return fmt.Sprintf("internal compiler error: %s (at `%s`)", e.Message, e.Context)
}

// IsInternal reports whether err is or wraps an *InternalError.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

func internalf(node ast.Node, format string, args ...any) error {
	return &InternalError{Message: fmt.Sprintf(format, args...), Context: nodeContext(node)}
}

// nodeContext renders node for an error message. Missing children print
// as <nil>.
func nodeContext(node ast.Node) string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.String())
}
