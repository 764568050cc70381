package layout

import (
	"fmt"

	"shaderx/internal/symbols"
)

// LayoutErrorKind enumerates types of layout calculation errors.
type LayoutErrorKind uint8

const (
	// LayoutErrUnsupportedType indicates a member type the target cannot lay out.
	LayoutErrUnsupportedType LayoutErrorKind = iota + 1
	// LayoutErrConflict indicates a name already registered with a different member list.
	LayoutErrConflict
	LayoutErrLengthConversion
)

// LayoutError represents an error during layout calculation or registration.
type LayoutError struct {
	Kind   LayoutErrorKind
	Type   symbols.TypeID
	Field  string   // for LayoutErrUnsupportedType
	Name   string   // for LayoutErrConflict
	Decl   DeclKind // for LayoutErrConflict
	Target string
	Err    error // for LayoutErrLengthConversion
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrUnsupportedType:
		return fmt.Sprintf("%s: member '%s' has unsupported type %s", e.Target, e.Field, symbols.PrimitiveName(e.Type))
	case LayoutErrConflict:
		if e.Decl == DeclConstantBuffer {
			return fmt.Sprintf("CBuffer with name '%s' already declared with a different layout", e.Name)
		}
		return fmt.Sprintf("Vertex format with name '%s' already declared with a different layout", e.Name)
	case LayoutErrLengthConversion:
		if e.Err != nil {
			return fmt.Sprintf("array length conversion error (member '%s'): %v", e.Field, e.Err)
		}
		return fmt.Sprintf("array length conversion error (member '%s')", e.Field)
	default:
		return fmt.Sprintf("layout error kind=%d type#%d", e.Kind, e.Type)
	}
}
