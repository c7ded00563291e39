package types

import "fmt"

// Class represents a DNS class
type Class uint16

// DNS Class constants
const (
	CLASS_IN  Class = 1   // Internet
	CLASS_CS  Class = 2   // the CSNET class (Obsolete - used only for examples in some obsolete RFCs)
	CLASS_CH  Class = 3   // the CHAOS class
	CLASS_HS  Class = 4   // Hesiod [Dyer 87]
	CLASS_ANY Class = 255 // any class (question-only)
)

// String returns the string representation of a DNS class.
// Unrecognized numeric values render as CLASS<n> so no wire value is lost.
func (c Class) String() string {
	switch c {
	case CLASS_IN:
		return "IN"
	case CLASS_CS:
		return "CS"
	case CLASS_CH:
		return "CH"
	case CLASS_HS:
		return "HS"
	case CLASS_ANY:
		return "ANY"
	default:
		return fmt.Sprintf("CLASS%d", uint16(c))
	}
}
