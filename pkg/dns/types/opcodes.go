package types

import "fmt"

// Opcode represents a DNS operation code
type Opcode uint8

// DNS Opcode constants
const (
	OPCODE_QUERY  Opcode = 0 // Standard query
	OPCODE_IQUERY Opcode = 1 // Inverse query (obsolete)
	OPCODE_STATUS Opcode = 2 // Server status request
	OPCODE_NOTIFY Opcode = 4 // Notify
	OPCODE_UPDATE Opcode = 5 // Dynamic update
)

// String returns the string representation of a DNS opcode.
// Unrecognized numeric values render as OPCODE<n> so no wire value is lost.
func (o Opcode) String() string {
	switch o {
	case OPCODE_QUERY:
		return "QUERY"
	case OPCODE_IQUERY:
		return "IQUERY"
	case OPCODE_STATUS:
		return "STATUS"
	case OPCODE_NOTIFY:
		return "NOTIFY"
	case OPCODE_UPDATE:
		return "UPDATE"
	default:
		return fmt.Sprintf("OPCODE%d", uint8(o))
	}
}
