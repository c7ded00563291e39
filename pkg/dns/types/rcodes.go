package types

import "fmt"

// RCode represents a DNS response code
type RCode uint8

// DNS Response Code constants
const (
	RCODE_NO_ERROR        RCode = 0 // No error
	RCODE_FORMAT_ERROR    RCode = 1 // Format error
	RCODE_SERVER_FAILURE  RCode = 2 // Server failure
	RCODE_NAME_ERROR      RCode = 3 // Name error (domain doesn't exist)
	RCODE_NOT_IMPLEMENTED RCode = 4 // Not implemented
	RCODE_REFUSED         RCode = 5 // Refused
)

// String returns the string representation of a DNS response code.
// Unrecognized numeric values render as RCODE<n> so no wire value is lost.
func (r RCode) String() string {
	switch r {
	case RCODE_NO_ERROR:
		return "NOERROR"
	case RCODE_FORMAT_ERROR:
		return "FORMERR"
	case RCODE_SERVER_FAILURE:
		return "SERVFAIL"
	case RCODE_NAME_ERROR:
		return "NXDOMAIN"
	case RCODE_NOT_IMPLEMENTED:
		return "NOTIMP"
	case RCODE_REFUSED:
		return "REFUSED"
	default:
		return fmt.Sprintf("RCODE%d", uint8(r))
	}
}
