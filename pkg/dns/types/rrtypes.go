package types

import "fmt"

// Type represents a DNS record or query type
type Type uint16

// DNS Type constants
const (
	TYPE_A     Type = 1   // a host address
	TYPE_NS    Type = 2   // an authoritative name server
	TYPE_CNAME Type = 5   // the canonical name for an alias
	TYPE_SOA   Type = 6   // marks the start of a zone of authority
	TYPE_PTR   Type = 12  // a domain name pointer
	TYPE_MX    Type = 15  // mail exchange
	TYPE_TXT   Type = 16  // text strings
	TYPE_AAAA  Type = 28  // IPv6 host address
	TYPE_ANY   Type = 255 // request for all records (question-only)
)

// String returns the string representation of a DNS type.
// Unrecognized numeric values render as TYPE<n> so no wire value is lost.
func (t Type) String() string {
	switch t {
	case TYPE_A:
		return "A"
	case TYPE_NS:
		return "NS"
	case TYPE_CNAME:
		return "CNAME"
	case TYPE_SOA:
		return "SOA"
	case TYPE_PTR:
		return "PTR"
	case TYPE_MX:
		return "MX"
	case TYPE_TXT:
		return "TXT"
	case TYPE_AAAA:
		return "AAAA"
	case TYPE_ANY:
		return "ANY"
	default:
		return fmt.Sprintf("TYPE%d", uint16(t))
	}
}

// TypeFromString converts a textual type name to its numeric value
func TypeFromString(s string) (Type, error) {
	switch s {
	case "A":
		return TYPE_A, nil
	case "NS":
		return TYPE_NS, nil
	case "CNAME":
		return TYPE_CNAME, nil
	case "SOA":
		return TYPE_SOA, nil
	case "PTR":
		return TYPE_PTR, nil
	case "MX":
		return TYPE_MX, nil
	case "TXT":
		return TYPE_TXT, nil
	case "AAAA":
		return TYPE_AAAA, nil
	case "ANY":
		return TYPE_ANY, nil
	default:
		return 0, fmt.Errorf("unknown DNS type: %s", s)
	}
}
