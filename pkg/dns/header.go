package dns

import (
	"fmt"
	"strings"

	"github.com/vadim-su/dnswire/pkg/dns/types"
)

// HeaderLength is the fixed size of the DNS message header.
const HeaderLength = 12

// Header is the fixed 12-byte DNS message header. The seven flag fields
// occupy a single big-endian 16-bit word on the wire:
//
//	response(1) | opcode(4) | aa(1) | tc(1) | rd(1) | ra(1) | z(3) | rcode(4)
type Header struct {
	ID uint16

	Response           bool         // set on responses, unset on queries
	Opcode             types.Opcode // 4 bits, kind of query
	Authoritative      bool         // responding server is a domain authority
	Truncated          bool         // message content was cut off
	RecursionDesired   bool         // resolver wants recursive service
	RecursionAvailable bool         // server offers recursive service
	Z                  uint8        // 3 bits, reserved
	RCode              types.RCode  // 4 bits, response status

	QuestionCount   uint16
	AnswerCount     uint16
	AuthorityCount  uint16
	AdditionalCount uint16
}

// flags packs the seven flag fields into the header's flags word.
func (h *Header) flags() uint16 {
	return boolBit(h.Response)<<15 |
		uint16(h.Opcode&0xF)<<11 |
		boolBit(h.Authoritative)<<10 |
		boolBit(h.Truncated)<<9 |
		boolBit(h.RecursionDesired)<<8 |
		boolBit(h.RecursionAvailable)<<7 |
		uint16(h.Z&0x7)<<4 |
		uint16(h.RCode&0xF)
}

// WriteTo writes the header into the first 12 bytes of the buffer. The
// header must lead the message, so writing fails if the cursor is not
// within bytes 0-11.
func (h *Header) WriteTo(p *PacketBuffer) error {
	if p.pos >= HeaderLength {
		return &OutOfBoundsError{Length: HeaderLength, Index: p.pos}
	}
	header := make([]byte, 0, HeaderLength)
	header = append(header, uint16Bytes(h.ID)...)
	header = append(header, uint16Bytes(h.flags())...)
	header = append(header, uint16Bytes(h.QuestionCount)...)
	header = append(header, uint16Bytes(h.AnswerCount)...)
	header = append(header, uint16Bytes(h.AuthorityCount)...)
	header = append(header, uint16Bytes(h.AdditionalCount)...)
	return p.WriteBytes(header, 0)
}

// ReadHeader consumes exactly 12 bytes at the cursor. Unknown opcode and
// rcode values are preserved as numerics rather than rejected.
func ReadHeader(p *PacketBuffer) (*Header, error) {
	id, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	flags, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	h := &Header{
		ID:                 id,
		Response:           flags&0x8000 != 0,
		Opcode:             types.Opcode(flags >> 11 & 0xF),
		Authoritative:      flags&0x0400 != 0,
		Truncated:          flags&0x0200 != 0,
		RecursionDesired:   flags&0x0100 != 0,
		RecursionAvailable: flags&0x0080 != 0,
		Z:                  uint8(flags >> 4 & 0x7),
		RCode:              types.RCode(flags & 0xF),
	}
	if h.QuestionCount, err = p.ReadUint16(); err != nil {
		return nil, err
	}
	if h.AnswerCount, err = p.ReadUint16(); err != nil {
		return nil, err
	}
	if h.AuthorityCount, err = p.ReadUint16(); err != nil {
		return nil, err
	}
	if h.AdditionalCount, err = p.ReadUint16(); err != nil {
		return nil, err
	}
	return h, nil
}

// String renders the header in a dig-like summary format.
func (h *Header) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "opcode: %s, status: %s, id: %d\n", h.Opcode, h.RCode, h.ID)
	sb.WriteString("flags:")
	if h.Response {
		sb.WriteString(" qr")
	}
	if h.Authoritative {
		sb.WriteString(" aa")
	}
	if h.Truncated {
		sb.WriteString(" tc")
	}
	if h.RecursionDesired {
		sb.WriteString(" rd")
	}
	if h.RecursionAvailable {
		sb.WriteString(" ra")
	}
	fmt.Fprintf(&sb, "; QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d",
		h.QuestionCount, h.AnswerCount, h.AuthorityCount, h.AdditionalCount)
	return sb.String()
}
