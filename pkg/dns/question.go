package dns

import (
	"fmt"

	"github.com/vadim-su/dnswire/pkg/dns/types"
)

// Question is a single entry of the question section: a name followed by a
// 16-bit type and a 16-bit class. Type and class values outside the known
// sets are carried through as opaque numerics.
type Question struct {
	Name  DomainName
	Type  types.Type
	Class types.Class
}

// NewQuestion builds a question for a dotted name.
func NewQuestion(name string, qtype types.Type, class types.Class) (*Question, error) {
	dnsName, err := ParseName(name)
	if err != nil {
		return nil, fmt.Errorf("can't create DNS question: %w", err)
	}
	return &Question{Name: dnsName, Type: qtype, Class: class}, nil
}

// WriteTo writes the question at the cursor. The name write reserves four
// trailing bytes so a name that fits never strands a half-written question.
func (q *Question) WriteTo(p *PacketBuffer) error {
	if err := p.WriteName(q.Name, 4); err != nil {
		return err
	}
	if err := p.WriteBytes(uint16Bytes(uint16(q.Type)), 0); err != nil {
		return err
	}
	return p.WriteBytes(uint16Bytes(uint16(q.Class)), 0)
}

// ReadQuestion decodes one question at the cursor, following name
// compression pointers.
func ReadQuestion(p *PacketBuffer) (*Question, error) {
	name, err := p.ReadName(p.Pos())
	if err != nil {
		return nil, fmt.Errorf("can't read DNS question: %w", err)
	}
	qtype, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	class, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	return &Question{
		Name:  name,
		Type:  types.Type(qtype),
		Class: types.Class(class),
	}, nil
}

// String renders the question in dig-like presentation format.
func (q *Question) String() string {
	return fmt.Sprintf("%s\t%s\t%s", q.Name, q.Class, q.Type)
}
