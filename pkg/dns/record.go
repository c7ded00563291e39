package dns

import (
	"fmt"

	"github.com/vadim-su/dnswire/pkg/dns/types"
)

// Record is a single resource record: name, type, class, TTL, declared
// RDATA length and the RDATA payload itself.
type Record struct {
	Name     DomainName
	Type     types.Type
	Class    types.Class
	TTL      uint32 // seconds the record may be cached
	RDLength uint16 // declared RDATA length as read from the wire
	Data     RData
}

// WriteTo writes the record at the cursor. The name write reserves the ten
// fixed trailing bytes (type, class, TTL, RDLENGTH); the RDATA length is
// computed from the payload's encoding rather than trusted from RDLength.
func (r *Record) WriteTo(p *PacketBuffer) error {
	if err := p.WriteName(r.Name, 10); err != nil {
		return err
	}
	data := r.Data.Bytes()
	fields := make([]byte, 0, 10+len(data))
	fields = append(fields, uint16Bytes(uint16(r.Type))...)
	fields = append(fields, uint16Bytes(uint16(r.Class))...)
	fields = append(fields, uint32Bytes(r.TTL)...)
	fields = append(fields, uint16Bytes(uint16(len(data)))...)
	fields = append(fields, data...)
	return p.WriteBytes(fields, 0)
}

// ReadRecord decodes one resource record at the cursor. The RDATA shape is
// selected by the type field read immediately before it.
func ReadRecord(p *PacketBuffer) (*Record, error) {
	name, err := p.ReadName(p.Pos())
	if err != nil {
		return nil, fmt.Errorf("can't read DNS record: %w", err)
	}
	rtype, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	class, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	ttl, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	rdLength, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	data, err := readRData(p, types.Type(rtype), rdLength)
	if err != nil {
		return nil, fmt.Errorf("can't read RDATA for %s record: %w", types.Type(rtype), err)
	}
	return &Record{
		Name:     name,
		Type:     types.Type(rtype),
		Class:    types.Class(class),
		TTL:      ttl,
		RDLength: rdLength,
		Data:     data,
	}, nil
}

// String renders the record in dig-like presentation format.
func (r *Record) String() string {
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%s", r.Name, r.Class, r.Type, r.TTL, r.Data)
}
