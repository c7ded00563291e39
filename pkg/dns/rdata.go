package dns

import (
	"fmt"
	"net"

	"github.com/vadim-su/dnswire/pkg/dns/types"
)

// RData is the type-specific payload of a resource record.
type RData interface {
	// Bytes returns the RDATA wire encoding.
	Bytes() []byte
	// String returns a presentation-format rendering of the payload.
	String() string
}

// AData holds a 4-byte IPv4 address.
type AData struct {
	IP net.IP
}

func (d *AData) Bytes() []byte {
	return d.IP.To4()
}

func (d *AData) String() string {
	return d.IP.String()
}

// AAAAData holds a 16-byte IPv6 address.
type AAAAData struct {
	IP net.IP
}

func (d *AAAAData) Bytes() []byte {
	return d.IP.To16()
}

func (d *AAAAData) String() string {
	return d.IP.String()
}

// CNAMEData holds the canonical name of an alias.
type CNAMEData struct {
	Target DomainName
}

func (d *CNAMEData) Bytes() []byte {
	return d.Target
}

func (d *CNAMEData) String() string {
	return d.Target.String()
}

// NSData holds an authoritative name server's domain name.
type NSData struct {
	NameServer DomainName
}

func (d *NSData) Bytes() []byte {
	return d.NameServer
}

func (d *NSData) String() string {
	return d.NameServer.String()
}

// MXData holds a mail exchange entry: a 16-bit preference followed by the
// exchange's domain name.
type MXData struct {
	Preference uint16
	Exchange   DomainName
}

func (d *MXData) Bytes() []byte {
	data := uint16Bytes(d.Preference)
	return append(data, d.Exchange...)
}

func (d *MXData) String() string {
	return fmt.Sprintf("%d\t%s", d.Preference, d.Exchange)
}

// SOAData holds a zone's start-of-authority payload: two domain names
// followed by five 32-bit values.
type SOAData struct {
	PrimaryNS DomainName
	Mailbox   DomainName
	Serial    uint32
	Refresh   uint32
	Retry     uint32
	Expire    uint32
	Minimum   uint32
}

func (d *SOAData) Bytes() []byte {
	data := make([]byte, 0, len(d.PrimaryNS)+len(d.Mailbox)+20)
	data = append(data, d.PrimaryNS...)
	data = append(data, d.Mailbox...)
	for _, v := range []uint32{d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum} {
		data = append(data, uint32Bytes(v)...)
	}
	return data
}

func (d *SOAData) String() string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%d",
		d.PrimaryNS, d.Mailbox, d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum)
}

// OpaqueData carries the RDATA of an unrecognized record type byte-for-byte,
// so a message containing it still round-trips losslessly.
type OpaqueData struct {
	Raw []byte
}

func (d *OpaqueData) Bytes() []byte {
	return d.Raw
}

func (d *OpaqueData) String() string {
	return fmt.Sprintf("\\# %d %x", len(d.Raw), d.Raw)
}

// readRData decodes the RDATA payload for the given record type. Unknown
// types are consumed as exactly rdLength raw bytes, never skipped, so the
// sections that follow stay aligned.
func readRData(p *PacketBuffer, rtype types.Type, rdLength uint16) (RData, error) {
	switch rtype {
	case types.TYPE_A:
		raw, err := p.ReadUint32()
		if err != nil {
			return nil, err
		}
		return &AData{IP: net.IP(uint32Bytes(raw))}, nil
	case types.TYPE_AAAA:
		raw, err := p.ReadUint128()
		if err != nil {
			return nil, err
		}
		return &AAAAData{IP: net.IP(raw[:])}, nil
	case types.TYPE_CNAME:
		target, err := p.ReadName(p.Pos())
		if err != nil {
			return nil, err
		}
		return &CNAMEData{Target: target}, nil
	case types.TYPE_NS:
		ns, err := p.ReadName(p.Pos())
		if err != nil {
			return nil, err
		}
		return &NSData{NameServer: ns}, nil
	case types.TYPE_MX:
		preference, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		exchange, err := p.ReadName(p.Pos())
		if err != nil {
			return nil, err
		}
		return &MXData{Preference: preference, Exchange: exchange}, nil
	case types.TYPE_SOA:
		return readSOAData(p)
	default:
		view, err := p.Range(p.Pos(), int(rdLength))
		if err != nil {
			return nil, err
		}
		raw := make([]byte, rdLength)
		copy(raw, view)
		if err := p.Seek(p.Pos() + int(rdLength)); err != nil {
			return nil, err
		}
		return &OpaqueData{Raw: raw}, nil
	}
}

func readSOAData(p *PacketBuffer) (*SOAData, error) {
	primary, err := p.ReadName(p.Pos())
	if err != nil {
		return nil, err
	}
	mailbox, err := p.ReadName(p.Pos())
	if err != nil {
		return nil, err
	}
	soa := &SOAData{PrimaryNS: primary, Mailbox: mailbox}
	for _, field := range []*uint32{&soa.Serial, &soa.Refresh, &soa.Retry, &soa.Expire, &soa.Minimum} {
		if *field, err = p.ReadUint32(); err != nil {
			return nil, err
		}
	}
	return soa, nil
}
