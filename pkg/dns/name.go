package dns

import (
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength  = 255 // encoded form, including length bytes and terminator
	maxLabelLength = 63
	maxJumps       = 10

	// pointerMask marks the two high bits that turn a length byte into a
	// compression pointer.
	pointerMask = 0xC0
)

// DomainName holds a domain name in its wire encoding: a concatenation of
// (length byte, label bytes) pairs terminated by a zero byte. Compression
// pointers are a decoding-time transient and never appear in a DomainName.
type DomainName []byte

// ParseName encodes a dotted name into wire form. It rejects names whose
// labels exceed 63 bytes or whose encoded form exceeds 255 bytes before any
// bytes are produced.
func ParseName(s string) (DomainName, error) {
	// Encoded length is one length byte per label plus the label bytes plus
	// the terminator, which for a dotted string works out to len(s)+2.
	if len(s)+2 > maxNameLength {
		return nil, &NameError{Name: s, Cause: ErrNameTooLong}
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return DomainName{0}, nil // the root name is a lone terminator
	}
	labels := strings.Split(s, ".")
	for _, label := range labels {
		if len(label) > maxLabelLength {
			return nil, &NameError{Name: s, Cause: ErrLabelTooLong}
		}
	}
	name := make(DomainName, 0, len(s)+2)
	for _, label := range labels {
		name = append(name, byte(len(label)))
		name = append(name, label...)
	}
	name = append(name, 0)
	return name, nil
}

// Text renders the wire form as a dotted string. It fails when the label
// bytes are not valid UTF-8; the wire-form value itself remains usable.
func (n DomainName) Text() (string, error) {
	var sb strings.Builder
	pos := 0
	for pos < len(n) && n[pos] != 0 {
		length := int(n[pos])
		if pos+1+length > len(n) {
			return "", &OutOfBoundsError{Length: len(n), Index: pos + 1 + length}
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.Write(n[pos+1 : pos+1+length])
		pos += length + 1
	}
	if !utf8.ValidString(sb.String()) {
		return "", ErrInvalidUTF8
	}
	return sb.String(), nil
}

// String implements fmt.Stringer. Names that fail UTF-8 rendering come back
// as a placeholder; use Text to observe the failure.
func (n DomainName) String() string {
	text, err := n.Text()
	if err != nil {
		return "<invalid name>"
	}
	return text
}

// WriteName writes a domain name's wire form at the cursor. margin reserves
// space for the fields the caller writes immediately after the name.
func (p *PacketBuffer) WriteName(name DomainName, margin int) error {
	return p.WriteBytes(name, margin)
}

// ReadName decodes a domain name starting at the given buffer position,
// following compression pointers. At most maxJumps pointer hops are
// followed, so a malicious pointer cycle fails with ErrMaxJumps instead of
// looping. Pointer targets are not required to precede the pointer; the
// permissive behavior is covered by tests.
//
// Cursor accounting: when no pointer was followed, the cursor advances by
// the full decoded length including the terminator. When one or more
// pointers were followed, it advances by the literal bytes consumed before
// the first jump plus the two bytes of that first pointer, since everything
// past the pointer lives elsewhere in the buffer.
func (p *PacketBuffer) ReadName(start int) (DomainName, error) {
	var name DomainName
	pos := start
	jumps := 0
	jumped := false
	literalBytes := 0 // bytes consumed before the first jump

	for {
		if pos >= MaxPacketSize {
			return nil, &OutOfBoundsError{Length: MaxPacketSize, Index: pos}
		}
		b := p.buf[pos]
		if b == 0 {
			break
		}
		if b&pointerMask == pointerMask {
			if jumps >= maxJumps {
				return nil, ErrMaxJumps
			}
			if pos+1 >= MaxPacketSize {
				return nil, &OutOfBoundsError{Length: MaxPacketSize, Index: pos + 1}
			}
			pos = int(b&^pointerMask)<<8 | int(p.buf[pos+1])
			jumped = true
			jumps++
			continue
		}
		length := int(b)
		if length > maxLabelLength {
			return nil, &NameError{Cause: ErrLabelTooLong}
		}
		chunk, err := p.Range(pos, length+1)
		if err != nil {
			return nil, err
		}
		name = append(name, chunk...)
		pos += length + 1
		if !jumped {
			literalBytes += length + 1
		}
	}

	name = append(name, 0)
	if len(name) > maxNameLength {
		return nil, &NameError{Name: name.String(), Cause: ErrNameTooLong}
	}
	if jumped {
		p.pos += literalBytes + 2
	} else {
		p.pos += len(name)
	}
	return name, nil
}
