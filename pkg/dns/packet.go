package dns

// MaxPacketSize is the maximum size of a DNS message carried over UDP
// without EDNS0, per RFC 1035.
const MaxPacketSize = 512

// PacketBuffer is a fixed 512-byte buffer with an explicit read/write
// cursor. Every access is bounds-checked against the packet boundary and
// advances the cursor by exactly the number of bytes consumed. A
// PacketBuffer is owned by a single encode or decode call and is never
// shared between goroutines.
type PacketBuffer struct {
	buf [MaxPacketSize]byte
	pos int
}

// NewPacketBuffer returns an empty PacketBuffer with the cursor at zero.
func NewPacketBuffer() *PacketBuffer {
	return &PacketBuffer{}
}

// PacketBufferFrom returns a PacketBuffer holding a copy of data with the
// cursor at zero, ready for decoding.
func PacketBufferFrom(data []byte) (*PacketBuffer, error) {
	if len(data) > MaxPacketSize {
		return nil, &OutOfBoundsError{Length: MaxPacketSize, Index: len(data)}
	}
	p := &PacketBuffer{}
	copy(p.buf[:], data)
	return p, nil
}

// Pos returns the current cursor position.
func (p *PacketBuffer) Pos() int {
	return p.pos
}

// Seek moves the cursor to an absolute position.
func (p *PacketBuffer) Seek(pos int) error {
	if pos < 0 || pos > MaxPacketSize {
		return &OutOfBoundsError{Length: MaxPacketSize, Index: pos}
	}
	p.pos = pos
	return nil
}

// Bytes returns the written portion of the buffer, from the start up to the
// cursor.
func (p *PacketBuffer) Bytes() []byte {
	return p.buf[:p.pos]
}

// WriteBytes writes b at the cursor and advances the cursor by len(b).
// margin reserves trailing space for fields the caller is about to write
// next; the write succeeds only if cursor + len(b) + margin < 512.
func (p *PacketBuffer) WriteBytes(b []byte, margin int) error {
	if p.pos+len(b)+margin >= MaxPacketSize {
		return &OutOfBoundsError{Length: MaxPacketSize, Index: p.pos + len(b)}
	}
	copy(p.buf[p.pos:], b)
	p.pos += len(b)
	return nil
}

// ReadUint16 reads a big-endian 16-bit value at the cursor.
func (p *PacketBuffer) ReadUint16() (uint16, error) {
	if p.pos+1 >= MaxPacketSize {
		return 0, &OutOfBoundsError{Length: MaxPacketSize, Index: p.pos + 1}
	}
	result := uint16(p.buf[p.pos])<<8 | uint16(p.buf[p.pos+1])
	p.pos += 2
	return result, nil
}

// ReadUint32 reads a big-endian 32-bit value at the cursor.
func (p *PacketBuffer) ReadUint32() (uint32, error) {
	if p.pos+3 >= MaxPacketSize {
		return 0, &OutOfBoundsError{Length: MaxPacketSize, Index: p.pos + 3}
	}
	hi, err := p.ReadUint16()
	if err != nil {
		return 0, err
	}
	lo, err := p.ReadUint16()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// ReadUint64 reads a big-endian 64-bit value at the cursor.
func (p *PacketBuffer) ReadUint64() (uint64, error) {
	if p.pos+7 >= MaxPacketSize {
		return 0, &OutOfBoundsError{Length: MaxPacketSize, Index: p.pos + 7}
	}
	hi, err := p.ReadUint32()
	if err != nil {
		return 0, err
	}
	lo, err := p.ReadUint32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// ReadUint128 reads a big-endian 128-bit value at the cursor, returned as
// 16 bytes in network order. Used for AAAA record data.
func (p *PacketBuffer) ReadUint128() ([16]byte, error) {
	var result [16]byte
	if p.pos+15 >= MaxPacketSize {
		return result, &OutOfBoundsError{Length: MaxPacketSize, Index: p.pos + 15}
	}
	hi, err := p.ReadUint64()
	if err != nil {
		return result, err
	}
	lo, err := p.ReadUint64()
	if err != nil {
		return result, err
	}
	for i := range 8 {
		result[7-i] = byte(hi >> (8 * i))
		result[15-i] = byte(lo >> (8 * i))
	}
	return result, nil
}

// Range returns a view of length bytes starting at start. The cursor does
// not move; callers that consume the bytes combine Range with an explicit
// Seek. The view is valid until the next write.
func (p *PacketBuffer) Range(start, length int) ([]byte, error) {
	if start < 0 || length < 0 || start+length >= MaxPacketSize {
		return nil, &OutOfBoundsError{Length: MaxPacketSize, Index: start + length}
	}
	return p.buf[start : start+length], nil
}

// uint16Bytes converts a 16-bit value to its big-endian byte representation
func uint16Bytes(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v & 0xFF)}
}

// uint32Bytes converts a 32-bit value to its big-endian byte representation
func uint32Bytes(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v & 0xFF)}
}

func boolBit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
