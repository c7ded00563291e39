package dns

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxJumps is returned when a compressed name's pointer chain exceeds
	// the jump limit. A cyclic chain would otherwise loop forever, so this is
	// a hard decode failure.
	ErrMaxJumps = errors.New("maximum number of compression pointer jumps exceeded")

	// ErrNameTooLong is the cause of a NameError when the encoded form of a
	// domain name would exceed 255 bytes.
	ErrNameTooLong = errors.New("domain name exceeds 255 bytes")

	// ErrLabelTooLong is the cause of a NameError when a single label exceeds
	// 63 bytes.
	ErrLabelTooLong = errors.New("label exceeds 63 bytes")

	// ErrInvalidCharset is reserved for strict ASCII validation of names.
	ErrInvalidCharset = errors.New("domain name contains invalid characters")

	// ErrInvalidUTF8 is returned when rendering a decoded name as text fails.
	// The wire-form value itself is unaffected.
	ErrInvalidUTF8 = errors.New("domain name is not valid UTF-8")

	// ErrCountMismatch is returned when a message's header counts disagree
	// with its section lengths during encoding.
	ErrCountMismatch = errors.New("header count does not match section length")
)

// OutOfBoundsError reports a buffer access that would cross the packet
// boundary.
type OutOfBoundsError struct {
	Length int // the length of the buffer
	Index  int // the erroneous index
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("attempted to access a buffer of length %d at index %d", e.Length, e.Index)
}

// NameError reports a malformed domain name together with the malformation
// cause, one of ErrNameTooLong, ErrLabelTooLong or ErrInvalidCharset.
type NameError struct {
	Name  string // the offending name, when known
	Cause error
}

func (e *NameError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("malformed domain name: %s", e.Cause)
	}
	return fmt.Sprintf("malformed domain name %q: %s", e.Name, e.Cause)
}

func (e *NameError) Unwrap() error {
	return e.Cause
}
