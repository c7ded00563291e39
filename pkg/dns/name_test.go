package dns

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

var exampleComWire = DomainName{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DomainName
		wantErr  error
	}{
		{
			name:     "two labels",
			input:    "example.com",
			expected: exampleComWire,
		},
		{
			name:     "single label",
			input:    "localhost",
			expected: DomainName{9, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't', 0},
		},
		{
			name:     "root name",
			input:    "",
			expected: DomainName{0},
		},
		{
			name:     "trailing dot is accepted",
			input:    "example.com.",
			expected: exampleComWire,
		},
		{
			name:    "label longer than 63 bytes",
			input:   strings.Repeat("a", 64) + ".com",
			wantErr: ErrLabelTooLong,
		},
		{
			name:    "encoded form longer than 255 bytes",
			input:   strings.Repeat("a", 63) + "." + strings.Repeat("b", 63) + "." + strings.Repeat("c", 63) + "." + strings.Repeat("d", 63),
			wantErr: ErrNameTooLong,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseName(test.input)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("got error %v, want %v", err, test.wantErr)
				}
				var nameErr *NameError
				if !errors.As(err, &nameErr) {
					t.Fatalf("expected NameError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("got %v, want %v", got, test.expected)
			}
		})
	}
}

func TestParseNameNoPartialState(t *testing.T) {
	// Limit checks happen before any bytes are produced, so a rejected name
	// must not disturb the buffer it was about to be written into.
	p := NewPacketBuffer()
	name, err := ParseName(strings.Repeat("x", 70))
	if err == nil {
		t.Fatal("expected error")
	}
	if name != nil {
		t.Errorf("got partial name %v", name)
	}
	if p.Pos() != 0 {
		t.Errorf("cursor = %d", p.Pos())
	}
}

func TestDomainNameText(t *testing.T) {
	tests := []struct {
		name     string
		input    DomainName
		expected string
		wantErr  error
	}{
		{
			name:     "two labels",
			input:    exampleComWire,
			expected: "example.com",
		},
		{
			name:     "root name",
			input:    DomainName{0},
			expected: "",
		},
		{
			name:    "invalid utf8 label bytes",
			input:   DomainName{2, 0xFF, 0xFE, 0},
			wantErr: ErrInvalidUTF8,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.input.Text()

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("got error %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.expected {
				t.Errorf("got %q, want %q", got, test.expected)
			}
		})
	}
}

func TestDomainNameStringFallback(t *testing.T) {
	n := DomainName{2, 0xFF, 0xFE, 0}
	if got := n.String(); got != "<invalid name>" {
		t.Errorf("got %q", got)
	}
}

func TestNameRoundTrip(t *testing.T) {
	names := []string{
		"example.com",
		"www.example.com",
		"a.b.c.d.e.f",
		"localhost",
	}

	for _, input := range names {
		t.Run(input, func(t *testing.T) {
			name, err := ParseName(input)
			if err != nil {
				t.Fatal(err)
			}

			p := NewPacketBuffer()
			if err := p.WriteName(name, 0); err != nil {
				t.Fatal(err)
			}
			if err := p.Seek(0); err != nil {
				t.Fatal(err)
			}

			decoded, err := p.ReadName(0)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(decoded, name) {
				t.Errorf("got %v, want %v", decoded, name)
			}
			if p.Pos() != len(name) {
				t.Errorf("cursor = %d, want %d", p.Pos(), len(name))
			}
			if decoded.String() != input {
				t.Errorf("rendered %q, want %q", decoded, input)
			}
		})
	}
}

func TestReadNameWithPointer(t *testing.T) {
	// Message layout: example.com at offset 12, then www + pointer back to
	// offset 12 at offset 25.
	p := NewPacketBuffer()
	if err := p.Seek(12); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteName(exampleComWire, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteBytes([]byte{3, 'w', 'w', 'w', 0xC0, 12}, 0); err != nil {
		t.Fatal(err)
	}

	if err := p.Seek(25); err != nil {
		t.Fatal(err)
	}
	decoded, err := p.ReadName(25)
	if err != nil {
		t.Fatal(err)
	}

	expected := append(DomainName{3, 'w', 'w', 'w'}, exampleComWire...)
	if !reflect.DeepEqual(decoded, expected) {
		t.Errorf("got %v, want %v", decoded, expected)
	}
	if decoded.String() != "www.example.com" {
		t.Errorf("rendered %q", decoded)
	}
}

func TestReadNamePointerCursorAccounting(t *testing.T) {
	// After a jump the cursor advances only by the literal bytes before the
	// first pointer plus the two pointer bytes, regardless of how long the
	// expanded name is.
	p := NewPacketBuffer()
	if err := p.Seek(12); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteName(exampleComWire, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteBytes([]byte{3, 'w', 'w', 'w', 0xC0, 12}, 0); err != nil {
		t.Fatal(err)
	}

	if err := p.Seek(25); err != nil {
		t.Fatal(err)
	}
	if _, err := p.ReadName(25); err != nil {
		t.Fatal(err)
	}
	if p.Pos() != 25+4+2 {
		t.Errorf("cursor = %d, want %d", p.Pos(), 25+4+2)
	}

	// A name that is nothing but a pointer advances the cursor by exactly 2.
	if err := p.Seek(31); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteBytes([]byte{0xC0, 12}, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.Seek(31); err != nil {
		t.Fatal(err)
	}
	if _, err := p.ReadName(31); err != nil {
		t.Fatal(err)
	}
	if p.Pos() != 33 {
		t.Errorf("cursor = %d, want 33", p.Pos())
	}
}

func TestReadNameForwardPointer(t *testing.T) {
	// Pointer targets are not required to precede the pointer itself: the
	// decoder stays permissive instead of enforcing backward-only pointers,
	// bounded only by the jump cap.
	p := NewPacketBuffer()
	if err := p.WriteBytes([]byte{0xC0, 12}, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.Seek(12); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteName(exampleComWire, 0); err != nil {
		t.Fatal(err)
	}

	if err := p.Seek(0); err != nil {
		t.Fatal(err)
	}
	decoded, err := p.ReadName(0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, exampleComWire) {
		t.Errorf("got %v", decoded)
	}
}

// pointerChain writes n pointers, each targeting the next, with a real name
// at the end, and returns the buffer.
func pointerChain(t *testing.T, n int) *PacketBuffer {
	t.Helper()
	p := NewPacketBuffer()
	for i := range n {
		target := 2 * (i + 1)
		if err := p.WriteBytes([]byte{0xC0 | byte(target>>8), byte(target)}, 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.WriteBytes([]byte{1, 'a', 0}, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.Seek(0); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestReadNameJumpBound(t *testing.T) {
	t.Run("exactly ten jumps succeeds", func(t *testing.T) {
		p := pointerChain(t, 10)
		decoded, err := p.ReadName(0)
		if err != nil {
			t.Fatal(err)
		}
		if decoded.String() != "a" {
			t.Errorf("decoded %q", decoded)
		}
	})

	t.Run("eleven jumps fails", func(t *testing.T) {
		p := pointerChain(t, 11)
		if _, err := p.ReadName(0); !errors.Is(err, ErrMaxJumps) {
			t.Fatalf("got %v, want ErrMaxJumps", err)
		}
	})

	t.Run("pointer cycle fails instead of looping", func(t *testing.T) {
		p := NewPacketBuffer()
		if err := p.WriteBytes([]byte{0xC0, 0}, 0); err != nil {
			t.Fatal(err)
		}
		if err := p.Seek(0); err != nil {
			t.Fatal(err)
		}
		if _, err := p.ReadName(0); !errors.Is(err, ErrMaxJumps) {
			t.Fatalf("got %v, want ErrMaxJumps", err)
		}
	})
}

func TestReadNameMalformed(t *testing.T) {
	t.Run("label length above 63", func(t *testing.T) {
		// 0x70 has the top bits 01, so it is neither a pointer nor a valid
		// label length.
		p := NewPacketBuffer()
		if err := p.WriteBytes([]byte{0x70, 'a', 0}, 0); err != nil {
			t.Fatal(err)
		}
		if err := p.Seek(0); err != nil {
			t.Fatal(err)
		}
		if _, err := p.ReadName(0); !errors.Is(err, ErrLabelTooLong) {
			t.Fatalf("got %v, want ErrLabelTooLong", err)
		}
	})

	t.Run("assembled name above 255 bytes", func(t *testing.T) {
		p := NewPacketBuffer()
		label := append([]byte{63}, make([]byte, 63)...)
		for range 4 {
			if err := p.WriteBytes(label, 0); err != nil {
				t.Fatal(err)
			}
		}
		if err := p.WriteBytes([]byte{0}, 0); err != nil {
			t.Fatal(err)
		}
		if err := p.Seek(0); err != nil {
			t.Fatal(err)
		}
		if _, err := p.ReadName(0); !errors.Is(err, ErrNameTooLong) {
			t.Fatalf("got %v, want ErrNameTooLong", err)
		}
	})

	t.Run("name running past the packet end", func(t *testing.T) {
		p := NewPacketBuffer()
		if err := p.Seek(509); err != nil {
			t.Fatal(err)
		}
		p.buf[509] = 63 // label claims 63 bytes where only 2 remain
		var oob *OutOfBoundsError
		if _, err := p.ReadName(509); !errors.As(err, &oob) {
			t.Fatalf("got %v, want OutOfBoundsError", err)
		}
	})
}
