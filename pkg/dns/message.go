package dns

import (
	"fmt"
	"strings"

	"github.com/vadim-su/dnswire/pkg/dns/types"
)

// TestDomain is the reserved test domain used for default question
// construction. The "example" domains are reserved for documentation and
// testing per RFC 2606.
const TestDomain = "example.com"

// Message is a full DNS message: header plus the four ordered sections.
// A Message is built in memory for outbound queries or produced by decoding
// a received payload; it holds no state between calls.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// NewQuery builds a standard recursion-desired query for the given names,
// one question per name, type A, class IN. With no names it queries the
// reserved test domain.
func NewQuery(id uint16, names ...string) (*Message, error) {
	if len(names) == 0 {
		names = []string{TestDomain}
	}
	questions := make([]Question, 0, len(names))
	for _, name := range names {
		question, err := NewQuestion(name, types.TYPE_A, types.CLASS_IN)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	return &Message{
		Header: Header{
			ID:               id,
			Opcode:           types.OPCODE_QUERY,
			RecursionDesired: true,
			QuestionCount:    uint16(len(names)),
		},
		Questions: questions,
	}, nil
}

// checkCounts verifies the caller contract that every header count equals
// the length of its section. Violations are rejected eagerly with
// ErrCountMismatch before any bytes are written.
func (m *Message) checkCounts() error {
	sections := []struct {
		name  string
		count uint16
		have  int
	}{
		{"question", m.Header.QuestionCount, len(m.Questions)},
		{"answer", m.Header.AnswerCount, len(m.Answers)},
		{"authority", m.Header.AuthorityCount, len(m.Authorities)},
		{"additional", m.Header.AdditionalCount, len(m.Additionals)},
	}
	for _, s := range sections {
		if int(s.count) != s.have {
			return fmt.Errorf("%s section has %d entries, header declares %d: %w",
				s.name, s.have, s.count, ErrCountMismatch)
		}
	}
	return nil
}

// WriteTo serializes the message into the buffer: header first, then the
// questions and the three record sections in fixed order.
func (m *Message) WriteTo(p *PacketBuffer) error {
	if err := m.checkCounts(); err != nil {
		return err
	}
	if err := m.Header.WriteTo(p); err != nil {
		return err
	}
	for i := range m.Questions {
		if err := m.Questions[i].WriteTo(p); err != nil {
			return err
		}
	}
	for _, section := range [][]Record{m.Answers, m.Authorities, m.Additionals} {
		for i := range section {
			if err := section[i].WriteTo(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Encode serializes the message into a fresh buffer and returns the wire
// bytes ready for a UDP send.
func (m *Message) Encode() ([]byte, error) {
	p := NewPacketBuffer()
	if err := m.WriteTo(p); err != nil {
		return nil, err
	}
	encoded := make([]byte, p.Pos())
	copy(encoded, p.Bytes())
	return encoded, nil
}

// ReadMessage deserializes a full message from the buffer, reading exactly
// as many questions and records as the header's counts declare. Counts that
// exceed what the payload contains surface as out-of-bounds errors from the
// underlying reads.
func ReadMessage(p *PacketBuffer) (*Message, error) {
	header, err := ReadHeader(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read DNS header: %w", err)
	}
	m := &Message{Header: *header}
	for range header.QuestionCount {
		question, err := ReadQuestion(p)
		if err != nil {
			return nil, err
		}
		m.Questions = append(m.Questions, *question)
	}
	sections := []struct {
		count  uint16
		target *[]Record
	}{
		{header.AnswerCount, &m.Answers},
		{header.AuthorityCount, &m.Authorities},
		{header.AdditionalCount, &m.Additionals},
	}
	for _, s := range sections {
		for range s.count {
			record, err := ReadRecord(p)
			if err != nil {
				return nil, err
			}
			*s.target = append(*s.target, *record)
		}
	}
	return m, nil
}

// DecodeMessage decodes a received payload of up to 512 bytes.
func DecodeMessage(data []byte) (*Message, error) {
	p, err := PacketBufferFrom(data)
	if err != nil {
		return nil, err
	}
	return ReadMessage(p)
}

// String renders the whole message in a dig-like format.
func (m *Message) String() string {
	var sb strings.Builder
	sb.WriteString("HEADER:\n")
	sb.WriteString(m.Header.String())
	sb.WriteString("\n\nQUESTION SECTION:\n")
	for i := range m.Questions {
		sb.WriteString(m.Questions[i].String())
		sb.WriteByte('\n')
	}
	sections := []struct {
		name    string
		records []Record
	}{
		{"ANSWER", m.Answers},
		{"AUTHORITY", m.Authorities},
		{"ADDITIONAL", m.Additionals},
	}
	for _, s := range sections {
		if len(s.records) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s SECTION:\n", s.name)
		for i := range s.records {
			sb.WriteString(s.records[i].String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
