// Package dns implements the DNS message wire format for UDP transport:
// a bounds-checked 512-byte packet buffer, the bit-packed 12-byte header,
// length-prefixed domain names with compression pointer decoding, and the
// question and resource record sections. The codec is fully synchronous;
// a PacketBuffer belongs to a single encode or decode call and every
// malformed-input condition is reported as a typed error, never a panic.
package dns
