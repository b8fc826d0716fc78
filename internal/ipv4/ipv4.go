// Package ipv4 parses dotted-decimal IPv4 literals with stricter rules than
// netip.ParseAddr and carries the bit math shared by the calculator and the
// client-side renderer.
package ipv4

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

var (
	ErrEmpty        = errors.New("enter an address")
	ErrCharset      = errors.New("address may contain only digits and dots")
	ErrSegmentCount = errors.New("IPv4 address must have exactly 4 octets")
)

// OctetError reports the first bad octet, 1-based.
type OctetError struct {
	Index  int
	Reason string
}

func (e *OctetError) Error() string {
	return fmt.Sprintf("octet %d %s", e.Index, e.Reason)
}

// Octets holds the four components of an address in order.
type Octets [4]int

// Validate checks a raw dotted-decimal string. Rules apply in order and the
// first failure wins: trimmed input must be non-empty, contain only digits and
// dots, split into exactly four segments, and every segment must be a plain
// integer in [0,255] without leading zeros. Same input, same output; no side
// effects.
func Validate(raw string) (Octets, error) {
	var octets Octets

	s := strings.TrimSpace(raw)
	if s == "" {
		return octets, ErrEmpty
	}

	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return octets, ErrCharset
		}
	}

	segments := strings.Split(s, ".")
	if len(segments) != 4 {
		return octets, ErrSegmentCount
	}

	for i, seg := range segments {
		switch {
		case seg == "":
			return octets, &OctetError{Index: i + 1, Reason: "is empty"}
		case len(seg) > 1 && seg[0] == '0':
			return octets, &OctetError{Index: i + 1, Reason: "has a leading zero"}
		case len(seg) > 3:
			return octets, &OctetError{Index: i + 1, Reason: "must be between 0 and 255"}
		}

		v := 0
		for _, r := range seg {
			v = v*10 + int(r-'0')
		}
		if v > 255 {
			return octets, &OctetError{Index: i + 1, Reason: "must be between 0 and 255"}
		}
		octets[i] = v
	}

	return octets, nil
}

// Addr converts the octets to a netip.Addr.
func (o Octets) Addr() netip.Addr {
	return netip.AddrFrom4([4]byte{byte(o[0]), byte(o[1]), byte(o[2]), byte(o[3])})
}

func (o Octets) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", o[0], o[1], o[2], o[3])
}

// Binary renders each octet as an 8-bit base-2 string.
func (o Octets) Binary() [4]string {
	var out [4]string
	for i, v := range o {
		out[i] = fmt.Sprintf("%08b", v)
	}
	return out
}

// FromAddr extracts the octets of a 4-byte address.
func FromAddr(addr netip.Addr) Octets {
	b := addr.As4()
	return Octets{int(b[0]), int(b[1]), int(b[2]), int(b[3])}
}

// Mask returns the subnet mask for a prefix length in [0,32].
func Mask(bits int) netip.Addr {
	var m uint32
	if bits > 0 {
		m = 0xFFFFFFFF << (32 - bits)
	}
	return addrFromUint32(m)
}

// Wildcard returns the inverted mask for a prefix length in [0,32].
func Wildcard(bits int) netip.Addr {
	return addrFromUint32(^maskUint32(bits))
}

func maskUint32(bits int) uint32 {
	if bits == 0 {
		return 0
	}
	return 0xFFFFFFFF << (32 - bits)
}

func addrFromUint32(v uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
