package frame

import "github.com/bft-labs/lspwire/pkg/decimal"

const (
	// HeaderPrefix starts every frame.
	HeaderPrefix = "Content-Length: "

	// Separator ends the header block.
	Separator = "\r\n\r\n"
)

// HeaderLen returns the length of the header block, separator included, for
// a payload of n bytes.
func HeaderLen(n int) int {
	return len(HeaderPrefix) + decimal.Digits(uint64(n)) + len(Separator)
}

// Size returns the total frame length for a payload of n bytes.
func Size(n int) int {
	return HeaderLen(n) + n
}

// Encode returns a new slice holding the complete frame for payload.
func Encode(payload []byte) []byte {
	return Append(make([]byte, 0, Size(len(payload))), payload)
}

// Append appends the frame for payload to dst and returns the extended
// slice. Only one allocation happens when dst lacks capacity.
func Append(dst, payload []byte) []byte {
	size := Size(len(payload))
	start := len(dst)
	if cap(dst)-start < size {
		grown := make([]byte, start, start+size)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:start+size]

	out := dst[start:]
	i := copy(out, HeaderPrefix)
	i += decimal.Put(out[i:], uint64(len(payload)))
	i += copy(out[i:], Separator)
	copy(out[i:], payload)
	return dst
}
