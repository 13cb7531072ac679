// Package decimal renders integers as ASCII decimal text directly into a
// caller-supplied buffer.
//
// The encoder never allocates. Callers size their buffers with the per-type
// length constants, which hold the widest rendering a type can produce:
//
//	var buf [decimal.Uint64Len]byte
//	n := decimal.Put(buf[:], uint64(len(payload)))
//	header := buf[:n]
//
// Passing a buffer that is too small is a programming error and panics.
package decimal
