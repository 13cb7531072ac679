// Package frame builds Content-Length framed messages.
//
// A frame is the header text, the decimal payload length, a blank line and
// the payload itself:
//
//	Content-Length: <decimal-byte-count>\r\n\r\n<payload-bytes>
//
// The whole frame is assembled before anything is written, so a peer that
// has seen the separator can trust the declared length. No other headers
// are emitted and the payload is never inspected.
package frame
