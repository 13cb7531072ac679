package channel

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// Channel is a writable byte-stream endpoint with raw write semantics.
//
// Write may return n < len(p) with a nil error when the channel's buffer is
// full. It may return an error matching syscall.EINTR (or ErrInterrupted)
// when a signal cut the call short; n reports any bytes accepted before the
// interruption.
type Channel interface {
	Write(p []byte) (n int, err error)
}

// Waiter is implemented by channels that can block until they are writable
// again after reporting EAGAIN.
type Waiter interface {
	WaitWritable() error
}

var (
	// ErrInterrupted may be returned by channels that model interruption
	// without an errno.
	ErrInterrupted = errors.New("channel: interrupted")

	// ErrWouldBlock may be returned by channels that model a full buffer
	// without an errno.
	ErrWouldBlock = errors.New("channel: would block")

	// ErrInvalidWrite is reported when a channel claims to have written a
	// negative count or more bytes than it was given.
	ErrInvalidWrite = errors.New("channel: invalid write count")
)

// WriteError reports a fatal channel failure.
type WriteError struct {
	// Written is the number of bytes the channel accepted before failing.
	Written int
	// Total is the number of bytes WriteAll was asked to deliver.
	Total int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("channel: write failed after %d of %d bytes: %v", e.Written, e.Total, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

type outcome int

const (
	fatal outcome = iota
	interrupted
	wouldBlock
	partial
)

func classify(err error) outcome {
	switch {
	case errors.Is(err, syscall.EINTR), errors.Is(err, ErrInterrupted):
		return interrupted
	case errors.Is(err, syscall.EAGAIN), errors.Is(err, ErrWouldBlock):
		return wouldBlock
	case errors.Is(err, io.ErrShortWrite):
		return partial
	default:
		return fatal
	}
}
