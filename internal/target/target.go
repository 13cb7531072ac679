// Package target opens the channel a CLI invocation writes frames to.
//
// Targets are strings of the form scheme:address:
//
//	stdout                  the process's standard output
//	fd:3                    an inherited file descriptor
//	fifo:/tmp/lsp.fifo      a named pipe (a bare path means the same)
//	unix:/run/lsp.sock      a unix stream socket
//	tcp:127.0.0.1:9257      a TCP connection
//	ws://host/path          a WebSocket; each write is one binary message
package target

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/lspwire/pkg/channel"
)

// Schemes understood by Parse.
const (
	SchemeStdout = "stdout"
	SchemeFD     = "fd"
	SchemeFIFO   = "fifo"
	SchemeUnix   = "unix"
	SchemeTCP    = "tcp"
	SchemeWS     = "ws"
	SchemeWSS    = "wss"
)

// ErrUnknownScheme is returned for targets that name no supported scheme.
var ErrUnknownScheme = errors.New("target: unknown scheme")

// ErrNoDeadline is returned by SetWriteDeadline when the endpoint cannot
// time out writes.
var ErrNoDeadline = errors.New("target: write deadline not supported")

// Endpoint is an opened target. The channel belongs to the endpoint, and
// the endpoint to the caller: frames are written to Channel, and Close is
// called once sending is over.
type Endpoint struct {
	Name    string
	Channel channel.Channel

	closer   io.Closer
	deadline func(time.Time) error
}

// SetWriteDeadline bounds how long writes may block.
func (e *Endpoint) SetWriteDeadline(t time.Time) error {
	if e.deadline == nil {
		return ErrNoDeadline
	}
	return e.deadline(t)
}

// Close releases the endpoint. Closing stdout is a no-op.
func (e *Endpoint) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Parse splits a target string into scheme and address.
func Parse(spec string) (scheme, addr string, err error) {
	switch {
	case spec == "":
		return "", "", fmt.Errorf("target: empty target")
	case spec == SchemeStdout || spec == "-":
		return SchemeStdout, "", nil
	case strings.HasPrefix(spec, "ws://"), strings.HasPrefix(spec, "wss://"):
		scheme, _, _ = strings.Cut(spec, "://")
		return scheme, spec, nil
	case strings.HasPrefix(spec, "/"), strings.HasPrefix(spec, "."):
		return SchemeFIFO, spec, nil
	}

	scheme, addr, ok := strings.Cut(spec, ":")
	if !ok || addr == "" {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownScheme, spec)
	}
	switch scheme {
	case SchemeFD:
		if _, err := strconv.Atoi(addr); err != nil {
			return "", "", fmt.Errorf("target: invalid descriptor %q", addr)
		}
	case SchemeFIFO, SchemeUnix, SchemeTCP:
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return scheme, addr, nil
}

// Open connects to the target described by spec. Opening a FIFO blocks
// until a reader opens the other end; ctx bounds network dials only.
func Open(ctx context.Context, spec string) (*Endpoint, error) {
	scheme, addr, err := Parse(spec)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case SchemeStdout:
		ch, err := rawChannel(os.Stdout)
		if err != nil {
			return nil, err
		}
		return &Endpoint{
			Name:     SchemeStdout,
			Channel:  ch,
			deadline: os.Stdout.SetWriteDeadline,
		}, nil

	case SchemeFD:
		fd, _ := strconv.Atoi(addr)
		f := os.NewFile(uintptr(fd), spec)
		if f == nil {
			return nil, fmt.Errorf("target: invalid descriptor %d", fd)
		}
		return fileEndpoint(spec, f)

	case SchemeFIFO:
		f, err := os.OpenFile(addr, os.O_WRONLY, 0)
		if err != nil {
			return nil, fmt.Errorf("target: open %s: %w", addr, err)
		}
		return fileEndpoint(spec, f)

	case SchemeUnix, SchemeTCP:
		var d net.Dialer
		conn, err := d.DialContext(ctx, scheme, addr)
		if err != nil {
			return nil, fmt.Errorf("target: dial %s: %w", spec, err)
		}
		return connEndpoint(spec, conn)

	case SchemeWS, SchemeWSS:
		return dialWebSocket(ctx, addr)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

func fileEndpoint(name string, f *os.File) (*Endpoint, error) {
	ch, err := rawChannel(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Endpoint{
		Name:     name,
		Channel:  ch,
		closer:   f,
		deadline: f.SetWriteDeadline,
	}, nil
}

func connEndpoint(name string, conn net.Conn) (*Endpoint, error) {
	ch, err := rawChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Endpoint{
		Name:     name,
		Channel:  ch,
		closer:   conn,
		deadline: conn.SetWriteDeadline,
	}, nil
}
