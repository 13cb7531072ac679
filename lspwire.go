// Package lspwire writes Content-Length framed messages to an editor.
//
// It is the write half of a language-server transport: a dispatcher hands
// it complete message bodies, and lspwire frames each one and delivers it
// whole over a pipe, socket or other byte stream, absorbing interrupted and
// short writes along the way.
//
// Example usage:
//
//	t, closeFn, err := lspwire.Open(ctx, "stdout")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer closeFn()
//	if err := t.Send([]byte(`{"jsonrpc":"2.0","method":"initialized"}`)); err != nil {
//	    log.Fatal(err) // the editor is gone
//	}
package lspwire

import (
	"context"

	"github.com/bft-labs/lspwire/internal/target"
	"github.com/bft-labs/lspwire/pkg/channel"
	"github.com/bft-labs/lspwire/pkg/frame"
	"github.com/bft-labs/lspwire/pkg/transport"
)

// Transport frames and sends messages. See package transport.
type Transport = transport.Transport

// Option configures a Transport.
type Option = transport.Option

// ErrBroken is returned by Send once an earlier frame has failed.
var ErrBroken = transport.ErrBroken

var (
	// WithLogger sets the Transport logger.
	WithLogger = transport.WithLogger

	// WithBuffer enables frame buffer reuse.
	WithBuffer = transport.WithBuffer
)

// New returns a Transport writing to ch. The caller owns ch.
func New(ch channel.Channel, opts ...Option) *Transport {
	return transport.New(ch, opts...)
}

// Open connects to a target such as "stdout", "unix:/run/lsp.sock" or
// "ws://host/path" and returns a Transport over it with the function that
// releases the connection.
func Open(ctx context.Context, spec string, opts ...Option) (*Transport, func() error, error) {
	ep, err := target.Open(ctx, spec)
	if err != nil {
		return nil, nil, err
	}
	return transport.New(ep.Channel, opts...), ep.Close, nil
}

// Frame returns the wire form of payload.
func Frame(payload []byte) []byte {
	return frame.Encode(payload)
}
