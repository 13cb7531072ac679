//go:build unix

package target

import (
	"io"
	"syscall"

	"github.com/bft-labs/lspwire/pkg/channel"
)

// rawChannel writes with write(2) when the writer exposes its descriptor.
func rawChannel(w io.Writer) (channel.Channel, error) {
	if sc, ok := w.(syscall.Conn); ok {
		return channel.NewFileChannel(sc)
	}
	return channel.WriterChannel{W: w}, nil
}
