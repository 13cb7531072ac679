//go:build !unix

package target

import (
	"io"

	"github.com/bft-labs/lspwire/pkg/channel"
)

func rawChannel(w io.Writer) (channel.Channel, error) {
	return channel.WriterChannel{W: w}, nil
}
