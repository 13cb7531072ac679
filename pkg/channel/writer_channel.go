package channel

import "io"

// WriterChannel adapts an io.Writer to Channel. io.Writer implementations
// already loop over short writes, so through this adapter WriteAll mostly
// sees complete writes or fatal errors.
type WriterChannel struct {
	W io.Writer
}

// Write forwards to the wrapped writer.
func (c WriterChannel) Write(p []byte) (int, error) {
	return c.W.Write(p)
}
