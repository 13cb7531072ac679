//go:build unix

package channel

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// FileChannel writes with write(2) on the descriptor behind an *os.File,
// *net.UnixConn or *net.TCPConn, bypassing the os package's own retry loop
// so that interruptions and short writes reach WriteAll.
//
// Descriptors registered with the runtime poller park instead of spinning on
// EAGAIN, and honour write deadlines set on the owning file or connection.
type FileChannel struct {
	rc syscall.RawConn
}

// NewFileChannel returns a channel over the descriptor owned by c. The
// channel does not take ownership; closing c is the caller's job.
func NewFileChannel(c syscall.Conn) (*FileChannel, error) {
	rc, err := c.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("channel: syscall conn: %w", err)
	}
	return &FileChannel{rc: rc}, nil
}

// Write performs a single write(2).
func (c *FileChannel) Write(p []byte) (int, error) {
	var (
		n    int
		werr error
	)
	err := c.rc.Write(func(fd uintptr) bool {
		n, werr = unix.Write(int(fd), p)
		return werr != unix.EAGAIN
	})
	if n < 0 {
		n = 0
	}
	if err != nil {
		return n, err
	}
	return n, werr
}

// FDChannel writes to a raw descriptor that the caller owns. It is meant for
// descriptors inherited from a parent process, such as the stdout of an
// editor-spawned server.
type FDChannel struct {
	fd int
}

// NewFDChannel returns a channel writing to fd.
func NewFDChannel(fd int) *FDChannel {
	return &FDChannel{fd: fd}
}

// Write performs a single write(2).
func (c *FDChannel) Write(p []byte) (int, error) {
	n, err := unix.Write(c.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// WaitWritable blocks in poll(2) until fd accepts more data. Error and hangup
// conditions are left for the next write to report.
func (c *FDChannel) WaitWritable() error {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLOUT}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("channel: poll fd %d: %w", c.fd, err)
		}
		return nil
	}
}
