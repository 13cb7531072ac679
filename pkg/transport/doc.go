// Package transport sends Content-Length framed messages over a channel.
//
// A Transport is the only thing a request dispatcher needs from the wire:
// hand it a complete, already-encoded message body and it either delivers
// the whole frame or reports a fatal error.
//
//	ch, _ := channel.NewFileChannel(os.Stdout)
//	t := transport.New(ch, transport.WithLogger(logger))
//	if err := t.Send(body); err != nil {
//	    // connection lost
//	}
//
// After the first fatal error the Transport is broken: the peer may have
// seen part of a frame, so every later Send fails with ErrBroken without
// touching the channel.
//
// A Transport is not safe for concurrent use. Frames from concurrent
// callers would interleave on the channel, so callers that send from
// several goroutines must serialize Send themselves.
package transport
