// Package channel delivers byte sequences onto blocking byte-stream channels.
//
// A [Channel] is the raw platform write primitive: it may accept fewer bytes
// than requested, and it may report an interruption instead of progress.
// [WriteAll] drives a channel until every byte is accepted or the channel
// fails:
//
//	ch, err := channel.NewFileChannel(pipeWriter)
//	if err != nil {
//	    return err
//	}
//	if err := channel.WriteAll(ch, data); err != nil {
//	    // the channel is unusable; treat as connection loss
//	}
//
// Interruptions (EINTR), short writes and would-block results (EAGAIN) are
// absorbed. Anything else is returned as a [*WriteError] carrying the cause.
// WriteAll never closes the channel and starts no goroutines.
//
// Latency is bounded by the channel, not by WriteAll: set a write deadline
// on the underlying *os.File or net.Conn to give up on a peer that stops
// reading.
package channel
