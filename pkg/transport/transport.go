package transport

import (
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/bft-labs/lspwire/pkg/channel"
	"github.com/bft-labs/lspwire/pkg/frame"
	"github.com/bft-labs/lspwire/pkg/log"
)

// ErrBroken is returned by Send after an earlier frame failed.
var ErrBroken = errors.New("transport: channel broken by earlier write failure")

// Stats is a snapshot of transport counters.
type Stats struct {
	Frames       uint64
	PayloadBytes uint64
	WireBytes    uint64
	Interrupts   uint64
	ShortWrites  uint64
	Waits        uint64
}

// Transport frames payloads and writes them to a channel it does not own.
type Transport struct {
	ch     channel.Channel
	logger log.Logger
	buf    []byte
	err    error
	stats  Stats
}

// New returns a Transport writing to ch. The caller keeps ownership of ch
// and closes it when done.
func New(ch channel.Channel, opts ...Option) *Transport {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	t := &Transport{
		ch:     ch,
		logger: o.logger,
	}
	if o.bufSize > 0 {
		t.buf = make([]byte, 0, o.bufSize)
	}
	return t
}

// Send frames payload and writes the frame. The payload is not retained.
func (t *Transport) Send(payload []byte) error {
	if t.err != nil {
		return fmt.Errorf("%w: %w", ErrBroken, t.err)
	}

	wire := t.encode(payload)

	var ws channel.Stats
	err := channel.WriteAllStats(t.ch, wire, &ws)
	t.stats.Interrupts += uint64(ws.Interrupts)
	t.stats.ShortWrites += uint64(ws.ShortWrites)
	t.stats.Waits += uint64(ws.Waits)
	if err != nil {
		t.err = err
		t.logger.Error("frame write failed",
			log.Int("payload_bytes", len(payload)),
			log.Int("written", ws.Written),
			log.Int("frame_bytes", len(wire)),
			log.Err(err),
		)
		return fmt.Errorf("transport: send: %w", err)
	}

	t.stats.Frames++
	t.stats.PayloadBytes += uint64(len(payload))
	t.stats.WireBytes += uint64(len(wire))
	t.logger.Debug("frame sent",
		log.Int("payload_bytes", len(payload)),
		log.Int("attempts", ws.Attempts),
		log.Int("interrupts", ws.Interrupts),
		log.Int("short_writes", ws.ShortWrites),
	)
	return nil
}

// SendJSON marshals v as JSON and sends it as one frame.
func (t *Transport) SendJSON(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("transport: marshal: %w", err)
	}
	return t.Send(payload)
}

// Err returns the failure that broke the transport, or nil.
func (t *Transport) Err() error {
	return t.err
}

// Stats returns a snapshot of the transport counters.
func (t *Transport) Stats() Stats {
	return t.stats
}

func (t *Transport) encode(payload []byte) []byte {
	if t.buf != nil && frame.Size(len(payload)) <= cap(t.buf) {
		t.buf = frame.Append(t.buf[:0], payload)
		return t.buf
	}
	return frame.Encode(payload)
}
