package channel

import "runtime"

// Stats counts what happened while delivering one byte sequence.
type Stats struct {
	Attempts    int
	Interrupts  int
	ShortWrites int
	Waits       int
	Written     int
}

// WriteAll writes every byte of p to ch. It returns nil once the channel has
// accepted all of p, or a *WriteError as soon as the channel fails. No byte
// is written twice and none is skipped.
func WriteAll(ch Channel, p []byte) error {
	return WriteAllStats(ch, p, nil)
}

// WriteAllStats is WriteAll that also records retry counters in st, which
// may be nil.
func WriteAllStats(ch Channel, p []byte, st *Stats) error {
	if st == nil {
		st = &Stats{}
	}
	total := len(p)
	written := 0
	defer func() { st.Written += written }()

	for written < total {
		n, err := ch.Write(p[written:])
		st.Attempts++
		if n < 0 || n > total-written {
			return &WriteError{Written: written, Total: total, Err: ErrInvalidWrite}
		}
		written += n

		if err == nil {
			if written < total {
				st.ShortWrites++
			}
			continue
		}

		switch classify(err) {
		case interrupted:
			st.Interrupts++
		case partial:
			st.ShortWrites++
		case wouldBlock:
			st.Waits++
			w, ok := ch.(Waiter)
			if !ok {
				runtime.Gosched()
				continue
			}
			if werr := w.WaitWritable(); werr != nil {
				return &WriteError{Written: written, Total: total, Err: werr}
			}
		default:
			return &WriteError{Written: written, Total: total, Err: err}
		}
	}
	return nil
}
