package frame

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

// decode splits a single frame back into its declared length and body.
func decode(t *testing.T, b []byte) []byte {
	t.Helper()
	if !bytes.HasPrefix(b, []byte(HeaderPrefix)) {
		t.Fatalf("frame %q missing header prefix", b)
	}
	rest := b[len(HeaderPrefix):]
	sep := bytes.Index(rest, []byte(Separator))
	if sep < 0 {
		t.Fatalf("frame %q missing separator", b)
	}
	digits := string(rest[:sep])
	if len(digits) > 1 && digits[0] == '0' {
		t.Fatalf("length %q has leading zeros", digits)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		t.Fatalf("parse length %q: %v", digits, err)
	}
	body := rest[sep+len(Separator):]
	if len(body) != n {
		t.Fatalf("declared length %d, body has %d bytes", n, len(body))
	}
	return body
}

func TestEncode_SmallMessage(t *testing.T) {
	got := Encode([]byte("hi"))
	want := "Content-Length: 2\r\n\r\nhi"
	if string(got) != want {
		t.Errorf("Encode(hi) = %q, want %q", got, want)
	}
}

func TestEncode_EmptyPayload(t *testing.T) {
	got := Encode(nil)
	want := "Content-Length: 0\r\n\r\n"
	if string(got) != want {
		t.Errorf("Encode(nil) = %q, want %q", got, want)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"jsonrpc":"2.0","method":"textDocument/publishDiagnostics"}`),
		[]byte("Content-Length: 5\r\n\r\nnested"),
		{0x00, 0xff, '\r', '\n', '\r', '\n'},
		[]byte("[" + strings.Repeat("x", 196608) + "]"),
		bytes.Repeat([]byte("é"), 9),
	}
	for _, p := range payloads {
		f := Encode(p)
		if len(f) != Size(len(p)) {
			t.Errorf("len(frame) = %d, Size = %d", len(f), Size(len(p)))
		}
		if body := decode(t, f); !bytes.Equal(body, p) {
			t.Errorf("round trip mismatch for %d byte payload", len(p))
		}
	}
}

func TestHeaderLen(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, len("Content-Length: 0\r\n\r\n")},
		{9, len("Content-Length: 9\r\n\r\n")},
		{10, len("Content-Length: 10\r\n\r\n")},
		{123456, len("Content-Length: 123456\r\n\r\n")},
	}
	for _, tt := range tests {
		if got := HeaderLen(tt.n); got != tt.want {
			t.Errorf("HeaderLen(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestAppend_ReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = Append(buf, []byte("one"))
	first := &buf[0]
	buf = Append(buf[:0], []byte("two"))
	if &buf[0] != first {
		t.Error("Append reallocated a buffer with enough capacity")
	}
	if string(buf) != "Content-Length: 3\r\n\r\ntwo" {
		t.Errorf("Append = %q", buf)
	}
}

func TestAppend_BackToBack(t *testing.T) {
	var buf []byte
	buf = Append(buf, []byte("a"))
	buf = Append(buf, []byte("bc"))
	want := "Content-Length: 1\r\n\r\naContent-Length: 2\r\n\r\nbc"
	if string(buf) != want {
		t.Errorf("Append = %q, want %q", buf, want)
	}
}

func TestAppend_DoesNotAliasPayload(t *testing.T) {
	p := []byte("payload")
	f := Encode(p)
	p[0] = 'X'
	if body := decode(t, f); string(body) != "payload" {
		t.Errorf("frame body changed with payload: %q", body)
	}
}
