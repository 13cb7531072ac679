package jsonrpc

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

func TestNotification_Encoding(t *testing.T) {
	n := NewNotification("textDocument/publishDiagnostics", map[string]any{"uri": "file:///a.js"})
	b, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"jsonrpc":"2.0","method":"textDocument/publishDiagnostics","params":{"uri":"file:///a.js"}}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestNotification_OmitsEmptyParams(t *testing.T) {
	b, err := json.Marshal(NewNotification("exit", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"jsonrpc":"2.0","method":"exit"}`; string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestResponse_NullResult(t *testing.T) {
	b, err := json.Marshal(NewResult(jsontext.Value("1"), nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"jsonrpc":"2.0","id":1,"result":null}`; string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestResponse_Error(t *testing.T) {
	b, err := json.Marshal(NewError(nil, CodeMethodNotFound, "unknown method"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"jsonrpc":"2.0","id":null,"error":{"code":-32601,"message":"unknown method"}}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
