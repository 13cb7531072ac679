// Package jsonrpc defines the JSON-RPC 2.0 envelopes a language server
// writes to its editor. Values are meant for transport.SendJSON; encoding
// goes through github.com/go-json-experiment/json.
package jsonrpc

import "github.com/go-json-experiment/json/jsontext"

// Version is the only protocol version emitted.
const Version = "2.0"

// Standard JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Notification is a message that expects no response.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Response answers a request identified by ID. Exactly one of Result and
// Error is set.
type Response struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      jsontext.Value `json:"id"`
	Result  any            `json:"result,omitzero"`
	Error   *Error         `json:"error,omitempty"`
}

// Error is the error member of a Response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewNotification returns a notification for method.
func NewNotification(method string, params any) Notification {
	return Notification{JSONRPC: Version, Method: method, Params: params}
}

// NewResult returns a successful response. A nil result is encoded as
// JSON null, which the protocol requires for void methods.
func NewResult(id jsontext.Value, result any) Response {
	if result == nil {
		result = jsontext.Value("null")
	}
	return Response{JSONRPC: Version, ID: id, Result: result}
}

// NewError returns an error response.
func NewError(id jsontext.Value, code int, message string) Response {
	if len(id) == 0 {
		id = jsontext.Value("null")
	}
	return Response{JSONRPC: Version, ID: id, Error: &Error{Code: code, Message: message}}
}
