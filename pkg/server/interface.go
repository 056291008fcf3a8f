/*
Package server implements msgpack IPC for the completion service.

The host editor talks to cliserve over stdin/stdout with binary msgpack
messages, one request per message, answered synchronously in order.
Each request carries an ID echoed back in the response and an op field
selecting the operation.

Completion requests send the current line and cursor offset:

	{"id": "req_001", "op": "complete", "line": "show ip is", "cur": 10}

and receive the valid next tokens plus the trigger span:

	{"id": "req_001", "trig": true, "toks": ["isis"], "s": 8, "e": 10, "c": 1, "t": 52}

The trig field is the trigger decision: false means the engine declined
to suggest (blank line up to the cursor), which is distinct from an
empty token list after a dead-end path.

Accept requests compute the text replacement for a chosen suggestion:

	{"id": "req_002", "op": "accept", "tok": "isis", "s": 8, "e": 10}
	{"id": "req_002", "text": "isis ", "cur": 13}

Classify requests map display tokens to coloring categories, search
requests query the flat command index (prefix, substring, or fuzzy
mode), and detail requests fetch the full record for one command.

If dictionary initialization failed at startup the server still runs:
complete answers trig=false with no tokens, search and detail answer
empty, and only status reports the degraded state. Per-keystroke host
handlers never see a fault.
*/
package server

// Request is the envelope for every incoming message. Fields beyond
// ID and Op are op-specific.
type Request struct {
	ID     string   `msgpack:"id"`
	Op     string   `msgpack:"op"`
	Line   string   `msgpack:"line,omitempty"`
	Cursor int      `msgpack:"cur,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
	Token  string   `msgpack:"tok,omitempty"`
	Start  int      `msgpack:"s,omitempty"`
	End    int      `msgpack:"e,omitempty"`
	Tokens []string `msgpack:"toks,omitempty"`
	Query  string   `msgpack:"q,omitempty"`
	Mode   string   `msgpack:"mode,omitempty"`
}

// CompleteResponse answers a complete op.
type CompleteResponse struct {
	ID        string   `msgpack:"id"`
	Triggered bool     `msgpack:"trig"`
	Tokens    []string `msgpack:"toks"`
	Start     int      `msgpack:"s"`
	End       int      `msgpack:"e"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// AcceptResponse answers an accept op with the replacement text for
// the trigger span and the new cursor offset.
type AcceptResponse struct {
	ID     string `msgpack:"id"`
	Text   string `msgpack:"text"`
	Cursor int    `msgpack:"cur"`
}

// ClassifyResponse answers a classify op, one category name per input
// token, in order.
type ClassifyResponse struct {
	ID         string   `msgpack:"id"`
	Categories []string `msgpack:"cats"`
}

// SearchResult is one command match in a search response.
type SearchResult struct {
	Command     string `msgpack:"cmd"`
	Description string `msgpack:"desc,omitempty"`
}

// SearchResponse answers a search op.
type SearchResponse struct {
	ID      string         `msgpack:"id"`
	Results []SearchResult `msgpack:"res"`
	Count   int            `msgpack:"c"`
}

// DetailResponse answers a detail op. Found is false when the command
// is not in the dictionary.
type DetailResponse struct {
	ID          string   `msgpack:"id"`
	Found       bool     `msgpack:"found"`
	Command     string   `msgpack:"cmd,omitempty"`
	Description string   `msgpack:"desc,omitempty"`
	Syntax      string   `msgpack:"syntax,omitempty"`
	Params      []string `msgpack:"params,omitempty"`
	Examples    []string `msgpack:"examples,omitempty"`
}

// StatusResponse answers a status op and is also sent unsolicited once
// at startup to signal readiness.
type StatusResponse struct {
	ID       string `msgpack:"id,omitempty"`
	Status   string `msgpack:"status"`
	Commands int    `msgpack:"commands"`
	Degraded bool   `msgpack:"degraded,omitempty"`
}

// ErrorResponse reports a malformed or unknown request.
type ErrorResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Error  string `msgpack:"error"`
	Status int    `msgpack:"status"`
}
