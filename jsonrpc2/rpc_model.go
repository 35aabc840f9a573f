package jsonrpc2

import (
	"encoding/json"
)

// Every component exposes a single POST endpoint speaking this
// envelope; the method switch lives in the component's route file.

type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      string          `json:"id,omitempty"`
}

type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      string          `json:"id,omitempty"`
}

type RPCError struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Params  []*InputFieldError `json:"params,omitempty"`
}

// InputFieldError ties a validation message to the offending field so
// the client can annotate its form.
type InputFieldError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// SetParams sets r.Params to the JSON representation of v.
func (me *RPCRequest) SetParams(v interface{}) error {
	if v == nil {
		me.Params = nil
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	me.Params = json.RawMessage(b)
	return nil
}

// SetResult sets r.Result to the JSON representation of v.
func (me *RPCResponse) SetResult(v interface{}) error {
	if v == nil {
		me.Result = nil
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	me.Result = json.RawMessage(b)
	return nil
}
