package poloniex

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"

	"poloniex/pkg/core"
)

// Response is a decoded reply from either endpoint. A reply carrying an
// error field is still a Response: check Failed before using the payload.
type Response struct {
	// Command is the API command that produced this reply.
	Command string
	// StatusCode is the HTTP status of the reply.
	StatusCode int
	// Body is the raw JSON body.
	Body []byte
	// Data is the generic decoding of Body: map[string]any, []any or a scalar.
	Data any
	// ErrorMessage is the exchange-reported error. It may be empty even
	// when Failed reports true.
	ErrorMessage string

	failed bool
}

func decodeResponse(command string, status int, body []byte) (*Response, error) {
	var data any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return nil, core.NewDecodeError(command, err)
	}

	resp := &Response{
		Command:    command,
		StatusCode: status,
		Body:       body,
		Data:       data,
	}
	if obj, ok := data.(map[string]any); ok {
		if v, ok := obj["error"]; ok && v != nil {
			resp.failed = true
			resp.ErrorMessage = errorText(v)
		}
	}
	return resp, nil
}

func errorText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Failed reports whether the reply carries a non-null error field.
func (r *Response) Failed() bool {
	return r.failed
}

// Map returns the payload as an object, or nil when it is not one.
func (r *Response) Map() map[string]any {
	m, _ := r.Data.(map[string]any)
	return m
}

// List returns the payload as an array, or nil when it is not one.
func (r *Response) List() []any {
	l, _ := r.Data.([]any)
	return l
}

// Keys returns the sorted keys of an object payload.
func (r *Response) Keys() []string {
	m := r.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if err := sonic.Unmarshal(r.Body, v); err != nil {
		return core.NewDecodeError(r.Command, err)
	}
	return nil
}

// Lookup decodes the member named key of an object payload into v. It
// reports false when the payload is not an object, the exchange returned an
// error, or the key is absent.
func (r *Response) Lookup(key string, v any) (bool, error) {
	if r.Failed() {
		return false, nil
	}
	if _, ok := r.Data.(map[string]any); !ok {
		return false, nil
	}

	var members map[string]json.RawMessage
	if err := sonic.Unmarshal(r.Body, &members); err != nil {
		return false, core.NewDecodeError(r.Command, err)
	}
	raw, ok := members[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, v); err != nil {
		return false, core.NewDecodeError(r.Command, err)
	}
	return true, nil
}
