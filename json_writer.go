package finances

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// objectWriter builds a JSON object with a fixed field order, so that the
// book file stays stable and diff friendly. Its zero value is ready to use.
type objectWriter struct {
	buf bytes.Buffer
	err error
}

// Field appends key with the JSON encoding of value.
func (w *objectWriter) Field(key string, value any) *objectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.buf.WriteByte(',')
	return w
}

// OptionalField appends key only when value is not its type's zero value.
func (w *objectWriter) OptionalField(key string, value any) *objectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Field(key, value)
}

// Merge appends all the fields of value, that must encode as a JSON object.
func (w *objectWriter) Merge(value any) *objectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %T: %w", value, err)
		return w
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		w.err = fmt.Errorf("cannot merge %T: not a JSON object", value)
		return w
	}
	if inner := bytes.TrimSpace(raw[1 : len(raw)-1]); len(inner) > 0 {
		w.buf.Write(inner)
		w.buf.WriteByte(',')
	}
	return w
}

// MarshalJSON returns the object built so far.
func (w *objectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.buf.Bytes(), []byte(","))
	out := make([]byte, 0, len(content)+2)
	out = append(out, '{')
	out = append(out, content...)
	return append(out, '}'), nil
}
