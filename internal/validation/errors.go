package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Errors maps field names to the messages of every rule they violated.
// Fields keep the order in which they were first added.
type Errors struct {
	fields   []string
	messages map[string][]string
}

// Add appends msg to the messages of field.
func (e *Errors) Add(field, msg string) {
	if e.messages == nil {
		e.messages = make(map[string][]string)
	}
	if _, ok := e.messages[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.messages[field] = append(e.messages[field], msg)
}

// Len returns the number of fields with at least one message.
func (e *Errors) Len() int {
	return len(e.fields)
}

// Fields returns the failing field names in order.
func (e *Errors) Fields() []string {
	return append([]string(nil), e.fields...)
}

// Messages returns the messages recorded for field.
func (e *Errors) Messages(field string) []string {
	return e.messages[field]
}

func (e *Errors) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.fields, ", "))
}

// MarshalJSON encodes the errors as an object whose keys follow field order.
func (e *Errors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range e.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(e.messages[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
