package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContactField is one contact-info entry (e.g. "telegram" -> "@handle")
type ContactField struct {
	Key   string
	Value string
}

// ContactInfo is an open-ended contact-info collection. The backend stores
// it as a JSON object; on the client it is kept as an ordered list so the
// entry order survives editing round-trips. Serialization to a map happens
// only at the request boundary.
type ContactInfo []ContactField

// Get returns the value for a key and whether it is present
func (c ContactInfo) Get(key string) (string, bool) {
	for _, f := range c {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value for a key, appending the field if absent
func (c ContactInfo) Set(key, value string) ContactInfo {
	for i, f := range c {
		if f.Key == key {
			c[i].Value = value
			return c
		}
	}
	return append(c, ContactField{Key: key, Value: value})
}

// MarshalJSON serializes the ordered field list as a JSON object,
// preserving field order
func (c ContactInfo) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the ordered field list, keeping
// the key order of the document
func (c *ContactInfo) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("contactInfo: expected JSON object, got %v", tok)
	}

	fields := ContactInfo{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("contactInfo: expected string key, got %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("contactInfo: value for %q: %w", key, err)
		}
		fields = append(fields, ContactField{Key: key, Value: value})
	}

	*c = fields
	return nil
}
