// Package session extracts a session descriptor from a room backend response.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrMalformedResponse = errors.New("malformed response")
	ErrMissingField      = errors.New("missing field")
)

// Response keys, looked up in this order.
const (
	FieldToken     = "token"
	FieldSessionID = "sessionId"
	FieldAPIKey    = "apiKey"
)

var requiredFields = []string{FieldToken, FieldSessionID, FieldAPIKey}

// MissingFieldError names the first required field that was absent or not a
// string.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q in session response", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Descriptor is everything a client needs to join one room. It is a value
// type; rendering never changes it.
type Descriptor struct {
	Room      string
	URL       string
	APIKey    string
	Token     string
	SessionID string
}

// Parse builds a Descriptor from a backend response body. room and
// displayURL are carried through as given.
func Parse(body []byte, room, displayURL string) (Descriptor, error) {
	if !gjson.ValidBytes(body) {
		return Descriptor{}, fmt.Errorf("%w: body is not valid json: %s", ErrMalformedResponse, preview(body))
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return Descriptor{}, fmt.Errorf("%w: expected a json object, got %s", ErrMalformedResponse, doc.Type)
	}

	values := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		v := doc.Get(name)
		if !v.Exists() || v.Type != gjson.String {
			return Descriptor{}, &MissingFieldError{Field: name}
		}
		values[name] = v.Str
	}

	return Descriptor{
		Room:      room,
		URL:       displayURL,
		APIKey:    values[FieldAPIKey],
		Token:     values[FieldToken],
		SessionID: values[FieldSessionID],
	}, nil
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	const limit = 120
	if len(s) > limit {
		return fmt.Sprintf("%q...", s[:limit])
	}
	return fmt.Sprintf("%q", s)
}
