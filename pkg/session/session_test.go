package session

import (
	"errors"
	"testing"
)

func TestParse_FieldMapping(t *testing.T) {
	// token and sessionId must not be transposed.
	d, err := Parse([]byte(`{"token":"T1","sessionId":"S1","apiKey":"K1"}`), "room1", "https://h/room1")
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if d.Token != "T1" {
		t.Fatalf("token got %q, want %q", d.Token, "T1")
	}
	if d.SessionID != "S1" {
		t.Fatalf("session id got %q, want %q", d.SessionID, "S1")
	}
	if d.APIKey != "K1" {
		t.Fatalf("api key got %q, want %q", d.APIKey, "K1")
	}
	if d.Room != "room1" || d.URL != "https://h/room1" {
		t.Fatalf("room/url got %q/%q", d.Room, d.URL)
	}
}

func TestParse_IgnoresExtraFields(t *testing.T) {
	d, err := Parse([]byte(`{"apiKey":"K","sessionId":"S","token":"T","room":{"name":"x"},"p2p":false}`), "r", "u")
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if d.APIKey != "K" || d.SessionID != "S" || d.Token != "T" {
		t.Fatalf("descriptor=%+v", d)
	}
}

func TestParse_MissingEachField(t *testing.T) {
	cases := map[string]string{
		FieldToken:     `{"sessionId":"S","apiKey":"K"}`,
		FieldSessionID: `{"token":"T","apiKey":"K"}`,
		FieldAPIKey:    `{"token":"T","sessionId":"S"}`,
	}
	for field, body := range cases {
		d, err := Parse([]byte(body), "r", "u")
		if err == nil {
			t.Fatalf("%s: expected error", field)
		}
		var mf *MissingFieldError
		if !errors.As(err, &mf) {
			t.Fatalf("%s: err=%T %v, want *MissingFieldError", field, err, err)
		}
		if mf.Field != field {
			t.Fatalf("missing field got %q, want %q", mf.Field, field)
		}
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("%s: err should match ErrMissingField", field)
		}
		if d != (Descriptor{}) {
			t.Fatalf("%s: descriptor should be empty, got %+v", field, d)
		}
	}
}

func TestParse_NonStringFieldIsMissing(t *testing.T) {
	_, err := Parse([]byte(`{"token":"T","sessionId":42,"apiKey":"K"}`), "r", "u")
	var mf *MissingFieldError
	if !errors.As(err, &mf) || mf.Field != FieldSessionID {
		t.Fatalf("err=%v, want missing %q", err, FieldSessionID)
	}
}

func TestParse_FirstMissingFieldWins(t *testing.T) {
	_, err := Parse([]byte(`{}`), "r", "u")
	var mf *MissingFieldError
	if !errors.As(err, &mf) || mf.Field != FieldToken {
		t.Fatalf("err=%v, want missing %q", err, FieldToken)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, body := range []string{"", "not json", `["token","sessionId"]`, `"str"`, `{"token":`} {
		_, err := Parse([]byte(body), "r", "u")
		if !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("body %q: err=%v, want ErrMalformedResponse", body, err)
		}
	}
}
