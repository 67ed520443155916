package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetOptionalDate(t *testing.T) {
	var out bytes.Buffer

	got, err := GetOptionalDate(rdr("1998-04-12\n"), "DOB", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(1998, 4, 12, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got, err = GetOptionalDate(rdr("\n"), "DOB", &out)
	if err != nil || got != nil {
		t.Fatalf("skip: got %v, err=%v", got, err)
	}

	if _, err = GetOptionalDate(rdr("12/04/1998\n"), "DOB", &out); err == nil {
		t.Fatal("expected error for bad format")
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"whatever\n", false},
	}
	for _, tt := range tests {
		got, err := Confirm(rdr(tt.in), "Sure?", &out)
		if err != nil || got != tt.want {
			t.Fatalf("Confirm(%q) = %v, err=%v", tt.in, got, err)
		}
	}
}
