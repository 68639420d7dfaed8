package tandem

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/tandemswap/tandem/errors"
)

func TestNewCondition(t *testing.T) {
	cond := NewCondition("swap", "seq", []byte{1, 2, 3})
	if err := cond.Validate(); err != nil {
		t.Fatalf("validate: %+v", err)
	}
	ext, typ, data, err := cond.Parse()
	if err != nil {
		t.Fatalf("parse: %+v", err)
	}
	if ext != "swap" || typ != "seq" || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("unexpected parse result: %s %s %x", ext, typ, data)
	}
}

func TestConditionAddress(t *testing.T) {
	a := NewCondition("swap", "seq", []byte{1}).Address()
	b := NewCondition("swap", "seq", []byte{1}).Address()
	c := NewCondition("swap", "seq", []byte{2}).Address()

	if err := a.Validate(); err != nil {
		t.Fatalf("address: %+v", err)
	}
	if !a.Equals(b) {
		t.Fatal("same condition must derive the same address")
	}
	if a.Equals(c) {
		t.Fatal("different conditions must derive different addresses")
	}
}

func TestInvalidCondition(t *testing.T) {
	cases := map[string]Condition{
		"nil":            nil,
		"empty":          {},
		"no separators":  Condition("foobar"),
		"one separator":  Condition("foo/bar"),
		"empty sections": Condition("//"),
	}
	for testName, cond := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := cond.Validate(); !errors.ErrInput.Is(err) {
				t.Fatalf("want ErrInput, got %+v", err)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := NewCondition("test", "json", []byte("x")).Address()
	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("marshal: %+v", err)
	}
	var got Address
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %+v", err)
	}
	if !addr.Equals(got) {
		t.Fatalf("round trip mismatch: %s != %s", addr, got)
	}
}

func TestParseAddress(t *testing.T) {
	addr := NewAddress([]byte("some data"))
	got, err := ParseAddress(addr.String())
	if err != nil {
		t.Fatalf("parse: %+v", err)
	}
	if !addr.Equals(got) {
		t.Fatalf("mismatch: %s != %s", addr, got)
	}

	if _, err := ParseAddress("not-hex"); !errors.ErrInput.Is(err) {
		t.Fatalf("bad encoding: %+v", err)
	}
	if _, err := ParseAddress("abcd"); !errors.ErrInput.Is(err) {
		t.Fatalf("bad length: %+v", err)
	}
}

func TestAddressValidate(t *testing.T) {
	if err := (Address{1, 2, 3}).Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("short address: %+v", err)
	}
	if err := NewAddress([]byte("ok")).Validate(); err != nil {
		t.Fatalf("good address: %+v", err)
	}
}
