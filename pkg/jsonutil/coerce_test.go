package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestFlexibleStringValue(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{`"hello"`, "hello"},
		{`42`, "42"},
		{`3.5`, "3.5"},
		{`true`, "true"},
		{`null`, ""},
		{``, ""},
	}
	for _, tc := range cases {
		if got := FlexibleStringValue(json.RawMessage(tc.raw)); got != tc.expected {
			t.Errorf("FlexibleStringValue(%q) = %q, want %q", tc.raw, got, tc.expected)
		}
	}
}

func TestCoerceString(t *testing.T) {
	cases := []struct {
		in       any
		expected string
	}{
		{"hello", "hello"},
		{float64(42), "42"},
		{float64(3.5), "3.5"},
		{true, "true"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := CoerceString(tc.in); got != tc.expected {
			t.Errorf("CoerceString(%v) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		in       any
		expected int
	}{
		{float64(29), 29},
		{"29", 29},
		{"$29/mo", 29},
		{"USD 199", 199},
		{"free", 7},
		{nil, 7},
		{true, 7},
	}
	for _, tc := range cases {
		if got := CoerceInt(tc.in, 7); got != tc.expected {
			t.Errorf("CoerceInt(%v) = %d, want %d", tc.in, got, tc.expected)
		}
	}
}

func TestCoerceStringSlice(t *testing.T) {
	in := []any{"a", float64(1), "  ", "b"}
	got := CoerceStringSlice(in)
	want := []string{"a", "1", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCoerceMapSlice(t *testing.T) {
	in := []any{map[string]any{"a": 1}, "not a map", map[string]any{"b": 2}}
	got := CoerceMapSlice(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 maps, got %d", len(got))
	}
}
