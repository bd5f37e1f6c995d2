package models

import (
	"reflect"
	"testing"
)

func TestStringArrayScan(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  StringArray
	}{
		{"json array", `["fees","accounts"]`, StringArray{"fees", "accounts"}},
		{"json array bytes", []byte(`["fees"]`), StringArray{"fees"}},
		{"empty array", `[]`, StringArray{}},
		{"nil value", nil, StringArray{}},
		{"null literal", `null`, StringArray{}},
		{"quoted single value", `"fees"`, StringArray{"fees"}},
		{"legacy bare string", `fees`, StringArray{"fees"}},
		{"blank", `   `, StringArray{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringArray
			if err := got.Scan(tc.input); err != nil {
				t.Fatalf("Scan(%v): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Scan(%v) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"fees"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `["fees"]` {
		t.Fatalf("Value = %v, want [\"fees\"]", v)
	}

	v, err = StringArray(nil).Value()
	if err != nil {
		t.Fatalf("Value(nil): %v", err)
	}
	if v != "[]" {
		t.Fatalf("Value(nil) = %v, want []", v)
	}
}
