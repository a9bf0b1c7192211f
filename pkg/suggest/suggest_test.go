package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		candidates []string
		want       string
		found      bool
	}{
		{"typo", "isStrin", []string{"isNumber", "isString", "isSymbol"}, "isString", true},
		{"case", "record", []string{"Record", "Readonly"}, "Record", true},
		{"nothing close", "x", []string{"y"}, "", false},
		{"no candidates", "Foo", nil, "", false},
		{"exact match skipped", "Foo", []string{"Foo"}, "", false},
		{"tie picks first sorted", "Strin", []string{"Strinz", "String"}, "String", true},
		{"swapped letters", "isTupel", []string{"isTuple", "isType"}, "isTuple", true},
		{"short candidates skipped", "ab", []string{"ac", "aa"}, "", false},
		{"too far apart", "Missing", []string{"string", "unknown", "Record"}, "", false},
		{"length difference", "Arr", []string{"ReadonlyArray"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.input, tt.candidates)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
