package statesync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "nil", value: nil, want: false},
		{name: "empty string", value: "", want: false},
		{name: "whitespace string", value: "   \t", want: false},
		{name: "zero string", value: "0", want: true},
		{name: "text", value: "online", want: true},
		{name: "false", value: false, want: true},
		{name: "true", value: true, want: true},
		{name: "zero int", value: 0, want: true},
		{name: "zero float", value: 0.0, want: true},
		{name: "json number", value: json.Number("0"), want: true},
		{name: "empty object", value: map[string]any{}, want: false},
		{name: "object with zero value", value: map[string]any{"val": 0}, want: true},
		{name: "object with false value", value: map[string]any{"val": false}, want: true},
		{name: "empty array", value: []any{}, want: false},
		{name: "array of blanks", value: []any{"", "  "}, want: false},
		{name: "array with zero", value: []any{0}, want: true},
		{name: "typed nil pointer", value: (*string)(nil), want: false},
		{name: "pointer to value", value: ptr("x"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Present(tt.value))
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
