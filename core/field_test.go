package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestField_StringValue(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{
			name:  "String field",
			field: Field{Type: StringType, Str: "hello"},
			want:  "hello",
		},
		{
			name:  "Int field",
			field: Field{Type: IntType, Int64: 42},
			want:  "42",
		},
		{
			name:  "Int64 field",
			field: Field{Type: Int64Type, Int64: 1234567890},
			want:  "1234567890",
		},
		{
			name:  "Bool field (true)",
			field: Field{Type: BoolType, Int64: 1},
			want:  "true",
		},
		{
			name:  "Bool field (false)",
			field: Field{Type: BoolType, Int64: 0},
			want:  "false",
		},
		{
			name:  "Float64 field",
			field: Field{Type: Float64Type, Float64: 3.14},
			want:  "3.14",
		},
		{
			name:  "Duration field",
			field: Field{Type: DurationType, Int64: int64(5 * time.Second)},
			want:  "5s",
		},
		{
			name:  "Error field",
			field: Field{Type: ErrorType, Str: "an error occurred"},
			want:  "an error occurred",
		},
		{
			name:  "Null field",
			field: Field{Type: NullType},
			want:  "null",
		},
		{
			name:  "Raw JSON field",
			field: Field{Type: RawJSONType, Str: `{"a":1}`},
			want:  `{"a":1}`,
		},
		{
			name: "Group field",
			field: Field{Type: GroupType, Group: []Field{
				{Key: "a", Type: IntType, Int64: 1},
				{Key: "b", Type: StringType, Str: "x"},
			}},
			want: "{a=1 b=x}",
		},
		{
			name:  "Any field",
			field: Field{Type: AnyType, Any: errors.New("boom")},
			want:  "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.StringValue(); got != tt.want {
				t.Errorf("Field.StringValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkFieldStringValue(b *testing.B) {
	fields := []Field{
		{Type: StringType, Str: "test"},
		{Type: IntType, Int64: 42},
		{Type: BoolType, Int64: 1},
		{Type: Float64Type, Float64: 3.14},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, f := range fields {
			_ = f.StringValue()
		}
	}
}

func TestFieldOf(t *testing.T) {
	ts := time.Date(2023, 1, 1, 0, 0, 0, 5, time.UTC)
	tests := []struct {
		name string
		in   interface{}
		want Field
	}{
		{"nil", nil, Field{Key: "k", Type: NullType}},
		{"string", "v", Field{Key: "k", Type: StringType, Str: "v"}},
		{"int", 7, Field{Key: "k", Type: IntType, Int64: 7}},
		{"int32", int32(-3), Field{Key: "k", Type: Int64Type, Int64: -3}},
		{"float", 1.5, Field{Key: "k", Type: Float64Type, Float64: 1.5}},
		{"bool", true, Field{Key: "k", Type: BoolType, Int64: 1}},
		{"time", ts, Field{Key: "k", Type: TimeType, Int64: ts.UnixNano()}},
		{"duration", time.Second, Field{Key: "k", Type: DurationType, Int64: int64(time.Second)}},
		{"error", errors.New("boom"), Field{Key: "k", Type: ErrorType, Str: "boom"}},
		{"any", []int{1}, Field{Key: "k", Type: AnyType, Any: []int{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldOf("k", tt.in))
		})
	}
}
