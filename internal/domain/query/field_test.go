package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		name string
		want FieldType
	}{
		{"string", TypeString},
		{"VARCHAR", TypeString},
		{" int ", TypeInteger},
		{"long", TypeInteger},
		{"number", TypeDecimal},
		{"float", TypeDecimal},
		{"Bool", TypeBoolean},
		{"datetime", TypeDate},
		{"timestamp", TypeDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		got, err := ParseFieldType("blob")
		assert.ErrorIs(t, err, ErrUnknownFieldType)
		assert.Equal(t, TypeString, got)
	})
}

func TestFieldType_String(t *testing.T) {
	assert.Equal(t, "decimal", TypeDecimal.String())
	assert.True(t, TypeDate.IsValid())
	assert.False(t, FieldType(42).IsValid())
	assert.Equal(t, "unknown", FieldType(42).String())
}

func TestNewField(t *testing.T) {
	f := NewField("grand_total", TypeDecimal)
	assert.Equal(t, "grand_total", f.String())
	assert.Equal(t, TypeDecimal, f.Type)
}
