package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	for op, name := range operatorNames {
		t.Run(name, func(t *testing.T) {
			got, err := ParseOperator(name)
			require.NoError(t, err)
			assert.Equal(t, op, got)
			assert.Equal(t, name, got.String())
			assert.True(t, got.IsValid())
		})
	}

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseOperator("matches")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedOperator)
		assert.True(t, IsTranslationError(err))
		assert.Contains(t, err.Error(), "matches")
	})
}

func TestOperator_Unknown(t *testing.T) {
	op := Operator(99)
	assert.False(t, op.IsValid())
	assert.Equal(t, "unknown", op.String())
}

func TestOperator_CheckArity(t *testing.T) {
	one := []Value{Integer(1)}
	two := []Value{Integer(1), Integer(2)}
	three := []Value{Integer(1), Integer(2), Integer(3)}

	tests := []struct {
		op     Operator
		values []Value
		want   bool
	}{
		{Equals, one, true},
		{Equals, two, false},
		{Equals, nil, false},
		{Like, one, true},
		{In, one, true},
		{In, three, true},
		{NotIn, nil, false},
		{Between, two, true},
		{Between, one, false},
		{Between, three, false},
		{IsNull, nil, true},
		{IsNotNull, three, true},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.CheckArity(tt.values))
		})
	}
}

func TestOperator_Arity(t *testing.T) {
	assert.Equal(t, ArityOne, GreaterOrEqual.Arity())
	assert.Equal(t, ArityMany, NotIn.Arity())
	assert.Equal(t, ArityPair, Between.Arity())
	assert.Equal(t, ArityNone, IsNull.Arity())
}

func TestTranslationError(t *testing.T) {
	c := Compare(NewField("qty", TypeInteger), Between, List(Integer(1)))

	err := NewTranslationError(ErrArityMismatch, c, "got 1 value")
	assert.Equal(t, "query: operator arity mismatch: field qty, operator between (got 1 value)", err.Error())
	assert.True(t, errors.Is(err, ErrArityMismatch))
	assert.False(t, errors.Is(err, ErrTypeMismatch))

	bare := &TranslationError{Err: ErrEmptyGroup}
	assert.Equal(t, "query: logical group needs at least two children", bare.Error())

	assert.False(t, IsTranslationError(ErrEmptyGroup))
	assert.True(t, IsTranslationError(bare))
}
