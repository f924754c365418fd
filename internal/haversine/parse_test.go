package haversine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"null", Value{Kind: NullValue}},
		{"true", Value{Kind: BoolValue, Flag: true}},
		{"false", Value{Kind: BoolValue}},
		{`"hello world"`, Value{Kind: StringValue, Str: "hello world"}},
		{"10", Value{Kind: NumberValue, Num: 10}},
		{"-100", Value{Kind: NumberValue, Num: -100}},
		{"12345.12345", Value{Kind: NumberValue, Num: 12345.12345}},
		{"-3.1415", Value{Kind: NumberValue, Num: -3.1415}},
	}

	for _, tc := range tests {
		got, err := Parse([]byte(tc.input))
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseArray(t *testing.T) {
	got, err := Parse([]byte(`[null, true, 1.2, "hello"]`))
	require.NoError(t, err)

	require.Equal(t, ArrayValue, got.Kind)
	require.Len(t, got.Items, 4)
	assert.Equal(t, NullValue, got.Items[0].Kind)
	assert.True(t, got.Items[1].Flag)
	assert.Equal(t, 1.2, got.Items[2].Num)
	assert.Equal(t, "hello", got.Items[3].Str)
}

func TestParseObject(t *testing.T) {
	got, err := Parse([]byte(`{
		"name": "Bob",
		"age": 24,
		"happy": true,
		"wife": null
	}`))
	require.NoError(t, err)

	require.Equal(t, ObjectValue, got.Kind)
	require.Len(t, got.Members, 4)

	name, ok := got.Member("name")
	require.True(t, ok)
	assert.Equal(t, "Bob", name.Str)

	age, ok := got.Member("age")
	require.True(t, ok)
	assert.Equal(t, 24.0, age.Num)

	_, ok = got.Member("dog")
	assert.False(t, ok)
}

func TestParseNested(t *testing.T) {
	got, err := Parse([]byte(`{
		"name": "Bob",
		"cars": [
			{"size": "big"},
			{"size": "smallish"}
		]
	}`))
	require.NoError(t, err)

	cars, ok := got.Member("cars")
	require.True(t, ok)
	require.Equal(t, ArrayValue, cars.Kind)
	require.Len(t, cars.Items, 2)

	size, ok := cars.Items[1].Member("size")
	require.True(t, ok)
	assert.Equal(t, "smallish", size.Str)
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"[1, 2",
		`"unterminated`,
		"{1: 2}",
		`{"k" 2}`,
		"tru",
		"-",
		"@",
	}

	for _, input := range inputs {
		_, err := Parse([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}
