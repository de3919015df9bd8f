package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableJSON_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected NullableJSON
		wantErr  bool
	}{
		{
			name:     "nil value",
			input:    nil,
			expected: NullableJSON{Data: nil, IsNull: true},
		},
		{
			name:     "empty byte slice",
			input:    []byte{},
			expected: NullableJSON{Data: nil, IsNull: true},
		},
		{
			name:     "json string",
			input:    []byte(`"ada@example.com"`),
			expected: NullableJSON{Data: "ada@example.com", IsNull: false},
		},
		{
			name:     "json number",
			input:    []byte(`1200.5`),
			expected: NullableJSON{Data: 1200.5, IsNull: false},
		},
		{
			name:     "json object",
			input:    []byte(`{"a":1}`),
			expected: NullableJSON{Data: map[string]interface{}{"a": float64(1)}, IsNull: false},
		},
		{
			name:     "string input",
			input:    `"won"`,
			expected: NullableJSON{Data: "won", IsNull: false},
		},
		{
			name:    "invalid json",
			input:   []byte(`{nope`),
			wantErr: true,
		},
		{
			name:    "incompatible type",
			input:   42,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nj NullableJSON
			err := nj.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, nj)
			}
		})
	}
}

func TestNullableJSON_Value(t *testing.T) {
	t.Run("null value", func(t *testing.T) {
		value, err := NullableJSON{IsNull: true}.Value()
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("nil data counts as null", func(t *testing.T) {
		value, err := NullableJSON{Data: nil, IsNull: false}.Value()
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("scalar value", func(t *testing.T) {
		value, err := NullableJSON{Data: "qualified", IsNull: false}.Value()
		require.NoError(t, err)

		bytes, ok := value.([]byte)
		require.True(t, ok)
		assert.JSONEq(t, `"qualified"`, string(bytes))
	})
}

func TestNullableJSON_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NullableJSON{Data: 42.0, IsNull: false})
	require.NoError(t, err)
	assert.Equal(t, `42`, string(data))

	data, err = json.Marshal(NullableJSON{IsNull: true})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestNullableJSON_UnmarshalJSON(t *testing.T) {
	var nj NullableJSON
	require.NoError(t, json.Unmarshal([]byte(`"contacted"`), &nj))
	assert.Equal(t, "contacted", nj.Data)
	assert.False(t, nj.IsNull)

	require.NoError(t, json.Unmarshal([]byte(`null`), &nj))
	assert.Nil(t, nj.Data)
	assert.True(t, nj.IsNull)

	assert.Error(t, json.Unmarshal([]byte(`{bad`), &nj))
}

func TestNullableJSON_RoundTrip(t *testing.T) {
	// Audit old/new values travel struct -> column -> struct
	original := NullableJSON{Data: map[string]interface{}{"count": float64(3)}, IsNull: false}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned NullableJSON
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}
