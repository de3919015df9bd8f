package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableString(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		value, err := NullableString{String: "test", IsNull: false}.Value()
		require.NoError(t, err)
		assert.Equal(t, "test", value)

		value, err = NullableString{IsNull: true}.Value()
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("Scan", func(t *testing.T) {
		tests := []struct {
			name     string
			input    interface{}
			expected NullableString
			wantErr  bool
		}{
			{
				name:     "scan string",
				input:    "test",
				expected: NullableString{String: "test", IsNull: false},
			},
			{
				name:     "scan []byte",
				input:    []byte("test"),
				expected: NullableString{String: "test", IsNull: false},
			},
			{
				name:     "scan nil",
				input:    nil,
				expected: NullableString{String: "", IsNull: true},
			},
			{
				name:    "scan incompatible type",
				input:   42,
				wantErr: true,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var ns NullableString
				err := ns.Scan(tt.input)
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
					assert.Equal(t, tt.expected, ns)
				}
			})
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		data, err := json.Marshal(NullableString{String: "test", IsNull: false})
		require.NoError(t, err)
		assert.Equal(t, `"test"`, string(data))

		data, err = json.Marshal(NullableString{IsNull: true})
		require.NoError(t, err)
		assert.Equal(t, `null`, string(data))
	})

	t.Run("UnmarshalJSON", func(t *testing.T) {
		var ns NullableString
		require.NoError(t, json.Unmarshal([]byte(`"test"`), &ns))
		assert.Equal(t, NullableString{String: "test", IsNull: false}, ns)

		require.NoError(t, json.Unmarshal([]byte(`null`), &ns))
		assert.True(t, ns.IsNull)

		assert.Error(t, json.Unmarshal([]byte(`42`), &ns))
	})

	t.Run("Ptr", func(t *testing.T) {
		ptr := NullableString{String: "test", IsNull: false}.Ptr()
		require.NotNil(t, ptr)
		assert.Equal(t, "test", *ptr)

		assert.Nil(t, NullableString{IsNull: true}.Ptr())
	})
}

func TestNullableTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("Value", func(t *testing.T) {
		value, err := NullableTime{Time: now, IsNull: false}.Value()
		require.NoError(t, err)
		assert.Equal(t, now, value)

		value, err = NullableTime{IsNull: true}.Value()
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("Scan", func(t *testing.T) {
		var nt NullableTime
		require.NoError(t, nt.Scan(now))
		assert.Equal(t, NullableTime{Time: now, IsNull: false}, nt)

		require.NoError(t, nt.Scan(nil))
		assert.True(t, nt.IsNull)
		assert.True(t, nt.Time.IsZero())

		assert.Error(t, nt.Scan("2026-03-15"))
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		data, err := json.Marshal(NullableTime{Time: now, IsNull: false})
		require.NoError(t, err)
		assert.Equal(t, `"2026-03-15T10:30:00Z"`, string(data))

		data, err = json.Marshal(NullableTime{IsNull: true})
		require.NoError(t, err)
		assert.Equal(t, `null`, string(data))
	})

	t.Run("UnmarshalJSON", func(t *testing.T) {
		var nt NullableTime
		require.NoError(t, json.Unmarshal([]byte(`"2026-03-15T10:30:00Z"`), &nt))
		assert.Equal(t, now, nt.Time)
		assert.False(t, nt.IsNull)

		require.NoError(t, json.Unmarshal([]byte(`null`), &nt))
		assert.True(t, nt.IsNull)
	})

	t.Run("Ptr", func(t *testing.T) {
		ptr := NullableTime{Time: now, IsNull: false}.Ptr()
		require.NotNil(t, ptr)
		assert.Equal(t, now, *ptr)

		assert.Nil(t, NullableTime{IsNull: true}.Ptr())
	})
}
