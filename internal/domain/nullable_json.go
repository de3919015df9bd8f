package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// NullableJSON carries an arbitrary JSON value that can be null, for
// JSONB columns such as audit old/new values. It implements
// sql.Scanner, driver.Valuer and the JSON marshaler interfaces.
type NullableJSON struct {
	Data   interface{}
	IsNull bool
}

// Scan implements the sql.Scanner interface
func (nj *NullableJSON) Scan(value interface{}) error {
	if value == nil {
		nj.Data = nil
		nj.IsNull = true
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into NullableJSON", value)
	}

	if len(raw) == 0 {
		nj.Data = nil
		nj.IsNull = true
		return nil
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}
	nj.Data = data
	nj.IsNull = false
	return nil
}

// Value implements the driver.Valuer interface
func (nj NullableJSON) Value() (driver.Value, error) {
	if nj.IsNull || nj.Data == nil {
		return nil, nil
	}
	return json.Marshal(nj.Data)
}

// MarshalJSON implements json.Marshaler
func (nj NullableJSON) MarshalJSON() ([]byte, error) {
	if nj.IsNull || nj.Data == nil {
		return []byte("null"), nil
	}
	return json.Marshal(nj.Data)
}

// UnmarshalJSON implements json.Unmarshaler
func (nj *NullableJSON) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		nj.Data = nil
		nj.IsNull = true
		return nil
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	nj.Data = value
	nj.IsNull = false
	return nil
}
