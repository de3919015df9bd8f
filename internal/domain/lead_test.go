package domain

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesFromJSON(t *testing.T) {
	t.Run("scalar values", func(t *testing.T) {
		values, err := ValuesFromJSON([]byte(`{"name":"Ada Lovelace","deal_size":1200.5,"active":true,"notes":null}`))
		require.NoError(t, err)

		assert.Equal(t, "Ada Lovelace", values["name"])
		assert.Equal(t, 1200.5, values["deal_size"])
		assert.Equal(t, true, values["active"])
		v, ok := values["notes"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("empty object", func(t *testing.T) {
		values, err := ValuesFromJSON([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := ValuesFromJSON([]byte(`["name"]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be an object")
	})

	t.Run("nested object rejected", func(t *testing.T) {
		_, err := ValuesFromJSON([]byte(`{"name":{"first":"Ada"}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not supported")
	})

	t.Run("array value rejected", func(t *testing.T) {
		_, err := ValuesFromJSON([]byte(`{"tags":["a","b"]}`))
		require.Error(t, err)
	})
}

func TestCreateLeadRequest_Validate(t *testing.T) {
	t.Run("generates an id when missing", func(t *testing.T) {
		req := &CreateLeadRequest{
			Stage:  "new",
			Values: json.RawMessage(`{"name":"Ada Lovelace"}`),
		}

		lead, values, err := req.Validate()
		require.NoError(t, err)

		_, err = uuid.Parse(lead.ID)
		assert.NoError(t, err)
		assert.Equal(t, "new", lead.Stage)
		assert.Equal(t, "Ada Lovelace", values["name"])
		assert.False(t, lead.CreatedAt.IsZero())
		assert.Nil(t, lead.DeletedAt)
	})

	t.Run("keeps a provided id", func(t *testing.T) {
		id := uuid.New().String()
		req := &CreateLeadRequest{ID: id}

		lead, values, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, id, lead.ID)
		assert.Empty(t, values)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		req := &CreateLeadRequest{ID: "not-a-uuid"}
		_, _, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid lead id")
	})

	t.Run("defaults source to manual", func(t *testing.T) {
		req := &CreateLeadRequest{}
		_, _, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, ValueSourceManual, req.Source)
	})

	t.Run("rejects an unknown source", func(t *testing.T) {
		req := &CreateLeadRequest{Source: "scraper"}
		_, _, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid source")
	})

	t.Run("rejects invalid values json", func(t *testing.T) {
		req := &CreateLeadRequest{Values: json.RawMessage(`{"tags":[1,2]}`)}
		_, _, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid values")
	})
}

func TestUpdateLeadRequest_Validate(t *testing.T) {
	validID := uuid.New().String()

	t.Run("valid request", func(t *testing.T) {
		req := &UpdateLeadRequest{
			ID:     validID,
			Values: json.RawMessage(`{"company":"Babbage Inc"}`),
		}

		values, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, "Babbage Inc", values["company"])
		assert.Equal(t, ValueSourceManual, req.Source)
	})

	t.Run("missing id", func(t *testing.T) {
		req := &UpdateLeadRequest{Values: json.RawMessage(`{"company":"x"}`)}
		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lead id is required")
	})

	t.Run("missing values", func(t *testing.T) {
		req := &UpdateLeadRequest{ID: validID}
		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "values are required")
	})

	t.Run("empty values object", func(t *testing.T) {
		req := &UpdateLeadRequest{ID: validID, Values: json.RawMessage(`{}`)}
		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "values are required")
	})
}

func TestGetLeadRequest_FromQueryParams(t *testing.T) {
	validID := uuid.New().String()

	t.Run("valid params", func(t *testing.T) {
		req := &GetLeadRequest{}
		err := req.FromQueryParams(url.Values{"id": {validID}, "include_deleted": {"true"}})
		require.NoError(t, err)
		assert.Equal(t, validID, req.ID)
		assert.True(t, req.IncludeDeleted)
	})

	t.Run("missing id", func(t *testing.T) {
		req := &GetLeadRequest{}
		err := req.FromQueryParams(url.Values{})
		require.Error(t, err)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := &GetLeadRequest{}
		err := req.FromQueryParams(url.Values{"id": {"xyz"}})
		require.Error(t, err)
	})
}

func TestGetLeadsRequest_FromQueryParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := &GetLeadsRequest{}
		err := req.FromQueryParams(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, 20, req.Limit)
		assert.False(t, req.IncludeDeleted)
	})

	t.Run("all params", func(t *testing.T) {
		req := &GetLeadsRequest{}
		err := req.FromQueryParams(url.Values{
			"stage":  {"qualified"},
			"q":      {"  ada  "},
			"limit":  {"50"},
			"cursor": {"abc"},
		})
		require.NoError(t, err)
		assert.Equal(t, "qualified", req.Stage)
		assert.Equal(t, "ada", req.Query)
		assert.Equal(t, 50, req.Limit)
		assert.Equal(t, "abc", req.Cursor)
	})

	t.Run("limit is capped", func(t *testing.T) {
		req := &GetLeadsRequest{}
		err := req.FromQueryParams(url.Values{"limit": {"500"}})
		require.NoError(t, err)
		assert.Equal(t, 100, req.Limit)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := &GetLeadsRequest{}
		err := req.FromQueryParams(url.Values{"limit": {"many"}})
		require.Error(t, err)
	})
}

func TestGetBoardRequest_FromQueryParams(t *testing.T) {
	t.Run("default column limit", func(t *testing.T) {
		req := &GetBoardRequest{}
		err := req.FromQueryParams(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, 50, req.ColumnLimit)
	})

	t.Run("capped column limit", func(t *testing.T) {
		req := &GetBoardRequest{}
		err := req.FromQueryParams(url.Values{"column_limit": {"1000"}})
		require.NoError(t, err)
		assert.Equal(t, 200, req.ColumnLimit)
	})
}

func TestMoveStageRequest_Validate(t *testing.T) {
	validID := uuid.New().String()

	t.Run("valid request", func(t *testing.T) {
		req := &MoveStageRequest{ID: validID, Stage: "won"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing stage", func(t *testing.T) {
		req := &MoveStageRequest{ID: validID}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stage is required")
	})
}

func TestLockFieldRequest_Validate(t *testing.T) {
	validID := uuid.New().String()

	t.Run("valid request", func(t *testing.T) {
		req := &LockFieldRequest{ID: validID, FieldKey: "email"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing field key", func(t *testing.T) {
		req := &LockFieldRequest{ID: validID}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field_key is required")
	})
}

func TestLead_Helpers(t *testing.T) {
	lead := &Lead{
		ID:    uuid.New().String(),
		Stage: "new",
		Values: map[string]*LeadValue{
			"name":      {Value: "Ada Lovelace", Source: ValueSourceManual},
			"deal_size": {Value: 1200.5, Source: ValueSourceManual},
			"company":   {Value: nil, Source: ValueSourceManual, Locked: true},
		},
	}

	t.Run("StringValue", func(t *testing.T) {
		assert.Equal(t, "Ada Lovelace", lead.StringValue("name"))
		assert.Equal(t, "", lead.StringValue("deal_size"))
		assert.Equal(t, "", lead.StringValue("company"))
		assert.Equal(t, "", lead.StringValue("missing"))
	})

	t.Run("HasValue", func(t *testing.T) {
		assert.True(t, lead.HasValue("name"))
		assert.False(t, lead.HasValue("company"))
		assert.False(t, lead.HasValue("missing"))
	})

	t.Run("IsDeleted", func(t *testing.T) {
		assert.False(t, lead.IsDeleted())
		now := time.Now().UTC()
		lead.DeletedAt = &now
		assert.True(t, lead.IsDeleted())
	})
}

func TestIsValidValueSource(t *testing.T) {
	assert.True(t, IsValidValueSource(ValueSourceManual))
	assert.True(t, IsValidValueSource(ValueSourceAI))
	assert.True(t, IsValidValueSource(ValueSourceImport))
	assert.True(t, IsValidValueSource(ValueSourceIntegration))
	assert.False(t, IsValidValueSource(""))
	assert.False(t, IsValidValueSource("scraper"))
}

func TestErrFieldLocked_Error(t *testing.T) {
	err := &ErrFieldLocked{FieldKey: "email"}
	assert.Equal(t, "field email is locked", err.Error())
}
