package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStageRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := &CreateStageRequest{Key: "negotiation", Label: "Negotiation", Position: 4, Color: "#f59e0b"}
		stage, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, "negotiation", stage.Key)
		assert.Equal(t, "Negotiation", stage.Label)
		assert.Equal(t, 4, stage.Position)
		assert.Equal(t, "#f59e0b", stage.Color)
		assert.False(t, stage.CreatedAt.IsZero())
	})

	t.Run("missing key", func(t *testing.T) {
		req := &CreateStageRequest{Label: "X"}
		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key is required")
	})

	t.Run("bad key format", func(t *testing.T) {
		req := &CreateStageRequest{Key: "New Stage", Label: "X"}
		_, err := req.Validate()
		require.Error(t, err)
	})

	t.Run("missing label", func(t *testing.T) {
		req := &CreateStageRequest{Key: "negotiation"}
		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "label is required")
	})
}

func TestUpdateStageRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := &UpdateStageRequest{Key: "won", Label: "Closed won"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing label", func(t *testing.T) {
		req := &UpdateStageRequest{Key: "won"}
		assert.Error(t, req.Validate())
	})
}

func TestDeleteStageRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := &DeleteStageRequest{Key: "proposal", MigrateTo: "qualified"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing migrate_to", func(t *testing.T) {
		req := &DeleteStageRequest{Key: "proposal"}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migrate_to is required")
	})

	t.Run("migrate_to equals key", func(t *testing.T) {
		req := &DeleteStageRequest{Key: "proposal", MigrateTo: "proposal"}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot equal")
	})
}

func TestErrStageNotFound_Error(t *testing.T) {
	err := &ErrStageNotFound{Message: "stage not found: icebox"}
	assert.Equal(t, "stage not found: icebox", err.Error())
}
