package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrSettingNotFound_Error(t *testing.T) {
	t.Run("Error message with key", func(t *testing.T) {
		err := &ErrSettingNotFound{Key: "jobs_last_poll_at"}
		expected := "setting not found: jobs_last_poll_at"
		assert.Equal(t, expected, err.Error())
	})

	t.Run("Error message with empty key", func(t *testing.T) {
		err := &ErrSettingNotFound{Key: ""}
		expected := "setting not found: "
		assert.Equal(t, expected, err.Error())
	})

	t.Run("Error type assertion", func(t *testing.T) {
		var err error = &ErrSettingNotFound{Key: "db_version"}

		settingErr, ok := err.(*ErrSettingNotFound)
		assert.True(t, ok, "Should be able to assert to *ErrSettingNotFound")
		assert.Equal(t, "db_version", settingErr.Key)
	})
}

func TestSettingKeys(t *testing.T) {
	// The scheduler and migration manager rely on these exact keys
	assert.Equal(t, "db_version", SettingKeyDBVersion)
	assert.Equal(t, "jobs_last_poll_at", SettingKeyLastPollAt)
}

func TestSetting_Struct(t *testing.T) {
	setting := Setting{
		Key:   "db_version",
		Value: "1.0",
	}

	assert.Equal(t, "db_version", setting.Key)
	assert.Equal(t, "1.0", setting.Value)
	assert.True(t, setting.CreatedAt.IsZero())
	assert.True(t, setting.UpdatedAt.IsZero())
}
