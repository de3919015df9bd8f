package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/altocrm/altocrm/config"
	"github.com/altocrm/altocrm/internal/app"
	"github.com/altocrm/altocrm/pkg/logger"
	"github.com/stretchr/testify/assert"
)

// TestRunServerMocked tests the runServer flow with mocking
func TestRunServerMocked(t *testing.T) {

	// Create test config
	cfg := &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host: "localhost",
			// Use a random high port to avoid conflicts
			Port: 18080 + (time.Now().Nanosecond() % 1000),
		},
		Jobs: config.JobsConfig{
			PollInterval:  60 * time.Second,
			BatchSize:     10,
			MaxConcurrent: 2,
		},
	}

	// Create mock logger
	mockLogger := logger.NewMockLogger()

	// Create a mock DB
	mockDB, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()

	// Create app manually with our mocks
	appInstance := app.NewApp(cfg, app.WithLogger(mockLogger), app.WithMockDB(mockDB))

	// Setup a simple runServer function that just starts and stops the app
	testRunServer := func(_ *config.Config, logger logger.Logger) error {
		// Start the server in a goroutine
		serverError := make(chan error, 1)
		go func() {
			logger.Info("Server started successfully")
			serverError <- appInstance.Start()
		}()

		// Send shutdown signal
		time.Sleep(100 * time.Millisecond)

		// Create a context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Attempt graceful shutdown
		if err := appInstance.Shutdown(ctx); err != nil {
			return err
		}

		logger.Info("Server shut down gracefully")
		return nil
	}

	// Run the test function
	err = testRunServer(cfg, mockLogger)
	assert.NoError(t, err)
}

func TestConfigLoading(t *testing.T) {

	// Every setting has a default, so loading succeeds without any env
	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "altocrm", cfg.Database.DBName)
}

func TestSetupMinimalConfig(t *testing.T) {
	// Setup test environment variables
	os.Setenv("ENVIRONMENT", "test")
	os.Setenv("SERVER_HOST", "localhost")
	os.Setenv("PORT", "8081")
	os.Setenv("DB_USER", "postgres_test")
	os.Setenv("DB_PASSWORD", "postgres_test")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("DB_PORT", "5432")
	os.Setenv("DB_NAME", "altocrm_test")

	// Cleanup
	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("SERVER_HOST")
		os.Unsetenv("PORT")
		os.Unsetenv("DB_USER")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_PORT")
		os.Unsetenv("DB_NAME")
	}()

	// Try to load config from environment
	cfg, err := config.Load()
	assert.NoError(t, err)

	// Verify config is loaded correctly
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres_test", cfg.Database.User)
	assert.Equal(t, "altocrm_test", cfg.Database.DBName)
}
