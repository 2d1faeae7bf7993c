package database

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConnection_InvalidHost verifies a connection attempt against an
// unreachable host fails fast with a wrapped error rather than hanging.
func TestNewConnection_InvalidHost(t *testing.T) {
	config := Config{
		Host:        "127.0.0.1",
		Port:        1, // nothing listens here
		Database:    "testdb",
		Username:    "testuser",
		Password:    "testpass",
		MaxConns:    5,
		MinConns:    1,
		MaxConnLife: time.Hour,
		MaxConnIdle: time.Minute * 30,
		SSLMode:     "disable",
	}

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewConnection(ctx, config, logger)
	require.Error(t, err)
}

func TestConfig_Fields(t *testing.T) {
	config := Config{
		Host:        "localhost",
		Port:        5432,
		Database:    "mtb_validator",
		Username:    "postgres",
		Password:    "secret",
		MaxConns:    25,
		MinConns:    5,
		MaxConnLife: 5 * time.Minute,
		MaxConnIdle: time.Minute,
		SSLMode:     "disable",
	}

	assert.Equal(t, "localhost", config.Host)
	assert.Equal(t, 5432, config.Port)
	assert.Equal(t, int32(25), config.MaxConns)
}
