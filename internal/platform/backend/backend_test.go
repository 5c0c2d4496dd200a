package backend

import (
	"context"
	"testing"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	l, logBuf := logger.GetTestLogger(t)

	b, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory, TimeoutSeconds: 1}, l, Options{})
	require.NoError(t, err)
	assert.IsType(t, &memstore.DB{}, b)
	assert.NoError(t, b.Ping(context.Background()))
	logger.AssertLogContains(t, logBuf, "in-memory database")

	_, err = Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", TimeoutSeconds: 1}, l, Options{})
	assert.ErrorContains(t, err, `unsupported database driver "sqlite"`)
}
